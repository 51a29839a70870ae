package models

import (
	"errors"
	"strings"
	"time"
)

// Validate checks if the post meets all validation requirements
func (p *Post) Validate() error {
	if err := validate.Struct(p); err != nil {
		return err
	}

	if p.CreatedAt.IsZero() {
		return errors.New("created_at cannot be zero")
	}

	return nil
}

// BeforeCreate sets up any necessary fields before creation
func (p *Post) BeforeCreate() {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
}

// HasCategory reports whether the post carries the given category label,
// compared case-insensitively.
func (p *Post) HasCategory(label string) bool {
	for _, category := range p.Categories {
		if strings.EqualFold(category, label) {
			return true
		}
	}
	return false
}
