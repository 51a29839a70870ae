package models

import (
	"errors"
	"time"
)

// Validate checks if the persona meets all validation requirements
func (p *Persona) Validate() error {
	if err := validate.Struct(p); err != nil {
		return err
	}

	// AI personas carry a creativity level; humans are fixed at zero.
	if !p.IsHuman && p.CreativityLevel < 0.1 {
		return errors.New("creativity_level must be at least 0.1 for AI personas")
	}
	if p.IsHuman && p.Email == "" {
		return errors.New("email is required for human personas")
	}

	return nil
}

// BeforeCreate sets up any necessary fields before creation
func (p *Persona) BeforeCreate() {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
}
