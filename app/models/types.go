package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Persona represents a blog author profile. AI personas are invented by the
// persona service; human personas come from the external registration flow.
// Personas are never mutated or deleted once created.
type Persona struct {
	ID                string    `json:"id" validate:"required"`
	Name              string    `json:"name" validate:"required,min=2,max=80"`
	WritingStyle      string    `json:"writingStyle"`
	PersonalityTraits []string  `json:"personalityTraits"`
	AreasOfExpertise  []string  `json:"areasOfExpertise"`
	AuthorBio         string    `json:"authorBio"`
	ProfilePictureURL string    `json:"profilePictureURL"`
	CreativityLevel   float64   `json:"creativityLevel" validate:"gte=0,lte=0.8"`
	IsHuman           bool      `json:"isHuman"`
	Slug              string    `json:"slug" validate:"required"`
	Email             string    `json:"email,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
}

// Post represents a published blog post. The slug is globally unique and the
// view counter only ever increases, through the store's increment path.
type Post struct {
	ID         string    `json:"id" validate:"required"`
	Title      string    `json:"title" validate:"required,min=3,max=200"`
	Content    string    `json:"content" validate:"required,min=10"`
	CreatedAt  time.Time `json:"createdAt" validate:"required"`
	Slug       string    `json:"slug" validate:"required"`
	Categories []string  `json:"categories" validate:"required,min=1,dive,required"`
	Summary    string    `json:"summary" validate:"required"`
	PersonaID  string    `json:"personaId" validate:"required"`
	Views      int64     `json:"views" validate:"gte=0"`
}

// Topic names the subject matter for one generation run. Supplied by an
// external source and never persisted here.
type Topic struct {
	Title string `json:"title"`
}
