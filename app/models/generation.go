package models

// PersonaProfile is the JSON object the persona prompt asks the model for.
// The shape is validated before any Persona is built from it, so a
// well-formed-but-wrong response cannot leak empty fields into the store.
type PersonaProfile struct {
	Name              string   `json:"name" validate:"required"`
	WritingStyle      string   `json:"writingStyle" validate:"required"`
	PersonalityTraits []string `json:"personalityTraits" validate:"required,min=3,max=5,dive,required"`
	AreasOfExpertise  []string `json:"areasOfExpertise" validate:"required,min=3,max=5,dive,required"`
	AuthorBio         string   `json:"authorBio" validate:"required"`
	Gender            string   `json:"gender" validate:"required"`
}

// Validate checks the parsed profile against the required shape.
func (p *PersonaProfile) Validate() error {
	return validate.Struct(p)
}

// Draft is the structured post the writer prompt asks the model for.
// It carries no slug, persona, or timestamps; those are assigned at
// publication time.
type Draft struct {
	Title      string   `json:"title" validate:"required"`
	Content    string   `json:"content" validate:"required"`
	Categories []string `json:"categories" validate:"required,min=1,dive,required"`
	Summary    string   `json:"summary" validate:"required"`
}

// Validate checks the parsed draft against the required shape.
func (d *Draft) Validate() error {
	return validate.Struct(d)
}
