package repositories

import "bylines/app/models"

// PostRepository defines the interface for post data access. List results
// are ordered newest-first.
type PostRepository interface {
	Create(post *models.Post) error
	GetBySlug(slug string) (*models.Post, error)
	ListAll() ([]*models.Post, error)
	ListByCategory(label string) ([]*models.Post, error)
	ListByPersona(personaID string) ([]*models.Post, error)
	IncrementViews(slug string) error
	SlugExists(slug string) (bool, error)
	Categories() ([]string, error)
}

// PersonaRepository defines the interface for persona data access.
type PersonaRepository interface {
	Create(persona *models.Persona) error
	GetByID(id string) (*models.Persona, error)
	GetBySlug(slug string) (*models.Persona, error)
	List() ([]*models.Persona, error)
	ListAI() ([]*models.Persona, error)
}
