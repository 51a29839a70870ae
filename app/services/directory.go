package services

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"bylines/app/models"
	"bylines/app/repositories"
	"bylines/cache"
)

const (
	authorsCacheKey = "authors"
	authorsCacheTTL = 6 * time.Hour
)

// AuthorDirectory is a read-through view over the persisted persona set.
// List serves from a TTL cache; selection paths that care about freshness
// read the store directly.
type AuthorDirectory struct {
	repo  repositories.PersonaRepository
	cache *cache.TTLCache
	mutex sync.Mutex
	rand  *rand.Rand
}

// NewAuthorDirectory creates a directory with the standard 6 hour cache TTL.
func NewAuthorDirectory(repo repositories.PersonaRepository) *AuthorDirectory {
	return NewAuthorDirectoryWith(repo, cache.New(authorsCacheTTL), rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewAuthorDirectoryWith creates a directory with an explicit cache and
// random source, so tests can control expiry and selection.
func NewAuthorDirectoryWith(repo repositories.PersonaRepository, c *cache.TTLCache, rnd *rand.Rand) *AuthorDirectory {
	return &AuthorDirectory{
		repo:  repo,
		cache: c,
		rand:  rnd,
	}
}

// List returns all personas. Results may lag the store by up to the cache
// TTL; Register invalidates the cache so this process sees its own writes.
func (d *AuthorDirectory) List() ([]*models.Persona, error) {
	if cached, ok := d.cache.Get(authorsCacheKey); ok {
		return cached.([]*models.Persona), nil
	}

	personas, err := d.repo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list personas: %w", err)
	}

	d.cache.Set(authorsCacheKey, personas)
	return personas, nil
}

// RandomAI picks one AI persona uniformly at random. It always reads the
// store directly: selection quality matters more than cache savings here.
func (d *AuthorDirectory) RandomAI() (*models.Persona, error) {
	personas, err := d.repo.ListAI()
	if err != nil {
		return nil, fmt.Errorf("failed to list AI personas: %w", err)
	}
	if len(personas) == 0 {
		return nil, ErrEmptyPool
	}

	d.mutex.Lock()
	index := d.rand.Intn(len(personas))
	d.mutex.Unlock()
	return personas[index], nil
}

// ByID returns the persona with the given ID, or repositories.ErrNotFound.
func (d *AuthorDirectory) ByID(id string) (*models.Persona, error) {
	return d.repo.GetByID(id)
}

// BySlug returns the persona with the given slug, or nil when no persona
// has it. Absence here is a page-level 404, not an internal error.
func (d *AuthorDirectory) BySlug(slug string) (*models.Persona, error) {
	persona, err := d.repo.GetBySlug(slug)
	if err == repositories.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return persona, nil
}

// Register is the single write path for personas. It validates, persists,
// and invalidates the list cache so subsequent reads see the new persona.
func (d *AuthorDirectory) Register(persona *models.Persona) error {
	if err := persona.Validate(); err != nil {
		return fmt.Errorf("invalid persona: %w", err)
	}
	if err := d.repo.Create(persona); err != nil {
		return fmt.Errorf("failed to persist persona: %w", err)
	}

	d.cache.Invalidate(authorsCacheKey)
	return nil
}

// RegisterHuman materializes a human author from the external registration
// flow. Human personas carry no writing profile and use their email as slug.
func (d *AuthorDirectory) RegisterHuman(id, name, email, pictureURL string) (*models.Persona, error) {
	persona := &models.Persona{
		ID:                id,
		Name:              name,
		Email:             email,
		Slug:              email,
		ProfilePictureURL: pictureURL,
		CreativityLevel:   0,
		IsHuman:           true,
	}

	if err := d.Register(persona); err != nil {
		return nil, err
	}
	return persona, nil
}
