package mock

import (
	"sort"
	"strings"
	"sync"

	"bylines/app/models"
	"bylines/app/repositories"
)

// PostRepository is an in-memory PostRepository used in service tests.
type PostRepository struct {
	posts map[string]*models.Post
	mutex sync.RWMutex
}

// PersonaRepository is an in-memory PersonaRepository used in service tests.
type PersonaRepository struct {
	personas map[string]*models.Persona
	mutex    sync.RWMutex
}

func NewPostRepository() *PostRepository {
	return &PostRepository{posts: make(map[string]*models.Post)}
}

func NewPersonaRepository() *PersonaRepository {
	return &PersonaRepository{personas: make(map[string]*models.Persona)}
}

// PostRepository implementation

func (m *PostRepository) Create(post *models.Post) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.posts[post.Slug]; exists {
		return repositories.ErrDuplicateSlug
	}
	post.BeforeCreate()
	m.posts[post.Slug] = post
	return nil
}

func (m *PostRepository) GetBySlug(slug string) (*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	post, exists := m.posts[slug]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return post, nil
}

func (m *PostRepository) SlugExists(slug string) (bool, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	_, exists := m.posts[slug]
	return exists, nil
}

func (m *PostRepository) ListAll() ([]*models.Post, error) {
	return m.listWhere(func(*models.Post) bool { return true }), nil
}

func (m *PostRepository) ListByCategory(label string) ([]*models.Post, error) {
	return m.listWhere(func(post *models.Post) bool {
		return post.HasCategory(label)
	}), nil
}

func (m *PostRepository) ListByPersona(personaID string) ([]*models.Post, error) {
	return m.listWhere(func(post *models.Post) bool {
		return post.PersonaID == personaID
	}), nil
}

func (m *PostRepository) listWhere(keep func(*models.Post) bool) []*models.Post {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	var posts []*models.Post
	for _, post := range m.posts {
		if keep(post) {
			posts = append(posts, post)
		}
	}
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts
}

func (m *PostRepository) IncrementViews(slug string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	post, exists := m.posts[slug]
	if !exists {
		return repositories.ErrNotFound
	}
	post.Views++
	return nil
}

func (m *PostRepository) Categories() ([]string, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	seen := make(map[string]string)
	for _, post := range m.posts {
		for _, label := range post.Categories {
			folded := strings.ToLower(label)
			if _, ok := seen[folded]; !ok {
				seen[folded] = label
			}
		}
	}
	labels := make([]string, 0, len(seen))
	for _, label := range seen {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels, nil
}

// PersonaRepository implementation

func (m *PersonaRepository) Create(persona *models.Persona) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for _, existing := range m.personas {
		if existing.Slug == persona.Slug {
			return repositories.ErrDuplicateSlug
		}
	}
	persona.BeforeCreate()
	m.personas[persona.ID] = persona
	return nil
}

func (m *PersonaRepository) GetByID(id string) (*models.Persona, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	persona, exists := m.personas[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return persona, nil
}

func (m *PersonaRepository) GetBySlug(slug string) (*models.Persona, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	for _, persona := range m.personas {
		if persona.Slug == slug {
			return persona, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *PersonaRepository) List() ([]*models.Persona, error) {
	return m.listWhere(func(*models.Persona) bool { return true }), nil
}

func (m *PersonaRepository) ListAI() ([]*models.Persona, error) {
	return m.listWhere(func(persona *models.Persona) bool {
		return !persona.IsHuman
	}), nil
}

func (m *PersonaRepository) listWhere(keep func(*models.Persona) bool) []*models.Persona {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	var personas []*models.Persona
	for _, persona := range m.personas {
		if keep(persona) {
			personas = append(personas, persona)
		}
	}
	return personas
}
