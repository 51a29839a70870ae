package repositories

import (
	"errors"

	"bylines/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerPersonaRepository implements PersonaRepository using BadgerDB
type BadgerPersonaRepository struct {
	db *badger.DB
}

// NewBadgerPersonaRepository creates a new BadgerPersonaRepository
func NewBadgerPersonaRepository(db *badger.DB) *BadgerPersonaRepository {
	return &BadgerPersonaRepository{db: db}
}

// Create persists a new persona and its slug index entry. A second persona
// with the same slug fails with ErrDuplicateSlug.
func (r *BadgerPersonaRepository) Create(persona *models.Persona) error {
	persona.BeforeCreate()

	data, err := marshalEntity(persona)
	if err != nil {
		return err
	}
	key := []byte(AuthorKeyPrefix + persona.ID)
	slugKey := []byte(AuthorSlugKeyPrefix + persona.Slug)

	for attempt := 0; attempt < maxTxnRetries; attempt++ {
		err = r.db.Update(func(txn *badger.Txn) error {
			_, err := txn.Get(slugKey)
			if err == nil {
				return ErrDuplicateSlug
			}
			if err != badger.ErrKeyNotFound {
				return err
			}
			if err := txn.Set(key, data); err != nil {
				return err
			}
			return txn.Set(slugKey, []byte(persona.ID))
		})
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
	}
	return err
}

// GetByID retrieves a persona by ID
func (r *BadgerPersonaRepository) GetByID(id string) (*models.Persona, error) {
	var persona models.Persona

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(AuthorKeyPrefix + id))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return unmarshalEntity(val, &persona)
		})
	})

	if err != nil {
		return nil, err
	}
	return &persona, nil
}

// GetBySlug retrieves a persona through the slug index
func (r *BadgerPersonaRepository) GetBySlug(slug string) (*models.Persona, error) {
	var id string

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(AuthorSlugKeyPrefix + slug))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			id = string(val)
			return nil
		})
	})

	if err != nil {
		return nil, err
	}
	return r.GetByID(id)
}

// List retrieves all personas
func (r *BadgerPersonaRepository) List() ([]*models.Persona, error) {
	return r.listWhere(func(*models.Persona) bool { return true })
}

// ListAI retrieves the personas eligible for generated content
func (r *BadgerPersonaRepository) ListAI() ([]*models.Persona, error) {
	return r.listWhere(func(persona *models.Persona) bool {
		return !persona.IsHuman
	})
}

func (r *BadgerPersonaRepository) listWhere(keep func(*models.Persona) bool) ([]*models.Persona, error) {
	var personas []*models.Persona

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(AuthorKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			var persona models.Persona
			err := item.Value(func(val []byte) error {
				return unmarshalEntity(val, &persona)
			})
			if err != nil {
				return err
			}
			if keep(&persona) {
				personas = append(personas, &persona)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return personas, nil
}
