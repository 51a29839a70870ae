package repositories

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

var (
	// ErrNotFound reports that a requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateSlug reports that a write would reuse an existing slug.
	ErrDuplicateSlug = errors.New("slug already taken")
)

const (
	// Key prefixes for different entity types. Posts are keyed by slug,
	// which is what makes slug uniqueness a store-level constraint.
	PostKeyPrefix       = "post:"
	AuthorKeyPrefix     = "author:"
	AuthorSlugKeyPrefix = "authorslug:"
)

// Open opens the Badger database at path. An empty path opens an in-memory
// database, used by tests.
func Open(path string) (*badger.DB, error) {
	var opts badger.Options
	if path == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(path)
	}
	opts = opts.WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	return db, nil
}

// marshalEntity marshals an entity to JSON
func marshalEntity(entity interface{}) ([]byte, error) {
	data, err := json.Marshal(entity)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entity: %v", err)
	}
	return data, nil
}

// unmarshalEntity unmarshals JSON data into an entity
func unmarshalEntity(data []byte, entity interface{}) error {
	if err := json.Unmarshal(data, entity); err != nil {
		return fmt.Errorf("failed to unmarshal entity: %v", err)
	}
	return nil
}
