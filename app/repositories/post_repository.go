package repositories

import (
	"errors"
	"sort"
	"strings"

	"bylines/app/models"

	"github.com/dgraph-io/badger/v4"
)

// maxTxnRetries bounds retries of transactions that lost a commit race.
const maxTxnRetries = 5

// BadgerPostRepository implements PostRepository using BadgerDB
type BadgerPostRepository struct {
	db *badger.DB
}

// NewBadgerPostRepository creates a new BadgerPostRepository
func NewBadgerPostRepository(db *badger.DB) *BadgerPostRepository {
	return &BadgerPostRepository{db: db}
}

// Create persists a new post. The post is keyed by its slug; a second write
// with the same slug fails with ErrDuplicateSlug. Two concurrent writers
// racing on the same slug are serialized by Badger's conflict detection, so
// exactly one wins.
func (r *BadgerPostRepository) Create(post *models.Post) error {
	post.BeforeCreate()

	data, err := marshalEntity(post)
	if err != nil {
		return err
	}
	key := []byte(PostKeyPrefix + post.Slug)

	for attempt := 0; attempt < maxTxnRetries; attempt++ {
		err = r.db.Update(func(txn *badger.Txn) error {
			_, err := txn.Get(key)
			if err == nil {
				return ErrDuplicateSlug
			}
			if err != badger.ErrKeyNotFound {
				return err
			}
			return txn.Set(key, data)
		})
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
		// Lost the commit race; re-run so the existence check sees the winner.
	}
	return err
}

// GetBySlug retrieves a post by slug
func (r *BadgerPostRepository) GetBySlug(slug string) (*models.Post, error) {
	var post models.Post

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(PostKeyPrefix + slug))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return unmarshalEntity(val, &post)
		})
	})

	if err != nil {
		return nil, err
	}
	return &post, nil
}

// SlugExists reports whether a post with the given slug is stored.
func (r *BadgerPostRepository) SlugExists(slug string) (bool, error) {
	err := r.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(PostKeyPrefix + slug))
		return err
	})
	if err == badger.ErrKeyNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ListAll retrieves every post, newest first.
func (r *BadgerPostRepository) ListAll() ([]*models.Post, error) {
	return r.listWhere(func(*models.Post) bool { return true })
}

// ListByCategory retrieves posts carrying the category label, matched
// case-insensitively, newest first.
func (r *BadgerPostRepository) ListByCategory(label string) ([]*models.Post, error) {
	return r.listWhere(func(post *models.Post) bool {
		return post.HasCategory(label)
	})
}

// ListByPersona retrieves posts owned by the given persona, newest first.
func (r *BadgerPostRepository) ListByPersona(personaID string) ([]*models.Post, error) {
	return r.listWhere(func(post *models.Post) bool {
		return post.PersonaID == personaID
	})
}

func (r *BadgerPostRepository) listWhere(keep func(*models.Post) bool) ([]*models.Post, error) {
	var posts []*models.Post

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(PostKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			var post models.Post
			err := item.Value(func(val []byte) error {
				return unmarshalEntity(val, &post)
			})
			if err != nil {
				return err
			}
			if keep(&post) {
				posts = append(posts, &post)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts, nil
}

// IncrementViews adds one to the post's view counter inside a single
// transaction. A caller that loses a commit race retries against the
// updated counter, so concurrent increments are never lost.
func (r *BadgerPostRepository) IncrementViews(slug string) error {
	key := []byte(PostKeyPrefix + slug)

	for {
		err := r.db.Update(func(txn *badger.Txn) error {
			item, err := txn.Get(key)
			if err == badger.ErrKeyNotFound {
				return ErrNotFound
			}
			if err != nil {
				return err
			}

			var post models.Post
			if err := item.Value(func(val []byte) error {
				return unmarshalEntity(val, &post)
			}); err != nil {
				return err
			}

			post.Views++
			data, err := marshalEntity(&post)
			if err != nil {
				return err
			}
			return txn.Set(key, data)
		})
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
	}
}

// Categories returns the distinct category labels across all posts, sorted
// alphabetically. Labels differing only in case collapse to the first
// spelling seen.
func (r *BadgerPostRepository) Categories() ([]string, error) {
	posts, err := r.ListAll()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]string)
	for _, post := range posts {
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
