package services

import (
	"fmt"

	"bylines/app/repositories"
	"bylines/slugify"
)

// maxSlugAttempts caps the collision-suffix search so a pathological
// collision pattern aborts instead of spinning.
const maxSlugAttempts = 100

// SlugAllocator derives unique post slugs from titles. The existence scan
// here is only a fast path: the store's duplicate-slug rejection at save
// time is the actual safety net, and callers re-allocate on that conflict.
type SlugAllocator struct {
	posts repositories.PostRepository
}

// NewSlugAllocator creates an allocator checking against the given store.
func NewSlugAllocator(posts repositories.PostRepository) *SlugAllocator {
	return &SlugAllocator{posts: posts}
}

// Allocate returns the slugified title, or the first free "-1", "-2", ...
// suffixed variant when the base is taken.
func (a *SlugAllocator) Allocate(title string) (string, error) {
	base := slugify.Make(title)
	if base == "" {
		return "", fmt.Errorf("title %q produced an empty slug", title)
	}

	candidate := base
	for attempt := 1; attempt <= maxSlugAttempts; attempt++ {
		exists, err := a.posts.SlugExists(candidate)
		if err != nil {
			return "", fmt.Errorf("failed to check slug %q: %w", candidate, err)
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, attempt)
	}

	return "", ErrSlugExhausted
}
