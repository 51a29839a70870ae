package services

import (
	"math/rand"
	"testing"
	"time"

	"bylines/app/models"
	"bylines/app/repositories"
	"bylines/app/repositories/mock"
	"bylines/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func aiPersona(id, slug string) *models.Persona {
	return &models.Persona{
		ID:                id,
		Name:              "Name " + id,
		WritingStyle:      "formal",
		PersonalityTraits: []string{"curious", "precise", "dry"},
		AreasOfExpertise:  []string{"technology", "science", "history"},
		AuthorBio:         "A bio.",
		ProfilePictureURL: "https://randomuser.me/api/portraits/women/1.jpg",
		CreativityLevel:   0.3,
		Slug:              slug,
	}
}

func newTestDirectory(repo repositories.PersonaRepository, now *time.Time) *AuthorDirectory {
	c := cache.NewWithClock(authorsCacheTTL, func() time.Time { return *now })
	return NewAuthorDirectoryWith(repo, c, rand.New(rand.NewSource(1)))
}

func TestListCachesUntilTTL(t *testing.T) {
	repo := mock.NewPersonaRepository()
	require.NoError(t, repo.Create(aiPersona("p1", "ada-quill")))

	now := time.Now()
	directory := newTestDirectory(repo, &now)

	personas, err := directory.List()
	require.NoError(t, err)
	assert.Len(t, personas, 1)

	// A persona created behind the directory's back is invisible to cached
	// readers until the TTL runs out.
	require.NoError(t, repo.Create(aiPersona("p2", "bo-render")))

	personas, err = directory.List()
	require.NoError(t, err)
	assert.Len(t, personas, 1)

	now = now.Add(authorsCacheTTL + time.Minute)
	personas, err = directory.List()
	require.NoError(t, err)
	assert.Len(t, personas, 2)
}

func TestRegisterInvalidatesCache(t *testing.T) {
	repo := mock.NewPersonaRepository()
	require.NoError(t, repo.Create(aiPersona("p1", "ada-quill")))

	now := time.Now()
	directory := newTestDirectory(repo, &now)

	_, err := directory.List()
	require.NoError(t, err)

	require.NoError(t, directory.Register(aiPersona("p2", "bo-render")))

	// The directory's own write path is visible immediately.
	personas, err := directory.List()
	require.NoError(t, err)
	assert.Len(t, personas, 2)
}

func TestRegisterRejectsInvalidPersona(t *testing.T) {
	repo := mock.NewPersonaRepository()
	now := time.Now()
	directory := newTestDirectory(repo, &now)

	persona := aiPersona("p1", "ada-quill")
	persona.Slug = ""
	assert.Error(t, directory.Register(persona))

	stored, err := repo.List()
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestRandomAIOnlyDrawsAIPersonas(t *testing.T) {
	repo := mock.NewPersonaRepository()
	require.NoError(t, repo.Create(aiPersona("ai1", "ada-quill")))
	require.NoError(t, repo.Create(aiPersona("ai2", "bo-render")))

	human := aiPersona("h1", "sam@example.com")
	human.IsHuman = true
	human.Email = "sam@example.com"
	human.CreativityLevel = 0
	require.NoError(t, repo.Create(human))

	now := time.Now()
	directory := newTestDirectory(repo, &now)

	for i := 0; i < 100; i++ {
		persona, err := directory.RandomAI()
		require.NoError(t, err)
		assert.False(t, persona.IsHuman)
	}
}

func TestRandomAIRoughlyUniform(t *testing.T) {
	repo := mock.NewPersonaRepository()
	require.NoError(t, repo.Create(aiPersona("ai1", "one")))
	require.NoError(t, repo.Create(aiPersona("ai2", "two")))
	require.NoError(t, repo.Create(aiPersona("ai3", "three")))

	now := time.Now()
	directory := newTestDirectory(repo, &now)

	counts := make(map[string]int)
	const draws = 600
	for i := 0; i < draws; i++ {
		persona, err := directory.RandomAI()
		require.NoError(t, err)
		counts[persona.ID]++
	}

	require.Len(t, counts, 3)
	for id, count := range counts {
		assert.Greater(t, count, draws/6, "persona %s drawn too rarely", id)
	}
}

func TestRandomAIEmptyPool(t *testing.T) {
	repo := mock.NewPersonaRepository()

	human := aiPersona("h1", "sam@example.com")
	human.IsHuman = true
	human.Email = "sam@example.com"
	human.CreativityLevel = 0
	require.NoError(t, repo.Create(human))

	now := time.Now()
	directory := newTestDirectory(repo, &now)

	_, err := directory.RandomAI()
	assert.ErrorIs(t, err, ErrEmptyPool)
}

func TestRandomAIBypassesCache(t *testing.T) {
	repo := mock.NewPersonaRepository()
	require.NoError(t, repo.Create(aiPersona("ai1", "one")))

	now := time.Now()
	directory := newTestDirectory(repo, &now)

	// Warm the list cache, then add a persona behind the directory's back.
	_, err := directory.List()
	require.NoError(t, err)
	require.NoError(t, repo.Create(aiPersona("ai2", "two")))

	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		persona, err := directory.RandomAI()
		require.NoError(t, err)
		seen[persona.ID] = true
	}
	assert.True(t, seen["ai2"], "fresh persona never selected; cache not bypassed")
}

func TestByID(t *testing.T) {
	repo := mock.NewPersonaRepository()
	require.NoError(t, repo.Create(aiPersona("p1", "ada-quill")))

	now := time.Now()
	directory := newTestDirectory(repo, &now)

	persona, err := directory.ByID("p1")
	require.NoError(t, err)
	assert.Equal(t, "ada-quill", persona.Slug)

	_, err = directory.ByID("missing")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestBySlugAbsenceIsNotAnError(t *testing.T) {
	repo := mock.NewPersonaRepository()
	now := time.Now()
	directory := newTestDirectory(repo, &now)

	persona, err := directory.BySlug("nobody")
	require.NoError(t, err)
	assert.Nil(t, persona)
}

func TestRegisterHuman(t *testing.T) {
	repo := mock.NewPersonaRepository()
	now := time.Now()
	directory := newTestDirectory(repo, &now)

	persona, err := directory.RegisterHuman("h1", "Sam Doe", "sam@example.com", "https://example.com/sam.jpg")
	require.NoError(t, err)
	assert.True(t, persona.IsHuman)
	assert.Equal(t, "sam@example.com", persona.Slug)
	assert.Zero(t, persona.CreativityLevel)

	stored, err := repo.GetBySlug("sam@example.com")
	require.NoError(t, err)
	assert.Equal(t, "h1", stored.ID)
}
