package services

import (
	"context"
	"errors"
	"math/rand"
	"regexp"
	"testing"
	"time"

	"bylines/app/repositories/mock"
	"bylines/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validProfileJSON = `{
	"name": "Ada Quill",
	"writingStyle": "formal",
	"personalityTraits": ["curious", "precise", "dry"],
	"areasOfExpertise": ["technology", "mathematics", "history"],
	"authorBio": "Ada Quill writes about machines that think.",
	"gender": "female"
}`

func newTestPersonaService(repo *mock.PersonaRepository, client *stubLLM) *PersonaService {
	now := time.Now()
	directory := NewAuthorDirectoryWith(repo,
		cache.NewWithClock(authorsCacheTTL, func() time.Time { return now }),
		rand.New(rand.NewSource(1)))
	return NewPersonaServiceWithRand(directory, client, "gpt-3.5-turbo", rand.New(rand.NewSource(2)))
}

func TestGeneratePersona(t *testing.T) {
	repo := mock.NewPersonaRepository()
	client := &stubLLM{response: validProfileJSON}
	service := newTestPersonaService(repo, client)

	persona, err := service.Generate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Ada Quill", persona.Name)
	assert.Equal(t, "ada-quill", persona.Slug)
	assert.False(t, persona.IsHuman)
	assert.NotEmpty(t, persona.ID)
	assert.Regexp(t, regexp.MustCompile(`^https://randomuser\.me/api/portraits/women/\d+\.jpg$`), persona.ProfilePictureURL)

	// Creativity lands on one of the eight 0.1 buckets.
	bucket := int(persona.CreativityLevel*10 + 0.5)
	assert.GreaterOrEqual(t, bucket, 1)
	assert.LessOrEqual(t, bucket, 8)

	stored, err := repo.GetBySlug("ada-quill")
	require.NoError(t, err)
	assert.Equal(t, persona.ID, stored.ID)
}

func TestGeneratePersonaMalePortrait(t *testing.T) {
	repo := mock.NewPersonaRepository()
	client := &stubLLM{response: `{
		"name": "Bo Render",
		"writingStyle": "sarcastic",
		"personalityTraits": ["witty", "blunt", "sharp"],
		"areasOfExpertise": ["security", "networking", "hardware"],
		"authorBio": "Bo Render breaks things for a living.",
		"gender": "male"
	}`}
	service := newTestPersonaService(repo, client)

	persona, err := service.Generate(context.Background())
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^https://randomuser\.me/api/portraits/men/\d+\.jpg$`), persona.ProfilePictureURL)
}

func TestGenerateEmbedsExclusionSet(t *testing.T) {
	repo := mock.NewPersonaRepository()
	existing := aiPersona("p1", "taken-name")
	existing.Name = "Taken Name"
	require.NoError(t, repo.Create(existing))

	client := &stubLLM{response: validProfileJSON}
	service := newTestPersonaService(repo, client)

	_, err := service.Generate(context.Background())
	require.NoError(t, err)
	assert.Contains(t, client.lastUser, "taken name")
	assert.Contains(t, client.lastSystem, "fictional personas")
}

func TestGenerateMalformedJSON(t *testing.T) {
	repo := mock.NewPersonaRepository()
	client := &stubLLM{response: "Sorry, I cannot respond in JSON today."}
	service := newTestPersonaService(repo, client)

	_, err := service.Generate(context.Background())
	assert.ErrorIs(t, err, ErrMalformedGeneration)

	stored, err := repo.List()
	require.NoError(t, err)
	assert.Empty(t, stored, "no persona may be persisted on a malformed response")
}

func TestGenerateWrongShape(t *testing.T) {
	repo := mock.NewPersonaRepository()
	// Well-formed JSON with the wrong fields must not reach the store.
	client := &stubLLM{response: `{"fullName": "Ada", "style": "formal"}`}
	service := newTestPersonaService(repo, client)

	_, err := service.Generate(context.Background())
	assert.ErrorIs(t, err, ErrMalformedGeneration)

	stored, err := repo.List()
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestGenerateTooFewTraits(t *testing.T) {
	repo := mock.NewPersonaRepository()
	client := &stubLLM{response: `{
		"name": "Ada Quill",
		"writingStyle": "formal",
		"personalityTraits": ["curious"],
		"areasOfExpertise": ["technology", "mathematics", "history"],
		"authorBio": "Bio.",
		"gender": "female"
	}`}
	service := newTestPersonaService(repo, client)

	_, err := service.Generate(context.Background())
	assert.ErrorIs(t, err, ErrMalformedGeneration)
}

func TestGenerateClientFailure(t *testing.T) {
	repo := mock.NewPersonaRepository()
	client := &stubLLM{err: errors.New("connection refused")}
	service := newTestPersonaService(repo, client)

	_, err := service.Generate(context.Background())
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrMalformedGeneration)
}
