package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"bylines/app/models"
	"bylines/llm"
	"bylines/slugify"

	"github.com/google/uuid"
)

const personaSystemPrompt = "You are an AI that generates fictional personas for blog authors."

const personaUserPromptTemplate = `Create a detailed fictional persona for an AI-generated blog author.

The persona should include the following details:
- Name
- Writing Style (e.g., sarcastic, poetic, formal)
- Personality Traits (3-5 adjectives)
- Areas of Expertise (3-5 topics)
- A one-line author bio
- gender - male or female

The response should be a json object with the following fields as an example -
{
"name": "John Doe",
"writingStyle": "sarcastic",
"personalityTraits": ["witty", "humorous", "insightful"],
"areasOfExpertise": ["technology", "lifestyle", "travel"],
"authorBio": "John Doe is a tech enthusiast who loves to explore the world.",
"gender": "male"
}

The persona should be unique and engaging, suitable for a blog that covers a variety of topics related to technology.
Make sure the name is not already taken by an existing author.
The existing authors are %s.`

// PersonaService invents new AI author personas.
type PersonaService struct {
	directory *AuthorDirectory
	client    llm.Client
	model     string
	mutex     sync.Mutex
	rand      *rand.Rand
}

// NewPersonaService creates a persona service using the given completion model.
func NewPersonaService(directory *AuthorDirectory, client llm.Client, model string) *PersonaService {
	return NewPersonaServiceWithRand(directory, client, model, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewPersonaServiceWithRand creates a persona service with an explicit random
// source, so tests can pin avatar and creativity selection.
func NewPersonaServiceWithRand(directory *AuthorDirectory, client llm.Client, model string, rnd *rand.Rand) *PersonaService {
	return &PersonaService{
		directory: directory,
		client:    client,
		model:     model,
		rand:      rnd,
	}
}

// Generate asks the model for a fresh persona, avoiding existing author
// names, and registers it through the directory. The name exclusion is
// prompt-level only; the directory's slug constraint is the hard backstop.
func (s *PersonaService) Generate(ctx context.Context) (*models.Persona, error) {
	existing, err := s.directory.List()
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(existing))
	for _, persona := range existing {
		names = append(names, strings.ToLower(persona.Name))
	}

	content, err := s.client.Chat(ctx, s.model, personaSystemPrompt,
		fmt.Sprintf(personaUserPromptTemplate, strings.Join(names, ", ")))
	if err != nil {
		return nil, fmt.Errorf("persona generation failed: %w", err)
	}

	var profile models.PersonaProfile
	if err := json.Unmarshal([]byte(content), &profile); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedGeneration, err)
	}
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedGeneration, err)
	}

	persona := &models.Persona{
		ID:                uuid.NewString(),
		Name:              profile.Name,
		WritingStyle:      profile.WritingStyle,
		PersonalityTraits: profile.PersonalityTraits,
		AreasOfExpertise:  profile.AreasOfExpertise,
		AuthorBio:         profile.AuthorBio,
		Slug:              slugify.Make(strings.ToLower(profile.Name)),
		ProfilePictureURL: s.avatarURL(profile.Gender),
		CreativityLevel:   s.creativityLevel(),
		IsHuman:           false,
	}

	if err := s.directory.Register(persona); err != nil {
		return nil, err
	}
	return persona, nil
}

// avatarURL derives a placeholder portrait from the persona's stated gender
// and a random index. Pure string construction; the URL is never fetched.
func (s *PersonaService) avatarURL(gender string) string {
	genderType := "women"
	if gender == "male" {
		genderType = "men"
	}

	s.mutex.Lock()
	index := s.rand.Intn(50)
	s.mutex.Unlock()

	return fmt.Sprintf("https://randomuser.me/api/portraits/%s/%d.jpg", genderType, index)
}

// creativityLevel draws uniformly from {0.1, 0.2, ..., 0.8}.
func (s *PersonaService) creativityLevel() float64 {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return float64(s.rand.Intn(8)+1) / 10
}
