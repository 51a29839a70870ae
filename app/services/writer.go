package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"bylines/app/models"
	"bylines/llm"
)

const writerUserPromptTemplate = `Write a blog about a topic in technology related to %s.

The response should be a json object with title and content, categories and summary properties.
The title should be a catchy title.
The content should be a well-structured blog post with headings and subheadings.
The blog should be informative and engaging.
The blog should be around 500 words.
The response should contain an array of categories that the blog belongs to.
The summary should be in not more than 50 words.`

// WriterService drives the model to produce a structured post draft in a
// persona's voice. It never persists anything; that is the pipeline's job.
type WriterService struct {
	client llm.Client
	model  string
}

// NewWriterService creates a writer using the given completion model.
func NewWriterService(client llm.Client, model string) *WriterService {
	return &WriterService{
		client: client,
		model:  model,
	}
}

// Write generates a draft for the topic in the persona's voice. The length
// targets in the prompt are advisory to the model, not enforced.
func (s *WriterService) Write(ctx context.Context, topic models.Topic, persona *models.Persona) (*models.Draft, error) {
	system := fmt.Sprintf(
		"You are a tech blog writer named %s. Your writing style is %s. Your personality traits are %s. And you are an expert in areas like %s.",
		persona.Name,
		persona.WritingStyle,
		strings.Join(persona.PersonalityTraits, ", "),
		strings.Join(persona.AreasOfExpertise, ", "),
	)

	content, err := s.client.Chat(ctx, s.model, system, fmt.Sprintf(writerUserPromptTemplate, topic.Title))
	if err != nil {
		return nil, fmt.Errorf("content generation failed: %w", err)
	}

	var draft models.Draft
	if err := json.Unmarshal([]byte(content), &draft); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedGeneration, err)
	}
	if err := draft.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedGeneration, err)
	}

	return &draft, nil
}
