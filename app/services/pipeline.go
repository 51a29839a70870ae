package services

import (
	"context"
	"errors"
	"fmt"

	"bylines/app/models"
	"bylines/app/repositories"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// saveAttempts bounds re-allocation when a save loses a slug race.
const saveAttempts = 5

// Pipeline composes topic selection, persona selection, content generation,
// slug allocation, persistence, and syndication into one publication run.
type Pipeline struct {
	topics    TopicSource
	directory *AuthorDirectory
	writer    *WriterService
	posts     repositories.PostRepository
	notifier  *SyndicationNotifier
}

// NewPipeline wires a pipeline from its collaborators.
func NewPipeline(
	topics TopicSource,
	directory *AuthorDirectory,
	writer *WriterService,
	posts repositories.PostRepository,
	notifier *SyndicationNotifier,
) *Pipeline {
	return &Pipeline{
		topics:    topics,
		directory: directory,
		writer:    writer,
		posts:     posts,
		notifier:  notifier,
	}
}

// RunOnce generates and publishes a single post. Every failure is caught
// here and reduced to a log line, so the pipeline can be scheduled
// repeatedly without ever taking its host process down.
func (p *Pipeline) RunOnce(ctx context.Context) {
	post, err := p.runOnce(ctx)
	if err != nil {
		log.Error().Err(err).Msg("blog generation run failed")
		return
	}
	log.Info().
		Str("slug", post.Slug).
		Str("title", post.Title).
		Str("persona", post.PersonaID).
		Msg("blog published")
}

// runOnce is all-or-nothing up to persistence: any failure before the save
// leaves no partial post behind.
func (p *Pipeline) runOnce(ctx context.Context) (*models.Post, error) {
	topic, err := p.topics.Random(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to pick topic: %w", err)
	}

	author, err := p.directory.RandomAI()
	if err != nil {
		return nil, err
	}

	draft, err := p.writer.Write(ctx, topic, author)
	if err != nil {
		return nil, err
	}

	post, err := p.publish(draft, author)
	if err != nil {
		return nil, err
	}

	// Best-effort announcement, strictly after the post exists.
	if err := p.notifier.Announce(ctx, post); err != nil {
		log.Warn().Err(err).Str("slug", post.Slug).Msg("syndication announcement failed")
	}

	return post, nil
}

// publish allocates a slug and saves the draft. When a concurrent run wins
// the race for the allocated slug, the store rejects the save and the slug
// is allocated again against the updated state.
func (p *Pipeline) publish(draft *models.Draft, author *models.Persona) (*models.Post, error) {
	allocator := NewSlugAllocator(p.posts)

	for attempt := 0; attempt < saveAttempts; attempt++ {
		slug, err := allocator.Allocate(draft.Title)
		if err != nil {
			return nil, err
		}

		post := &models.Post{
			ID:         uuid.NewString(),
			Title:      draft.Title,
			Content:    draft.Content,
			Slug:       slug,
			Categories: draft.Categories,
			Summary:    draft.Summary,
			PersonaID:  author.ID,
			Views:      0,
		}
		post.BeforeCreate()

		err = p.posts.Create(post)
		if err == nil {
			return post, nil
		}
		if !errors.Is(err, repositories.ErrDuplicateSlug) {
			return nil, fmt.Errorf("failed to persist post: %w", err)
		}
		// Lost the slug to a concurrent writer; try the next free one.
	}

	return nil, ErrSlugExhausted
}
