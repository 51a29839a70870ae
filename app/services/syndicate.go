package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"bylines/app/models"
)

const syndicationTimeout = 10 * time.Second

// SyndicationNotifier announces newly published posts to an external
// automation webhook. Delivery is fire-and-forget: the pipeline logs a
// failure and moves on, and nothing is ever retried.
type SyndicationNotifier struct {
	webhookURL string
	httpClient *http.Client
}

// NewSyndicationNotifier creates a notifier for the given webhook URL. An
// empty URL disables announcements.
func NewSyndicationNotifier(webhookURL string) *SyndicationNotifier {
	return &SyndicationNotifier{
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: syndicationTimeout},
	}
}

type announcement struct {
	Title      string   `json:"title"`
	Categories []string `json:"categories"`
	Summary    string   `json:"summary"`
	Slug       string   `json:"slug"`
}

// Announce posts the published post's headline data to the webhook. Callers
// must only invoke this after the post is persisted.
func (n *SyndicationNotifier) Announce(ctx context.Context, post *models.Post) error {
	if n.webhookURL == "" {
		return nil
	}

	payload, err := json.Marshal(announcement{
		Title:      post.Title,
		Categories: post.Categories,
		Summary:    post.Summary,
		Slug:       post.Slug,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewBuffer(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("syndication request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("syndication endpoint returned status %d", resp.StatusCode)
	}
	return nil
}
