package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bylines/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func publishedPost() *models.Post {
	return &models.Post{
		ID:         "post-1",
		Title:      "Quantum Leap",
		Content:    "Body.",
		CreatedAt:  time.Now(),
		Slug:       "quantum-leap",
		Categories: []string{"Tech"},
		Summary:    "Short summary.",
		PersonaID:  "p1",
	}
}

func TestAnnounce(t *testing.T) {
	var received announcement
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	notifier := NewSyndicationNotifier(server.URL)
	require.NoError(t, notifier.Announce(context.Background(), publishedPost()))

	assert.Equal(t, "Quantum Leap", received.Title)
	assert.Equal(t, []string{"Tech"}, received.Categories)
	assert.Equal(t, "Short summary.", received.Summary)
	assert.Equal(t, "quantum-leap", received.Slug)
}

func TestAnnounceNon2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer server.Close()

	notifier := NewSyndicationNotifier(server.URL)
	err := notifier.Announce(context.Background(), publishedPost())
	assert.ErrorContains(t, err, "status 502")
}

func TestAnnounceUnreachable(t *testing.T) {
	notifier := NewSyndicationNotifier("http://127.0.0.1:1/webhook")
	assert.Error(t, notifier.Announce(context.Background(), publishedPost()))
}

func TestAnnounceDisabled(t *testing.T) {
	notifier := NewSyndicationNotifier("")
	assert.NoError(t, notifier.Announce(context.Background(), publishedPost()))
}
