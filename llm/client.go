// Package llm wraps the OpenAI chat completions API behind a small interface
// so services can be tested against canned responses.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrTimeout reports that a completion request exceeded its deadline.
var ErrTimeout = errors.New("llm request timed out")

// Client produces one completion for a system + user message pair.
type Client interface {
	Chat(ctx context.Context, model, system, user string) (string, error)
}

// ChatMessage represents a single message in the chat conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequestBody represents the request payload for the chat completions API.
type ChatRequestBody struct {
	Model          string            `json:"model"`
	Messages       []ChatMessage     `json:"messages"`
	ResponseFormat map[string]string `json:"response_format,omitempty"`
}

// ChatChoice represents one of the returned completions.
type ChatChoice struct {
	Message ChatMessage `json:"message"`
}

// ChatResponseBody represents the structure of the API response.
type ChatResponseBody struct {
	Choices []ChatChoice `json:"choices"`
}

// OpenAIClient talks to the OpenAI chat completions endpoint.
type OpenAIClient struct {
	apiURL     string
	apiKey     string
	httpClient *http.Client
}

const defaultAPIURL = "https://api.openai.com/v1/chat/completions"

// NewOpenAIClient creates a client with the given API key and per-request timeout.
func NewOpenAIClient(apiKey string, timeout time.Duration) *OpenAIClient {
	return &OpenAIClient{
		apiURL:     defaultAPIURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// NewOpenAIClientWithURL creates a client against a custom endpoint. Used by
// tests to point at a local server.
func NewOpenAIClientWithURL(apiURL, apiKey string, timeout time.Duration) *OpenAIClient {
	return &OpenAIClient{
		apiURL:     apiURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Chat sends the conversation to the API and returns the first completion's content.
func (c *OpenAIClient) Chat(ctx context.Context, model, system, user string) (string, error) {
	if c.apiKey == "" {
		return "", errors.New("OPENAI_API_KEY not set")
	}

	reqBody := ChatRequestBody{
		Model: model,
		Messages: []ChatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	}

	reqBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewBuffer(reqBytes))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			return "", ErrTimeout
		}
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat completion failed with status %d: %s", resp.StatusCode, string(body))
	}

	var chatResp ChatResponseBody
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("failed to decode completion response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", errors.New("completion response contained no choices")
	}

	return chatResp.Choices[0].Message.Content, nil
}

func isTimeout(err error) bool {
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}
