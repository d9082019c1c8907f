package suggest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/fitstudio/studio-api/pkg/config"
)

// Client calls the external generative-text service that drafts exercise
// descriptions. One request, one response, no retries: a failure is
// surfaced to the caller and nothing else happens.
type Client struct {
	cfg  config.SuggestionConfig
	http *http.Client
}

// New builds a client from configuration. An empty URL produces a client
// whose calls always fail with ErrDisabled.
func New(cfg config.SuggestionConfig) *Client {
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}
}

// ErrDisabled reports that no suggestion service is configured.
var ErrDisabled = fmt.Errorf("suggestion service not configured")

type request struct {
	ExerciseName string `json:"exerciseName"`
}

type response struct {
	Description string `json:"description"`
}

// DescribeExercise asks the service for a draft description of the named
// exercise.
func (c *Client) DescribeExercise(ctx context.Context, exerciseName string) (string, error) {
	if c.cfg.URL == "" {
		return "", ErrDisabled
	}
	body, err := json.Marshal(request{ExerciseName: exerciseName})
	if err != nil {
		return "", fmt.Errorf("encode suggestion request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build suggestion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("call suggestion service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("suggestion service returned %d", resp.StatusCode)
	}
	var out response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode suggestion response: %w", err)
	}
	description := strings.TrimSpace(out.Description)
	if description == "" {
		return "", fmt.Errorf("suggestion service returned an empty description")
	}
	return description, nil
}
