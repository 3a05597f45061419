// Package assistant proxies prompt text to a hosted generative-AI API.
// The call is opaque: prompt in, generated text out. Upstream failures
// surface as ErrUnavailable; there is no local reasoning, memory or retry.
package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// MaxPromptLength is the upstream limit on prompt text
const MaxPromptLength = 2000

// Client errors
var (
	ErrUnavailable   = errors.New("assistant service unavailable")
	ErrPromptTooLong = errors.New("prompt exceeds maximum length")
	ErrEmptyReply    = errors.New("assistant returned an empty reply")
)

// Config holds the upstream API settings
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Client calls an OpenAI-compatible chat completions endpoint
type Client struct {
	config Config
	http   *http.Client
	logger zerolog.Logger
}

// NewClient creates a new assistant client
func NewClient(config Config, logger zerolog.Logger) *Client {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		config: config,
		http:   &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// chatRequest is the upstream request body
type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse is the upstream response body
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

const systemPrompt = "You are the StackIt assistant. Help users with programming questions. " +
	"Answer concisely and include code examples where they help."

// Generate submits prompt text and returns the generated reply
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if len(prompt) > MaxPromptLength {
		return "", ErrPromptTooLong
	}

	body, err := json.Marshal(chatRequest{
		Model: c.config.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode assistant request: %w", err)
	}

	url := strings.TrimRight(c.config.BaseURL, "/") + "/v1/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build assistant request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Msg("Assistant request failed")
		return "", ErrUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		c.logger.Error().Int("status", resp.StatusCode).Str("body", string(payload)).Msg("Assistant returned non-OK status")
		return "", ErrUnavailable
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		c.logger.Error().Err(err).Msg("Failed to decode assistant response")
		return "", ErrUnavailable
	}

	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", ErrEmptyReply
	}

	return parsed.Choices[0].Message.Content, nil
}
