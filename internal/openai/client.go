// Package openai calls the OpenAI API for text and image generation.
package openai

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

	"github.com/Predaotor/AI-content-Generator/internal/config"
)

const systemPrompt = "You are a helpful assistant."

// ErrUnsupportedTemplate is returned before any upstream call when the
// template kind is unknown.
var ErrUnsupportedTemplate = errors.New("unsupported template type")

// Client is a thin HTTP client for the OpenAI API. It implements the
// generation invoker consumed by the admission gate.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

// New builds a client from configuration.
func New(cfg config.OpenAIConfig) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	model := cfg.Model
	if model == "" {
		model = "gpt-3.5-turbo"
	}
	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		model:      model,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type imageRequest struct {
	Prompt string `json:"prompt"`
	N      int    `json:"n"`
	Size   string `json:"size"`
}

type imageResponse struct {
	Data []struct {
		URL string `json:"url"`
	} `json:"data"`
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Invoke generates content for the given template kind. Text templates
// go through chat completions; "image" goes through image generation and
// returns the image URL.
func (c *Client) Invoke(ctx context.Context, templateType, details string) (string, error) {
	switch templateType {
	case "blog_post", "email_draft":
		return c.generateText(ctx, templateType, details)
	case "image":
		return c.generateImage(ctx, details)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedTemplate, templateType)
	}
}

func (c *Client) generateText(ctx context.Context, templateType, details string) (string, error) {
	maxTokens := 250
	if templateType == "blog_post" {
		maxTokens = 500
	}

	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: details},
		},
		MaxTokens:   maxTokens,
		Temperature: 0.7,
	}

	var resp chatResponse
	if err := c.post(ctx, "/chat/completions", reqBody, &resp); err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: empty completion response")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func (c *Client) generateImage(ctx context.Context, prompt string) (string, error) {
	reqBody := imageRequest{
		Prompt: prompt,
		N:      1,
		Size:   "1024x1024",
	}

	var resp imageResponse
	if err := c.post(ctx, "/images/generations", reqBody, &resp); err != nil {
		return "", err
	}
	if len(resp.Data) == 0 {
		return "", errors.New("openai: empty image response")
	}
	return resp.Data[0].URL, nil
}

func (c *Client) post(ctx context.Context, path string, reqBody, out interface{}) error {
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("openai: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("openai: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("openai: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("openai: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr apiError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error.Message != "" {
			return fmt.Errorf("openai: status %d: %s", resp.StatusCode, apiErr.Error.Message)
		}
		return fmt.Errorf("openai: status %d", resp.StatusCode)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("openai: decode response: %w", err)
	}
	return nil
}
