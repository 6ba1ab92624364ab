package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"datasense/internal/config"
	"datasense/internal/errors"
)

// OpenAIClient implements ports.ChatClient against the OpenAI
// chat-completions API. It is constructed once at process start with a
// typed configuration; a missing credential fails construction instead
// of being cached and re-raised per call.
type OpenAIClient struct {
	apiKey      string
	baseURL     string
	model       string
	temperature float64
	maxTokens   int
	httpClient  *http.Client
}

// NewOpenAIClient builds a client from validated configuration
func NewOpenAIClient(cfg config.AIConfig) (*OpenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, errors.ConfigInvalid("missing OpenAI API key")
	}

	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}

	return &OpenAIClient{
		apiKey:      cfg.APIKey,
		baseURL:     baseURL,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		httpClient:  &http.Client{Timeout: 60 * time.Second},
	}, nil
}

// ChatCompletion sends one system + one user message and returns the
// first choice's content. JSON output is requested so replies parse as
// structured interpretations.
func (c *OpenAIClient) ChatCompletion(ctx context.Context, systemMessage, prompt string) (string, error) {
	type msg struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}
	type responseFormat struct {
		Type string `json:"type"`
	}
	type reqBody struct {
		Model          string          `json:"model"`
		Messages       []msg           `json:"messages"`
		Temperature    float64         `json:"temperature"`
		MaxTokens      int             `json:"max_tokens,omitempty"`
		ResponseFormat *responseFormat `json:"response_format,omitempty"`
	}

	body := reqBody{
		Model: c.model,
		Messages: []msg{
			{Role: "system", Content: systemMessage},
			{Role: "user", Content: prompt},
		},
		Temperature:    c.temperature,
		MaxTokens:      c.maxTokens,
		ResponseFormat: &responseFormat{Type: "json_object"},
	}

	raw, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := strings.TrimRight(c.baseURL, "/") + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", errors.ExternalServiceError("openai", err)
	}
	defer resp.Body.Close()

	respRaw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", errors.ExternalServiceError("openai",
			fmt.Errorf("http %d: %s", resp.StatusCode, string(respRaw)))
	}

	type choice struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	}
	type respBody struct {
		Choices []choice `json:"choices"`
	}
	var decoded respBody
	if err := json.Unmarshal(respRaw, &decoded); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if len(decoded.Choices) == 0 {
		return "", fmt.Errorf("openai response missing choices")
	}
	return decoded.Choices[0].Message.Content, nil
}

// MockChatClient is a canned ports.ChatClient for tests
type MockChatClient struct {
	Response string
	Error    error

	// LastPrompt records the most recent user prompt for assertions
	LastPrompt string
}

func (m *MockChatClient) ChatCompletion(ctx context.Context, systemMessage, prompt string) (string, error) {
	m.LastPrompt = prompt
	if m.Error != nil {
		return "", m.Error
	}
	if m.Response != "" {
		return m.Response, nil
	}
	return `{"operation": "AVERAGE", "columnName": ""}`, nil
}
