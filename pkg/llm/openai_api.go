package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"webwright/pkg/prompts"
)

const defaultOpenAIEndpoint = "https://api.openai.com/v1/chat/completions"

// OpenAIClient runs generation tasks against any OpenAI-compatible chat
// completions endpoint.
type OpenAIClient struct {
	endpoint    string
	apiKey      string
	model       string
	temperature float64
	httpClient  *http.Client
}

// NewOpenAIClient creates a client for the given model (without the
// "openai:" prefix). The API key comes from OPENAI_API_KEY; the endpoint
// can be overridden with OPENAI_BASE_URL for compatible providers.
func NewOpenAIClient(model string, temperature float64) (*OpenAIClient, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is not set")
	}
	endpoint := defaultOpenAIEndpoint
	if base := os.Getenv("OPENAI_BASE_URL"); base != "" {
		endpoint = strings.TrimSuffix(base, "/") + "/chat/completions"
	}
	return &OpenAIClient{
		endpoint:    endpoint,
		apiKey:      apiKey,
		model:       strings.TrimPrefix(model, "openai:"),
		temperature: temperature,
		httpClient:  &http.Client{Timeout: 5 * time.Minute},
	}, nil
}

// Complete sends the messages and returns the assistant's reply.
func (c *OpenAIClient) Complete(ctx context.Context, messages []prompts.Message) (string, error) {
	body, err := json.Marshal(openAIRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: c.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("could not encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("could not build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("could not read response: %w", err)
	}

	var parsed openAIResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("could not decode response (status %d): %w", resp.StatusCode, err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("provider error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("provider returned no choices (status %d)", resp.StatusCode)
	}
	return parsed.Choices[0].Message.Content, nil
}
