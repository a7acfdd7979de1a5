package llm

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	ollama "github.com/ollama/ollama/api"

	"webwright/pkg/prompts"
)

// OllamaClient runs generation tasks against a local Ollama server.
type OllamaClient struct {
	client      *ollama.Client
	model       string
	temperature float64
}

// NewOllamaClient creates a client for the given server URL and model name
// (without the "ollama:" prefix).
func NewOllamaClient(serverURL, model string, temperature float64) (*OllamaClient, error) {
	base, err := url.Parse(serverURL)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama server URL %s: %w", serverURL, err)
	}
	return &OllamaClient{
		client:      ollama.NewClient(base, http.DefaultClient),
		model:       strings.TrimPrefix(model, "ollama:"),
		temperature: temperature,
	}, nil
}

// Complete sends the messages and accumulates the streamed response into a
// single string.
func (c *OllamaClient) Complete(ctx context.Context, messages []prompts.Message) (string, error) {
	ollamaMessages := make([]ollama.Message, len(messages))
	for i, msg := range messages {
		ollamaMessages[i] = ollama.Message{
			Role:    msg.Role,
			Content: msg.Content,
		}
	}

	req := &ollama.ChatRequest{
		Model:    c.model,
		Messages: ollamaMessages,
		Options: map[string]interface{}{
			"temperature": c.temperature,
			"top_p":       1.0,
		},
	}

	var sb strings.Builder
	respFunc := func(res ollama.ChatResponse) error {
		sb.WriteString(res.Message.Content)
		return nil
	}

	if err := c.client.Chat(ctx, req, respFunc); err != nil {
		return "", fmt.Errorf("ollama chat failed: %w", err)
	}
	return sb.String(), nil
}
