// Package llm adapts chat-completion providers behind the task interface the
// orchestrator consumes. Task output is raw text; parsing and validation
// happen downstream.
package llm

import (
	"context"

	"webwright/pkg/prompts"
)

// TaskClient executes one generation task: prompt messages in, raw response
// text out. Implementations must respect the context for cancellation.
type TaskClient interface {
	Complete(ctx context.Context, messages []prompts.Message) (string, error)
}

// openAIRequest is the request body for OpenAI-compatible chat endpoints.
type openAIRequest struct {
	Model       string            `json:"model"`
	Messages    []prompts.Message `json:"messages"`
	Temperature float64           `json:"temperature"`
	Stream      bool              `json:"stream"`
}

// openAIResponse is the non-streaming response from OpenAI-compatible chat
// endpoints.
type openAIResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}
