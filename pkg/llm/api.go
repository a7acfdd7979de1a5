package llm

import (
	"strings"

	"webwright/pkg/config"
)

// NewClient builds a TaskClient for the configured generation model. The
// provider is selected by model prefix: "ollama:<model>" or
// "openai:<model>"; a bare model name defaults to Ollama.
func NewClient(cfg *config.Config) (TaskClient, error) {
	model := cfg.GenerationModel
	switch {
	case strings.HasPrefix(model, "openai:"):
		return NewOpenAIClient(model, cfg.Temperature)
	case strings.HasPrefix(model, "ollama:"):
		return NewOllamaClient(cfg.OllamaServerURL, model, cfg.Temperature)
	default:
		return NewOllamaClient(cfg.OllamaServerURL, model, cfg.Temperature)
	}
}

// ProviderName returns the provider half of a prefixed model name, for
// status output.
func ProviderName(model string) string {
	if i := strings.Index(model, ":"); i > 0 {
		if p := model[:i]; p == "openai" || p == "ollama" {
			return p
		}
	}
	return "ollama"
}
