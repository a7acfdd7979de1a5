// Package config loads and persists pipeline configuration from the project
// dot-directory, with environment overrides for script use.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

const configDir = ".webwright"

// DefaultMaxCycles is the hard ceiling on combined validate-fix and
// build-fix cycles per generation session.
const DefaultMaxCycles = 5

type Config struct {
	// GenerationModel is the model used for app generation tasks, prefixed
	// with a provider ("ollama:" or "openai:").
	GenerationModel string `json:"generation_model"`
	OllamaServerURL string `json:"ollama_server_url"`
	Temperature     float64 `json:"temperature"`
	// BuildCommand is the external build invoked against the materialized
	// file set, run from the target directory.
	BuildCommand string `json:"build_command"`
	// MaxCycles bounds the total number of repair cycles in one session.
	MaxCycles int  `json:"max_cycles"`
	JsonLogs  bool `json:"json_logs"`
	SkipPrompt bool `json:"-"` // Internal use, not saved to config
}

func defaultConfig() *Config {
	return &Config{
		GenerationModel: "ollama:qwen2.5-coder:14b",
		OllamaServerURL: "http://localhost:11434",
		Temperature:     0.2,
		BuildCommand:    "npm run build",
		MaxCycles:       DefaultMaxCycles,
	}
}

// Load reads the config from .webwright/config.json in the working
// directory, creating it with defaults when absent. Environment variables
// override file values.
func Load() (*Config, error) {
	cfg := defaultConfig()

	path := filepath.Join(configDir, "config.json")
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("could not parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		if saveErr := cfg.Save(); saveErr != nil {
			// A read-only workspace is fine; run on defaults.
			cfg = defaultConfig()
		}
	default:
		return nil, fmt.Errorf("could not read config %s: %w", path, err)
	}

	applyEnvOverrides(cfg)

	if cfg.MaxCycles <= 0 {
		cfg.MaxCycles = DefaultMaxCycles
	}
	return cfg, nil
}

// Save writes the config back to .webwright/config.json.
func (c *Config) Save() error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("could not create %s: %w", configDir, err)
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	path := filepath.Join(configDir, "config.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("could not write config %s: %w", path, err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("WEBWRIGHT_MODEL"); v != "" {
		cfg.GenerationModel = v
	}
	if v := os.Getenv("WEBWRIGHT_OLLAMA_URL"); v != "" {
		cfg.OllamaServerURL = v
	}
	if v := os.Getenv("WEBWRIGHT_BUILD_COMMAND"); v != "" {
		cfg.BuildCommand = v
	}
	if v := os.Getenv("WEBWRIGHT_MAX_CYCLES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxCycles = n
		}
	}
}
