package llm

import (
	"fmt"
	"os"
	"time"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use.
	// Values: "gemini", "anthropic", "openai", "openrouter", "mock"
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig

	// Timeout bounds a single LLM call. Engines do not enforce it; callers
	// derive a context from it around the call boundary. Default: 60s.
	Timeout time.Duration
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey    string
	Model     string // Default: "claude-sonnet"
	FastModel string // Default: "claude-haiku"
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey    string
	Model     string // Default: "gpt-4o"
	FastModel string // Default: "gpt-4o-mini"
	BaseURL   string // Optional. Override for compatible APIs.
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey    string
	Model     string // Default: "gemini-pro"
	FastModel string // Default: "gemini-flash"
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey    string
	Model     string // Default: "google/gemini-2.5-pro"
	FastModel string // Default: "google/gemini-2.5-flash"
	BaseURL   string // Default: "https://openrouter.ai/api/v1"
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider: "gemini",
		Anthropic: AnthropicConfig{
			Model:     "claude-sonnet",
			FastModel: "claude-haiku",
		},
		OpenAI: OpenAIConfig{
			Model:     "gpt-4o",
			FastModel: "gpt-4o-mini",
		},
		Gemini: GeminiConfig{
			Model:     "gemini-pro",
			FastModel: "gemini-flash",
		},
		OpenRouter: OpenRouterConfig{
			Model:     "google/gemini-2.5-pro",
			FastModel: "google/gemini-2.5-flash",
		},
		Timeout: 60 * time.Second,
	}
}

// Fast returns a copy of the config with every vendor switched to its fast
// model tier. Short free-text generations (feedback) run on this tier.
func (c Config) Fast() Config {
	if c.Anthropic.FastModel != "" {
		c.Anthropic.Model = c.Anthropic.FastModel
	}
	if c.OpenAI.FastModel != "" {
		c.OpenAI.Model = c.OpenAI.FastModel
	}
	if c.Gemini.FastModel != "" {
		c.Gemini.Model = c.Gemini.FastModel
	}
	if c.OpenRouter.FastModel != "" {
		c.OpenRouter.Model = c.OpenRouter.FastModel
	}
	return c
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if p := os.Getenv("INTERNTRACK_LLM_PROVIDER"); p != "" {
		cfg.Provider = p
	}
	if t := os.Getenv("INTERNTRACK_LLM_TIMEOUT"); t != "" {
		if d, err := time.ParseDuration(t); err == nil {
			cfg.Timeout = d
		}
	}

	if k := os.Getenv("INTERNTRACK_ANTHROPIC_API_KEY"); k != "" {
		cfg.Anthropic.APIKey = k
	}
	if m := os.Getenv("INTERNTRACK_ANTHROPIC_MODEL"); m != "" {
		cfg.Anthropic.Model = m
	}
	if m := os.Getenv("INTERNTRACK_ANTHROPIC_FAST_MODEL"); m != "" {
		cfg.Anthropic.FastModel = m
	}

	if k := os.Getenv("INTERNTRACK_OPENAI_API_KEY"); k != "" {
		cfg.OpenAI.APIKey = k
	}
	if m := os.Getenv("INTERNTRACK_OPENAI_MODEL"); m != "" {
		cfg.OpenAI.Model = m
	}
	if m := os.Getenv("INTERNTRACK_OPENAI_FAST_MODEL"); m != "" {
		cfg.OpenAI.FastModel = m
	}
	if u := os.Getenv("INTERNTRACK_OPENAI_BASE_URL"); u != "" {
		cfg.OpenAI.BaseURL = u
	}

	if k := os.Getenv("INTERNTRACK_GEMINI_API_KEY"); k != "" {
		cfg.Gemini.APIKey = k
	}
	if m := os.Getenv("INTERNTRACK_GEMINI_MODEL"); m != "" {
		cfg.Gemini.Model = m
	}
	if m := os.Getenv("INTERNTRACK_GEMINI_FAST_MODEL"); m != "" {
		cfg.Gemini.FastModel = m
	}

	if k := os.Getenv("INTERNTRACK_OPENROUTER_API_KEY"); k != "" {
		cfg.OpenRouter.APIKey = k
	}
	if m := os.Getenv("INTERNTRACK_OPENROUTER_MODEL"); m != "" {
		cfg.OpenRouter.Model = m
	}
	if m := os.Getenv("INTERNTRACK_OPENROUTER_FAST_MODEL"); m != "" {
		cfg.OpenRouter.FastModel = m
	}

	return cfg
}

// DiscoverConfig probes standard API key env vars in priority order
// (Gemini → OpenAI → Anthropic → OpenRouter) and returns a Config for the
// first provider whose key is found. Returns (Config{}, false) if none found.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()

	if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		cfg.Provider = "gemini"
		cfg.Gemini.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.Provider = "openai"
		cfg.OpenAI.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		cfg.Provider = "anthropic"
		cfg.Anthropic.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENROUTER_API_KEY"); k != "" {
		cfg.Provider = "openrouter"
		cfg.OpenRouter.APIKey = k
		return cfg, true
	}

	return Config{}, false
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("INTERNTRACK_ANTHROPIC_API_KEY is required for the anthropic provider")
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("INTERNTRACK_OPENAI_API_KEY is required for the openai provider")
		}
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("INTERNTRACK_GEMINI_API_KEY is required for the gemini provider")
		}
	case "openrouter":
		if c.OpenRouter.APIKey == "" {
			return fmt.Errorf("INTERNTRACK_OPENROUTER_API_KEY is required for the openrouter provider")
		}
	case "mock":
		// No API key needed.
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}
