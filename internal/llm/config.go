package llm

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	ProviderGemini     = "gemini"
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config selects and configures the lesson model.
type Config struct {
	Provider string

	Gemini     GeminiConfig
	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds one Generate call including retries. Zero leaves the
	// transport default in place.
	Timeout time.Duration
}

type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string // empty = Google default endpoint
}

type AnthropicConfig struct {
	APIKey string
	Model  string
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// RetryConfig controls WithRetry. MaxAttempts of 1 disables retries.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig uses Gemini with a single attempt and no deadline.
func DefaultConfig() Config {
	return Config{
		Provider:   ProviderGemini,
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.5-flash"},
		Retry: RetryConfig{
			MaxAttempts: 1,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2,
		},
	}
}

// ConfigFromEnv overlays MINUTECLASS_* variables on DefaultConfig.
// Unparseable numeric values are ignored.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	setString(&cfg.Provider, "MINUTECLASS_LLM_PROVIDER")

	setString(&cfg.Gemini.APIKey, "MINUTECLASS_GEMINI_API_KEY")
	setString(&cfg.Gemini.Model, "MINUTECLASS_GEMINI_MODEL")
	setString(&cfg.Gemini.BaseURL, "MINUTECLASS_GEMINI_BASE_URL")

	setString(&cfg.Anthropic.APIKey, "MINUTECLASS_ANTHROPIC_API_KEY")
	setString(&cfg.Anthropic.Model, "MINUTECLASS_ANTHROPIC_MODEL")

	setString(&cfg.OpenAI.APIKey, "MINUTECLASS_OPENAI_API_KEY")
	setString(&cfg.OpenAI.Model, "MINUTECLASS_OPENAI_MODEL")
	setString(&cfg.OpenAI.BaseURL, "MINUTECLASS_OPENAI_BASE_URL")

	setString(&cfg.OpenRouter.APIKey, "MINUTECLASS_OPENROUTER_API_KEY")
	setString(&cfg.OpenRouter.Model, "MINUTECLASS_OPENROUTER_MODEL")
	setString(&cfg.OpenRouter.BaseURL, "MINUTECLASS_OPENROUTER_BASE_URL")

	if v := os.Getenv("MINUTECLASS_LLM_MAX_ATTEMPTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Retry.MaxAttempts = n
		}
	}
	if v := os.Getenv("MINUTECLASS_LLM_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d >= 0 {
			cfg.Timeout = d
		}
	}

	return cfg
}

// DiscoverConfig looks for the vendor API key variables, in the order
// Gemini, OpenAI, Anthropic, OpenRouter, and selects the first provider
// found. It reports false when none is set.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()

	switch {
	case os.Getenv("GEMINI_API_KEY") != "":
		cfg.Provider = ProviderGemini
		cfg.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")
	case os.Getenv("OPENAI_API_KEY") != "":
		cfg.Provider = ProviderOpenAI
		cfg.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	case os.Getenv("ANTHROPIC_API_KEY") != "":
		cfg.Provider = ProviderAnthropic
		cfg.Anthropic.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	case os.Getenv("OPENROUTER_API_KEY") != "":
		cfg.Provider = ProviderOpenRouter
		cfg.OpenRouter.APIKey = os.Getenv("OPENROUTER_API_KEY")
	default:
		return Config{}, false
	}
	return cfg, true
}

// ResolveConfig returns ConfigFromEnv when it validates, otherwise the
// result of DiscoverConfig, otherwise the ConfigFromEnv validation error.
func ResolveConfig() (Config, error) {
	cfg := ConfigFromEnv()
	err := cfg.Validate()
	if err == nil {
		return cfg, nil
	}
	if os.Getenv("MINUTECLASS_LLM_PROVIDER") == "" {
		if found, ok := DiscoverConfig(); ok {
			found.Retry = cfg.Retry
			found.Timeout = cfg.Timeout
			return found, nil
		}
	}
	return cfg, err
}

// Validate checks that the selected provider is known and has a key.
func (c Config) Validate() error {
	var key, env string
	switch c.Provider {
	case ProviderGemini:
		key, env = c.Gemini.APIKey, "MINUTECLASS_GEMINI_API_KEY"
	case ProviderAnthropic:
		key, env = c.Anthropic.APIKey, "MINUTECLASS_ANTHROPIC_API_KEY"
	case ProviderOpenAI:
		key, env = c.OpenAI.APIKey, "MINUTECLASS_OPENAI_API_KEY"
	case ProviderOpenRouter:
		key, env = c.OpenRouter.APIKey, "MINUTECLASS_OPENROUTER_API_KEY"
	case ProviderMock:
		return nil
	default:
		return fmt.Errorf("unknown LLM provider %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("%s provider: set %s: %w", c.Provider, env, ErrMissingAPIKey)
	}
	return nil
}

func setString(dst *string, env string) {
	if v := os.Getenv(env); v != "" {
		*dst = v
	}
}
