package llm

import (
	"context"
	"fmt"

	"github.com/minuteclass/minuteclass/internal/logging"
	"github.com/minuteclass/minuteclass/internal/store"
)

// NewProvider builds the configured provider and wraps it as
// caller → timeout → retry → logging → base, so each attempt is recorded.
func NewProvider(ctx context.Context, cfg Config, events store.EventRepo, log *logging.Logger) (Provider, error) {
	var (
		base Provider
		err  error
	)

	switch cfg.Provider {
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderMock:
		base = NewMockProvider()
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	p := WithLogging(base, events, log)
	p = WithRetry(p, cfg.Retry)
	p = WithTimeout(p, cfg.Timeout)
	return p, nil
}
