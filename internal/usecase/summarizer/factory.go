package summarizer

import (
	"context"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-summarizer/internal/usecase/analysis"
	"github.com/johnquangdev/meeting-summarizer/pkg/ai"
	"github.com/johnquangdev/meeting-summarizer/pkg/config"
)

// Factory holds the configured backends and resolves which one handles a
// job. Resolution order is the configured provider, then Ollama if it is
// healthy, then the rule-based engine which always works.
type Factory struct {
	provider  string
	backends  map[string]Backend
	ollama    Backend
	ruleBased Backend
	logger    *zap.Logger
}

// NewFactory constructs all backends the configuration allows
func NewFactory(cfg config.SummarizationConfig, engine *analysis.Engine, logger *zap.Logger) *Factory {
	f := &Factory{
		provider: cfg.Provider,
		backends: make(map[string]Backend),
		logger:   logger,
	}

	f.ruleBased = NewRuleBasedBackend(engine, logger)
	f.backends[BackendRuleBased] = f.ruleBased

	ollamaClient := ai.NewOllamaClient(cfg.OllamaBaseURL, cfg.OllamaModel, cfg.RequestTimeout)
	f.ollama = NewOllamaBackend(ollamaClient, cfg.HealthTimeout, logger)
	f.backends[BackendOllama] = f.ollama

	if cfg.OpenAIAPIKey != "" {
		client, err := ai.NewProviderClient(ai.ProviderOpenAI, cfg.OpenAIAPIKey, cfg.OpenAIModel, "", cfg.RequestTimeout)
		if err != nil {
			logger.Warn("⚠️ OpenAI backend disabled", zap.Error(err))
		} else {
			f.backends[BackendOpenAI] = NewCloudBackend(client, logger)
		}
	}
	if cfg.AnthropicAPIKey != "" {
		client, err := ai.NewProviderClient(ai.ProviderAnthropic, cfg.AnthropicAPIKey, cfg.AnthropicModel, "", cfg.RequestTimeout)
		if err != nil {
			logger.Warn("⚠️ Anthropic backend disabled", zap.Error(err))
		} else {
			f.backends[BackendAnthropic] = NewCloudBackend(client, logger)
		}
	}

	return f
}

// Resolve picks the backend for the next job
func (f *Factory) Resolve(ctx context.Context) Backend {
	if f.provider == "auto" {
		return f.resolveAuto(ctx)
	}

	if b, ok := f.backends[f.provider]; ok && b.Available(ctx) {
		return b
	}

	if f.provider != BackendOllama && f.ollama.Available(ctx) {
		f.logger.Warn("⚠️ Configured provider unavailable, falling back to Ollama",
			zap.String("provider", f.provider))
		return f.ollama
	}

	if f.provider != BackendRuleBased {
		f.logger.Warn("⚠️ No model backend available, falling back to rule-based analysis",
			zap.String("provider", f.provider))
	}
	return f.ruleBased
}

// resolveAuto prefers hosted providers, then the local model, then rules
func (f *Factory) resolveAuto(ctx context.Context) Backend {
	for _, name := range []string{BackendOpenAI, BackendAnthropic} {
		if b, ok := f.backends[name]; ok && b.Available(ctx) {
			return b
		}
	}
	if f.ollama.Available(ctx) {
		return f.ollama
	}
	return f.ruleBased
}

// RuleBased returns the terminal fallback backend
func (f *Factory) RuleBased() Backend { return f.ruleBased }

// Backends returns all constructed backends keyed by name
func (f *Factory) Backends() map[string]Backend {
	out := make(map[string]Backend, len(f.backends))
	for name, b := range f.backends {
		out[name] = b
	}
	return out
}

// Provider returns the configured provider name
func (f *Factory) Provider() string { return f.provider }
