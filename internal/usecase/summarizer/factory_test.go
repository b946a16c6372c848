package summarizer

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-summarizer/internal/usecase/analysis"
	"github.com/johnquangdev/meeting-summarizer/pkg/config"
)

func newTestFactory(t *testing.T, cfg config.SummarizationConfig) *Factory {
	t.Helper()
	if cfg.OllamaBaseURL == "" {
		cfg.OllamaBaseURL = "http://127.0.0.1:0"
	}
	if cfg.HealthTimeout == 0 {
		cfg.HealthTimeout = 100 * time.Millisecond
	}
	logger := zap.NewNop()
	return NewFactory(cfg, analysis.NewEngine(logger), logger)
}

func TestFactoryResolvesRuleBased(t *testing.T) {
	f := newTestFactory(t, config.SummarizationConfig{Provider: BackendRuleBased})
	b := f.Resolve(context.Background())
	if b.Name() != BackendRuleBased {
		t.Fatalf("expected rule-based backend, got %q", b.Name())
	}
}

func TestFactoryFallsBackWhenOllamaDown(t *testing.T) {
	// The Ollama endpoint points at a closed port, so resolution must land
	// on the rule-based engine.
	f := newTestFactory(t, config.SummarizationConfig{Provider: BackendOllama})
	b := f.Resolve(context.Background())
	if b.Name() != BackendRuleBased {
		t.Fatalf("expected rule-based fallback, got %q", b.Name())
	}
}

func TestFactoryConstructsCloudBackends(t *testing.T) {
	f := newTestFactory(t, config.SummarizationConfig{
		Provider:       BackendOpenAI,
		OpenAIAPIKey:   "test-key",
		OpenAIModel:    "gpt-4o-mini",
		RequestTimeout: time.Second,
	})

	backends := f.Backends()
	if _, ok := backends[BackendOpenAI]; !ok {
		t.Fatal("expected openai backend to be constructed")
	}
	if _, ok := backends[BackendAnthropic]; ok {
		t.Fatal("anthropic backend should not exist without a key")
	}

	b := f.Resolve(context.Background())
	if b.Name() != BackendOpenAI {
		t.Fatalf("expected openai backend, got %q", b.Name())
	}
}

func TestFactoryAutoPrefersCloud(t *testing.T) {
	f := newTestFactory(t, config.SummarizationConfig{
		Provider:        "auto",
		AnthropicAPIKey: "test-key",
		AnthropicModel:  "claude-3-5-haiku-20241022",
		RequestTimeout:  time.Second,
	})
	b := f.Resolve(context.Background())
	if b.Name() != BackendAnthropic {
		t.Fatalf("expected anthropic backend, got %q", b.Name())
	}
}

func TestFactoryAutoFallsBackToRules(t *testing.T) {
	f := newTestFactory(t, config.SummarizationConfig{Provider: "auto"})
	b := f.Resolve(context.Background())
	if b.Name() != BackendRuleBased {
		t.Fatalf("expected rule-based backend, got %q", b.Name())
	}
}
