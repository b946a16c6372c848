package summarizer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
	"github.com/johnquangdev/meeting-summarizer/pkg/ai"
)

// OllamaBackend summarizes transcripts with a locally hosted model
type OllamaBackend struct {
	client        *ai.OllamaClient
	healthTimeout time.Duration
	logger        *zap.Logger
}

// NewOllamaBackend creates the Ollama summarization backend
func NewOllamaBackend(client *ai.OllamaClient, healthTimeout time.Duration, logger *zap.Logger) *OllamaBackend {
	if healthTimeout <= 0 {
		healthTimeout = 5 * time.Second
	}
	return &OllamaBackend{client: client, healthTimeout: healthTimeout, logger: logger}
}

func (b *OllamaBackend) Name() string { return BackendOllama }

// Available probes the Ollama server with a short timeout so an offline
// server does not stall job processing.
func (b *OllamaBackend) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, b.healthTimeout)
	defer cancel()
	if err := b.client.Health(ctx); err != nil {
		b.logger.Warn("⚠️ Ollama health check failed", zap.Error(err))
		return false
	}
	return true
}

func (b *OllamaBackend) Summarize(ctx context.Context, meetingID, text string) (*entities.MeetingSummary, error) {
	if strings.TrimSpace(text) == "" {
		return nil, entities.ErrTranscriptEmpty
	}

	start := time.Now()
	b.logger.Info("🤖 Generating summary with Ollama",
		zap.String("meeting_id", meetingID),
		zap.String("model", b.client.Model()),
		zap.Int("text_length", len(text)))

	prompt := systemPrompt + "\n\n" + buildPrompt(text)
	raw, err := b.client.Generate(ctx, prompt, ollamaFormat)
	if err != nil {
		return nil, fmt.Errorf("ollama generation failed: %w", err)
	}

	parsed, err := parseLLMResponse(raw)
	if err != nil {
		b.logger.Error("❌ Failed to parse Ollama response",
			zap.String("meeting_id", meetingID),
			zap.Error(err))
		return nil, err
	}

	summary := buildSummaryFromAnalysis(meetingID, parsed)
	summary.ModelUsed = fmt.Sprintf("ollama/%s", b.client.Model())
	summary.ConfidenceScore = ollamaConfidence(summary)
	summary.ProcessingTime = time.Since(start).Seconds()

	b.logger.Info("✅ Ollama summary generated",
		zap.String("meeting_id", meetingID),
		zap.Float64("confidence_score", summary.ConfidenceScore),
		zap.Float64("processing_time", summary.ProcessingTime))

	return summary, nil
}
