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

// CloudBackend summarizes transcripts with a hosted LLM provider
type CloudBackend struct {
	client *ai.ProviderClient
	logger *zap.Logger
}

// NewCloudBackend creates a backend around an OpenAI or Anthropic client
func NewCloudBackend(client *ai.ProviderClient, logger *zap.Logger) *CloudBackend {
	return &CloudBackend{client: client, logger: logger}
}

func (b *CloudBackend) Name() string { return b.client.Provider() }

// Available reports whether the client is configured. Hosted providers have
// no cheap health probe, so a configured key counts as available and request
// failures surface at summarize time.
func (b *CloudBackend) Available(ctx context.Context) bool { return b.client != nil }

func (b *CloudBackend) Summarize(ctx context.Context, meetingID, text string) (*entities.MeetingSummary, error) {
	if strings.TrimSpace(text) == "" {
		return nil, entities.ErrTranscriptEmpty
	}

	start := time.Now()
	b.logger.Info("🤖 Generating summary with hosted provider",
		zap.String("meeting_id", meetingID),
		zap.String("provider", b.client.Provider()),
		zap.String("model", b.client.Model()),
		zap.Int("text_length", len(text)))

	raw, err := b.client.Complete(ctx, systemPrompt, buildPrompt(text))
	if err != nil {
		return nil, fmt.Errorf("%s completion failed: %w", b.client.Provider(), err)
	}

	parsed, err := parseLLMResponse(raw)
	if err != nil {
		b.logger.Error("❌ Failed to parse provider response",
			zap.String("meeting_id", meetingID),
			zap.String("provider", b.client.Provider()),
			zap.Error(err))
		return nil, err
	}

	summary := buildSummaryFromAnalysis(meetingID, parsed)
	summary.ModelUsed = fmt.Sprintf("%s/%s", b.client.Provider(), b.client.Model())
	summary.ConfidenceScore = cloudConfidence(summary)
	summary.ProcessingTime = time.Since(start).Seconds()

	b.logger.Info("✅ Provider summary generated",
		zap.String("meeting_id", meetingID),
		zap.Float64("confidence_score", summary.ConfidenceScore),
		zap.Float64("processing_time", summary.ProcessingTime))

	return summary, nil
}
