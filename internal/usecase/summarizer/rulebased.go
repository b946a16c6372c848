package summarizer

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
	"github.com/johnquangdev/meeting-summarizer/internal/usecase/analysis"
)

// RuleBasedBackend runs the pattern extraction engine. It has no external
// dependencies and is always available, which makes it the terminal fallback
// in the backend chain.
type RuleBasedBackend struct {
	engine *analysis.Engine
	logger *zap.Logger
}

// NewRuleBasedBackend creates the rule-based summarization backend
func NewRuleBasedBackend(engine *analysis.Engine, logger *zap.Logger) *RuleBasedBackend {
	return &RuleBasedBackend{engine: engine, logger: logger}
}

func (b *RuleBasedBackend) Name() string { return BackendRuleBased }

func (b *RuleBasedBackend) Available(ctx context.Context) bool { return true }

// Summarize runs the extraction engine and assembles the summary entity.
// ID assignment happens here so that extraction itself stays deterministic.
func (b *RuleBasedBackend) Summarize(ctx context.Context, meetingID, text string) (*entities.MeetingSummary, error) {
	if strings.TrimSpace(text) == "" {
		return nil, entities.ErrTranscriptEmpty
	}

	start := time.Now()
	res := b.engine.Analyze(ctx, text)

	summary := entities.NewMeetingSummary(meetingID)
	summary.Summary = res.SummaryText
	summary.KeyTopics = res.KeyTopics
	summary.Participants = res.Participants
	summary.Sentiment = res.Sentiment
	summary.NextSteps = res.NextSteps
	summary.ConfidenceScore = res.ConfidenceScore
	summary.ModelUsed = BackendRuleBased
	summary.ProcessingTime = time.Since(start).Seconds()

	summary.ActionItems = make([]entities.ActionItem, len(res.ActionItems))
	for i, item := range res.ActionItems {
		item.ID = uuid.New()
		summary.ActionItems[i] = item
	}
	summary.Decisions = make([]entities.Decision, len(res.Decisions))
	for i, d := range res.Decisions {
		d.ID = uuid.New()
		summary.Decisions[i] = d
	}
	summary.Risks = make([]entities.Risk, len(res.Risks))
	for i, r := range res.Risks {
		r.ID = uuid.New()
		summary.Risks[i] = r
	}
	summary.UserStories = make([]entities.UserStory, len(res.UserStories))
	for i, s := range res.UserStories {
		s.ID = uuid.New()
		summary.UserStories[i] = s
	}

	return summary, nil
}
