package analysis

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
)

// Result is the aggregate output of one extraction pass. It carries no IDs
// or timestamps; the caller owns those, which keeps extraction deterministic
// for identical input text.
type Result struct {
	Participants    []string
	KeyTopics       []string
	ActionItems     []entities.ActionItem
	Decisions       []entities.Decision
	Risks           []entities.Risk
	UserStories     []entities.UserStory
	Sentiment       string
	NextSteps       []string
	ConfidenceScore float64
	SummaryText     string
}

// Engine runs the rule-based extractors over a transcript. It is stateless;
// one Engine can serve concurrent callers.
type Engine struct {
	logger *zap.Logger
}

func NewEngine(logger *zap.Logger) *Engine {
	return &Engine{logger: logger}
}

// Analyze runs all extractors over the transcript text and assembles the
// aggregate result. The extractors have no data dependency on each other and
// run concurrently. A failure inside one extractor degrades that field to
// its empty value instead of failing the whole pass.
func (e *Engine) Analyze(ctx context.Context, text string) *Result {
	e.logger.Info("🔄 Starting transcript analysis",
		zap.Int("text_length", len(text)))

	res := &Result{}

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		res.Participants = runSafe(e.logger, "participants", text, ExtractParticipants)
		return nil
	})
	g.Go(func() error {
		res.KeyTopics = runSafe(e.logger, "key_topics", text, IdentifyKeyTopics)
		return nil
	})
	g.Go(func() error {
		res.ActionItems = runSafe(e.logger, "action_items", text, ExtractActionItems)
		return nil
	})
	g.Go(func() error {
		res.Decisions = runSafe(e.logger, "decisions", text, ExtractDecisions)
		return nil
	})
	g.Go(func() error {
		res.Risks = runSafe(e.logger, "risks", text, ExtractRisks)
		return nil
	})
	g.Go(func() error {
		res.UserStories = runSafe(e.logger, "user_stories", text, ExtractUserStories)
		return nil
	})
	g.Go(func() error {
		res.Sentiment = runSafeString(e.logger, "sentiment", text, AnalyzeSentiment)
		return nil
	})
	_ = g.Wait()

	// Structural invariants: topics and sentiment always have a value.
	if len(res.KeyTopics) == 0 {
		res.KeyTopics = []string{DefaultTopic}
	}
	if res.Sentiment == "" {
		res.Sentiment = entities.SentimentNeutral
	}

	res.SummaryText = GenerateExecutiveSummary(text, res.Participants, res.KeyTopics, res.Decisions, res.ActionItems)
	res.NextSteps = GenerateNextSteps(res.ActionItems, res.Decisions)
	res.ConfidenceScore = ConfidenceScore(text, res.Participants, res.ActionItems, res.Decisions, res.KeyTopics)

	e.logger.Info("✅ Transcript analysis completed",
		zap.Int("participants", len(res.Participants)),
		zap.Int("action_items", len(res.ActionItems)),
		zap.Int("decisions", len(res.Decisions)),
		zap.Int("risks", len(res.Risks)),
		zap.Int("user_stories", len(res.UserStories)),
		zap.Float64("confidence_score", res.ConfidenceScore))

	return res
}

// runSafe executes one extractor with panic recovery so a bad pattern match
// cannot take down the whole pipeline.
func runSafe[T any](logger *zap.Logger, field, text string, fn func(string) []T) (out []T) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("❌ Extractor panicked, degrading to empty result",
				zap.String("field", field),
				zap.String("panic", fmt.Sprint(r)))
			out = nil
		}
	}()
	return fn(text)
}

func runSafeString(logger *zap.Logger, field, text string, fn func(string) string) (out string) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("❌ Extractor panicked, degrading to default",
				zap.String("field", field),
				zap.String("panic", fmt.Sprint(r)))
			out = ""
		}
	}()
	return fn(text)
}
