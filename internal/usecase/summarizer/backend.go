package summarizer

import (
	"context"

	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
)

// Backend names as exposed through the providers endpoint and stored on
// completed summaries.
const (
	BackendRuleBased = "rule-based"
	BackendOllama    = "ollama"
	BackendOpenAI    = "openai"
	BackendAnthropic = "anthropic"
)

// Backend produces a structured summary from transcript text
type Backend interface {
	// Name identifies the backend ("rule-based", "ollama", "openai", "anthropic")
	Name() string
	// Available reports whether the backend can currently serve requests
	Available(ctx context.Context) bool
	// Summarize analyzes the transcript text and returns a complete summary
	// for the meeting. The returned summary has IDs assigned and ModelUsed set.
	Summarize(ctx context.Context, meetingID, text string) (*entities.MeetingSummary, error)
}
