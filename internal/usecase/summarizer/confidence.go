package summarizer

import (
	"math"

	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
)

// ollamaConfidence scores a local-model summary by how much structured
// content the model actually produced. Each category contributes a capped
// bonus and the total is expressed on a 0..1 scale.
func ollamaConfidence(s *entities.MeetingSummary) float64 {
	score := 0
	if s.Summary != "" {
		score += 20
	}
	score += capped(len(s.ActionItems)*4, 20)
	score += capped(len(s.Decisions)*5, 20)
	score += capped(len(s.Participants)*2, 15)
	score += capped(len(s.KeyTopics)*2, 10)
	score += capped(len(s.NextSteps)*2, 10)
	score += capped(len(s.Risks), 5)
	return round2(float64(score) / 100.0)
}

// cloudConfidence scores a hosted-model summary. Hosted models start from a
// high base and are penalized for missing core fields.
func cloudConfidence(s *entities.MeetingSummary) float64 {
	score := 85
	score += capped(len(s.ActionItems)*2, 10)
	score += capped(len(s.Decisions), 5)
	if s.Summary == "" {
		score -= 10
	}
	if len(s.Participants) == 0 {
		score -= 5
	}
	return round2(float64(score) / 100.0)
}

func capped(n, max int) int {
	if n > max {
		return max
	}
	return n
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
