package analysis

import (
	"math"
	"strings"

	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
)

// Rule-based extraction is trusted less than a model-generated result; the
// flat penalty reflects that.
const ruleBasedPenalty = 0.15

// ConfidenceScore combines five extraction quality factors into a score in
// [0, 1], rounded to two decimals.
func ConfidenceScore(text string, participants []string, actionItems []entities.ActionItem, decisions []entities.Decision, topics []string) float64 {
	factors := make([]float64, 0, 5)

	// Text length adequacy
	wordCount := len(strings.Fields(text))
	switch {
	case wordCount > 500:
		factors = append(factors, 0.9)
	case wordCount > 100:
		factors = append(factors, 0.7)
	default:
		factors = append(factors, 0.4)
	}

	// Participant identification
	switch {
	case len(participants) > 1:
		factors = append(factors, 0.8)
	case len(participants) == 1:
		factors = append(factors, 0.6)
	default:
		factors = append(factors, 0.3)
	}

	// Action item yield
	switch {
	case len(actionItems) > 3:
		factors = append(factors, 0.8)
	case len(actionItems) > 0:
		factors = append(factors, 0.7)
	default:
		factors = append(factors, 0.5)
	}

	// Decision yield; many meetings legitimately decide nothing
	if len(decisions) > 0 {
		factors = append(factors, 0.8)
	} else {
		factors = append(factors, 0.6)
	}

	// Topic yield
	switch {
	case len(topics) > 5:
		factors = append(factors, 0.8)
	case len(topics) > 2:
		factors = append(factors, 0.7)
	default:
		factors = append(factors, 0.5)
	}

	sum := 0.0
	for _, f := range factors {
		sum += f
	}
	confidence := sum/float64(len(factors)) - ruleBasedPenalty

	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}
	return math.Round(confidence*100) / 100
}
