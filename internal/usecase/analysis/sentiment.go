package analysis

import (
	"strings"

	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
)

// Classification thresholds. Positive needs a higher share of sentiment
// words than negative; both constants must stay as they are.
const (
	positiveRatioThreshold = 0.4
	negativeRatioThreshold = 0.3
)

// AnalyzeSentiment classifies overall meeting tone by counting which of the
// fixed sentiment keywords appear in the text.
func AnalyzeSentiment(text string) string {
	lower := strings.ToLower(text)

	positive := countPresent(lower, positiveKeywords)
	negative := countPresent(lower, negativeKeywords)
	neutral := countPresent(lower, neutralKeywords)

	total := positive + negative + neutral
	if total == 0 {
		return entities.SentimentNeutral
	}

	positiveRatio := float64(positive) / float64(total)
	negativeRatio := float64(negative) / float64(total)

	if positiveRatio > positiveRatioThreshold {
		return entities.SentimentPositive
	}
	if negativeRatio > negativeRatioThreshold {
		return entities.SentimentNegative
	}
	return entities.SentimentNeutral
}

// countPresent counts how many of the keywords occur in the text at all;
// repeated occurrences of one keyword count once.
func countPresent(lower string, keywords []string) int {
	n := 0
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			n++
		}
	}
	return n
}
