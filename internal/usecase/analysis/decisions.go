package analysis

import (
	"strings"

	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
)

// Pronouns captured by the decision-maker patterns never name a person.
var decisionMakerPronouns = map[string]struct{}{
	"We": {}, "They": {}, "He": {}, "She": {}, "It": {}, "I": {}, "Everyone": {},
}

// ExtractDecisions runs the decision pattern families over the text and
// returns cleaned, deduplicated records with inferred metadata.
func ExtractDecisions(text string) []entities.Decision {
	decisions := make([]entities.Decision, 0)
	seen := make(map[string]struct{})

	for _, p := range decisionPatterns {
		for _, m := range p.re.FindAllStringSubmatch(text, -1) {
			decisionText := cleanDecisionText(m[1])
			if len(decisionText) <= 10 || isNoise(decisionText) {
				continue
			}

			key := normalizeForDedup(decisionText)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}

			decisions = append(decisions, entities.Decision{
				Decision:  decisionText,
				MadeBy:    extractDecisionMaker(text, decisionText),
				Rationale: extractRationale(text, decisionText),
				Impact:    assessDecisionImpact(decisionText),
				Status:    p.status,
				Context:   contextAround(text, decisionText, contextWindow),
			})
		}
	}

	return decisions
}

// extractDecisionMaker looks for a capitalized name near the decision.
// Defaults to "Team" when only pronouns or nothing at all is found.
func extractDecisionMaker(text, decision string) string {
	context := contextAround(text, decision, 50)
	for _, re := range decisionMakerRes {
		if m := re.FindStringSubmatch(context); m != nil {
			name := m[1]
			if _, pronoun := decisionMakerPronouns[name]; pronoun {
				continue
			}
			return name
		}
	}
	return "Team"
}

func extractRationale(text, decision string) string {
	context := contextAround(text, decision, 150)
	for _, re := range rationaleRes {
		if m := re.FindStringSubmatch(context); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return "No rationale provided"
}

func assessDecisionImpact(decision string) string {
	lower := strings.ToLower(decision)
	if containsAny(lower, highImpactKeywords) {
		return entities.ImpactHigh
	}
	if containsAny(lower, lowImpactKeywords) {
		return entities.ImpactLow
	}
	return entities.ImpactMedium
}
