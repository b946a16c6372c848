package analysis

import (
	"fmt"
	"strings"

	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
)

const (
	maxRisks        = 15
	minRiskLength   = 15
	riskDedupPrefix = 100
)

// ExtractRisks runs the risk pattern families over the text and returns
// categorized, deduplicated records, capped at 15.
func ExtractRisks(text string) []entities.Risk {
	risks := make([]entities.Risk, 0)
	seen := make(map[string]struct{})

	add := func(riskText string, explicit bool) {
		riskText = cleanDecisionText(riskText)
		if len(riskText) <= minRiskLength || isNoise(riskText) {
			return
		}

		key := dedupPrefix(riskText, riskDedupPrefix)
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}

		risks = append(risks, entities.Risk{
			Risk:       riskText,
			Category:   categorizeRisk(riskText),
			Impact:     assessRiskImpact(riskText),
			Likelihood: assessRiskLikelihood(riskText, explicit),
			Mitigation: extractMitigation(text, riskText),
			Owner:      extractRiskOwner(text, riskText),
		})
	}

	for _, p := range riskPatterns {
		for _, m := range p.re.FindAllStringSubmatch(text, -1) {
			add(m[1], p.explicit)
			if len(risks) >= maxRisks {
				return risks
			}
		}
	}

	// Consequence pairs: the consequence is the risk, the omitted step
	// explains the condition.
	for _, m := range riskConsequencePattern.FindAllStringSubmatch(text, -1) {
		condition := cleanDecisionText(m[1])
		consequence := cleanDecisionText(m[2])
		add(fmt.Sprintf("%s unless the team %s", consequence, condition), false)
		if len(risks) >= maxRisks {
			return risks
		}
	}

	return risks
}

// categorizeRisk scores the risk text against the three category keyword
// lists; the highest overlap wins and business is the tiebreak default.
func categorizeRisk(riskText string) string {
	lower := strings.ToLower(riskText)

	scores := make(map[string]int, len(riskCategoryKeywords))
	for category, keywords := range riskCategoryKeywords {
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				scores[category]++
			}
		}
	}

	best := entities.RiskCategoryBusiness
	bestScore := scores[entities.RiskCategoryBusiness]
	for _, category := range []string{entities.RiskCategorySecurity, entities.RiskCategoryTechnical} {
		if scores[category] > bestScore {
			best = category
			bestScore = scores[category]
		}
	}
	return best
}

func assessRiskImpact(riskText string) string {
	if riskHighImpactRe.MatchString(riskText) {
		return entities.ImpactHigh
	}
	if riskMediumImpactRe.MatchString(riskText) {
		return entities.ImpactMedium
	}
	return entities.ImpactLow
}

// assessRiskLikelihood assigns medium to explicit risk statements; for the
// looser families the modal verbs in the text decide.
func assessRiskLikelihood(riskText string, explicit bool) string {
	if explicit {
		return entities.LikelihoodMedium
	}
	if riskHighLikelihoodRe.MatchString(riskText) {
		return entities.LikelihoodHigh
	}
	if riskLowLikelihoodRe.MatchString(riskText) {
		return entities.LikelihoodLow
	}
	return entities.LikelihoodMedium
}

func extractMitigation(text, riskText string) string {
	context := contextAround(text, riskText, 150)
	if m := riskMitigationRe.FindStringSubmatch(context); m != nil {
		return strings.TrimSpace(m[1])
	}
	return "Not specified"
}

func extractRiskOwner(text, riskText string) string {
	context := contextAround(text, riskText, 150)
	for _, re := range riskOwnerRes {
		if m := re.FindStringSubmatch(context); m != nil {
			return m[1]
		}
	}
	return ""
}
