package summarizer

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
)

// llmAnalysis is the JSON shape the LLM backends are prompted to return
type llmAnalysis struct {
	Summary      string          `json:"summary"`
	KeyTopics    []string        `json:"key_topics"`
	Participants []string        `json:"participants"`
	ActionItems  []llmActionItem `json:"action_items"`
	Decisions    []llmDecision   `json:"decisions"`
	Risks        []llmRisk       `json:"risks"`
	UserStories  []llmUserStory  `json:"user_stories"`
	Sentiment    string          `json:"sentiment"`
	NextSteps    []string        `json:"next_steps"`
}

type llmActionItem struct {
	Task     string `json:"task"`
	Assignee string `json:"assignee"`
	Priority string `json:"priority"`
	DueDate  string `json:"due_date"`
}

type llmDecision struct {
	Decision  string `json:"decision"`
	MadeBy    string `json:"made_by"`
	Rationale string `json:"rationale"`
	Impact    string `json:"impact"`
	Status    string `json:"status"`
}

type llmRisk struct {
	Risk       string `json:"risk"`
	Category   string `json:"category"`
	Impact     string `json:"impact"`
	Likelihood string `json:"likelihood"`
	Mitigation string `json:"mitigation"`
	Owner      string `json:"owner"`
}

type llmUserStory struct {
	Story              string   `json:"story"`
	AcceptanceCriteria []string `json:"acceptance_criteria"`
	Priority           string   `json:"priority"`
	Epic               string   `json:"epic"`
}

// parseLLMResponse parses a model response into the analysis shape. Models
// sometimes wrap the JSON in markdown fences or prose, so after a strict
// parse fails the outermost JSON object is cut out and retried.
func parseLLMResponse(raw string) (*llmAnalysis, error) {
	raw = strings.TrimSpace(raw)

	var out llmAnalysis
	if err := json.Unmarshal([]byte(raw), &out); err == nil {
		return &out, nil
	}

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object in model response")
	}
	if err := json.Unmarshal([]byte(raw[start:end+1]), &out); err != nil {
		return nil, fmt.Errorf("failed to parse model response: %w", err)
	}
	return &out, nil
}

// buildSummaryFromAnalysis converts a parsed model analysis into the summary
// entity, assigning IDs and normalizing enum values the model may have
// capitalized or invented.
func buildSummaryFromAnalysis(meetingID string, a *llmAnalysis) *entities.MeetingSummary {
	summary := entities.NewMeetingSummary(meetingID)
	summary.Summary = strings.TrimSpace(a.Summary)
	summary.KeyTopics = cleanStrings(a.KeyTopics, 10)
	summary.Participants = cleanStrings(a.Participants, 0)
	summary.Sentiment = normalizeEnum(a.Sentiment,
		[]string{entities.SentimentPositive, entities.SentimentNeutral, entities.SentimentNegative},
		entities.SentimentNeutral)
	summary.NextSteps = cleanStrings(a.NextSteps, 5)

	if len(summary.KeyTopics) == 0 {
		summary.KeyTopics = []string{"General Discussion"}
	}

	summary.ActionItems = make([]entities.ActionItem, 0, len(a.ActionItems))
	for _, item := range a.ActionItems {
		task := strings.TrimSpace(item.Task)
		if task == "" {
			continue
		}
		assignee := strings.TrimSpace(item.Assignee)
		if assignee == "" {
			assignee = "Unassigned"
		}
		summary.ActionItems = append(summary.ActionItems, entities.ActionItem{
			ID:       uuid.New(),
			Task:     task,
			Assignee: assignee,
			Priority: normalizeEnum(item.Priority, levelValues, entities.PriorityMedium),
			Status:   entities.ActionItemStatusPending,
			DueDate:  strings.TrimSpace(item.DueDate),
		})
	}

	summary.Decisions = make([]entities.Decision, 0, len(a.Decisions))
	for _, d := range a.Decisions {
		text := strings.TrimSpace(d.Decision)
		if text == "" {
			continue
		}
		madeBy := strings.TrimSpace(d.MadeBy)
		if madeBy == "" {
			madeBy = "Team"
		}
		rationale := strings.TrimSpace(d.Rationale)
		if rationale == "" {
			rationale = "No rationale provided"
		}
		summary.Decisions = append(summary.Decisions, entities.Decision{
			ID:        uuid.New(),
			Decision:  text,
			MadeBy:    madeBy,
			Rationale: rationale,
			Impact:    normalizeEnum(d.Impact, levelValues, entities.ImpactMedium),
			Status: normalizeEnum(d.Status,
				[]string{entities.DecisionStatusApproved, entities.DecisionStatusRejected, entities.DecisionStatusDeferred},
				entities.DecisionStatusApproved),
		})
	}

	summary.Risks = make([]entities.Risk, 0, len(a.Risks))
	for _, r := range a.Risks {
		text := strings.TrimSpace(r.Risk)
		if text == "" {
			continue
		}
		mitigation := strings.TrimSpace(r.Mitigation)
		if mitigation == "" {
			mitigation = "Not specified"
		}
		summary.Risks = append(summary.Risks, entities.Risk{
			ID:   uuid.New(),
			Risk: text,
			Category: normalizeEnum(r.Category,
				[]string{entities.RiskCategoryTechnical, entities.RiskCategorySecurity, entities.RiskCategoryBusiness},
				entities.RiskCategoryBusiness),
			Impact:     normalizeEnum(r.Impact, levelValues, entities.ImpactMedium),
			Likelihood: normalizeEnum(r.Likelihood, levelValues, entities.LikelihoodMedium),
			Mitigation: mitigation,
			Owner:      strings.TrimSpace(r.Owner),
		})
	}

	summary.UserStories = make([]entities.UserStory, 0, len(a.UserStories))
	for _, s := range a.UserStories {
		story := strings.TrimSpace(s.Story)
		if story == "" {
			continue
		}
		summary.UserStories = append(summary.UserStories, entities.UserStory{
			ID:                 uuid.New(),
			Story:              story,
			AcceptanceCriteria: cleanStrings(s.AcceptanceCriteria, 0),
			Priority:           normalizeEnum(s.Priority, levelValues, entities.PriorityMedium),
			Epic:               strings.TrimSpace(s.Epic),
		})
	}

	return summary
}

var levelValues = []string{entities.PriorityLow, entities.PriorityMedium, entities.PriorityHigh}

// normalizeEnum lowercases the value and falls back to def when it is not
// one of the allowed values.
func normalizeEnum(value string, allowed []string, def string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	for _, a := range allowed {
		if value == a {
			return value
		}
	}
	return def
}

// cleanStrings trims entries, drops empties, and caps the list when max > 0
func cleanStrings(in []string, max int) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		out = append(out, s)
		if max > 0 && len(out) == max {
			break
		}
	}
	return out
}
