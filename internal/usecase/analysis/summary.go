package analysis

import (
	"fmt"
	"strings"

	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
)

// GenerateExecutiveSummary assembles a short narrative summary from the
// extraction results.
func GenerateExecutiveSummary(text string, participants, topics []string, decisions []entities.Decision, actionItems []entities.ActionItem) string {
	wordCount := len(strings.Fields(text))
	estimatedDuration := wordCount / 150 // rough 150 words per minute
	if estimatedDuration < 5 {
		estimatedDuration = 5
	}

	topicSummary := "general discussion"
	if len(topics) > 0 {
		n := len(topics)
		if n > 5 {
			n = 5
		}
		topicSummary = strings.Join(topics[:n], ", ")
	}

	parts := make([]string, 0, 4)
	if mt := InferMeetingType(text); mt != "general" {
		parts = append(parts, fmt.Sprintf("This %s meeting", strings.ReplaceAll(mt, "_", " ")))
	} else {
		parts = append(parts, "This meeting")
	}
	parts = append(parts, fmt.Sprintf("involved %d participants", len(participants)))
	parts = append(parts, fmt.Sprintf("and covered %s over approximately %d minutes", topicSummary, estimatedDuration))

	outcomes := make([]string, 0, 2)
	if n := len(decisions); n > 0 {
		outcomes = append(outcomes, fmt.Sprintf("%d key decision%s", n, plural(n)))
	}
	if n := len(actionItems); n > 0 {
		outcomes = append(outcomes, fmt.Sprintf("%d action item%s", n, plural(n)))
	}
	if len(outcomes) > 0 {
		parts = append(parts, "The meeting resulted in "+strings.Join(outcomes, " and "))
	}

	return strings.Join(parts, ". ") + "."
}

// InferMeetingType classifies the meeting by content keywords, returning
// "general" when nothing matches.
func InferMeetingType(text string) string {
	lower := strings.ToLower(text)
	for _, mt := range meetingTypeKeywords {
		if containsAny(lower, mt.keywords) {
			return mt.meetingType
		}
	}
	return "general"
}

// GenerateNextSteps synthesizes up to five next steps: the top high-priority
// action items, then approved decisions worth following up, padded with
// generic steps when fewer than two specific ones exist.
func GenerateNextSteps(actionItems []entities.ActionItem, decisions []entities.Decision) []string {
	steps := make([]string, 0, 5)

	added := 0
	for _, item := range actionItems {
		if item.Priority != entities.PriorityHigh {
			continue
		}
		steps = append(steps, fmt.Sprintf("%s: %s", item.Assignee, item.Task))
		if added++; added >= 3 {
			break
		}
	}

	added = 0
	for _, d := range decisions {
		if d.Status != entities.DecisionStatusApproved {
			continue
		}
		if d.Impact != entities.ImpactHigh && d.Impact != entities.ImpactMedium {
			continue
		}
		steps = append(steps, "Follow up on: "+d.Decision)
		if added++; added >= 2 {
			break
		}
	}

	if len(steps) < 2 {
		steps = append(steps,
			"Schedule follow-up meeting to review progress",
			"Distribute meeting notes to all participants",
		)
	}

	if len(steps) > 5 {
		steps = steps[:5]
	}
	return steps
}

func plural(n int) string {
	if n != 1 {
		return "s"
	}
	return ""
}
