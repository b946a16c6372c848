package analysis

import (
	"strings"

	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
)

// ExtractActionItems runs the action item pattern families over the text and
// returns cleaned, deduplicated records. Records carry no IDs; the caller
// assigns them.
func ExtractActionItems(text string) []entities.ActionItem {
	items := make([]entities.ActionItem, 0)
	seen := make(map[string]struct{})

	for _, p := range actionItemPatterns {
		for _, m := range p.re.FindAllStringSubmatch(text, -1) {
			task, assignee := splitMatch(p.role, m)
			if task == "" {
				continue
			}

			task = cleanTaskText(task)
			assignee = cleanAssigneeText(assignee)

			if len(task) <= 10 || isNoise(task) {
				continue
			}

			key := normalizeForDedup(task)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}

			items = append(items, entities.ActionItem{
				Task:     task,
				Assignee: assignee,
				Priority: inferPriority(task, p.defaultPriority),
				Status:   entities.ActionItemStatusPending,
				Context:  contextAround(text, task, contextWindow),
				DueDate:  extractDueDate(m[0]),
			})
		}
	}

	return items
}

// splitMatch maps a pattern match onto (task, assignee) according to the
// pattern's capture role. A deadline-family match whose task group is a
// compound clause with its own assignment verb is dropped here because the
// modal-verb family already produced a record for it.
func splitMatch(role captureRole, m []string) (task, assignee string) {
	switch role {
	case roleTask:
		return m[1], "Unassigned"
	case roleAssigneeTask:
		return m[2], m[1]
	case roleTaskDeadline:
		lower := strings.ToLower(m[1])
		for _, verb := range compoundTaskVerbs {
			if strings.Contains(lower, verb) {
				return "", ""
			}
		}
		return m[1], "Unassigned"
	}
	return "", ""
}
