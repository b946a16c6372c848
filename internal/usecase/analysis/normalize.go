package analysis

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// Task text truncation leaves headroom under the 500 char storage ceiling.
	maxTaskLength = 450

	contextWindow = 100
)

// cleanTaskText strips leading conjunctions, collapses whitespace, and
// truncates overly long spans with an ellipsis.
func cleanTaskText(task string) string {
	task = strings.TrimSpace(task)
	task = taskPrefixRe.ReplaceAllString(task, "")
	task = whitespaceRe.ReplaceAllString(task, " ")
	if len(task) > maxTaskLength {
		cut := maxTaskLength - 3
		for cut > 0 && !utf8.RuneStart(task[cut]) {
			cut--
		}
		task = task[:cut] + "..."
	}
	return strings.TrimSpace(task)
}

// cleanAssigneeText strips mention/preposition prefixes, cuts at the first
// punctuation, and title-cases the remaining name.
func cleanAssigneeText(assignee string) string {
	assignee = strings.TrimSpace(assignee)
	assignee = assigneePrefixRe.ReplaceAllString(assignee, "")
	assignee = assigneeSuffixRe.ReplaceAllString(assignee, "")
	assignee = strings.TrimSpace(assignee)
	if assignee == "" {
		return "Unassigned"
	}
	return titleWords(assignee)
}

func cleanDecisionText(decision string) string {
	decision = strings.TrimSpace(decision)
	decision = taskPrefixRe.ReplaceAllString(decision, "")
	decision = whitespaceRe.ReplaceAllString(decision, " ")
	return strings.TrimSpace(decision)
}

// normalizeForDedup lowercases and collapses whitespace so that trivially
// restated spans compare equal.
func normalizeForDedup(s string) string {
	return whitespaceRe.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), " ")
}

// dedupPrefix returns the first n normalized characters, used as the
// identity key for risks and user stories.
func dedupPrefix(s string, n int) string {
	norm := normalizeForDedup(s)
	if len(norm) > n {
		return norm[:n]
	}
	return norm
}

// isNoise reports whether an extracted span is filler, too short, or pure
// punctuation.
func isNoise(text string) bool {
	lower := strings.ToLower(strings.TrimSpace(text))
	for _, re := range noisePatterns {
		if re.MatchString(lower) {
			return true
		}
	}
	return false
}

// inferPriority overrides the pattern default when the task carries explicit
// urgency or softening keywords.
func inferPriority(task, defaultPriority string) string {
	lower := strings.ToLower(task)
	for _, kw := range highPriorityKeywords {
		if strings.Contains(lower, kw) {
			return "high"
		}
	}
	for _, kw := range lowPriorityKeywords {
		if strings.Contains(lower, kw) {
			return "low"
		}
	}
	return defaultPriority
}

// extractDueDate pulls a day-name or date-shaped phrase from the task text.
// Returns "" when no due date is present.
func extractDueDate(task string) string {
	for _, re := range dueDatePatterns {
		if m := re.FindStringSubmatch(task); m != nil {
			return m[1]
		}
	}
	return ""
}

// contextAround returns up to window characters on each side of the first
// case-insensitive occurrence of target in fullText.
func contextAround(fullText, target string, window int) string {
	idx := strings.Index(strings.ToLower(fullText), strings.ToLower(target))
	if idx == -1 {
		return ""
	}
	start := idx - window
	if start < 0 {
		start = 0
	}
	end := idx + len(target) + window
	if end > len(fullText) {
		end = len(fullText)
	}
	return strings.TrimSpace(fullText[start:end])
}

// titleWords capitalizes the first letter of each whitespace-separated word
// and lowercases the rest.
func titleWords(s string) string {
	fields := strings.Fields(s)
	for i, f := range fields {
		r, size := utf8.DecodeRuneInString(f)
		fields[i] = string(unicode.ToUpper(r)) + strings.ToLower(f[size:])
	}
	return strings.Join(fields, " ")
}

// containsAny reports whether lower contains any of the given lowercase
// keywords.
func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
