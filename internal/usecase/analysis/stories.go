package analysis

import (
	"fmt"
	"strings"

	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
)

const (
	maxUserStories   = 8
	storyDedupPrefix = 100
)

// ExtractUserStories finds requirements phrased as user stories, matches
// common requirement phrasings against curated templates, and falls back to
// a generic template for plain "users should be able to X" statements.
func ExtractUserStories(text string) []entities.UserStory {
	stories := make([]entities.UserStory, 0)
	seen := make(map[string]struct{})

	add := func(story entities.UserStory) bool {
		key := dedupPrefix(story.Story, storyDedupPrefix)
		if _, dup := seen[key]; dup {
			return false
		}
		seen[key] = struct{}{}
		stories = append(stories, story)
		return len(stories) < maxUserStories
	}

	// Stories stated directly in canonical form.
	for _, m := range storyDirectRe.FindAllStringSubmatch(text, -1) {
		role := strings.TrimSpace(m[1])
		want := strings.TrimSpace(m[2])
		reason := strings.TrimSpace(m[3])
		story := fmt.Sprintf("As a %s, I want %s, so that %s", role, want, reason)
		if !add(entities.UserStory{
			Story:              story,
			AcceptanceCriteria: synthesizeCriteria(story),
			Priority:           inferStoryPriority(text, story),
		}) {
			return stories
		}
	}

	// Explicit "user story:" markers.
	for _, m := range storyMarkerRe.FindAllStringSubmatch(text, -1) {
		story := cleanDecisionText(m[1])
		if len(story) <= 10 || isNoise(story) {
			continue
		}
		if !add(entities.UserStory{
			Story:              story,
			AcceptanceCriteria: synthesizeCriteria(story),
			Priority:           inferStoryPriority(text, story),
		}) {
			return stories
		}
	}

	// Curated templates for recurring requirement phrasings.
	for _, tpl := range storyTemplates {
		if !tpl.re.MatchString(text) {
			continue
		}
		criteria := make([]string, len(tpl.criteria))
		copy(criteria, tpl.criteria)
		if !add(entities.UserStory{
			Story:              tpl.story,
			AcceptanceCriteria: criteria,
			Priority:           tpl.priority,
			Epic:               tpl.epic,
		}) {
			return stories
		}
	}

	// Generic requirement statements.
	for _, m := range storyGenericRe.FindAllStringSubmatch(text, -1) {
		capability := cleanDecisionText(m[1])
		if len(capability) <= 5 || isNoise(capability) {
			continue
		}
		story := fmt.Sprintf("As a user, I want to %s, so that I can work more effectively", capability)
		if !add(entities.UserStory{
			Story:              story,
			AcceptanceCriteria: synthesizeCriteria(story),
			Priority:           inferStoryPriority(text, story),
		}) {
			return stories
		}
	}

	return stories
}

// synthesizeCriteria picks a fixed three-item checklist by story keyword
// category, with a generic checklist for everything else.
func synthesizeCriteria(story string) []string {
	lower := strings.ToLower(story)
	for _, cat := range storyCriteriaByCategory {
		if containsAny(lower, cat.keywords) {
			criteria := make([]string, len(cat.criteria))
			copy(criteria, cat.criteria)
			return criteria
		}
	}
	criteria := make([]string, len(storyGenericCriteria))
	copy(criteria, storyGenericCriteria)
	return criteria
}

// inferStoryPriority scans the story and its surrounding context for
// urgency keywords.
func inferStoryPriority(text, story string) string {
	scope := strings.ToLower(story + " " + contextAround(text, story, 50))
	if containsAny(scope, storyHighPriorityKeywords) {
		return entities.PriorityHigh
	}
	if containsAny(scope, storyLowPriorityKeywords) {
		return entities.PriorityLow
	}
	return entities.PriorityMedium
}
