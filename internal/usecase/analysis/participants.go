package analysis

import (
	"sort"
	"strings"
)

// ExtractParticipants finds speaker names across the common transcript
// formats and returns a deduplicated, alphabetically sorted list.
func ExtractParticipants(text string) []string {
	candidates := make(map[string]struct{})

	for _, re := range []interface{ FindAllStringSubmatch(string, int) [][]string }{
		participantMarkdownBoldRe,
		participantNameColonRe,
		participantHTMLBoldRe,
		participantAngleRe,
		participantSaidRe,
		participantFromByRe,
	} {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			candidates[m[1]] = struct{}{}
		}
	}

	// Attendee lines list several names separated by commas or "and".
	for _, m := range participantAttendeesRe.FindAllStringSubmatch(text, -1) {
		for _, name := range splitNameList(m[1]) {
			candidates[name] = struct{}{}
		}
	}

	accepted := make([]string, 0, len(candidates))
	for name := range candidates {
		name = strings.TrimRight(strings.TrimSpace(name), ".,;:!?")
		if len(name) < 2 {
			continue
		}
		if _, bad := participantStoplist[name]; bad {
			continue
		}
		if !participantShapeRe.MatchString(name) {
			continue
		}
		accepted = append(accepted, name)
	}

	collapsed := collapseNameVariants(accepted)
	sort.Strings(collapsed)
	return collapsed
}

// splitNameList breaks "Alice, Bob and Carol Smith" into individual names.
func splitNameList(line string) []string {
	line = strings.ReplaceAll(line, " and ", ",")
	line = strings.ReplaceAll(line, "&", ",")
	parts := strings.Split(line, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			names = append(names, p)
		}
	}
	return names
}

// collapseNameVariants drops any name whose token set is a strict subset of
// another candidate's tokens, keeping the longer, more specific form.
func collapseNameVariants(names []string) []string {
	tokenSets := make([]map[string]struct{}, len(names))
	for i, name := range names {
		set := make(map[string]struct{})
		for _, tok := range strings.Fields(strings.ToLower(name)) {
			set[tok] = struct{}{}
		}
		tokenSets[i] = set
	}

	kept := make([]string, 0, len(names))
	for i, name := range names {
		absorbed := false
		for j := range names {
			if i == j {
				continue
			}
			if len(tokenSets[i]) < len(tokenSets[j]) && isSubset(tokenSets[i], tokenSets[j]) {
				absorbed = true
				break
			}
		}
		if !absorbed {
			kept = append(kept, name)
		}
	}
	return kept
}

func isSubset(a, b map[string]struct{}) bool {
	for tok := range a {
		if _, ok := b[tok]; !ok {
			return false
		}
	}
	return true
}
