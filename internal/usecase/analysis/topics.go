package analysis

import (
	"sort"
	"strings"
)

const maxTopics = 10

// DefaultTopic is substituted when frequency analysis finds nothing.
const DefaultTopic = "General Discussion"

// IdentifyKeyTopics selects topics by frequency: multi-word phrases seen at
// least twice first, then single words seen at least three times, capped at
// ten. Never returns an empty list.
func IdentifyKeyTopics(text string) []string {
	wordFreq := make(map[string]int)
	for _, w := range topicWordRe.FindAllString(strings.ToLower(text), -1) {
		if len(w) <= 2 {
			continue
		}
		if _, stop := topicStopwords[w]; stop {
			continue
		}
		wordFreq[w]++
	}

	phraseFreq := make(map[string]int)
	phraseOrder := make([]string, 0)
	for _, re := range topicPhrasePats {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			phrase := m[1]
			if phraseFreq[phrase] == 0 {
				phraseOrder = append(phraseOrder, phrase)
			}
			phraseFreq[phrase]++
		}
	}

	topics := make([]string, 0, maxTopics)
	covered := make(map[string]struct{})

	// Phrases mentioned twice or more, most frequent first.
	sortByFreq(phraseOrder, phraseFreq)
	for _, phrase := range phraseOrder {
		if phraseFreq[phrase] < 2 {
			continue
		}
		topic := titleWords(phrase)
		if _, dup := covered[strings.ToLower(topic)]; dup {
			continue
		}
		covered[strings.ToLower(topic)] = struct{}{}
		topics = append(topics, topic)
		if len(topics) >= maxTopics {
			return topics
		}
	}

	// Single words mentioned three times or more, unless a selected phrase
	// already covers them.
	words := make([]string, 0, len(wordFreq))
	for w := range wordFreq {
		words = append(words, w)
	}
	sortByFreq(words, wordFreq)
	for _, w := range words {
		if wordFreq[w] < 3 {
			continue
		}
		if coveredByPhrase(w, topics) {
			continue
		}
		topic := titleWords(w)
		if _, dup := covered[strings.ToLower(topic)]; dup {
			continue
		}
		covered[strings.ToLower(topic)] = struct{}{}
		topics = append(topics, topic)
		if len(topics) >= maxTopics {
			return topics
		}
	}

	if len(topics) == 0 {
		return []string{DefaultTopic}
	}
	return topics
}

// sortByFreq orders keys by descending frequency, breaking ties
// alphabetically for determinism.
func sortByFreq(keys []string, freq map[string]int) {
	sort.Slice(keys, func(i, j int) bool {
		if freq[keys[i]] != freq[keys[j]] {
			return freq[keys[i]] > freq[keys[j]]
		}
		return keys[i] < keys[j]
	})
}

func coveredByPhrase(word string, topics []string) bool {
	for _, t := range topics {
		if strings.Contains(strings.ToLower(t), word) {
			return true
		}
	}
	return false
}
