package models

import "strings"

// GenerateKeywords derives the search keyword set for an event from its
// title, description and tags: lowercase, whitespace-tokenized and
// de-duplicated. No stemming or stop-word removal, so free-text search is
// whole-word, case-insensitive matching only. Must be recomputed from the
// merged post-update values whenever any of the three sources changes.
func GenerateKeywords(title, description string, tags []string) []string {
	content := strings.ToLower(title) + " " + strings.ToLower(description) + " " + strings.ToLower(strings.Join(tags, " "))

	keywords := []string{}
	seen := make(map[string]struct{})
	for _, word := range strings.Fields(content) {
		if _, ok := seen[word]; ok {
			continue
		}
		seen[word] = struct{}{}
		keywords = append(keywords, word)
	}
	return keywords
}

// NormalizeSearchTerms lowercases raw query tokens so they line up with the
// stored keyword set.
func NormalizeSearchTerms(raw string) []string {
	return strings.Fields(strings.ToLower(raw))
}
