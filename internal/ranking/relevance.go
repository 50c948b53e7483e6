package ranking

import "strings"

const (
	MatchWeight          = 0.7
	SpecificityWeight    = 0.3
	ExactSizeSpecificity = 1.2
	MaxRelevance         = 1.2
)

// NormalizeSet trims and lowercases genres, dropping empties and duplicates.
// Order of first appearance is kept.
func NormalizeSet(genres []string) []string {
	seen := make(map[string]struct{}, len(genres))
	normalized := make([]string, 0, len(genres))
	for _, genre := range genres {
		g := strings.ToLower(strings.TrimSpace(genre))
		if g == "" {
			continue
		}
		if _, ok := seen[g]; ok {
			continue
		}
		seen[g] = struct{}{}
		normalized = append(normalized, g)
	}
	return normalized
}

// Matches reports whether a query genre and an event genre overlap, i.e. one
// contains the other. Both must already be normalized.
func Matches(queryGenre, eventGenre string) bool {
	return strings.Contains(eventGenre, queryGenre) || strings.Contains(queryGenre, eventGenre)
}

// Relevance scores how well an event's genres cover the query genres.
// An empty query is fully relevant; an event without genres never is.
func Relevance(eventGenres, queryGenres []string) float64 {
	query := NormalizeSet(queryGenres)
	if len(query) == 0 {
		return 1
	}
	event := NormalizeSet(eventGenres)
	if len(event) == 0 {
		return 0
	}

	matchCount := 0
	for _, q := range query {
		for _, e := range event {
			if Matches(q, e) {
				matchCount++
				break
			}
		}
	}
	if matchCount == 0 {
		return 0
	}

	matchRatio := float64(matchCount) / float64(len(query))

	specificity := 0.0
	if matchCount == len(query) {
		if len(query) == len(event) {
			specificity = ExactSizeSpecificity
		} else {
			specificity = float64(len(query)) / float64(len(event))
		}
	}

	score := MatchWeight*matchRatio + SpecificityWeight*specificity
	if score > MaxRelevance {
		return MaxRelevance
	}
	return score
}
