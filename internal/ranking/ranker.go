package ranking

import (
	"math"
	"sort"
)

const (
	// RatingTolerance is the secondary key gap under which relevance may
	// reorder two results.
	RatingTolerance = 1.0
	// RelevanceDelta is the minimum relevance gap that reorders them.
	RelevanceDelta = 0.1
)

// Scored pairs an item with its relevance to the active query.
type Scored[T any] struct {
	Item      T
	Relevance float64
}

// Rank scores items against the query genres and orders them by descending
// secondary key (club rating). With a genre filter active, relevance decides
// between items whose keys are within RatingTolerance of each other. The sort
// is stable.
func Rank[T any](items []T, query []string, genresOf func(T) []string, keyOf func(T) float64) []Scored[T] {
	normalizedQuery := NormalizeSet(query)
	filterActive := len(normalizedQuery) > 0

	scored := make([]Scored[T], len(items))
	keys := make([]float64, len(items))
	for i, item := range items {
		scored[i] = Scored[T]{Item: item, Relevance: Relevance(genresOf(item), normalizedQuery)}
		keys[i] = keyOf(item)
	}

	order := make([]int, len(items))
	for i := range order {
		order[i] = i
	}

	// The tolerance band makes this comparator non-transitive, so the order is
	// only guaranteed pairwise for items whose ratings fall within the band.
	sort.SliceStable(order, func(a, b int) bool {
		i, j := order[a], order[b]
		if filterActive && math.Abs(keys[i]-keys[j]) < RatingTolerance {
			if diff := scored[i].Relevance - scored[j].Relevance; math.Abs(diff) > RelevanceDelta {
				return diff > 0
			}
		}
		return keys[i] > keys[j]
	})

	ranked := make([]Scored[T], len(items))
	for pos, idx := range order {
		ranked[pos] = scored[idx]
	}
	return ranked
}
