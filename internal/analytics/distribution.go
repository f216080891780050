package analytics

import (
	"cmp"
	"slices"
)

// Frequency is one bucket of a categorical distribution.
type Frequency[T cmp.Ordered] struct {
	Value T   `json:"value"`
	Count int `json:"count"`
}

// tally counts occurrences of each value and returns buckets sorted
// descending by count, ties broken ascending by value for determinism.
func tally[T cmp.Ordered](values []T) []Frequency[T] {
	counts := make(map[T]int, len(values))
	for _, v := range values {
		counts[v]++
	}

	freqs := make([]Frequency[T], 0, len(counts))
	for v, n := range counts {
		freqs = append(freqs, Frequency[T]{Value: v, Count: n})
	}

	slices.SortFunc(freqs, func(a, b Frequency[T]) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Value, b.Value)
	})
	return freqs
}

// modeOf returns the most frequent value of a tallied distribution.
// Returns ErrNoMode when the distribution is empty; ties resolve to the
// first bucket under tally's deterministic ordering.
func modeOf[T cmp.Ordered](freqs []Frequency[T]) (T, error) {
	var zero T
	if len(freqs) == 0 {
		return zero, ErrNoMode
	}
	return freqs[0].Value, nil
}
