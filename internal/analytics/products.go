package analytics

import (
	"cmp"
	"slices"
)

// CategoryCount is one product category with its order-line occurrence
// count. ProductCount is a row count, not a distinct-order count: a
// category appearing on three lines of one order counts three.
type CategoryCount struct {
	Category     string `json:"product_category_name"`
	ProductCount int    `json:"product_count"`
}

// ProductPopularity groups order lines by product category. Rows without
// a resolvable category are grouped under UnknownCategory rather than
// dropped. Output sorts descending by count for the "best sellers" view;
// pass ascending=true for the "least popular" view. Ties break ascending
// by category name in both directions so output is deterministic.
func ProductPopularity(t Table, ascending bool) []CategoryCount {
	counts := make(map[string]int)
	for _, row := range t {
		category := row.ProductCategory
		if category == "" {
			category = UnknownCategory
		}
		counts[category]++
	}

	popularity := make([]CategoryCount, 0, len(counts))
	for category, n := range counts {
		popularity = append(popularity, CategoryCount{
			Category:     category,
			ProductCount: n,
		})
	}

	slices.SortFunc(popularity, func(a, b CategoryCount) int {
		c := cmp.Compare(b.ProductCount, a.ProductCount)
		if ascending {
			c = -c
		}
		if c != 0 {
			return c
		}
		return cmp.Compare(a.Category, b.Category)
	})
	return popularity
}
