package analytics

import (
	"cmp"
	"slices"
)

// DefaultCityLimit is the top-N truncation applied to the city
// distribution when the caller does not request a specific limit.
const DefaultCityLimit = 10

// StateCustomers is one state with its distinct-customer count.
type StateCustomers struct {
	State     string `json:"customer_state"`
	Customers int    `json:"customer_count"`
}

// CityCustomers is one city with its distinct-customer count.
type CityCustomers struct {
	City      string `json:"customer_city"`
	Customers int    `json:"total_customer"`
}

// GeographySummary holds both geographic distributions with their top-1
// scalars. TopCity is always computed over the full city distribution,
// never the truncated view: truncation exists purely for display sizing
// and must not change which city is reported as most common.
type GeographySummary struct {
	States   []StateCustomers `json:"states"`
	TopState string           `json:"most_common_state"`
	Cities   []CityCustomers  `json:"cities"`
	TopCity  string           `json:"most_common_city"`
}

// CustomersByState counts distinct customers per state, sorted descending
// by count. A customer with several orders in a state counts once. Rows
// without a resolvable state group under UnknownCategory, matching the
// popularity aggregation. Returns ErrNoMode for an empty table.
func CustomersByState(t Table) ([]StateCustomers, string, error) {
	counts := distinctCustomers(t, func(f OrderFact) string { return f.CustomerState })

	states := make([]StateCustomers, 0, len(counts))
	for state, customers := range counts {
		states = append(states, StateCustomers{State: state, Customers: len(customers)})
	}
	sortRegions(states, func(s StateCustomers) (string, int) { return s.State, s.Customers })

	if len(states) == 0 {
		return states, "", ErrNoMode
	}
	return states, states[0].State, nil
}

// CustomersByCity counts distinct customers per city, sorted descending by
// count, truncated to the top limit entries after sorting (DefaultCityLimit
// when limit is not positive). The returned top-1 city comes from the full
// distribution regardless of truncation. Returns ErrNoMode for an empty
// table.
func CustomersByCity(t Table, limit int) ([]CityCustomers, string, error) {
	if limit <= 0 {
		limit = DefaultCityLimit
	}

	counts := distinctCustomers(t, func(f OrderFact) string { return f.CustomerCity })

	cities := make([]CityCustomers, 0, len(counts))
	for city, customers := range counts {
		cities = append(cities, CityCustomers{City: city, Customers: len(customers)})
	}
	sortRegions(cities, func(c CityCustomers) (string, int) { return c.City, c.Customers })

	if len(cities) == 0 {
		return cities, "", ErrNoMode
	}

	top := cities[0].City
	if len(cities) > limit {
		cities = cities[:limit]
	}
	return cities, top, nil
}

func distinctCustomers(t Table, key func(OrderFact) string) map[string]map[string]struct{} {
	counts := make(map[string]map[string]struct{})
	for _, row := range t {
		k := key(row)
		if k == "" {
			k = UnknownCategory
		}
		if counts[k] == nil {
			counts[k] = make(map[string]struct{})
		}
		counts[k][row.CustomerID] = struct{}{}
	}
	return counts
}

func sortRegions[T any](regions []T, fields func(T) (string, int)) {
	slices.SortFunc(regions, func(a, b T) int {
		aName, aCount := fields(a)
		bName, bCount := fields(b)
		if c := cmp.Compare(bCount, aCount); c != 0 {
			return c
		}
		return cmp.Compare(aName, bName)
	})
}
