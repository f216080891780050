package analytics

import (
	"errors"
	"time"

	"golang.org/x/sync/errgroup"
)

// Snapshot is the full output of one pipeline run: every derived table
// plus the scalar summaries, computed over the same filtered table.
// Summary sections are nil when their mode could not be computed (no rows,
// or no reviewed rows); the presentation layer omits those widgets.
type Snapshot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`

	DailyOrders []DailyOrders     `json:"daily_orders"`
	DailySpend  []DailySpend      `json:"daily_spend"`
	Products    []CategoryCount   `json:"products"`
	Reviews     *ReviewSummary    `json:"reviews,omitempty"`
	Status      *StatusSummary    `json:"status,omitempty"`
	Geography   *GeographySummary `json:"geography,omitempty"`
	RFM         []RFMRecord       `json:"rfm"`
}

// Empty reports whether the run saw zero rows after filtering.
func (s *Snapshot) Empty() bool {
	return len(s.DailyOrders) == 0 && len(s.RFM) == 0
}

// Run executes the full pipeline: range validation, required-field
// validation, date filtering, then every aggregation over the filtered
// table. Aggregations are independent pure functions of the same
// immutable input, so they fan out concurrently.
//
// An empty filtered table is not an error: Run returns a Snapshot with
// empty series and nil summaries, and callers use ErrEmptyInput where an
// empty pass must be rejected.
func Run(t Table, start, end time.Time) (*Snapshot, error) {
	if DateOf(start).After(DateOf(end)) {
		return nil, ErrInvalidRange
	}
	if err := Validate(t); err != nil {
		return nil, err
	}

	filtered := FilterRange(t, start, end)

	snapshot := &Snapshot{
		Start: DateOf(start),
		End:   DateOf(end),
	}

	var g errgroup.Group
	g.Go(func() error {
		snapshot.DailyOrders = DailyOrderSeries(filtered)
		return nil
	})
	g.Go(func() error {
		snapshot.DailySpend = DailySpendSeries(filtered)
		return nil
	})
	g.Go(func() error {
		snapshot.Products = ProductPopularity(filtered, false)
		return nil
	})
	g.Go(func() error {
		reviews, err := ReviewScores(filtered)
		if err != nil {
			return err
		}
		snapshot.Reviews = reviews
		return nil
	})
	g.Go(func() error {
		status, err := OrderStatuses(filtered)
		if err != nil {
			return err
		}
		snapshot.Status = status
		return nil
	})
	g.Go(func() error {
		geo, err := geographySummary(filtered)
		if err != nil {
			return err
		}
		snapshot.Geography = geo
		return nil
	})
	g.Go(func() error {
		snapshot.RFM = RFMSegmentation(filtered)
		return nil
	})

	if err := g.Wait(); err != nil {
		if errors.Is(err, ErrNoMode) {
			// Empty (or review-less) input: the affected summary stays nil
			// and the remaining sections stand as computed.
			return snapshot, nil
		}
		return nil, err
	}

	return snapshot, nil
}

func geographySummary(t Table) (*GeographySummary, error) {
	states, topState, err := CustomersByState(t)
	if err != nil {
		return nil, err
	}

	cities, topCity, err := CustomersByCity(t, DefaultCityLimit)
	if err != nil {
		return nil, err
	}

	return &GeographySummary{
		States:   states,
		TopState: topState,
		Cities:   cities,
		TopCity:  topCity,
	}, nil
}
