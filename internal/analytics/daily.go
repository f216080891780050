package analytics

import "time"

// DailyOrders is one calendar-day bucket of the order-volume series.
// OrderCount is the number of distinct orders approved that day; Revenue
// is the row-granularity sum of payment_value, so an order with split
// payments contributes every payment row. That double counting mirrors
// the source system's revenue metric and is preserved deliberately.
type DailyOrders struct {
	Date       time.Time `json:"date"`
	OrderCount int       `json:"order_count"`
	Revenue    float64   `json:"revenue"`
}

// DailySpend is one calendar-day bucket of the spend series.
type DailySpend struct {
	Date       time.Time `json:"date"`
	TotalSpend float64   `json:"total_spend"`
}

// DailyOrderSeries buckets the table into calendar days by approval date.
// The series spans every day between the table's minimum and maximum
// approval dates inclusive: days with no orders appear with zero counts,
// never as gaps. Output is ordered ascending by date. An empty table
// yields an empty series.
func DailyOrderSeries(t Table) []DailyOrders {
	minDate, maxDate, ok := Bounds(t)
	if !ok {
		return []DailyOrders{}
	}

	orders := make(map[time.Time]map[string]struct{})
	revenue := make(map[time.Time]float64)
	for _, row := range t {
		if row.ApprovedAt == nil {
			continue
		}
		d := DateOf(*row.ApprovedAt)
		if orders[d] == nil {
			orders[d] = make(map[string]struct{})
		}
		orders[d][row.OrderID] = struct{}{}
		revenue[d] += row.PaymentValue
	}

	series := make([]DailyOrders, 0, daysBetween(minDate, maxDate))
	for d := minDate; !d.After(maxDate); d = d.AddDate(0, 0, 1) {
		series = append(series, DailyOrders{
			Date:       d,
			OrderCount: len(orders[d]),
			Revenue:    revenue[d],
		})
	}
	return series
}

// DailySpendSeries buckets total spend into calendar days by approval
// date, with the same gap-filling and ordering as DailyOrderSeries. It is
// computed independently rather than derived from the order series: the
// two views answer different questions and each must stand alone.
func DailySpendSeries(t Table) []DailySpend {
	minDate, maxDate, ok := Bounds(t)
	if !ok {
		return []DailySpend{}
	}

	spend := make(map[time.Time]float64)
	for _, row := range t {
		if row.ApprovedAt == nil {
			continue
		}
		spend[DateOf(*row.ApprovedAt)] += row.PaymentValue
	}

	series := make([]DailySpend, 0, daysBetween(minDate, maxDate))
	for d := minDate; !d.After(maxDate); d = d.AddDate(0, 0, 1) {
		series = append(series, DailySpend{
			Date:       d,
			TotalSpend: spend[d],
		})
	}
	return series
}

func daysBetween(minDate, maxDate time.Time) int {
	return int(maxDate.Sub(minDate).Hours()/24) + 1
}
