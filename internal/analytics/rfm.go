package analytics

import (
	"cmp"
	"slices"
	"time"
)

// RFMRecord holds the recency, frequency, and monetary metrics for one
// customer present in the filtered table.
//
// Recency counts calendar days between the customer's most recent order
// and the most recent order date of the whole table — a single
// dataset-wide anchor, not wall-clock "today" — so the customer with the
// globally latest order always has recency 0. Frequency counts distinct
// orders. Monetary sums payment_value at row granularity, with the same
// split-payment double counting as the revenue series.
type RFMRecord struct {
	CustomerID string  `json:"customer_id"`
	Recency    int     `json:"recency"`
	Frequency  int     `json:"frequency"`
	Monetary   float64 `json:"monetary"`
}

// RFMSegmentation computes one RFMRecord per distinct customer. Rows
// without an approval timestamp are skipped; a customer never appears
// with frequency zero. Output sorts ascending by customer ID as a stable
// default; callers re-sort by whichever metric their view needs.
func RFMSegmentation(t Table) []RFMRecord {
	type accumulator struct {
		orders   map[string]struct{}
		monetary float64
		lastDate time.Time
	}

	var reference time.Time
	customers := make(map[string]*accumulator)
	for _, row := range t {
		if row.ApprovedAt == nil {
			continue
		}
		d := DateOf(*row.ApprovedAt)
		if d.After(reference) {
			reference = d
		}

		acc := customers[row.CustomerID]
		if acc == nil {
			acc = &accumulator{orders: make(map[string]struct{})}
			customers[row.CustomerID] = acc
		}
		acc.orders[row.OrderID] = struct{}{}
		acc.monetary += row.PaymentValue
		if d.After(acc.lastDate) {
			acc.lastDate = d
		}
	}

	records := make([]RFMRecord, 0, len(customers))
	for id, acc := range customers {
		records = append(records, RFMRecord{
			CustomerID: id,
			Recency:    int(reference.Sub(acc.lastDate).Hours() / 24),
			Frequency:  len(acc.orders),
			Monetary:   acc.monetary,
		})
	}

	slices.SortFunc(records, func(a, b RFMRecord) int {
		return cmp.Compare(a.CustomerID, b.CustomerID)
	})
	return records
}
