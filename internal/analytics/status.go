package analytics

// StatusSummary holds the order-status distribution with its mode.
type StatusSummary struct {
	Statuses []Frequency[string] `json:"statuses"`
	Mode     string              `json:"most_common_status"`
}

// OrderStatuses counts rows per order status, sorted descending by count.
// Counting is per row, not per distinct order, matching the source view.
// Returns ErrNoMode for an empty table.
func OrderStatuses(t Table) (*StatusSummary, error) {
	statuses := make([]string, 0, len(t))
	for _, row := range t {
		statuses = append(statuses, row.OrderStatus)
	}

	freqs := tally(statuses)
	mode, err := modeOf(freqs)
	if err != nil {
		return nil, err
	}

	return &StatusSummary{
		Statuses: freqs,
		Mode:     mode,
	}, nil
}
