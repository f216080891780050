package analytics_test

import (
	"testing"

	"github.com/shoplens/shoplens/internal/analytics"
)

func rfmFact(orderID, customerID, day string, value float64) analytics.OrderFact {
	f := fact(orderID, customerID, approved(day))
	f.PaymentValue = value
	return f
}

func TestRFMSegmentation(t *testing.T) {
	// Customer a: orders on the 1st and 10th, customer b: one order on
	// the 5th. The 10th anchors recency for the whole table.
	table := analytics.Table{
		rfmFact("o1", "a", "2017-06-01", 100),
		rfmFact("o2", "a", "2017-06-10", 50),
		rfmFact("o3", "b", "2017-06-05", 200),
	}

	records := analytics.RFMSegmentation(table)
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}

	tests := []struct {
		customer  string
		recency   int
		frequency int
		monetary  float64
	}{
		{"a", 0, 2, 150},
		{"b", 5, 1, 200},
	}

	for i, tt := range tests {
		t.Run(tt.customer, func(t *testing.T) {
			r := records[i]
			if r.CustomerID != tt.customer {
				t.Fatalf("customer: got %s, want %s", r.CustomerID, tt.customer)
			}
			if r.Recency != tt.recency {
				t.Errorf("recency: got %d, want %d", r.Recency, tt.recency)
			}
			if r.Frequency != tt.frequency {
				t.Errorf("frequency: got %d, want %d", r.Frequency, tt.frequency)
			}
			if r.Monetary != tt.monetary {
				t.Errorf("monetary: got %v, want %v", r.Monetary, tt.monetary)
			}
		})
	}
}

func TestRFMFrequencyCountsDistinctOrders(t *testing.T) {
	// Two payment rows of the same order: frequency 1, monetary summed.
	table := analytics.Table{
		rfmFact("o1", "a", "2017-06-01", 30),
		rfmFact("o1", "a", "2017-06-01", 20),
	}

	records := analytics.RFMSegmentation(table)
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if records[0].Frequency != 1 {
		t.Errorf("frequency: got %d, want 1", records[0].Frequency)
	}
	if records[0].Monetary != 50 {
		t.Errorf("monetary: got %v, want 50", records[0].Monetary)
	}
}

func TestRFMSkipsUnapprovedRows(t *testing.T) {
	table := analytics.Table{
		rfmFact("o1", "a", "2017-06-01", 10),
		fact("o2", "b", nil),
	}

	records := analytics.RFMSegmentation(table)
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1 (unapproved customer excluded)", len(records))
	}
	if records[0].CustomerID != "a" {
		t.Errorf("got %s, want a", records[0].CustomerID)
	}
}

func TestRFMEmpty(t *testing.T) {
	records := analytics.RFMSegmentation(analytics.Table{})
	if len(records) != 0 {
		t.Errorf("got %d records, want 0", len(records))
	}
}
