package analytics_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shoplens/shoplens/internal/analytics"
)

func date(value string) time.Time {
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return d
}

func approved(value string) *time.Time {
	d := date(value)
	return &d
}

func approvedAtHour(value string, hour int) *time.Time {
	d := date(value).Add(time.Duration(hour) * time.Hour)
	return &d
}

func score(v int) *int {
	return &v
}

func fact(orderID, customerID string, approvedAt *time.Time) analytics.OrderFact {
	return analytics.OrderFact{
		OrderID:     orderID,
		CustomerID:  customerID,
		OrderStatus: "delivered",
		ApprovedAt:  approvedAt,
	}
}

func TestDateOf(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Time
		expected time.Time
	}{
		{"midnight unchanged", date("2017-06-01"), date("2017-06-01")},
		{"midday truncates", date("2017-06-01").Add(14*time.Hour + 30*time.Minute), date("2017-06-01")},
		{"last second of day", date("2017-06-01").Add(24*time.Hour - time.Second), date("2017-06-01")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := analytics.DateOf(tt.input); !got.Equal(tt.expected) {
				t.Errorf("got %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	valid := fact("o1", "c1", approved("2017-06-01"))

	tests := []struct {
		name    string
		mutate  func(*analytics.OrderFact)
		wantErr bool
	}{
		{"valid row", func(f *analytics.OrderFact) {}, false},
		{"missing order id", func(f *analytics.OrderFact) { f.OrderID = "" }, true},
		{"missing customer id", func(f *analytics.OrderFact) { f.CustomerID = "" }, true},
		{"missing status", func(f *analytics.OrderFact) { f.OrderStatus = "" }, true},
		{"negative payment", func(f *analytics.OrderFact) { f.PaymentValue = -1 }, true},
		{"nil approval allowed", func(f *analytics.OrderFact) { f.ApprovedAt = nil }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := valid
			tt.mutate(&row)

			err := analytics.Validate(analytics.Table{row})
			if tt.wantErr {
				if !errors.Is(err, analytics.ErrMissingField) {
					t.Errorf("got %v, want ErrMissingField", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestBounds(t *testing.T) {
	table := analytics.Table{
		fact("o1", "c1", approvedAtHour("2017-06-03", 23)),
		fact("o2", "c2", nil),
		fact("o3", "c3", approvedAtHour("2017-06-01", 10)),
		fact("o4", "c4", approved("2017-06-02")),
	}

	minDate, maxDate, ok := analytics.Bounds(table)
	if !ok {
		t.Fatal("expected bounds for non-empty table")
	}
	if !minDate.Equal(date("2017-06-01")) {
		t.Errorf("min: got %v, want 2017-06-01", minDate)
	}
	if !maxDate.Equal(date("2017-06-03")) {
		t.Errorf("max: got %v, want 2017-06-03", maxDate)
	}
}

func TestBoundsEmpty(t *testing.T) {
	if _, _, ok := analytics.Bounds(analytics.Table{fact("o1", "c1", nil)}); ok {
		t.Error("expected no bounds when no row has an approval timestamp")
	}
}

func TestFilterRange(t *testing.T) {
	table := analytics.Table{
		fact("o1", "c1", approved("2017-05-31")),
		fact("o2", "c2", approvedAtHour("2017-06-01", 8)),
		fact("o3", "c3", approvedAtHour("2017-06-30", 23)),
		fact("o4", "c4", approved("2017-07-01")),
		fact("o5", "c5", nil),
	}

	filtered := analytics.FilterRange(table, date("2017-06-01"), date("2017-06-30"))
	if len(filtered) != 2 {
		t.Fatalf("got %d rows, want 2", len(filtered))
	}
	if filtered[0].OrderID != "o2" || filtered[1].OrderID != "o3" {
		t.Errorf("got %s, %s, want o2, o3", filtered[0].OrderID, filtered[1].OrderID)
	}
}

func TestFilterRangeInverted(t *testing.T) {
	table := analytics.Table{fact("o1", "c1", approved("2017-06-15"))}

	filtered := analytics.FilterRange(table, date("2017-06-30"), date("2017-06-01"))
	if len(filtered) != 0 {
		t.Errorf("got %d rows, want 0 for inverted range", len(filtered))
	}
}

func TestFilterRangeIgnoresTimeOfDay(t *testing.T) {
	table := analytics.Table{fact("o1", "c1", approvedAtHour("2017-06-30", 23))}

	end := date("2017-06-30").Add(1 * time.Hour)
	filtered := analytics.FilterRange(table, date("2017-06-01"), end)
	if len(filtered) != 1 {
		t.Error("row approved late on the end date should be included")
	}
}
