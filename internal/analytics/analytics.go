// Package analytics implements the aggregation pipeline for Shoplens.
// It transforms a normalized order-fact table into the derived tables the
// presentation layer renders: daily order and spend series, product
// popularity, review-score and order-status distributions, customer
// geography, and RFM customer segmentation.
//
// Every transformation is a pure function of its input table. The fact
// table is never mutated; each aggregation produces a fresh derived table
// on every call.
package analytics

import (
	"fmt"
	"time"
)

// UnknownCategory groups order rows whose product category, customer
// state, or customer city could not be resolved. Such rows are never
// dropped from their aggregations.
const UnknownCategory = "unknown"

// OrderFact is one row of the normalized order-fact table. Depending on
// source granularity a single order may span multiple rows (one per order
// item or payment), so aggregations that count orders must count distinct
// OrderID values, not rows.
type OrderFact struct {
	OrderID         string  `json:"order_id"`
	CustomerID      string  `json:"customer_id"`
	CustomerState   string  `json:"customer_state"`
	CustomerCity    string  `json:"customer_city"`
	ProductID       string  `json:"product_id"`
	ProductCategory string  `json:"product_category_name"`
	OrderStatus     string  `json:"order_status"`
	ReviewScore     *int    `json:"review_score"`
	PaymentValue    float64 `json:"payment_value"`

	ApprovedAt          *time.Time `json:"order_approved_at"`
	PurchasedAt         *time.Time `json:"order_purchase_timestamp"`
	DeliveredCarrierAt  *time.Time `json:"order_delivered_carrier_date"`
	DeliveredCustomerAt *time.Time `json:"order_delivered_customer_date"`
	EstimatedDeliveryAt *time.Time `json:"order_estimated_delivery_date"`
	ShippingLimitAt     *time.Time `json:"shipping_limit_date"`
}

// Table is an ordered, immutable-by-convention sequence of order facts.
// Aggregations read it and never modify it in place.
type Table []OrderFact

// DateOf truncates a timestamp to its calendar date at midnight UTC.
// All daily bucketing and range comparison operates on calendar dates;
// the time-of-day component of source timestamps is irrelevant to bucket
// membership.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Validate checks that every row carries the fields all aggregations
// depend on. It fails fast with ErrMissingField before any aggregation
// runs, so a malformed table never fails partway through one transform.
func Validate(t Table) error {
	for i, row := range t {
		switch {
		case row.OrderID == "":
			return fmt.Errorf("%w: order_id (row %d)", ErrMissingField, i)
		case row.CustomerID == "":
			return fmt.Errorf("%w: customer_id (row %d)", ErrMissingField, i)
		case row.OrderStatus == "":
			return fmt.Errorf("%w: order_status (row %d)", ErrMissingField, i)
		case row.PaymentValue < 0:
			return fmt.Errorf("%w: payment_value negative (row %d)", ErrMissingField, i)
		}
	}
	return nil
}

// Bounds returns the minimum and maximum approval dates present in the
// table, truncated to calendar dates. ok is false when no row has an
// approval timestamp.
func Bounds(t Table) (minDate, maxDate time.Time, ok bool) {
	for _, row := range t {
		if row.ApprovedAt == nil {
			continue
		}
		d := DateOf(*row.ApprovedAt)
		if !ok {
			minDate, maxDate = d, d
			ok = true
			continue
		}
		if d.Before(minDate) {
			minDate = d
		}
		if d.After(maxDate) {
			maxDate = d
		}
	}
	return minDate, maxDate, ok
}
