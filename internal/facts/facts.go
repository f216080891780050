// Package facts loads the normalized order-fact table from PostgreSQL.
// It is the loader collaborator in front of the analytics pipeline: the
// table it produces is already typed and normalized, and the pipeline
// never parses anything rawer than what this package returns.
package facts

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/shoplens/shoplens/internal/analytics"
	"github.com/shoplens/shoplens/pkg/query"
	"github.com/shoplens/shoplens/pkg/repository"
)

// System loads order facts for analysis passes.
type System interface {
	// Load returns the full fact table ordered by approval timestamp.
	Load(ctx context.Context) (analytics.Table, error)
	// LoadRange returns facts whose approval timestamp falls in the
	// inclusive [start, end] range, ordered by approval timestamp. Rows
	// without an approval timestamp are excluded.
	LoadRange(ctx context.Context, start, end time.Time) (analytics.Table, error)
	// Bounds returns the minimum and maximum approval dates in the
	// dataset, for seeding date-range pickers. Returns ErrEmptyDataset
	// when no approved order exists.
	Bounds(ctx context.Context) (minDate, maxDate time.Time, err error)
}

type repo struct {
	db     *sql.DB
	logger *slog.Logger
}

// New creates a fact loader over the given database connection.
func New(db *sql.DB, logger *slog.Logger) System {
	return &repo{
		db:     db,
		logger: logger.With("system", "facts"),
	}
}

var projection = query.NewProjection("order_facts",
	"order_id",
	"customer_id",
	"customer_state",
	"customer_city",
	"product_id",
	"product_category_name",
	"order_status",
	"review_score",
	"payment_value",
	"order_approved_at",
	"order_purchase_timestamp",
	"order_delivered_carrier_date",
	"order_delivered_customer_date",
	"order_estimated_delivery_date",
	"shipping_limit_date",
)

func (r *repo) Load(ctx context.Context) (analytics.Table, error) {
	q, args := query.NewBuilder(projection).
		OrderBy("order_approved_at", false).
		Build()

	rows, err := repository.QueryMany(ctx, r.db, q, args, scanFact)
	if err != nil {
		return nil, fmt.Errorf("load order facts: %w", err)
	}

	r.logger.Debug("fact table loaded", "rows", len(rows))
	return analytics.Table(rows), nil
}

func (r *repo) LoadRange(ctx context.Context, start, end time.Time) (analytics.Table, error) {
	q, args := query.NewBuilder(projection).
		WhereGte("order_approved_at::date", analytics.DateOf(start)).
		WhereLte("order_approved_at::date", analytics.DateOf(end)).
		OrderBy("order_approved_at", false).
		Build()

	rows, err := repository.QueryMany(ctx, r.db, q, args, scanFact)
	if err != nil {
		return nil, fmt.Errorf("load order facts for range: %w", err)
	}

	return analytics.Table(rows), nil
}

type factBounds struct {
	min sql.NullTime
	max sql.NullTime
}

func (r *repo) Bounds(ctx context.Context) (time.Time, time.Time, error) {
	const q = "SELECT MIN(order_approved_at), MAX(order_approved_at) FROM order_facts"

	b, err := repository.QueryOne(ctx, r.db, q, nil, scanBounds)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("query fact bounds: %w", err)
	}

	if !b.min.Valid || !b.max.Valid {
		return time.Time{}, time.Time{}, ErrEmptyDataset
	}

	return analytics.DateOf(b.min.Time), analytics.DateOf(b.max.Time), nil
}

func scanBounds(s repository.Scanner) (factBounds, error) {
	var b factBounds
	err := s.Scan(&b.min, &b.max)
	return b, err
}

func scanFact(s repository.Scanner) (analytics.OrderFact, error) {
	var (
		fact            analytics.OrderFact
		state, city     sql.NullString
		productID       sql.NullString
		category        sql.NullString
		score           sql.NullInt64
		approved        sql.NullTime
		purchased       sql.NullTime
		carrier         sql.NullTime
		delivered       sql.NullTime
		estimated       sql.NullTime
		shippingLimitAt sql.NullTime
	)

	err := s.Scan(
		&fact.OrderID,
		&fact.CustomerID,
		&state,
		&city,
		&productID,
		&category,
		&fact.OrderStatus,
		&score,
		&fact.PaymentValue,
		&approved,
		&purchased,
		&carrier,
		&delivered,
		&estimated,
		&shippingLimitAt,
	)
	if err != nil {
		return analytics.OrderFact{}, err
	}

	fact.CustomerState = state.String
	fact.CustomerCity = city.String
	fact.ProductID = productID.String
	fact.ProductCategory = category.String
	fact.ReviewScore = nullableInt(score)
	fact.ApprovedAt = nullableTime(approved)
	fact.PurchasedAt = nullableTime(purchased)
	fact.DeliveredCarrierAt = nullableTime(carrier)
	fact.DeliveredCustomerAt = nullableTime(delivered)
	fact.EstimatedDeliveryAt = nullableTime(estimated)
	fact.ShippingLimitAt = nullableTime(shippingLimitAt)

	return fact, nil
}

func nullableInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

func nullableTime(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}
