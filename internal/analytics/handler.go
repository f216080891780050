package analytics

import (
	"cmp"
	"context"
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/shoplens/shoplens/pkg/formatting"
	"github.com/shoplens/shoplens/pkg/handlers"
	"github.com/shoplens/shoplens/pkg/pagination"
	"github.com/shoplens/shoplens/pkg/routes"
)

// Source supplies the fact table an analysis pass operates on.
type Source interface {
	Load(ctx context.Context) (Table, error)
}

// Handler provides HTTP endpoints for the derived analytics tables. Every
// endpoint accepts optional start/end calendar-date parameters; when
// absent, the dataset's own approval-date bounds apply, matching the
// date-picker default of the presentation layer.
type Handler struct {
	source     Source
	logger     *slog.Logger
	pagination pagination.Config
}

// NewHandler creates a Handler over the given fact source.
func NewHandler(source Source, logger *slog.Logger, pagination pagination.Config) *Handler {
	return &Handler{
		source:     source,
		logger:     logger.With("handler", "analytics"),
		pagination: pagination,
	}
}

// Routes returns the route group definition for analytics endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/analytics",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.Snapshot},
			{Method: "GET", Pattern: "/range", Handler: h.Range},
			{Method: "GET", Pattern: "/daily-orders", Handler: h.DailyOrders},
			{Method: "GET", Pattern: "/daily-spend", Handler: h.DailySpend},
			{Method: "GET", Pattern: "/products", Handler: h.Products},
			{Method: "GET", Pattern: "/reviews", Handler: h.Reviews},
			{Method: "GET", Pattern: "/status", Handler: h.Status},
			{Method: "GET", Pattern: "/states", Handler: h.States},
			{Method: "GET", Pattern: "/cities", Handler: h.Cities},
			{Method: "GET", Pattern: "/rfm", Handler: h.RFM},
		},
	}
}

// Snapshot runs the full pipeline for the requested range and returns
// every derived table in one response.
func (h *Handler) Snapshot(w http.ResponseWriter, r *http.Request) {
	table, start, end, err := h.window(r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	snapshot, err := Run(table, start, end)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, snapshot)
}

// Range returns the dataset's minimum and maximum approval dates, used to
// seed the presentation layer's date-range picker.
func (h *Handler) Range(w http.ResponseWriter, r *http.Request) {
	table, err := h.source.Load(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	minDate, maxDate, ok := Bounds(table)
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusNotFound, ErrEmptyInput)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, map[string]string{
		"min_date": formatting.FormatDate(minDate),
		"max_date": formatting.FormatDate(maxDate),
	})
}

// DailyOrders returns the gap-filled daily order/revenue series.
func (h *Handler) DailyOrders(w http.ResponseWriter, r *http.Request) {
	filtered, ok := h.filtered(w, r)
	if !ok {
		return
	}
	handlers.RespondJSON(w, http.StatusOK, DailyOrderSeries(filtered))
}

// DailySpend returns the gap-filled daily spend series.
func (h *Handler) DailySpend(w http.ResponseWriter, r *http.Request) {
	filtered, ok := h.filtered(w, r)
	if !ok {
		return
	}
	handlers.RespondJSON(w, http.StatusOK, DailySpendSeries(filtered))
}

// Products returns product popularity by category. Pass order=asc for the
// least-popular view; the default is descending.
func (h *Handler) Products(w http.ResponseWriter, r *http.Request) {
	filtered, ok := h.filtered(w, r)
	if !ok {
		return
	}
	ascending := r.URL.Query().Get("order") == "asc"
	handlers.RespondJSON(w, http.StatusOK, ProductPopularity(filtered, ascending))
}

// Reviews returns the review-score distribution with its mode and mean.
func (h *Handler) Reviews(w http.ResponseWriter, r *http.Request) {
	filtered, ok := h.filtered(w, r)
	if !ok {
		return
	}

	summary, err := ReviewScores(filtered)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, summary)
}

// Status returns the order-status distribution with its mode.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	filtered, ok := h.filtered(w, r)
	if !ok {
		return
	}

	summary, err := OrderStatuses(filtered)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, summary)
}

// States returns distinct customers per state with the most common state.
func (h *Handler) States(w http.ResponseWriter, r *http.Request) {
	filtered, ok := h.filtered(w, r)
	if !ok {
		return
	}

	states, top, err := CustomersByState(filtered)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, map[string]any{
		"states":            states,
		"most_common_state": top,
	})
}

// Cities returns distinct customers for the top-N cities (limit parameter,
// default 10). The most-common-city scalar always reflects the full
// distribution.
func (h *Handler) Cities(w http.ResponseWriter, r *http.Request) {
	filtered, ok := h.filtered(w, r)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	cities, top, err := CustomersByCity(filtered, limit)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, map[string]any{
		"cities":           cities,
		"most_common_city": top,
	})
}

// RFM returns a sorted, paginated page of the RFM segmentation. Sortable
// fields: customer_id, recency, frequency, monetary (prefix with "-" for
// descending, e.g. sort=-monetary).
func (h *Handler) RFM(w http.ResponseWriter, r *http.Request) {
	filtered, ok := h.filtered(w, r)
	if !ok {
		return
	}

	records := RFMSegmentation(filtered)

	page := pagination.FromQuery(r.URL.Query(), h.pagination)
	sortRFM(records, page.Sort)

	handlers.RespondJSON(w, http.StatusOK, pagination.Paginate(records, page))
}

// window loads the fact table and resolves the requested date range,
// defaulting either bound to the dataset's own approval-date bounds.
func (h *Handler) window(r *http.Request) (Table, time.Time, time.Time, error) {
	table, err := h.source.Load(r.Context())
	if err != nil {
		return nil, time.Time{}, time.Time{}, err
	}

	start, end, _ := Bounds(table)

	q := r.URL.Query()
	if s := q.Get("start"); s != "" {
		if start, err = formatting.ParseDate(s); err != nil {
			return nil, time.Time{}, time.Time{}, err
		}
	}
	if e := q.Get("end"); e != "" {
		if end, err = formatting.ParseDate(e); err != nil {
			return nil, time.Time{}, time.Time{}, err
		}
	}

	return table, start, end, nil
}

// filtered resolves the window and applies range validation plus the date
// filter, responding to the client itself on failure.
func (h *Handler) filtered(w http.ResponseWriter, r *http.Request) (Table, bool) {
	table, start, end, err := h.window(r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return nil, false
	}

	if DateOf(start).After(DateOf(end)) {
		handlers.RespondError(w, h.logger, MapHTTPStatus(ErrInvalidRange), ErrInvalidRange)
		return nil, false
	}

	if err := Validate(table); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return nil, false
	}

	return FilterRange(table, start, end), true
}

func sortRFM(records []RFMRecord, fields []pagination.SortField) {
	if len(fields) == 0 {
		return
	}

	slices.SortStableFunc(records, func(a, b RFMRecord) int {
		for _, f := range fields {
			var c int
			switch f.Field {
			case "recency":
				c = cmp.Compare(a.Recency, b.Recency)
			case "frequency":
				c = cmp.Compare(a.Frequency, b.Frequency)
			case "monetary":
				c = cmp.Compare(a.Monetary, b.Monetary)
			case "customer_id":
				c = cmp.Compare(a.CustomerID, b.CustomerID)
			}
			if f.Descending {
				c = -c
			}
			if c != 0 {
				return c
			}
		}
		return 0
	})
}
