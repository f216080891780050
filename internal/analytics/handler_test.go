package analytics_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shoplens/shoplens/internal/analytics"
	"github.com/shoplens/shoplens/pkg/pagination"
	"github.com/shoplens/shoplens/pkg/routes"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeSource struct {
	table analytics.Table
	err   error
}

func (s *fakeSource) Load(ctx context.Context) (analytics.Table, error) {
	return s.table, s.err
}

func newTestServer(t *testing.T, table analytics.Table) *httptest.Server {
	t.Helper()

	cfg := pagination.Config{}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("pagination config: %v", err)
	}

	handler := analytics.NewHandler(&fakeSource{table: table}, discardLogger(), cfg)
	mux := http.NewServeMux()
	routes.Register(mux, handler.Routes())

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func getJSON(t *testing.T, url string, wantStatus int, out any) {
	t.Helper()

	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		t.Fatalf("status: got %d, want %d", resp.StatusCode, wantStatus)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
}

func TestSnapshotEndpoint(t *testing.T) {
	server := newTestServer(t, snapshotTable())

	var snapshot analytics.Snapshot
	getJSON(t, server.URL+"/analytics", http.StatusOK, &snapshot)

	if len(snapshot.DailyOrders) != 5 {
		t.Errorf("daily orders: got %d days, want 5", len(snapshot.DailyOrders))
	}
	if snapshot.Status == nil || snapshot.Status.Mode != "delivered" {
		t.Errorf("status section: got %+v", snapshot.Status)
	}
}

func TestSnapshotEndpointWithRange(t *testing.T) {
	server := newTestServer(t, snapshotTable())

	var snapshot analytics.Snapshot
	getJSON(t, server.URL+"/analytics?start=2017-06-01&end=2017-06-03", http.StatusOK, &snapshot)

	if len(snapshot.DailyOrders) != 3 {
		t.Errorf("daily orders: got %d days, want 3", len(snapshot.DailyOrders))
	}
}

func TestSnapshotEndpointInvalidRange(t *testing.T) {
	server := newTestServer(t, snapshotTable())
	getJSON(t, server.URL+"/analytics?start=2017-06-05&end=2017-06-01", http.StatusBadRequest, nil)
}

func TestSnapshotEndpointMalformedDate(t *testing.T) {
	server := newTestServer(t, snapshotTable())
	getJSON(t, server.URL+"/analytics?start=06-01-2017", http.StatusBadRequest, nil)
}

func TestRangeEndpoint(t *testing.T) {
	server := newTestServer(t, snapshotTable())

	var bounds map[string]string
	getJSON(t, server.URL+"/analytics/range", http.StatusOK, &bounds)

	if bounds["min_date"] != "2017-06-01" || bounds["max_date"] != "2017-06-05" {
		t.Errorf("got %v, want 2017-06-01 / 2017-06-05", bounds)
	}
}

func TestRangeEndpointEmptyDataset(t *testing.T) {
	server := newTestServer(t, analytics.Table{})
	getJSON(t, server.URL+"/analytics/range", http.StatusNotFound, nil)
}

func TestDailyOrdersEndpoint(t *testing.T) {
	server := newTestServer(t, snapshotTable())

	var series []analytics.DailyOrders
	getJSON(t, server.URL+"/analytics/daily-orders?start=2017-06-01&end=2017-06-05", http.StatusOK, &series)

	if len(series) != 5 {
		t.Errorf("got %d days, want 5 (gap filled)", len(series))
	}
}

func TestProductsEndpointAscending(t *testing.T) {
	table := snapshotTable()
	table[0].ProductCategory = "esporte_lazer"

	server := newTestServer(t, table)

	var popularity []analytics.CategoryCount
	getJSON(t, server.URL+"/analytics/products?order=asc", http.StatusOK, &popularity)

	if len(popularity) != 2 {
		t.Fatalf("got %d categories, want 2", len(popularity))
	}
	if popularity[0].Category != "esporte_lazer" {
		t.Errorf("got %s first, want esporte_lazer", popularity[0].Category)
	}
}

func TestReviewsEndpointNoReviews(t *testing.T) {
	table := snapshotTable()
	for i := range table {
		table[i].ReviewScore = nil
	}

	server := newTestServer(t, table)
	getJSON(t, server.URL+"/analytics/reviews", http.StatusUnprocessableEntity, nil)
}

func TestCitiesEndpointLimit(t *testing.T) {
	table := snapshotTable()
	table[1].CustomerCity = "campinas"
	table[3].CustomerCity = "santos"

	server := newTestServer(t, table)

	var body struct {
		Cities  []analytics.CityCustomers `json:"cities"`
		TopCity string                    `json:"most_common_city"`
	}
	getJSON(t, server.URL+"/analytics/cities?limit=1", http.StatusOK, &body)

	if len(body.Cities) != 1 {
		t.Errorf("got %d cities, want 1", len(body.Cities))
	}
	if body.TopCity != "sao paulo" {
		t.Errorf("top city: got %s, want sao paulo", body.TopCity)
	}
}

func TestRFMEndpointSortAndPaginate(t *testing.T) {
	server := newTestServer(t, snapshotTable())

	var page pagination.PageResult[analytics.RFMRecord]
	getJSON(t, server.URL+"/analytics/rfm?sort=-monetary&page=1&page_size=2", http.StatusOK, &page)

	if page.Total != 3 {
		t.Errorf("total: got %d, want 3", page.Total)
	}
	if len(page.Data) != 2 {
		t.Fatalf("got %d records, want 2", len(page.Data))
	}
	if page.Data[0].CustomerID != "c1" {
		t.Errorf("top spender: got %s, want c1", page.Data[0].CustomerID)
	}
}
