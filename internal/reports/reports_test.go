package reports_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/shoplens/shoplens/internal/analytics"
	"github.com/shoplens/shoplens/internal/reports"
	"github.com/shoplens/shoplens/pkg/lifecycle"
	"github.com/shoplens/shoplens/pkg/storage"
)

type fakeSource struct {
	table analytics.Table
	err   error
}

func (s *fakeSource) Load(ctx context.Context) (analytics.Table, error) {
	return s.table, s.err
}

type memoryStore struct {
	blobs map[string][]byte
}

func newMemoryStore() *memoryStore {
	return &memoryStore{blobs: make(map[string][]byte)}
}

func (m *memoryStore) Start(lc *lifecycle.Coordinator) error { return nil }

func (m *memoryStore) Upload(ctx context.Context, key string, reader io.Reader, contentType string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	m.blobs[key] = data
	return nil
}

func (m *memoryStore) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	data, ok := m.blobs[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *memoryStore) Delete(ctx context.Context, key string) error {
	if _, ok := m.blobs[key]; !ok {
		return storage.ErrNotFound
	}
	delete(m.blobs, key)
	return nil
}

func (m *memoryStore) List(ctx context.Context, prefix string) ([]string, error) {
	keys := make([]string, 0, len(m.blobs))
	for key := range m.blobs {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func date(value string) time.Time {
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return d
}

func orderFact(orderID, customerID, day string, value float64) analytics.OrderFact {
	approved := date(day)
	return analytics.OrderFact{
		OrderID:      orderID,
		CustomerID:   customerID,
		OrderStatus:  "delivered",
		PaymentValue: value,
		ApprovedAt:   &approved,
	}
}

func TestCreatePersistsDocument(t *testing.T) {
	source := &fakeSource{table: analytics.Table{
		orderFact("o1", "c1", "2017-06-01", 100),
		orderFact("o2", "c2", "2017-06-03", 50),
	}}
	store := newMemoryStore()
	sys := reports.New(source, store, discardLogger())

	run, err := sys.Create(context.Background(), date("2017-06-01"), date("2017-06-30"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(run.Key, "runs/2017-06-01_2017-06-30_") {
		t.Errorf("unexpected key: %s", run.Key)
	}
	if len(store.blobs) != 1 {
		t.Fatalf("got %d blobs, want 1", len(store.blobs))
	}

	var doc reports.Document
	if err := json.Unmarshal(store.blobs[run.Key], &doc); err != nil {
		t.Fatalf("stored document is not valid json: %v", err)
	}
	if doc.Run.ID != run.ID {
		t.Errorf("document run id: got %v, want %v", doc.Run.ID, run.ID)
	}
	if doc.Snapshot == nil || len(doc.Snapshot.DailyOrders) != 3 {
		t.Errorf("unexpected snapshot: %+v", doc.Snapshot)
	}
}

func TestCreateEmptyWindow(t *testing.T) {
	source := &fakeSource{table: analytics.Table{
		orderFact("o1", "c1", "2017-06-01", 100),
	}}
	sys := reports.New(source, newMemoryStore(), discardLogger())

	_, err := sys.Create(context.Background(), date("2018-01-01"), date("2018-01-31"))
	if !errors.Is(err, analytics.ErrEmptyInput) {
		t.Errorf("got %v, want ErrEmptyInput", err)
	}
}

func TestCreateInvalidRange(t *testing.T) {
	source := &fakeSource{table: analytics.Table{
		orderFact("o1", "c1", "2017-06-01", 100),
	}}
	sys := reports.New(source, newMemoryStore(), discardLogger())

	_, err := sys.Create(context.Background(), date("2017-06-30"), date("2017-06-01"))
	if !errors.Is(err, analytics.ErrInvalidRange) {
		t.Errorf("got %v, want ErrInvalidRange", err)
	}
}

func TestListScopedToRunPrefix(t *testing.T) {
	source := &fakeSource{table: analytics.Table{
		orderFact("o1", "c1", "2017-06-01", 100),
	}}
	store := newMemoryStore()
	store.blobs["other/artifact.json"] = []byte("{}")
	sys := reports.New(source, store, discardLogger())

	if _, err := sys.Create(context.Background(), date("2017-06-01"), date("2017-06-30")); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	keys, err := sys.List(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(keys) != 1 {
		t.Fatalf("got %d keys, want 1", len(keys))
	}
	if !strings.HasPrefix(keys[0], "runs/") {
		t.Errorf("listed key outside runs prefix: %s", keys[0])
	}
}

func TestFetchAndDelete(t *testing.T) {
	source := &fakeSource{table: analytics.Table{
		orderFact("o1", "c1", "2017-06-01", 100),
	}}
	store := newMemoryStore()
	sys := reports.New(source, store, discardLogger())

	run, err := sys.Create(context.Background(), date("2017-06-01"), date("2017-06-30"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	reader, err := sys.Fetch(context.Background(), run.Key)
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	defer reader.Close()

	if err := sys.Delete(context.Background(), run.Key); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := sys.Delete(context.Background(), run.Key); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("second delete: got %v, want ErrNotFound", err)
	}
}
