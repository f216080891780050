package reports

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/shoplens/shoplens/internal/analytics"
	"github.com/shoplens/shoplens/pkg/formatting"
	"github.com/shoplens/shoplens/pkg/storage"
)

const keyPrefix = "runs/"

// System manages report runs.
type System interface {
	// Create executes the pipeline for the range and persists the snapshot.
	// Returns analytics.ErrEmptyInput when the range holds no orders.
	Create(ctx context.Context, start, end time.Time) (*Run, error)
	// List returns the storage keys of persisted runs.
	List(ctx context.Context) ([]string, error)
	// Fetch streams a persisted run document. The caller closes the reader.
	Fetch(ctx context.Context, key string) (io.ReadCloser, error)
	// Delete removes a persisted run.
	Delete(ctx context.Context, key string) error
	// Handler returns the HTTP handler for report endpoints.
	Handler() *Handler
}

type repo struct {
	source analytics.Source
	store  storage.System
	logger *slog.Logger
}

// New creates a report-run system over the given fact source and blob
// store.
func New(source analytics.Source, store storage.System, logger *slog.Logger) System {
	return &repo{
		source: source,
		store:  store,
		logger: logger.With("system", "reports"),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) Create(ctx context.Context, start, end time.Time) (*Run, error) {
	table, err := r.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load facts: %w", err)
	}

	snapshot, err := analytics.Run(table, start, end)
	if err != nil {
		return nil, fmt.Errorf("run pipeline: %w", err)
	}
	if snapshot.Empty() {
		return nil, analytics.ErrEmptyInput
	}

	run := Run{
		ID:          uuid.New(),
		Start:       snapshot.Start,
		End:         snapshot.End,
		GeneratedAt: time.Now().UTC(),
	}
	run.Key = runKey(run)

	payload, err := json.Marshal(Document{Run: run, Snapshot: snapshot})
	if err != nil {
		return nil, fmt.Errorf("marshal report document: %w", err)
	}

	if err := r.store.Upload(ctx, run.Key, bytes.NewReader(payload), "application/json"); err != nil {
		return nil, fmt.Errorf("persist report document: %w", err)
	}

	r.logger.Info("report run persisted",
		"id", run.ID,
		"key", run.Key,
		"start", formatting.FormatDate(run.Start),
		"end", formatting.FormatDate(run.End),
	)
	return &run, nil
}

func (r *repo) List(ctx context.Context) ([]string, error) {
	keys, err := r.store.List(ctx, keyPrefix)
	if err != nil {
		return nil, fmt.Errorf("list report runs: %w", err)
	}
	return keys, nil
}

func (r *repo) Fetch(ctx context.Context, key string) (io.ReadCloser, error) {
	return r.store.Download(ctx, key)
}

func (r *repo) Delete(ctx context.Context, key string) error {
	if err := r.store.Delete(ctx, key); err != nil {
		return err
	}

	r.logger.Info("report run deleted", "key", key)
	return nil
}

func runKey(run Run) string {
	return fmt.Sprintf("%s%s_%s_%s.json",
		keyPrefix,
		formatting.FormatDate(run.Start),
		formatting.FormatDate(run.End),
		run.ID,
	)
}
