// Package reports implements the report-run domain for Shoplens. A run
// executes the full analytics pipeline for a date range and persists the
// resulting snapshot as a JSON artifact in blob storage, where offline
// consumers fetch it later.
package reports

import (
	"time"

	"github.com/google/uuid"

	"github.com/shoplens/shoplens/internal/analytics"
)

// Run describes one persisted pipeline execution.
type Run struct {
	ID          uuid.UUID `json:"id"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Key         string    `json:"key"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Document is the stored artifact: run metadata plus the full snapshot.
type Document struct {
	Run      Run                 `json:"run"`
	Snapshot *analytics.Snapshot `json:"snapshot"`
}

// CreateCommand carries the date range for a new report run.
type CreateCommand struct {
	Start string `json:"start"`
	End   string `json:"end"`
}
