package reports

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/shoplens/shoplens/internal/analytics"
	"github.com/shoplens/shoplens/pkg/formatting"
	"github.com/shoplens/shoplens/pkg/handlers"
	"github.com/shoplens/shoplens/pkg/routes"
	"github.com/shoplens/shoplens/pkg/storage"
)

// Handler provides HTTP endpoints for report-run operations.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "reports"),
	}
}

// Routes returns the route group definition for report endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/reports",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List},
			{Method: "POST", Pattern: "", Handler: h.Create},
			{Method: "GET", Pattern: "/{key...}", Handler: h.Fetch},
			{Method: "DELETE", Pattern: "/{key...}", Handler: h.Delete},
		},
	}
}

// Create runs the pipeline for the posted date range and persists the
// snapshot. Returns 201 with run metadata, 422 when the range holds no
// orders.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var cmd CreateCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	start, err := formatting.ParseDate(cmd.Start)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}
	end, err := formatting.ParseDate(cmd.End)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	run, err := h.sys.Create(r.Context(), start, end)
	if err != nil {
		handlers.RespondError(w, h.logger, mapStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, run)
}

// List returns the storage keys of persisted runs.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	keys, err := h.sys.List(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, map[string]any{"keys": keys})
}

// Fetch streams a persisted run document by its storage key.
func (h *Handler) Fetch(w http.ResponseWriter, r *http.Request) {
	reader, err := h.sys.Fetch(r.Context(), r.PathValue("key"))
	if err != nil {
		handlers.RespondError(w, h.logger, storage.MapHTTPStatus(err), err)
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	io.Copy(w, reader)
}

// Delete removes a persisted run document by its storage key.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.sys.Delete(r.Context(), r.PathValue("key")); err != nil {
		handlers.RespondError(w, h.logger, storage.MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func mapStatus(err error) int {
	if errors.Is(err, analytics.ErrEmptyInput) ||
		errors.Is(err, analytics.ErrInvalidRange) ||
		errors.Is(err, analytics.ErrMissingField) {
		return analytics.MapHTTPStatus(err)
	}
	return http.StatusInternalServerError
}
