package handlers

import (
	"context"
	"net/http"
	"strconv"

	"trends/internal/service/ingest"
)

// Ingester runs a full collection cycle on demand.
type Ingester interface {
	Ingest(ctx context.Context, hoursBack int) (ingest.Result, error)
}

// IngestHandler exposes the scheduled ingestion entry point. It is meant
// to be hit by an external cron, so it authenticates with a shared token
// instead of user credentials.
type IngestHandler struct {
	collector        Ingester
	cronToken        string
	defaultHoursBack int
}

// NewIngestHandler creates a new ingest handler
func NewIngestHandler(collector Ingester, cronToken string, defaultHoursBack int) *IngestHandler {
	return &IngestHandler{
		collector:        collector,
		cronToken:        cronToken,
		defaultHoursBack: defaultHoursBack,
	}
}

// RunIngest triggers one ingestion cycle. The token query parameter must
// match the configured cron token; hours optionally overrides how far
// back sources are fetched.
func (h *IngestHandler) RunIngest(w http.ResponseWriter, r *http.Request) {
	if h.cronToken == "" || r.URL.Query().Get("token") != h.cronToken {
		respondWithError(w, http.StatusUnauthorized, "Invalid cron token", nil)
		return
	}

	hoursBack := h.defaultHoursBack
	if hoursStr := r.URL.Query().Get("hours"); hoursStr != "" {
		parsed, err := strconv.Atoi(hoursStr)
		if err != nil || parsed <= 0 {
			respondWithError(w, http.StatusBadRequest, "Invalid hours", err)
			return
		}
		hoursBack = parsed
	}

	result, err := h.collector.Ingest(r.Context(), hoursBack)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Ingestion failed", err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}
