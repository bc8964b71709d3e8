package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"trends/internal/adapter/storage"
	"trends/internal/domain/content"
)

// ContentStore is the pipeline persistence the handler depends on.
type ContentStore interface {
	StoreContentPipelineItem(ctx context.Context, it content.PipelineItem) (string, error)
	GetContentPipelineItem(ctx context.Context, id string) (*content.PipelineItem, error)
	UpdateContentPipelineStatus(ctx context.Context, id string, status content.Status) error
}

// ContentHandler handles content pipeline HTTP requests
type ContentHandler struct {
	store ContentStore
}

// NewContentHandler creates a new content pipeline handler
func NewContentHandler(store ContentStore) *ContentHandler {
	return &ContentHandler{
		store: store,
	}
}

// CreatePipelineItem creates a new pipeline item in draft status from one
// or more trend signals.
func (h *ContentHandler) CreatePipelineItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TrendSignalIDs []string        `json:"trendSignalIds"`
		WeekOf         string          `json:"weekOf"`
		Outputs        content.Outputs `json:"outputs"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if len(req.TrendSignalIDs) == 0 {
		respondWithError(w, http.StatusBadRequest, "trendSignalIds must not be empty", nil)
		return
	}

	id, err := h.store.StoreContentPipelineItem(r.Context(), content.PipelineItem{
		TrendSignalIDs: req.TrendSignalIDs,
		WeekOf:         req.WeekOf,
		Outputs:        req.Outputs,
	})
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to create pipeline item", err)
		return
	}

	it, err := h.store.GetContentPipelineItem(r.Context(), id)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load created pipeline item", err)
		return
	}

	respondWithJSON(w, http.StatusCreated, it)
}

// GetPipelineItem returns a pipeline item by ID
func (h *ContentHandler) GetPipelineItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "Missing pipeline item ID", nil)
		return
	}

	it, err := h.store.GetContentPipelineItem(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Pipeline item not found", nil)
		} else {
			respondWithError(w, http.StatusInternalServerError, "Failed to get pipeline item", err)
		}
		return
	}

	respondWithJSON(w, http.StatusOK, it)
}

// UpdatePipelineStatus moves a pipeline item along the publishing state
// machine. Illegal transitions answer 409.
func (h *ContentHandler) UpdatePipelineStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "Missing pipeline item ID", nil)
		return
	}

	var req struct {
		Status content.Status `json:"status"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if !req.Status.Valid() {
		respondWithError(w, http.StatusBadRequest, "Unknown status", nil)
		return
	}

	if err := h.store.UpdateContentPipelineStatus(r.Context(), id, req.Status); err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			respondWithError(w, http.StatusNotFound, "Pipeline item not found", nil)
		case errors.Is(err, storage.ErrInvalidTransition):
			respondWithError(w, http.StatusConflict, "Illegal status transition", err)
		default:
			respondWithError(w, http.StatusInternalServerError, "Failed to update status", err)
		}
		return
	}

	it, err := h.store.GetContentPipelineItem(r.Context(), id)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load pipeline item", err)
		return
	}

	respondWithJSON(w, http.StatusOK, it)
}
