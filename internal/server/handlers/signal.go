package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"trends/internal/domain/signal"
)

const defaultSignalLimit = 20

// SignalReader is the signal query surface the handler depends on.
type SignalReader interface {
	GetTrendSignalsByWindow(ctx context.Context, windowEndBefore time.Time, limit int) ([]signal.TrendSignal, error)
	LatestTrendSignals(ctx context.Context, limit int) ([]signal.TrendSignal, error)
}

// SignalHandler handles trend signal HTTP requests
type SignalHandler struct {
	signals SignalReader
}

// NewSignalHandler creates a new signal handler
func NewSignalHandler(signals SignalReader) *SignalHandler {
	return &SignalHandler{
		signals: signals,
	}
}

// GetSignals returns trend signals, newest first. With window_end_before
// set it pages through signals whose window closed at or before that
// instant; without it the most recently created signals are returned.
func (h *SignalHandler) GetSignals(w http.ResponseWriter, r *http.Request) {
	limit := defaultSignalLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed <= 0 {
			respondWithError(w, http.StatusBadRequest, "Invalid limit", err)
			return
		}
		limit = parsed
	}

	var (
		signals []signal.TrendSignal
		err     error
	)

	if beforeStr := r.URL.Query().Get("window_end_before"); beforeStr != "" {
		before, parseErr := time.Parse(time.RFC3339, beforeStr)
		if parseErr != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid window_end_before, expected RFC3339", parseErr)
			return
		}
		signals, err = h.signals.GetTrendSignalsByWindow(r.Context(), before, limit)
	} else {
		signals, err = h.signals.LatestTrendSignals(r.Context(), limit)
	}

	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to get trend signals", err)
		return
	}

	if signals == nil {
		signals = []signal.TrendSignal{}
	}

	respondWithJSON(w, http.StatusOK, signals)
}

// Helper for JSON responses
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Failed to marshal response"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// Helper for error responses
func respondWithError(w http.ResponseWriter, code int, message string, err error) {
	response := map[string]string{"error": message}
	if err != nil && code < 500 {
		response["detail"] = err.Error()
	}

	jsonResponse, _ := json.Marshal(response)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(jsonResponse)
}
