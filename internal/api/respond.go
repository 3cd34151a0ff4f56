package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/interntrack/interntrack/internal/store"
	"github.com/interntrack/interntrack/internal/tracker"
)

// Error types carried in the error body.
const (
	errInvalidRequest = "invalid_request_error"
	errNotFound       = "not_found_error"
	errConflict       = "conflict_error"
	errInternal       = "api_error"
)

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, errType, format string, args ...any) {
	respondJSON(w, status, map[string]any{
		"error": map[string]any{
			"message": fmt.Sprintf(format, args...),
			"type":    errType,
		},
	})
}

// respondServiceError maps tracker and store errors onto HTTP statuses.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, tracker.ErrInvalid):
		respondError(w, http.StatusBadRequest, errInvalidRequest, "%v", err)
	case errors.Is(err, store.ErrNotFound):
		respondError(w, http.StatusNotFound, errNotFound, "%v", err)
	case errors.Is(err, tracker.ErrEmailTaken):
		respondError(w, http.StatusConflict, errConflict, "%v", err)
	default:
		slog.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		respondError(w, http.StatusInternalServerError, errInternal, "internal error")
	}
}

// decodeJSON reads a bounded JSON body into v, answering 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequest, "invalid request body: %v", err)
		return false
	}
	return true
}

// llmContext bounds a request that reaches a model.
func (s *Server) llmContext(r *http.Request) (context.Context, context.CancelFunc) {
	if s.opts.LLMTimeout <= 0 {
		return context.WithCancel(r.Context())
	}
	return context.WithTimeout(r.Context(), s.opts.LLMTimeout)
}
