package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"ugc_tracker/internal/domain"
)

// Envelope is the body of every JSON response.
type Envelope struct {
	Success bool              `json:"success"`
	Data    any               `json:"data,omitempty"`
	Error   string            `json:"error,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, env Envelope, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(env); err != nil {
		logger.Error("encode response", "error", err)
	}
}

func respond(w http.ResponseWriter, status int, data any, logger *slog.Logger) {
	writeJSON(w, status, Envelope{Success: status < 400, Data: data}, logger)
}

func respondError(w http.ResponseWriter, status int, message string, logger *slog.Logger) {
	writeJSON(w, status, Envelope{Error: message}, logger)
}

// handleError maps service errors onto HTTP statuses. Anything unrecognised
// is logged and reported as a 500.
func (s *Server) handleError(w http.ResponseWriter, err error) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, Envelope{Error: verr.Error(), Details: verr.Fields}, s.logger)
	case errors.Is(err, domain.ErrSongExists):
		respondError(w, http.StatusConflict, "song already registered", s.logger)
	case errors.Is(err, domain.ErrInvalidSong),
		errors.Is(err, domain.ErrInvalidVideo),
		errors.Is(err, domain.ErrInvalidRate),
		errors.Is(err, domain.ErrInvalidDecision):
		respondError(w, http.StatusBadRequest, err.Error(), s.logger)
	default:
		s.logger.Error("unhandled error", "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error", s.logger)
	}
}
