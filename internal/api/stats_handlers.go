package api

import (
	"net/http"
	"strconv"
)

const (
	defaultTopLimit = 5
	maxTopLimit     = 50
)

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	respond(w, http.StatusOK, s.tracker.Dashboard(), s.logger)
}

func (s *Server) handleTopVideos(w http.ResponseWriter, r *http.Request) {
	limit := defaultTopLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			respondError(w, http.StatusBadRequest, "limit must be a positive integer", s.logger)
			return
		}
		limit = min(n, maxTopLimit)
	}

	respond(w, http.StatusOK, nonNil(s.tracker.TopVideos(limit)), s.logger)
}
