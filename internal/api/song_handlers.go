package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"ugc_tracker/internal/domain"
	"ugc_tracker/internal/service"
)

type CreateSongRequest struct {
	URL          string               `json:"url" validate:"required,url"`
	Title        string               `json:"title" validate:"required,max=200"`
	Artist       string               `json:"artist" validate:"max=200"`
	RevenueModel *RevenueModelRequest `json:"revenue_model"`
}

// RevenueModelRequest fields are all optional; omitted ones take the
// catalog defaults.
type RevenueModelRequest struct {
	Type     domain.RevenueType `json:"type" validate:"omitempty,oneof=flat_per_1k_views flat_per_post"`
	Rate     *float64           `json:"rate" validate:"omitempty,gte=0"`
	Currency string             `json:"currency" validate:"omitempty,len=3"`
}

func (s *Server) handleListSongs(w http.ResponseWriter, _ *http.Request) {
	songs := s.tracker.Songs()
	if songs == nil {
		songs = []domain.Song{}
	}
	respond(w, http.StatusOK, songs, s.logger)
}

func (s *Server) handleCreateSong(w http.ResponseWriter, r *http.Request) {
	var req CreateSongRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	in := service.NewSong{
		URL:    req.URL,
		Title:  req.Title,
		Artist: req.Artist,
	}
	if rm := req.RevenueModel; rm != nil {
		in.Type = rm.Type
		in.Rate = rm.Rate
		in.Currency = rm.Currency
	}

	song, err := s.tracker.AddSong(in)
	if err != nil {
		s.handleError(w, err)
		return
	}

	respond(w, http.StatusCreated, song, s.logger)
}

func (s *Server) handleGetSong(w http.ResponseWriter, r *http.Request) {
	song, ok := s.tracker.LookupSong(chi.URLParam(r, "id"))
	if !ok {
		respondError(w, http.StatusNotFound, "asset reference missing", s.logger)
		return
	}
	respond(w, http.StatusOK, song, s.logger)
}

func (s *Server) handleDeleteSong(w http.ResponseWriter, r *http.Request) {
	if !s.tracker.RemoveSong(chi.URLParam(r, "id")) {
		respondError(w, http.StatusNotFound, "song not found", s.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
