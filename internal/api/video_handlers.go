package api

import (
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"

	"ugc_tracker/internal/domain"
)

func nonNil(videos []domain.Video) []domain.Video {
	if videos == nil {
		return []domain.Video{}
	}
	return videos
}

// SubmitVideoRequest takes the link as pasted; scheme-less share links are
// accepted and handed to the oracle unchanged.
type SubmitVideoRequest struct {
	URL string `json:"url" validate:"required,max=2048"`
}

type SubmitVideoResponse struct {
	Video   domain.Video `json:"video"`
	IsNew   bool         `json:"is_new"`
	Warning string       `json:"warning,omitempty"`
}

type ReviewRequest struct {
	Decision domain.VideoStatus `json:"decision" validate:"required,oneof=approved rejected"`
}

// handleListVideos returns the ledger newest first.
func (s *Server) handleListVideos(w http.ResponseWriter, _ *http.Request) {
	videos := nonNil(s.tracker.Videos())
	slices.Reverse(videos)
	respond(w, http.StatusOK, videos, s.logger)
}

func (s *Server) handleSubmitVideo(w http.ResponseWriter, r *http.Request) {
	var req SubmitVideoRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	res, err := s.tracker.Submit(r.Context(), req.URL)
	if err != nil {
		s.logger.Error("submit video failed", "url", req.URL, "error", err)
		respondError(w, http.StatusBadGateway, "failed to analyze video", s.logger)
		return
	}

	status := http.StatusOK
	if res.IsNew {
		status = http.StatusCreated
	}
	respond(w, status, SubmitVideoResponse{
		Video:   res.Video,
		IsNew:   res.IsNew,
		Warning: res.Warning,
	}, s.logger)
}

func (s *Server) handleGetVideo(w http.ResponseWriter, r *http.Request) {
	video, ok := s.tracker.Video(chi.URLParam(r, "id"))
	if !ok {
		respondError(w, http.StatusNotFound, "video not found", s.logger)
		return
	}
	respond(w, http.StatusOK, video, s.logger)
}

func (s *Server) handleReviewVideo(w http.ResponseWriter, r *http.Request) {
	var req ReviewRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	if err := s.tracker.Review(r.Context(), chi.URLParam(r, "id"), req.Decision); err != nil {
		s.handleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleReviewQueue(w http.ResponseWriter, _ *http.Request) {
	respond(w, http.StatusOK, s.tracker.ReviewQueue(), s.logger)
}
