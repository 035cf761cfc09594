package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"ugc_tracker/internal/domain"
	"ugc_tracker/internal/matcher"
	"ugc_tracker/internal/stats"
)

const (
	analysisFailedWarning  = "failed to analyze content; recorded with neutral metrics"
	defaultAnalysisTimeout = 2 * time.Minute
)

// TrackerService owns the song registry and video ledger. Every mutation of
// either goes through it and is serialized by mu; the oracle call is made
// outside the lock.
type TrackerService struct {
	mu        sync.Mutex
	songs     SongRegistry
	videos    VideoLedger
	analyzer  Analyzer
	resolver  *matcher.Resolver
	publisher Publisher
	logger    *slog.Logger

	inflight        singleflight.Group
	analysisTimeout time.Duration
	now             func() time.Time
	newID           func() string
}

func NewTrackerService(
	songs SongRegistry,
	videos VideoLedger,
	analyzer Analyzer,
	resolver *matcher.Resolver,
	publisher Publisher,
	logger *slog.Logger,
) *TrackerService {
	return &TrackerService{
		songs:     songs,
		videos:    videos,
		analyzer:  analyzer,
		resolver:  resolver,
		publisher: publisher,
		logger:    logger.With("component", "tracker", "oracle", analyzer.Name()),

		analysisTimeout: defaultAnalysisTimeout,
		now:             time.Now,
		newID:           uuid.NewString,
	}
}

// SetAnalysisTimeout bounds a single shared oracle call, retries included.
func (s *TrackerService) SetAnalysisTimeout(d time.Duration) {
	if d > 0 {
		s.analysisTimeout = d
	}
}

// NewSong is the admin input for registering a song. Zero values pick the
// catalog defaults.
type NewSong struct {
	URL      string
	Title    string
	Artist   string
	Type     domain.RevenueType
	Rate     *float64
	Currency string
}

type SubmitResult struct {
	Video   domain.Video
	IsNew   bool
	Warning string
}

// ReviewItem is a pending match together with the song it points at.
// AssetMissing is set when that song has since been removed.
type ReviewItem struct {
	Video        domain.Video `json:"video"`
	Song         *domain.Song `json:"song,omitempty"`
	AssetMissing bool         `json:"asset_missing"`
}

func (s *TrackerService) AddSong(in NewSong) (domain.Song, error) {
	in.URL = strings.TrimSpace(in.URL)
	in.Title = strings.TrimSpace(in.Title)
	if in.URL == "" || in.Title == "" {
		return domain.Song{}, domain.ErrInvalidSong
	}

	model := domain.RevenueModel{
		Type:     in.Type,
		Rate:     domain.DefaultRate,
		Currency: in.Currency,
	}
	if model.Type == "" {
		model.Type = domain.RevenuePer1kViews
	}
	if model.Currency == "" {
		model.Currency = domain.DefaultCurrency
	}
	if in.Rate != nil {
		if *in.Rate < 0 {
			return domain.Song{}, domain.ErrInvalidRate
		}
		model.Rate = *in.Rate
	}

	artist := strings.TrimSpace(in.Artist)
	if artist == "" {
		artist = domain.DefaultArtist
	}

	id, ok := matcher.ExtractID(in.URL)
	if !ok {
		id = strconv.FormatInt(s.now().UnixMilli(), 10)
	}

	song := domain.Song{
		ID:           id,
		URL:          in.URL,
		Title:        in.Title,
		Artist:       artist,
		RevenueModel: model,
	}

	s.mu.Lock()
	err := s.songs.Add(song)
	s.mu.Unlock()
	if err != nil {
		return domain.Song{}, fmt.Errorf("add song %s: %w", id, err)
	}

	s.logger.Info("song registered",
		"song_id", song.ID,
		"title", song.Title,
		"revenue_type", model.Type,
		"rate", model.Rate,
		"currency", model.Currency,
	)
	return song, nil
}

func (s *TrackerService) RemoveSong(id string) bool {
	s.mu.Lock()
	removed := s.songs.Remove(id)
	s.mu.Unlock()

	if removed {
		s.logger.Info("song removed", "song_id", id)
	}
	return removed
}

func (s *TrackerService) Songs() []domain.Song {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.songs.List()
}

// LookupSong reports false when the id no longer resolves; callers render
// that as a missing asset reference.
func (s *TrackerService) LookupSong(id string) (domain.Song, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.songs.Get(id)
}

// Submit analyzes videoURL, matches it against the registry and records it.
// A missing oracle credential, a cancelled caller or an oracle call that was
// cancelled or timed out fails the submission without touching the ledger;
// any other oracle failure is recorded with a neutral analysis and a warning.
func (s *TrackerService) Submit(ctx context.Context, videoURL string) (*SubmitResult, error) {
	videoURL = strings.TrimSpace(videoURL)
	if videoURL == "" {
		return nil, domain.ErrInvalidVideo
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("analyze video: %w", err)
	}

	analysis, warning, err := s.analyze(ctx, videoURL)
	if err != nil {
		return nil, fmt.Errorf("analyze video: %w", err)
	}

	s.mu.Lock()
	match := s.resolver.Resolve(analysis, s.songs.List(), videoURL)

	var revenue float64
	if match.IsMatch {
		if song, ok := s.songs.Get(match.SongID); ok {
			revenue = song.RevenueModel.Compute(analysis.Metrics)
		}
	}

	status := domain.StatusRejected
	if match.IsMatch {
		status = domain.StatusPending
	}

	video := domain.Video{
		ID:               s.newID(),
		URL:              videoURL,
		Author:           analysis.Author,
		Description:      analysis.Description,
		Metrics:          analysis.Metrics,
		UsedSongURL:      match.DetectedSongURL,
		MatchedSongID:    match.SongID,
		IsMatch:          match.IsMatch,
		MatchConfidence:  match.Confidence,
		Status:           status,
		EstimatedRevenue: revenue,
		LastUpdated:      s.now(),
	}
	isNew := s.videos.Upsert(video)
	s.mu.Unlock()

	action := domain.ActionUpdate
	if isNew {
		action = domain.ActionCreate
	}
	s.publish(ctx, &video, action)

	s.logger.Info("video tracked",
		"video_id", video.ID,
		"url", video.URL,
		"is_new", isNew,
		"is_match", video.IsMatch,
		"song_id", video.MatchedSongID,
		"status", video.Status,
		"estimated_revenue", video.EstimatedRevenue,
	)

	return &SubmitResult{Video: video, IsNew: isNew, Warning: warning}, nil
}

// analyze shares one oracle call between concurrent submissions of the same
// URL. The shared call is detached from any single caller's cancellation and
// bounded by analysisTimeout; each caller still stops waiting when its own
// ctx ends.
func (s *TrackerService) analyze(ctx context.Context, videoURL string) (domain.AnalysisResult, string, error) {
	ch := s.inflight.DoChan(videoURL, func() (any, error) {
		callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.analysisTimeout)
		defer cancel()
		return s.analyzer.Analyze(callCtx, videoURL)
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return domain.AnalysisResult{}, "", ctx.Err()
	case res = <-ch:
	}
	if res.Shared {
		s.logger.Debug("shared in-flight analysis", "url", videoURL)
	}

	err := res.Err
	if err == nil {
		if result, ok := res.Val.(*domain.AnalysisResult); ok && result != nil {
			return *result, "", nil
		}
		err = domain.ErrEmptyResponse
	}

	// these leave no record; a neutral result would overwrite a good one
	if errors.Is(err, domain.ErrMissingCredential) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) {
		return domain.AnalysisResult{}, "", err
	}

	s.logger.Warn("analysis failed, using neutral result", "url", videoURL, "error", err)
	return *domain.NeutralAnalysis(), analysisFailedWarning, nil
}

// Review applies an admin decision. Unknown video ids are ignored.
func (s *TrackerService) Review(ctx context.Context, videoID string, decision domain.VideoStatus) error {
	if !decision.IsReviewDecision() {
		return domain.ErrInvalidDecision
	}

	s.mu.Lock()
	video, ok := s.videos.Review(videoID, decision, s.now())
	s.mu.Unlock()

	if !ok {
		s.logger.Debug("review ignored, unknown video", "video_id", videoID)
		return nil
	}

	s.publish(ctx, &video, domain.ActionReview)
	s.logger.Info("video reviewed",
		"video_id", video.ID,
		"status", video.Status,
		"estimated_revenue", video.EstimatedRevenue,
	)
	return nil
}

func (s *TrackerService) Videos() []domain.Video {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.videos.List()
}

func (s *TrackerService) Video(id string) (domain.Video, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.videos.Get(id)
}

func (s *TrackerService) ReviewQueue() []ReviewItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	pending := stats.PendingReview(s.videos.List())
	items := make([]ReviewItem, 0, len(pending))
	for _, v := range pending {
		item := ReviewItem{Video: v}
		if song, ok := s.songs.Get(v.MatchedSongID); ok {
			item.Song = &song
		} else {
			item.AssetMissing = true
		}
		items = append(items, item)
	}
	return items
}

func (s *TrackerService) Dashboard() domain.Dashboard {
	s.mu.Lock()
	videos := s.videos.List()
	s.mu.Unlock()

	return domain.Dashboard{
		Stats:            stats.Aggregate(videos),
		PendingApprovals: len(stats.PendingReview(videos)),
	}
}

func (s *TrackerService) TopVideos(n int) []domain.Video {
	return stats.TopByViews(s.Videos(), n)
}

// Report returns a fresh dashboard snapshot for the periodic reporter.
func (s *TrackerService) Report(ctx context.Context) (*domain.Dashboard, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d := s.Dashboard()
	return &d, nil
}

func (s *TrackerService) publish(ctx context.Context, video *domain.Video, action domain.EventAction) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, video, action); err != nil {
		s.logger.Error("publish video event failed",
			"video_id", video.ID,
			"action", action,
			"error", err,
		)
	}
}
