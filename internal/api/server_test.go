package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ugc_tracker/internal/config"
	"ugc_tracker/internal/domain"
	"ugc_tracker/internal/matcher"
	"ugc_tracker/internal/service"
	"ugc_tracker/internal/storage/memory"
)

const (
	viralVideo   = "https://www.tiktok.com/@viral/video/7567176948867255559"
	regularVideo = "https://www.tiktok.com/@someone/video/1111111111111111111"
)

type stubAnalyzer struct {
	results map[string]*domain.AnalysisResult
	err     error
}

func (a *stubAnalyzer) Name() string { return "stub" }

func (a *stubAnalyzer) Analyze(_ context.Context, videoURL string) (*domain.AnalysisResult, error) {
	if a.err != nil {
		return nil, a.err
	}
	if res, ok := a.results[videoURL]; ok {
		return res, nil
	}
	return &domain.AnalysisResult{Author: "@someone"}, nil
}

type testServer struct {
	t        *testing.T
	server   *Server
	analyzer *stubAnalyzer
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	analyzer := &stubAnalyzer{results: map[string]*domain.AnalysisResult{
		viralVideo: {
			Metrics: domain.EngagementMetrics{Views: 1_200_000, Likes: 150_000, Shares: 8_000},
			Author:  "@viral",
		},
	}}

	tracker := service.NewTrackerService(
		memory.NewSongRegistry(config.DemoSong()),
		memory.NewVideoLedger(),
		analyzer,
		matcher.NewResolver(matcher.DefaultDemoFallback(), logger),
		nil,
		logger,
	)

	return &testServer{
		t:        t,
		server:   NewServer(tracker, []string{"*"}, logger),
		analyzer: analyzer,
	}
}

func (ts *testServer) do(method, path string, body any) *httptest.ResponseRecorder {
	ts.t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(ts.t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	ts.server.ServeHTTP(rec, req)
	return rec
}

type envelope[T any] struct {
	Success bool              `json:"success"`
	Data    T                 `json:"data"`
	Error   string            `json:"error"`
	Details map[string]string `json:"details"`
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) envelope[T] {
	t.Helper()
	var env envelope[T]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}

func TestHealthCheck(t *testing.T) {
	ts := setupTestServer(t)

	rec := ts.do(http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	env := decode[map[string]string](t, rec)
	assert.True(t, env.Success)
	assert.Equal(t, "healthy", env.Data["status"])
}

func TestCreateSong(t *testing.T) {
	ts := setupTestServer(t)

	rec := ts.do(http.MethodPost, "/api/v1/songs", map[string]any{
		"url":   "https://www.tiktok.com/music/New-Track-424242",
		"title": "New Track",
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	env := decode[domain.Song](t, rec)
	assert.True(t, env.Success)
	assert.Equal(t, "424242", env.Data.ID)
	assert.Equal(t, domain.DefaultArtist, env.Data.Artist)
	assert.Equal(t, domain.RevenueModel{
		Type:     domain.RevenuePer1kViews,
		Rate:     domain.DefaultRate,
		Currency: domain.DefaultCurrency,
	}, env.Data.RevenueModel)

	list := decode[[]domain.Song](t, ts.do(http.MethodGet, "/api/v1/songs", nil))
	assert.Len(t, list.Data, 2)
}

func TestCreateSong_Duplicate(t *testing.T) {
	ts := setupTestServer(t)

	rec := ts.do(http.MethodPost, "/api/v1/songs", map[string]any{
		"url":   "https://www.tiktok.com/music/Astagfirullah-7565837379473229825",
		"title": "Again",
	})

	assert.Equal(t, http.StatusConflict, rec.Code)
	env := decode[any](t, rec)
	assert.False(t, env.Success)
	assert.NotEmpty(t, env.Error)
}

func TestCreateSong_Validation(t *testing.T) {
	ts := setupTestServer(t)

	rec := ts.do(http.MethodPost, "/api/v1/songs", map[string]any{
		"url": "not a url",
		"revenue_model": map[string]any{
			"type": "per_stream",
			"rate": -10,
		},
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decode[any](t, rec)
	assert.Equal(t, "validation failed", env.Error)
	assert.Equal(t, "must be a valid URL", env.Details["url"])
	assert.Equal(t, "is required", env.Details["title"])
	assert.Contains(t, env.Details, "revenue_model.type")
	assert.Contains(t, env.Details, "revenue_model.rate")
}

func TestCreateSong_InvalidBody(t *testing.T) {
	ts := setupTestServer(t)

	rec := ts.do(http.MethodPost, "/api/v1/songs", "{not json")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid request body", decode[any](t, rec).Error)
}

func TestGetAndDeleteSong(t *testing.T) {
	ts := setupTestServer(t)
	path := "/api/v1/songs/" + matcher.DemoSongID

	rec := ts.do(http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, matcher.DemoSongID, decode[domain.Song](t, rec).Data.ID)

	rec = ts.do(http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = ts.do(http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "asset reference missing", decode[any](t, rec).Error)

	rec = ts.do(http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSubmitVideo_CreateThenUpdate(t *testing.T) {
	ts := setupTestServer(t)

	rec := ts.do(http.MethodPost, "/api/v1/videos", map[string]string{"url": viralVideo})

	require.Equal(t, http.StatusCreated, rec.Code)
	env := decode[SubmitVideoResponse](t, rec)
	assert.True(t, env.Data.IsNew)
	assert.Empty(t, env.Data.Warning)
	assert.True(t, env.Data.Video.IsMatch)
	assert.Equal(t, matcher.DemoSongID, env.Data.Video.MatchedSongID)
	assert.Equal(t, 0.98, env.Data.Video.MatchConfidence)
	assert.Equal(t, 6_000_000.0, env.Data.Video.EstimatedRevenue)
	assert.Equal(t, domain.StatusPending, env.Data.Video.Status)

	rec = ts.do(http.MethodPost, "/api/v1/videos", map[string]string{"url": viralVideo})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decode[SubmitVideoResponse](t, rec).Data.IsNew)

	list := decode[[]domain.Video](t, ts.do(http.MethodGet, "/api/v1/videos", nil))
	require.Len(t, list.Data, 1)

	rec = ts.do(http.MethodGet, "/api/v1/videos/"+list.Data[0].ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, viralVideo, decode[domain.Video](t, rec).Data.URL)

	rec = ts.do(http.MethodGet, "/api/v1/videos/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSubmitVideo_OracleFailureRecordsWarning(t *testing.T) {
	ts := setupTestServer(t)
	ts.analyzer.err = errors.New("quota exceeded")

	rec := ts.do(http.MethodPost, "/api/v1/videos", map[string]string{"url": regularVideo})

	require.Equal(t, http.StatusCreated, rec.Code)
	env := decode[SubmitVideoResponse](t, rec)
	assert.NotEmpty(t, env.Data.Warning)
	assert.Equal(t, domain.UnknownAuthor, env.Data.Video.Author)
	assert.Equal(t, domain.StatusRejected, env.Data.Video.Status)
}

func TestSubmitVideo_MissingCredential(t *testing.T) {
	ts := setupTestServer(t)
	ts.analyzer.err = domain.ErrMissingCredential

	rec := ts.do(http.MethodPost, "/api/v1/videos", map[string]string{"url": regularVideo})

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "failed to analyze video", decode[any](t, rec).Error)

	list := decode[[]domain.Video](t, ts.do(http.MethodGet, "/api/v1/videos", nil))
	assert.Empty(t, list.Data)
}

func TestSubmitVideo_Validation(t *testing.T) {
	ts := setupTestServer(t)

	rec := ts.do(http.MethodPost, "/api/v1/videos", map[string]string{})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "is required", decode[any](t, rec).Details["url"])

	rec = ts.do(http.MethodPost, "/api/v1/videos", map[string]string{"url": "https://x/" + strings.Repeat("a", 2048)})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "must not exceed 2048 characters", decode[any](t, rec).Details["url"])
}

func TestSubmitVideo_SchemelessShareLink(t *testing.T) {
	ts := setupTestServer(t)

	rec := ts.do(http.MethodPost, "/api/v1/videos", map[string]string{
		"url": "www.tiktok.com/@x/video/7567176948867255559",
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	env := decode[SubmitVideoResponse](t, rec)
	assert.True(t, env.Data.IsNew)
	assert.True(t, env.Data.Video.IsMatch)
	assert.Equal(t, "7565837379473229825", env.Data.Video.MatchedSongID)
	assert.Equal(t, domain.StatusPending, env.Data.Video.Status)
	assert.Equal(t, "www.tiktok.com/@x/video/7567176948867255559", env.Data.Video.URL)
}

func TestListVideos_NewestFirst(t *testing.T) {
	ts := setupTestServer(t)

	ts.do(http.MethodPost, "/api/v1/videos", map[string]string{"url": viralVideo})
	ts.do(http.MethodPost, "/api/v1/videos", map[string]string{"url": regularVideo})

	env := decode[[]domain.Video](t, ts.do(http.MethodGet, "/api/v1/videos", nil))

	require.Len(t, env.Data, 2)
	assert.Equal(t, regularVideo, env.Data[0].URL)
	assert.Equal(t, viralVideo, env.Data[1].URL)
}

func TestReviewFlow(t *testing.T) {
	ts := setupTestServer(t)

	submitted := decode[SubmitVideoResponse](t,
		ts.do(http.MethodPost, "/api/v1/videos", map[string]string{"url": viralVideo}))
	ts.do(http.MethodPost, "/api/v1/videos", map[string]string{"url": regularVideo})

	queue := decode[[]service.ReviewItem](t, ts.do(http.MethodGet, "/api/v1/review/queue", nil))
	require.Len(t, queue.Data, 1)
	assert.Equal(t, submitted.Data.Video.ID, queue.Data[0].Video.ID)
	assert.False(t, queue.Data[0].AssetMissing)

	stats := decode[domain.Dashboard](t, ts.do(http.MethodGet, "/api/v1/stats", nil))
	assert.Equal(t, 6_000_000.0, stats.Data.PendingRevenue)
	assert.Equal(t, 1, stats.Data.PendingApprovals)

	rec := ts.do(http.MethodPost, "/api/v1/videos/"+submitted.Data.Video.ID+"/review",
		map[string]string{"decision": "approved"})
	assert.Equal(t, http.StatusNoContent, rec.Code)

	stats = decode[domain.Dashboard](t, ts.do(http.MethodGet, "/api/v1/stats", nil))
	assert.Equal(t, 6_000_000.0, stats.Data.Revenue)
	assert.Zero(t, stats.Data.PendingRevenue)
	assert.Zero(t, stats.Data.PendingApprovals)
	assert.Equal(t, int64(1_200_000), stats.Data.Views)

	queue = decode[[]service.ReviewItem](t, ts.do(http.MethodGet, "/api/v1/review/queue", nil))
	assert.Empty(t, queue.Data)
}

func TestReview_InvalidDecision(t *testing.T) {
	ts := setupTestServer(t)

	rec := ts.do(http.MethodPost, "/api/v1/videos/abc/review", map[string]string{"decision": "change_requested"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "must be one of: approved rejected", decode[any](t, rec).Details["decision"])
}

func TestReview_UnknownVideo(t *testing.T) {
	ts := setupTestServer(t)

	rec := ts.do(http.MethodPost, "/api/v1/videos/missing/review", map[string]string{"decision": "rejected"})

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestReviewQueue_AssetMissing(t *testing.T) {
	ts := setupTestServer(t)

	ts.do(http.MethodPost, "/api/v1/videos", map[string]string{"url": viralVideo})
	ts.do(http.MethodDelete, "/api/v1/songs/"+matcher.DemoSongID, nil)

	queue := decode[[]service.ReviewItem](t, ts.do(http.MethodGet, "/api/v1/review/queue", nil))
	require.Len(t, queue.Data, 1)
	assert.True(t, queue.Data[0].AssetMissing)
	assert.Nil(t, queue.Data[0].Song)

	rec := ts.do(http.MethodGet, "/api/v1/stats", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestTopVideos(t *testing.T) {
	ts := setupTestServer(t)
	ts.analyzer.results[regularVideo] = &domain.AnalysisResult{Metrics: domain.EngagementMetrics{Views: 10}}

	ts.do(http.MethodPost, "/api/v1/videos", map[string]string{"url": regularVideo})
	ts.do(http.MethodPost, "/api/v1/videos", map[string]string{"url": viralVideo})

	env := decode[[]domain.Video](t, ts.do(http.MethodGet, "/api/v1/stats/top?limit=1", nil))
	require.Len(t, env.Data, 1)
	assert.Equal(t, viralVideo, env.Data[0].URL)

	env = decode[[]domain.Video](t, ts.do(http.MethodGet, "/api/v1/stats/top", nil))
	assert.Len(t, env.Data, 2)

	rec := ts.do(http.MethodGet, "/api/v1/stats/top?limit=zero", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEmptyListsAreArrays(t *testing.T) {
	ts := setupTestServer(t)

	for _, path := range []string{"/api/v1/videos", "/api/v1/stats/top", "/api/v1/review/queue"} {
		rec := ts.do(http.MethodGet, path, nil)
		assert.JSONEq(t, `{"success":true,"data":[]}`, rec.Body.String(), path)
	}
}
