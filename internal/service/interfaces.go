package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"time"

	"ugc_tracker/internal/domain"
)

type SongRegistry interface {
	Add(song domain.Song) error
	Remove(id string) bool
	Get(id string) (domain.Song, bool)
	List() []domain.Song
}

type VideoLedger interface {
	Upsert(video domain.Video) bool
	Review(id string, status domain.VideoStatus, at time.Time) (domain.Video, bool)
	Get(id string) (domain.Video, bool)
	List() []domain.Video
}

type Analyzer interface {
	Name() string
	Analyze(ctx context.Context, videoURL string) (*domain.AnalysisResult, error)
}

type Publisher interface {
	Publish(ctx context.Context, video *domain.Video, action domain.EventAction) error
	Close() error
}
