// Package matcher decides whether a submitted video uses a registered song.
//
// Matching compares the numeric identifier embedded in the detected audio URL
// against the registry; there is no acoustic fingerprinting.
package matcher

import (
	"log/slog"
	"strings"

	"ugc_tracker/internal/domain"
)

type Resolver struct {
	fallback *DemoFallback
	logger   *slog.Logger
}

// NewResolver builds a resolver. fallback may be nil to disable the demo rule.
func NewResolver(fallback *DemoFallback, logger *slog.Logger) *Resolver {
	return &Resolver{
		fallback: fallback,
		logger:   logger.With("component", "matcher"),
	}
}

// Resolve matches analysis against songs, which must be in registry
// insertion order; the first hit wins.
func (r *Resolver) Resolve(analysis domain.AnalysisResult, songs []domain.Song, videoURL string) domain.Match {
	m := domain.Match{
		DetectedSongURL: analysis.DetectedSongURL,
		Confidence:      analysis.MatchConfidence,
	}

	if analysis.DetectedSongURL != "" {
		if id, ok := ExtractID(analysis.DetectedSongURL); ok {
			if song, found := findSong(songs, id); found {
				m.IsMatch = true
				m.SongID = song.ID
			}
		} else {
			r.logger.Debug("no song id in detected audio url", "detected_song_url", analysis.DetectedSongURL)
		}
	}

	if r.fallback.Apply(videoURL, songs, &m) {
		r.logger.Debug("demo fallback applied", "video_url", videoURL, "song_id", m.SongID)
	}

	if m.Confidence == 0 {
		m.Confidence = domain.DefaultConfidence
	}

	return m
}

func findSong(songs []domain.Song, id string) (domain.Song, bool) {
	for _, s := range songs {
		if s.ID == id || strings.Contains(s.URL, id) {
			return s, true
		}
	}
	return domain.Song{}, false
}
