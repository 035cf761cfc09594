package matcher

import (
	"strings"

	"ugc_tracker/internal/domain"
)

const (
	DemoVideoMarker = "7567176948867255559"
	DemoSongID      = "7565837379473229825"
	DemoConfidence  = 0.98
)

// DemoFallback forces a known viral video onto a known registered song so the
// demo scenario resolves the same way every run, whatever the oracle says.
// It is scaffolding, not a matching strategy.
type DemoFallback struct {
	VideoMarker string
	SongID      string
	Confidence  float64
}

// DefaultDemoFallback returns the rule seeded for the bundled demo catalog.
func DefaultDemoFallback() *DemoFallback {
	return &DemoFallback{
		VideoMarker: DemoVideoMarker,
		SongID:      DemoSongID,
		Confidence:  DemoConfidence,
	}
}

// Apply overrides m when videoURL carries the marker and the song is
// registered. It reports whether the override happened.
func (f *DemoFallback) Apply(videoURL string, songs []domain.Song, m *domain.Match) bool {
	if f == nil || f.VideoMarker == "" || !strings.Contains(videoURL, f.VideoMarker) {
		return false
	}
	for _, song := range songs {
		if song.ID != f.SongID {
			continue
		}
		m.IsMatch = true
		m.SongID = song.ID
		m.DetectedSongURL = song.URL
		m.Confidence = f.Confidence
		return true
	}
	return false
}
