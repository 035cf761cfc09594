package memory

import (
	"slices"
	"time"

	"ugc_tracker/internal/domain"
)

// VideoLedger keeps tracked videos in submission order, keyed by URL.
type VideoLedger struct {
	videos []domain.Video
	byURL  map[string]int
}

func NewVideoLedger() *VideoLedger {
	return &VideoLedger{byURL: make(map[string]int)}
}

// Upsert replaces the record with the same URL wholesale, keeping its
// position, or appends a new one. It reports whether the record is new.
func (l *VideoLedger) Upsert(video domain.Video) bool {
	if i, ok := l.byURL[video.URL]; ok {
		l.videos[i] = video
		return false
	}
	l.byURL[video.URL] = len(l.videos)
	l.videos = append(l.videos, video)
	return true
}

// Review sets status and lastUpdated on the video with id, leaving every
// other field alone. Unknown ids are ignored.
func (l *VideoLedger) Review(id string, status domain.VideoStatus, at time.Time) (domain.Video, bool) {
	i := l.indexOf(id)
	if i < 0 {
		return domain.Video{}, false
	}
	l.videos[i].Status = status
	l.videos[i].LastUpdated = at
	return l.videos[i], true
}

func (l *VideoLedger) Get(id string) (domain.Video, bool) {
	i := l.indexOf(id)
	if i < 0 {
		return domain.Video{}, false
	}
	return l.videos[i], true
}

// List returns a copy of the ledger in insertion order.
func (l *VideoLedger) List() []domain.Video {
	return slices.Clone(l.videos)
}

func (l *VideoLedger) indexOf(id string) int {
	return slices.IndexFunc(l.videos, func(v domain.Video) bool { return v.ID == id })
}
