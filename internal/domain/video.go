package domain

import "time"

type VideoStatus string

const (
	StatusPending   VideoStatus = "pending"
	StatusApproved  VideoStatus = "approved"
	StatusRejected  VideoStatus = "rejected"
	StatusChangeReq VideoStatus = "change_requested" // declared, no transition produces it
)

// IsReviewDecision reports whether s can be applied by an admin review.
func (s VideoStatus) IsReviewDecision() bool {
	return s == StatusApproved || s == StatusRejected
}

type EngagementMetrics struct {
	Views    int64 `json:"views"`
	Likes    int64 `json:"likes"`
	Comments int64 `json:"comments"`
	Shares   int64 `json:"shares"`
}

// Video is a tracked piece of content. URL is the natural key.
type Video struct {
	ID               string            `json:"id"`
	URL              string            `json:"url"`
	Author           string            `json:"author"`
	Description      string            `json:"description"`
	Metrics          EngagementMetrics `json:"metrics"`
	UsedSongURL      string            `json:"used_song_url,omitempty"`
	MatchedSongID    string            `json:"matched_song_id,omitempty"`
	IsMatch          bool              `json:"is_match"`
	MatchConfidence  float64           `json:"match_confidence"`
	Status           VideoStatus       `json:"status"`
	EstimatedRevenue float64           `json:"estimated_revenue"`
	LastUpdated      time.Time         `json:"last_updated"`
}

// Match is the outcome of resolving an analysis against the song registry.
type Match struct {
	IsMatch         bool
	SongID          string
	Confidence      float64
	DetectedSongURL string
}
