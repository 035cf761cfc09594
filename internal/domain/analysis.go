package domain

const (
	UnknownAuthor     = "@unknown"
	FailedDescription = "Failed to analyze content"
	DefaultConfidence = 0.5
)

// AnalysisResult is what the analysis oracle reports for a video URL.
type AnalysisResult struct {
	Metrics         EngagementMetrics
	Author          string
	Description     string
	DetectedSongURL string
	MatchConfidence float64
}

// NeutralAnalysis is substituted when the oracle cannot produce a result.
func NeutralAnalysis() *AnalysisResult {
	return &AnalysisResult{
		Author:      UnknownAuthor,
		Description: FailedDescription,
	}
}

// Normalize clamps oracle output into the ranges the rest of the system
// relies on: non-negative counters and a confidence in [0, 1].
func (a AnalysisResult) Normalize() AnalysisResult {
	a.Metrics.Views = max(a.Metrics.Views, 0)
	a.Metrics.Likes = max(a.Metrics.Likes, 0)
	a.Metrics.Comments = max(a.Metrics.Comments, 0)
	a.Metrics.Shares = max(a.Metrics.Shares, 0)
	a.MatchConfidence = min(max(a.MatchConfidence, 0), 1)
	return a
}
