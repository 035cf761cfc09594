// Package source holds the wire shape shared by the analysis oracles.
package source

import (
	"encoding/json"
	"fmt"
	"strings"

	"ugc_tracker/internal/domain"
)

// Response is the JSON document an analysis oracle returns for a video.
type Response struct {
	Metrics         Metrics `json:"metrics"`
	Author          string  `json:"author"`
	Description     string  `json:"description"`
	DetectedSongURL string  `json:"detectedSongUrl"`
	MatchConfidence float64 `json:"matchConfidence"`
}

type Metrics struct {
	Views    int64 `json:"views"`
	Likes    int64 `json:"likes"`
	Comments int64 `json:"comments"`
	Shares   int64 `json:"shares"`
}

// Decode parses an oracle JSON payload into a normalized analysis result.
func Decode(text string) (*domain.AnalysisResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domain.ErrEmptyResponse
	}

	var resp Response
	if err := json.Unmarshal([]byte(text), &resp); err != nil {
		return nil, fmt.Errorf("decode analysis: %w", err)
	}

	result := resp.ToDomain()
	return &result, nil
}

func (r Response) ToDomain() domain.AnalysisResult {
	return domain.AnalysisResult{
		Metrics: domain.EngagementMetrics{
			Views:    r.Metrics.Views,
			Likes:    r.Metrics.Likes,
			Comments: r.Metrics.Comments,
			Shares:   r.Metrics.Shares,
		},
		Author:          r.Author,
		Description:     r.Description,
		DetectedSongURL: strings.TrimSpace(r.DetectedSongURL),
		MatchConfidence: r.MatchConfidence,
	}.Normalize()
}
