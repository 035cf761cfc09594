// Package stats derives dashboard figures from the video ledger.
package stats

import (
	"cmp"
	"slices"

	"ugc_tracker/internal/domain"
)

// Aggregate folds the ledger into dashboard totals. Engagement counts every
// record; revenue only counts approved ones and pending revenue only counts
// matched records still awaiting review.
func Aggregate(videos []domain.Video) domain.Stats {
	var st domain.Stats
	for _, v := range videos {
		switch {
		case v.Status == domain.StatusApproved:
			st.Revenue += v.EstimatedRevenue
		case v.Status == domain.StatusPending && v.IsMatch:
			st.PendingRevenue += v.EstimatedRevenue
		}

		st.Views += v.Metrics.Views
		st.Likes += v.Metrics.Likes
		st.Shares += v.Metrics.Shares
		if v.IsMatch {
			st.MatchedCount++
		}
	}
	return st
}

// PendingReview returns matched videos awaiting an admin decision, in
// ledger order.
func PendingReview(videos []domain.Video) []domain.Video {
	var out []domain.Video
	for _, v := range videos {
		if v.IsMatch && v.Status == domain.StatusPending {
			out = append(out, v)
		}
	}
	return out
}

// TopByViews returns up to n videos with the most views. Ties keep ledger order.
func TopByViews(videos []domain.Video, n int) []domain.Video {
	if n <= 0 {
		return nil
	}
	sorted := slices.Clone(videos)
	slices.SortStableFunc(sorted, func(a, b domain.Video) int {
		return cmp.Compare(b.Metrics.Views, a.Metrics.Views)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
