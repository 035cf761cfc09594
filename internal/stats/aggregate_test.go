package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ugc_tracker/internal/domain"
)

func ledger() []domain.Video {
	return []domain.Video{
		{
			ID: "approved", IsMatch: true, Status: domain.StatusApproved, EstimatedRevenue: 100,
			Metrics: domain.EngagementMetrics{Views: 1000, Likes: 10, Comments: 1, Shares: 2},
		},
		{
			ID: "pending", IsMatch: true, Status: domain.StatusPending, EstimatedRevenue: 40,
			Metrics: domain.EngagementMetrics{Views: 500, Likes: 5, Comments: 2, Shares: 1},
		},
		{
			ID: "auto-rejected", IsMatch: false, Status: domain.StatusRejected,
			Metrics: domain.EngagementMetrics{Views: 300, Likes: 3, Shares: 3},
		},
		{
			ID: "admin-rejected", IsMatch: true, Status: domain.StatusRejected, EstimatedRevenue: 70,
			Metrics: domain.EngagementMetrics{Views: 700, Likes: 7, Shares: 0},
		},
	}
}

func TestAggregate(t *testing.T) {
	got := Aggregate(ledger())

	assert.Equal(t, domain.Stats{
		Views:          2500,
		Likes:          25,
		Shares:         6,
		MatchedCount:   3,
		Revenue:        100,
		PendingRevenue: 40,
	}, got)
}

func TestAggregate_Empty(t *testing.T) {
	assert.Equal(t, domain.Stats{}, Aggregate(nil))
}

func TestAggregate_ViewsIndependentOfStatus(t *testing.T) {
	videos := ledger()
	var want int64
	for _, v := range videos {
		want += v.Metrics.Views
	}

	for _, status := range []domain.VideoStatus{domain.StatusPending, domain.StatusApproved, domain.StatusRejected} {
		for i := range videos {
			videos[i].Status = status
		}
		assert.Equal(t, want, Aggregate(videos).Views, "status %s", status)
	}
}

func TestAggregate_UnmatchedPendingDoesNotCount(t *testing.T) {
	videos := []domain.Video{
		{Status: domain.StatusPending, IsMatch: false, EstimatedRevenue: 10},
	}

	assert.Zero(t, Aggregate(videos).PendingRevenue)
}

func TestPendingReview(t *testing.T) {
	got := PendingReview(ledger())

	assert.Len(t, got, 1)
	assert.Equal(t, "pending", got[0].ID)
	assert.Empty(t, PendingReview(nil))
}

func TestTopByViews(t *testing.T) {
	videos := ledger()
	videos = append(videos, domain.Video{ID: "tie", Metrics: domain.EngagementMetrics{Views: 700}})

	top := TopByViews(videos, 3)

	ids := make([]string, len(top))
	for i, v := range top {
		ids[i] = v.ID
	}
	assert.Equal(t, []string{"approved", "admin-rejected", "tie"}, ids)
	assert.Equal(t, "approved", videos[0].ID, "input must not be reordered")
}

func TestTopByViews_Bounds(t *testing.T) {
	assert.Len(t, TopByViews(ledger(), 10), 4)
	assert.Nil(t, TopByViews(ledger(), 0))
	assert.Empty(t, TopByViews(nil, 5))
}
