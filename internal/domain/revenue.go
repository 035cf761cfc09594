package domain

// Compute returns the royalty owed for the given engagement.
//
// flat_per_1k_views pays rate per thousand views, prorated and unrounded.
// flat_per_post has no computation path yet and yields 0, as does any
// unknown rule type.
func (m RevenueModel) Compute(metrics EngagementMetrics) float64 {
	switch m.Type {
	case RevenuePer1kViews:
		return float64(metrics.Views) / 1000 * m.Rate
	default:
		return 0
	}
}
