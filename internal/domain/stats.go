package domain

// Stats holds dashboard totals folded over the video ledger.
type Stats struct {
	Views          int64   `json:"views"`
	Likes          int64   `json:"likes"`
	Shares         int64   `json:"shares"`
	MatchedCount   int     `json:"matched_count"`
	Revenue        float64 `json:"revenue"`
	PendingRevenue float64 `json:"pending_revenue"`
}

// Dashboard is the snapshot served to the creator and admin overviews.
type Dashboard struct {
	Stats
	PendingApprovals int `json:"pending_approvals"`
}
