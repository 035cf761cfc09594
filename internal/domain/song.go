package domain

type RevenueType string

const (
	RevenuePer1kViews RevenueType = "flat_per_1k_views"
	RevenuePerPost    RevenueType = "flat_per_post"
)

const (
	DefaultArtist   = "Unknown Artist"
	DefaultRate     = 5000
	DefaultCurrency = "IDR"
)

// RevenueModel is the royalty rule attached to a song.
type RevenueModel struct {
	Type     RevenueType `json:"type" yaml:"type"`
	Rate     float64     `json:"rate" yaml:"rate"`
	Currency string      `json:"currency" yaml:"currency"`
}

type Song struct {
	ID           string       `json:"id" yaml:"id"`
	URL          string       `json:"url" yaml:"url"`
	Title        string       `json:"title" yaml:"title"`
	Artist       string       `json:"artist" yaml:"artist"`
	RevenueModel RevenueModel `json:"revenue_model" yaml:"revenue_model"`
}
