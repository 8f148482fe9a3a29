// Package types defines the shared data structures passed between the
// research, strategy, orchestration, and pipeline packages.
package types

import "time"

// ResearchTopic is a candidate topic discovered during one research cycle.
// It is ephemeral: created by the research aggregator, scored, ranked, and
// discarded once the strategy planner has selected from it.
//
// AudienceMatch, ExpertiseMatch, and ContentPotential are zero until the
// scorer has run; topics must not be ranked before all three are populated.
type ResearchTopic struct {
	Title         string    `json:"title"`
	URL           string    `json:"url"`
	Source        string    `json:"source"`
	Category      string    `json:"category"`
	TrendingScore float64   `json:"trending_score"`
	PublishDate   time.Time `json:"publish_date"` // always UTC; normalized at the source boundary
	Keywords      []string  `json:"keywords"`

	AudienceMatch    float64 `json:"audience_match"`
	ExpertiseMatch   float64 `json:"expertise_match"`
	ContentPotential float64 `json:"content_potential"`

	// RawData preserves the original source payload for debugging and audit.
	RawData map[string]any `json:"raw_data,omitempty"`
}
