// Package scoring computes content-potential scores for research topics.
// Scoring is a pure function over already-fetched data: malformed input
// degrades to zero or neutral sub-scores, it never returns an error.
package scoring

import (
	"strings"
	"time"

	"github.com/jonathan/talent-manager/internal/specialization"
	"github.com/jonathan/talent-manager/internal/types"
)

// Weights for the content potential composite. Fixed constants, not
// configurable per call.
const (
	recencyWeight   = 0.2
	trendingWeight  = 0.3
	expertiseWeight = 0.3
	audienceWeight  = 0.2
)

// recencyWindowDays is the age beyond which a topic scores zero recency.
const recencyWindowDays = 30.0

// ScoreTopics populates the audience, expertise, and content potential
// scores on each topic in place and returns the slice. Topics are scored
// against the given specialization profile relative to now.
func ScoreTopics(topics []types.ResearchTopic, profile specialization.Profile, now time.Time) []types.ResearchTopic {
	for i := range topics {
		ScoreTopic(&topics[i], profile, now)
	}
	return topics
}

// ScoreTopic scores a single topic in place. A topic without a title scores
// zero across the board.
func ScoreTopic(topic *types.ResearchTopic, profile specialization.Profile, now time.Time) {
	if topic.Title == "" {
		topic.AudienceMatch = 0
		topic.ExpertiseMatch = 0
		topic.ContentPotential = 0
		return
	}

	topic.AudienceMatch = audienceMatch(topic.Title, profile.AudienceKeywords)
	topic.ExpertiseMatch = expertiseMatch(topic, profile.ExpertiseWeights)

	recency := recencyScore(topic.PublishDate, now)
	trending := topic.TrendingScore
	if trending > 1.0 {
		trending = 1.0
	}
	if trending < 0 {
		trending = 0
	}

	potential := recency*recencyWeight +
		trending*trendingWeight +
		topic.ExpertiseMatch*expertiseWeight +
		topic.AudienceMatch*audienceWeight

	topic.ContentPotential = clamp01(potential)
}

// audienceMatch is the fraction of audience keywords found in the title.
// With no keyword list defined the score is a neutral 0.5.
func audienceMatch(title string, keywords []string) float64 {
	if len(keywords) == 0 {
		return 0.5
	}

	titleLower := strings.ToLower(title)
	matches := 0
	for _, keyword := range keywords {
		if strings.Contains(titleLower, strings.ToLower(keyword)) {
			matches++
		}
	}

	return clamp01(float64(matches) / float64(len(keywords)))
}

// expertiseMatch is the weighted fraction of expertise keywords appearing in
// the title or extracted keywords. Zero when no weights are defined.
func expertiseMatch(topic *types.ResearchTopic, weights map[string]float64) float64 {
	if len(weights) == 0 {
		return 0
	}

	titleLower := strings.ToLower(topic.Title)
	keywordText := strings.ToLower(strings.Join(topic.Keywords, " "))

	matched := 0.0
	total := 0.0
	for keyword, weight := range weights {
		total += weight
		kw := strings.ToLower(keyword)
		if strings.Contains(titleLower, kw) || strings.Contains(keywordText, kw) {
			matched += weight
		}
	}

	if total <= 0 {
		return 0
	}
	return clamp01(matched / total)
}

// recencyScore decays linearly from 1 at zero days old to 0 at the window
// boundary; older topics score 0, never negative. Both timestamps are
// normalized to UTC before subtraction. A zero publish date is treated as
// one day old rather than as the epoch.
func recencyScore(publish, now time.Time) float64 {
	if publish.IsZero() {
		publish = now.Add(-24 * time.Hour)
	}

	daysOld := now.UTC().Sub(publish.UTC()).Hours() / 24
	if daysOld < 0 {
		daysOld = 0
	}

	score := 1 - daysOld/recencyWindowDays
	if score < 0 {
		return 0
	}
	return score
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
