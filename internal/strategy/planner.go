// Package strategy turns a scored topic pool into a bounded, dated content
// plan for one talent over a planning horizon.
package strategy

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/jonathan/talent-manager/internal/specialization"
	"github.com/jonathan/talent-manager/internal/types"
)

// potentialThreshold is the hard eligibility floor: only topics scoring
// above it are considered for the plan.
const potentialThreshold = 0.5

// Diversity caps applied during selection before falling back to pure score
// order to fill remaining slots.
const (
	maxPerCategory = 2
	maxPerSource   = 3
)

// shortFormMarkers classify a topic as short-form content when present in
// its title.
var shortFormMarkers = []string{"quick", "tip", "trick", "hack"}

// Planner plans content for a single talent.
type Planner struct {
	talentName string
	profile    specialization.Profile

	now func() time.Time
}

// NewPlanner returns a planner for the talent bound to its specialization
// profile.
func NewPlanner(talentName string, profile specialization.Profile) *Planner {
	return &Planner{talentName: talentName, profile: profile, now: time.Now}
}

// PlanContentStrategy selects topics from the pool and emits a content plan
// with a dated posting schedule covering daysAhead days. Empty input yields
// an empty plan. Selection is stable: identical input in identical order
// produces identical output.
func (p *Planner) PlanContentStrategy(topics []types.ResearchTopic, daysAhead int) *types.StrategyPlan {
	now := p.now().UTC()

	plan := &types.StrategyPlan{
		Talent:        p.talentName,
		PlanningDate:  now,
		PeriodDays:    daysAhead,
		TopicAnalysis: analyzeTopics(topics),
	}
	if daysAhead < 1 {
		return plan
	}

	selected := p.selectTopics(topics, targetCount(daysAhead, p.profile.PostingFrequency))
	if len(selected) == 0 {
		return plan
	}

	plan.ContentPlan = p.buildContentPlan(selected)
	plan.PostingSchedule = p.buildSchedule(plan.ContentPlan, now)
	return plan
}

// targetCount is the number of content items to plan for the horizon.
func targetCount(daysAhead int, frequency float64) int {
	if frequency <= 0 {
		frequency = 0.5
	}
	count := int(math.Floor(float64(daysAhead) * frequency))
	if count < 1 {
		count = 1
	}
	return count
}

// selectTopics filters to eligible topics and picks up to count of them,
// biasing toward category and source diversity before filling remaining
// slots in pure score order.
func (p *Planner) selectTopics(topics []types.ResearchTopic, count int) []types.ResearchTopic {
	eligible := make([]types.ResearchTopic, 0, len(topics))
	for _, topic := range topics {
		if topic.ContentPotential > potentialThreshold {
			eligible = append(eligible, topic)
		}
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].ContentPotential > eligible[j].ContentPotential
	})

	selected := make([]types.ResearchTopic, 0, count)
	picked := make(map[int]bool)
	categoryCounts := make(map[string]int)
	sourceCounts := make(map[string]int)

	for i, topic := range eligible {
		if len(selected) >= count {
			break
		}
		if categoryCounts[topic.Category] >= maxPerCategory || sourceCounts[topic.Source] >= maxPerSource {
			continue
		}
		selected = append(selected, topic)
		picked[i] = true
		categoryCounts[topic.Category]++
		sourceCounts[topic.Source]++
	}

	// Fill remaining slots by score order, ignoring diversity caps.
	for i, topic := range eligible {
		if len(selected) >= count {
			break
		}
		if !picked[i] {
			selected = append(selected, topic)
			picked[i] = true
		}
	}

	return selected
}

// buildContentPlan converts selected topics into plan items ordered by
// creation priority.
func (p *Planner) buildContentPlan(selected []types.ResearchTopic) []types.ContentPlanItem {
	items := make([]types.ContentPlanItem, 0, len(selected))
	for _, topic := range selected {
		items = append(items, types.ContentPlanItem{
			Topic:            topic.Title,
			SourceURL:        topic.URL,
			Source:           topic.Source,
			Category:         topic.Category,
			ContentType:      classifyContentType(topic.Title),
			TalentAngle:      p.profile.Angle(topic.Title),
			Keywords:         topic.Keywords,
			ContentPotential: topic.ContentPotential,
			CreationPriority: topic.ContentPotential,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreationPriority > items[j].CreationPriority
	})
	return items
}

// buildSchedule assigns each plan item a publish date at the profile's
// content spacing starting from now. Entries keep assignment order; they
// are not re-sorted after spacing.
func (p *Planner) buildSchedule(items []types.ContentPlanItem, now time.Time) []types.ScheduleEntry {
	spacing := p.profile.ContentSpacing
	if spacing <= 0 {
		spacing = 48 * time.Hour
	}

	entries := make([]types.ScheduleEntry, 0, len(items))
	for i, item := range items {
		date := now.Add(time.Duration(i) * spacing)
		entries = append(entries, types.ScheduleEntry{
			ContentID:       fmt.Sprintf("auto_%d_%02d", date.Unix(), i),
			ScheduledDate:   date,
			Content:         item,
			PostingPlatform: "youtube",
			AutoGenerate:    true,
			AutoUpload:      true,
		})
	}
	return entries
}

// classifyContentType maps title markers to a content format.
func classifyContentType(title string) types.ContentType {
	titleLower := strings.ToLower(title)
	for _, marker := range shortFormMarkers {
		if strings.Contains(titleLower, marker) {
			return types.ShortForm
		}
	}
	return types.LongForm
}

// analyzeTopics summarizes the distribution of the researched pool.
func analyzeTopics(topics []types.ResearchTopic) types.TopicAnalysis {
	analysis := types.TopicAnalysis{
		TotalTopics: len(topics),
		Sources:     make(map[string]int),
		Categories:  make(map[string]int),
	}

	total := 0.0
	for _, topic := range topics {
		analysis.Sources[topic.Source]++
		analysis.Categories[topic.Category]++
		total += topic.ContentPotential
		if topic.ContentPotential > 0.7 {
			analysis.HighQualityCount++
		}
	}
	if len(topics) > 0 {
		analysis.AverageQuality = total / float64(len(topics))
	}
	return analysis
}
