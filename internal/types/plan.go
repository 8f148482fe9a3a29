package types

import "time"

// ContentType classifies the format of a planned piece of content.
type ContentType string

const (
	ShortForm ContentType = "short_form"
	LongForm  ContentType = "long_form"
)

// ContentPlanItem is one planned piece of content derived from a selected
// research topic.
type ContentPlanItem struct {
	Topic            string      `json:"topic"`
	SourceURL        string      `json:"source_url"`
	Source           string      `json:"source"`
	Category         string      `json:"category"`
	ContentType      ContentType `json:"content_type"`
	TalentAngle      string      `json:"talent_angle"`
	Keywords         []string    `json:"keywords,omitempty"`
	ContentPotential float64     `json:"content_potential"`
	CreationPriority float64     `json:"creation_priority"`
}

// ScheduleEntry assigns a content plan item a target publish date.
type ScheduleEntry struct {
	ContentID       string          `json:"content_id"`
	ScheduledDate   time.Time       `json:"scheduled_date"`
	Content         ContentPlanItem `json:"content"`
	PostingPlatform string          `json:"posting_platform"`
	AutoGenerate    bool            `json:"auto_generate"`
	AutoUpload      bool            `json:"auto_upload"`
}

// TopicAnalysis summarizes the distribution of a researched topic pool.
type TopicAnalysis struct {
	TotalTopics      int            `json:"total_topics"`
	Sources          map[string]int `json:"sources"`
	Categories       map[string]int `json:"categories"`
	AverageQuality   float64        `json:"average_quality"`
	HighQualityCount int            `json:"high_quality_count"`
}

// StrategyPlan is the full output of one strategy planning pass for a talent.
type StrategyPlan struct {
	Talent          string            `json:"talent"`
	PlanningDate    time.Time         `json:"planning_date"`
	PeriodDays      int               `json:"period_days"`
	TopicAnalysis   TopicAnalysis     `json:"topic_analysis"`
	ContentPlan     []ContentPlanItem `json:"content_plan"`
	PostingSchedule []ScheduleEntry   `json:"posting_schedule"`
}
