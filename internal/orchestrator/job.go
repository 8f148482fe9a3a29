package orchestrator

import (
	"time"

	"github.com/jonathan/talent-manager/internal/types"
)

// JobStatus is the lifecycle state of a content job.
type JobStatus string

const (
	StatusScheduled JobStatus = "scheduled"
	StatusRunning   JobStatus = "running"
	StatusCompleted JobStatus = "completed"
	StatusFailed    JobStatus = "failed"
)

// Job is one scheduled unit of content creation. A job moves through
// scheduled, running, and exactly one of completed or failed; it is held in
// exactly one of the orchestrator's queue, running set, or completed history
// at any time.
type Job struct {
	ID            string                `json:"id"`
	TalentName    string                `json:"talent_name"`
	Topic         string                `json:"topic"`
	ContentType   types.ContentType     `json:"content_type"`
	ScheduledTime time.Time             `json:"scheduled_time"`
	Priority      float64               `json:"priority"`
	Status        JobStatus             `json:"status"`
	ResearchData  types.ContentPlanItem `json:"research_data"`
	CreatedAt     time.Time             `json:"created_at"`
	CompletedAt   time.Time             `json:"completed_at,omitempty"`
	Result        *types.ContentResult  `json:"result,omitempty"`
	Error         string                `json:"error,omitempty"`
}

// clone returns a copy so snapshots handed to callers cannot race with the
// orchestrator's own mutation of the job.
func (j *Job) clone() *Job {
	c := *j
	return &c
}
