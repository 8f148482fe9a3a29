package db

import (
	"time"

	"github.com/google/uuid"
)

// Content record status constants
const (
	ContentStatusGenerated = "generated"
	ContentStatusUploaded  = "uploaded"
	ContentStatusFailed    = "failed"
)

// Talent is a persisted talent row
type Talent struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Specialization string    `json:"specialization"`
	VoiceID        *string   `json:"voice_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ContentRecord is a persisted record of one produced piece of content
type ContentRecord struct {
	ID              uuid.UUID  `json:"id"`
	TalentID        uuid.UUID  `json:"talent_id"`
	JobID           *string    `json:"job_id,omitempty"`
	Title           string     `json:"title"`
	Topic           string     `json:"topic"`
	ContentType     string     `json:"content_type"`
	Status          string     `json:"status"`
	AudioPath       *string    `json:"audio_path,omitempty"`
	VideoPath       *string    `json:"video_path,omitempty"`
	YouTubeURL      *string    `json:"youtube_url,omitempty"`
	Tags            []string   `json:"tags,omitempty"`
	ResearchContext []byte     `json:"research_context,omitempty"`
	ErrorMessage    *string    `json:"error_message,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
}

// ContentRecordInput holds the fields for inserting a content record
type ContentRecordInput struct {
	TalentID        uuid.UUID
	JobID           string
	Title           string
	Topic           string
	ContentType     string
	Status          string
	AudioPath       string
	VideoPath       string
	YouTubeURL      string
	Tags            []string
	ResearchContext any
	ErrorMessage    string
}

// ContentRecordFilters holds optional filters for listing content records
type ContentRecordFilters struct {
	TalentID uuid.UUID
	Status   string
	Limit    int
}
