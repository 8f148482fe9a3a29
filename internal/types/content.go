package types

// ContentRequest is a single unit of content-creation work handed to the
// pipeline, either from the autonomous orchestrator or from a CLI one-shot.
type ContentRequest struct {
	TalentName  string           `json:"talent_name"`
	Topic       string           `json:"topic"`
	ContentType ContentType      `json:"content_type"`
	AutoUpload  bool             `json:"auto_upload"`
	// ResearchContext carries the originating plan item, if the request came
	// from the autonomous research loop.
	ResearchContext *ContentPlanItem `json:"research_context,omitempty"`
}

// ContentResult reports the outcome of a pipeline run. Success is false when
// any stage failed; Error then holds the stage failure message.
type ContentResult struct {
	Success     bool        `json:"success"`
	JobID       string      `json:"job_id"`
	TalentName  string      `json:"talent_name"`
	Title       string      `json:"title"`
	Topic       string      `json:"topic"`
	ContentType ContentType `json:"content_type"`
	AudioPath   string      `json:"audio_path,omitempty"`
	VideoPath   string      `json:"video_path,omitempty"`

	// DurationSeconds is the rendered video's length as reported by ffprobe,
	// zero when probing failed.
	DurationSeconds float64 `json:"duration_seconds,omitempty"`

	YouTubeURL string   `json:"youtube_url,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	Error      string   `json:"error,omitempty"`
}
