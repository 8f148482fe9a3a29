package schemas

import _ "embed"

// Embedded schemas for the generated-content artifacts. Embedding keeps
// validation working regardless of the process working directory.

//go:embed video_metadata.schema.json
var videoMetadataSchema string

//go:embed topic_summary.schema.json
var topicSummarySchema string

// ValidateVideoMetadata validates LLM-generated video metadata JSON before
// it is handed to the upload step.
func ValidateVideoMetadata(jsonContent string) error {
	return ValidateJSONString(videoMetadataSchema, jsonContent)
}

// ValidateTopicSummary validates an LLM-generated topic summary before it is
// fed into script generation.
func ValidateTopicSummary(jsonContent string) error {
	return ValidateJSONString(topicSummarySchema, jsonContent)
}
