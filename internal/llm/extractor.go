// Package llm - extractor.go provides generic LLM-based structured extraction.
package llm

import (
	"fmt"
	"strings"
)

// ExtractionSchema defines the structure for LLM-based content extraction.
// It provides a reusable way to define what information to extract from text.
type ExtractionSchema struct {
	Name        string        // Schema name (e.g., "VideoMetadata")
	Description string        // System prompt preamble describing the extraction task
	Fields      []SchemaField // Expected output fields
}

// SchemaField defines a single field in the extraction output.
type SchemaField struct {
	Name        string // JSON field name
	Type        string // Type hint: "string", "[]string", "map[string]string"
	Description string // Description for the LLM
	Required    bool   // Whether this field is required
}

// BuildExtractionPrompt constructs the LLM prompt from schema and input text.
func BuildExtractionPrompt(schema ExtractionSchema, inputText string) string {
	var sb strings.Builder

	// System description
	sb.WriteString(schema.Description)
	sb.WriteString("\n\n")

	// Output schema
	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n{\n")
	for i, field := range schema.Fields {
		typeHint := field.Type
		if typeHint == "" {
			typeHint = "string"
		}
		requiredHint := ""
		if field.Required {
			requiredHint = " (required)"
		}
		sb.WriteString(fmt.Sprintf("  \"%s\": %s%s", field.Name, typeHint, requiredHint))
		if field.Description != "" {
			sb.WriteString(fmt.Sprintf(" // %s", field.Description))
		}
		if i < len(schema.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n\n")

	// Instructions
	sb.WriteString("IMPORTANT:\n")
	sb.WriteString("- Base every field on the provided text, do not invent facts.\n")
	sb.WriteString("- Return ONLY the JSON object, no markdown, no explanation, no code blocks.\n\n")

	// Input text
	sb.WriteString("Input text:\n\"\"\"\n")
	sb.WriteString(inputText)
	sb.WriteString("\n\"\"\"\n")

	return sb.String()
}

// --- Predefined Schemas ---

// VideoMetadataSchema returns the extraction schema for deriving YouTube
// metadata from a finished script.
func VideoMetadataSchema() ExtractionSchema {
	return ExtractionSchema{
		Name: "VideoMetadata",
		Description: `You are a YouTube metadata specialist. Your task is to derive upload metadata from a video script.
The title must be engaging but accurate to the script's content. Tags should cover the topics actually discussed.`,
		Fields: []SchemaField{
			{
				Name:        "title",
				Type:        "\"string\"",
				Description: "Video title, under 100 characters, no clickbait that the script cannot back up",
				Required:    true,
			},
			{
				Name:        "description",
				Type:        "\"string\"",
				Description: "2-3 sentence video description summarizing what the viewer will learn",
				Required:    true,
			},
			{
				Name:        "tags",
				Type:        "[\"string\"]",
				Description: "5-10 topic tags drawn from the script content",
				Required:    true,
			},
		},
	}
}

// TopicSummarySchema returns the extraction schema for condensing researched
// source material into talking points a script can build on.
func TopicSummarySchema() ExtractionSchema {
	return ExtractionSchema{
		Name: "TopicSummary",
		Description: `You are a research assistant for a content creator. Your task is to condense source material about a trending topic into concrete talking points.
Keep only points that are specific and verifiable from the text.`,
		Fields: []SchemaField{
			{
				Name:        "summary",
				Type:        "\"string\"",
				Description: "One paragraph summary of the topic",
				Required:    true,
			},
			{
				Name:        "talking_points",
				Type:        "[\"string\"]",
				Description: "3-7 concrete talking points drawn from the text",
				Required:    true,
			},
			{
				Name:        "audience_hook",
				Type:        "\"string\"",
				Description: "One sentence explaining why the audience should care",
				Required:    false,
			},
		},
	}
}
