package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/talent-manager/internal/llm"
	"github.com/jonathan/talent-manager/internal/schemas"
	"github.com/jonathan/talent-manager/internal/types"
)

// topicSummary is the parsed shape of the LLM research summary response.
type topicSummary struct {
	Summary       string   `json:"summary"`
	TalkingPoints []string `json:"talking_points"`
	AudienceHook  string   `json:"audience_hook"`
}

// summarizeResearch condenses a planned topic's research context into
// talking points the script prompt can build on.
func (p *Pipeline) summarizeResearch(ctx context.Context, rc *types.ContentPlanItem) (*topicSummary, error) {
	prompt := llm.BuildExtractionPrompt(llm.TopicSummarySchema(), researchSourceText(rc))
	raw, err := p.opts.LLM.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, err
	}

	if err := schemas.ValidateTopicSummary(raw); err != nil {
		return nil, fmt.Errorf("topic summary did not validate: %w", err)
	}

	var summary topicSummary
	if err := json.Unmarshal([]byte(raw), &summary); err != nil {
		return nil, fmt.Errorf("failed to parse topic summary: %w", err)
	}
	return &summary, nil
}

// researchSourceText flattens a plan item into the source text the summary
// is extracted from.
func researchSourceText(rc *types.ContentPlanItem) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Topic: %s\n", rc.Topic))
	if rc.TalentAngle != "" {
		sb.WriteString(fmt.Sprintf("Angle: %s\n", rc.TalentAngle))
	}
	if rc.Category != "" {
		sb.WriteString(fmt.Sprintf("Category: %s\n", rc.Category))
	}
	if rc.Source != "" {
		sb.WriteString(fmt.Sprintf("Found on: %s\n", rc.Source))
	}
	if rc.SourceURL != "" {
		sb.WriteString(fmt.Sprintf("Source URL: %s\n", rc.SourceURL))
	}
	if len(rc.Keywords) > 0 {
		sb.WriteString(fmt.Sprintf("Keywords: %s\n", strings.Join(rc.Keywords, ", ")))
	}

	return sb.String()
}
