package pipeline

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jonathan/talent-manager/internal/specialization"
	"github.com/jonathan/talent-manager/internal/types"
)

// Script length targets by content format, in spoken words.
const (
	shortFormTargetWords = 150
	longFormTargetWords  = 600
)

// buildScriptPrompt constructs the script generation prompt from the content
// request, the talent's specialization, and an optional research summary.
func buildScriptPrompt(req types.ContentRequest, profile specialization.Profile, summary *topicSummary) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("You are %s, a content creator specializing in %s.\n", req.TalentName, profile.Name))
	sb.WriteString("Write a video narration script in your voice. The script will be read aloud by a text-to-speech system.\n\n")

	if req.ContentType == types.ShortForm {
		sb.WriteString(fmt.Sprintf("Format: short-form vertical video, about %d words. Hook the viewer in the first sentence.\n", shortFormTargetWords))
	} else {
		sb.WriteString(fmt.Sprintf("Format: long-form video, about %d words. Open with why the topic matters, then work through it step by step.\n", longFormTargetWords))
	}

	sb.WriteString(fmt.Sprintf("\nTopic: %s\n", req.Topic))

	if rc := req.ResearchContext; rc != nil {
		if rc.TalentAngle != "" {
			sb.WriteString(fmt.Sprintf("Angle: %s\n", rc.TalentAngle))
		}
		if rc.SourceURL != "" {
			sb.WriteString(fmt.Sprintf("Source material: %s\n", rc.SourceURL))
		}
		if len(rc.Keywords) > 0 {
			sb.WriteString(fmt.Sprintf("Work in these terms naturally: %s\n", strings.Join(rc.Keywords, ", ")))
		}
	}

	if summary != nil {
		sb.WriteString(fmt.Sprintf("\nBackground: %s\n", summary.Summary))
		if len(summary.TalkingPoints) > 0 {
			sb.WriteString("Cover these points:\n")
			for _, point := range summary.TalkingPoints {
				sb.WriteString(fmt.Sprintf("- %s\n", point))
			}
		}
		if summary.AudienceHook != "" {
			sb.WriteString(fmt.Sprintf("Open from this hook: %s\n", summary.AudienceHook))
		}
	}

	sb.WriteString("\nRules:\n")
	sb.WriteString("- Plain spoken prose only. No markdown, no headings, no bullet lists.\n")
	sb.WriteString("- No stage directions, no [bracketed] cues, no speaker labels.\n")
	sb.WriteString("- Do not mention that you are an AI or that this script was generated.\n")
	sb.WriteString("- End with a one-sentence signoff inviting the viewer back.\n")

	return sb.String()
}

var (
	stageDirectionRe = regexp.MustCompile(`\[[^\]]*\]|\([^)]*(?:music|sound|pause|laughs|sfx)[^)]*\)`)
	speakerLabelRe   = regexp.MustCompile(`(?m)^[A-Z][A-Za-z ]{0,30}:\s+`)
	codeFenceRe      = regexp.MustCompile("(?s)```.*?```")
	markdownRe       = regexp.MustCompile(`[*_#]+`)
	multiSpaceRe     = regexp.MustCompile(`[ \t]+`)
	multiNewlineRe   = regexp.MustCompile(`\n{3,}`)
)

// CleanForTTS strips formatting a text-to-speech engine would read aloud:
// markdown markers, code fences, stage directions, and speaker labels.
func CleanForTTS(script string) string {
	script = codeFenceRe.ReplaceAllString(script, "")
	script = stageDirectionRe.ReplaceAllString(script, "")
	script = speakerLabelRe.ReplaceAllString(script, "")
	script = markdownRe.ReplaceAllString(script, "")
	script = multiSpaceRe.ReplaceAllString(script, " ")
	script = multiNewlineRe.ReplaceAllString(script, "\n\n")

	lines := strings.Split(script, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
