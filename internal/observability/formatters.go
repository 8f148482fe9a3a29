// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jonathan/talent-manager/internal/orchestrator"
	"github.com/jonathan/talent-manager/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintTopics outputs a ranked summary of researched topics.
func (p *Printer) PrintTopics(topics []types.ResearchTopic) {
	if len(topics) == 0 {
		p.printBox("Research Topics", "No topics found")
		return
	}

	var sb strings.Builder
	count := min(len(topics), maxItemsToShow*2)
	for i := 0; i < count; i++ {
		topic := topics[i]
		sb.WriteString(fmt.Sprintf("%2d. [%.2f] %s\n", i+1, topic.ContentPotential, topic.Title))
		sb.WriteString(fmt.Sprintf("    %s / %s\n", topic.Source, topic.Category))
	}
	if len(topics) > count {
		sb.WriteString(fmt.Sprintf("... and %d more\n", len(topics)-count))
	}

	p.printBox(fmt.Sprintf("Research Topics (%d)", len(topics)), strings.TrimRight(sb.String(), "\n"))
}

// PrintStrategyPlan outputs a human-readable summary of a content plan.
func (p *Printer) PrintStrategyPlan(plan *types.StrategyPlan) {
	if plan == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Talent:   %s\n", plan.Talent))
	sb.WriteString(fmt.Sprintf("Horizon:  %d days\n", plan.PeriodDays))
	sb.WriteString(fmt.Sprintf("Analyzed: %d topics (avg quality %.2f)\n", plan.TopicAnalysis.TotalTopics, plan.TopicAnalysis.AverageQuality))
	sb.WriteString("\n")

	if len(plan.ContentPlan) == 0 {
		sb.WriteString("No content planned\n")
	} else {
		sb.WriteString("Content Plan:\n")
		count := min(len(plan.ContentPlan), maxItemsToShow)
		for i := 0; i < count; i++ {
			item := plan.ContentPlan[i]
			sb.WriteString(fmt.Sprintf("  • [%s] %s\n", item.ContentType, item.Topic))
		}
		if len(plan.ContentPlan) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(plan.ContentPlan)-maxItemsToShow))
		}
	}

	if len(plan.PostingSchedule) > 0 {
		sb.WriteString("\nSchedule:\n")
		count := min(len(plan.PostingSchedule), maxItemsToShow)
		for i := 0; i < count; i++ {
			entry := plan.PostingSchedule[i]
			sb.WriteString(fmt.Sprintf("  %s  %s\n", entry.ScheduledDate.Format("Jan 02 15:04"), entry.Content.Topic))
		}
	}

	p.printBox("Content Strategy", strings.TrimRight(sb.String(), "\n"))
}

// PrintOrchestratorStatus outputs the orchestrator's talents and job queues.
func (p *Printer) PrintOrchestratorStatus(status orchestrator.Status) {
	var sb strings.Builder

	if len(status.Talents) == 0 {
		sb.WriteString("No talents registered\n")
	} else {
		sb.WriteString("Talents:\n")
		for _, talent := range status.Talents {
			last := "never"
			if !talent.LastResearch.IsZero() {
				last = talent.LastResearch.Format("Jan 02 15:04")
			}
			sb.WriteString(fmt.Sprintf("  • %s (%s), last research %s, queued %d, running %d\n",
				talent.Name, talent.Specialization, last, talent.QueuedJobs, talent.RunningJobs))
		}
	}

	sb.WriteString(fmt.Sprintf("\nQueued: %d  Running: %d  Completed: %d\n",
		len(status.Queued), len(status.Running), len(status.Completed)))

	count := min(len(status.Queued), maxItemsToShow)
	for i := 0; i < count; i++ {
		job := status.Queued[i]
		sb.WriteString(fmt.Sprintf("  next: %s at %s\n", job.Topic, job.ScheduledTime.Format("Jan 02 15:04")))
	}

	p.printBox("Orchestrator Status", strings.TrimRight(sb.String(), "\n"))
}

// PrintContentResult outputs the outcome of one content creation run.
func (p *Printer) PrintContentResult(result *types.ContentResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	if result.Success {
		sb.WriteString("Status:  success\n")
	} else {
		sb.WriteString("Status:  FAILED\n")
		sb.WriteString(fmt.Sprintf("Error:   %s\n", result.Error))
	}
	sb.WriteString(fmt.Sprintf("Talent:  %s\n", result.TalentName))
	sb.WriteString(fmt.Sprintf("Topic:   %s\n", result.Topic))
	if result.Title != "" {
		sb.WriteString(fmt.Sprintf("Title:   %s\n", result.Title))
	}
	if result.VideoPath != "" {
		sb.WriteString(fmt.Sprintf("Video:   %s\n", result.VideoPath))
	}
	if result.DurationSeconds > 0 {
		length := time.Duration(result.DurationSeconds * float64(time.Second))
		sb.WriteString(fmt.Sprintf("Length:  %s\n", length.Round(time.Second)))
	}
	if result.YouTubeURL != "" {
		sb.WriteString(fmt.Sprintf("URL:     %s\n", result.YouTubeURL))
	}
	if len(result.Tags) > 0 {
		sb.WriteString(fmt.Sprintf("Tags:    %s\n", strings.Join(result.Tags, ", ")))
	}

	p.printBox("Content Result", strings.TrimRight(sb.String(), "\n"))
}
