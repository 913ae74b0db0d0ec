package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"onboard/internal/onboarding"
	"onboard/internal/portal"
)

const (
	ansiGreen = "\x1b[32m"
	ansiCyan  = "\x1b[36m"
	ansiReset = "\x1b[0m"

	// maxRenderedSkills caps the skill list the portal surfaces for a
	// candidate.
	maxRenderedSkills = 10
)

var titleCaser = cases.Title(language.AmericanEnglish)

// statusTitle humanizes a milestone identifier for display.
func statusTitle(status onboarding.Status) string {
	value := strings.TrimSpace(string(status))
	if value == "" {
		return "Unknown"
	}
	return titleCaser.String(strings.ReplaceAll(value, "_", " "))
}

// renderProgress prints the milestone ladder with the current step marked,
// plus the step action and any follow-up guidance.
func renderProgress(out io.Writer, record *portal.UserRecord, progress onboarding.Progress) {
	colorize := shouldColorize(out)

	name := strings.TrimSpace(record.Name)
	if name == "" {
		name = "candidate"
	}
	fmt.Fprintf(out, "Onboarding progress for %s\n", name)

	headers := []string{"", "Step", "Milestone"}
	statuses := onboarding.AllStatuses()
	rows := make([][]string, 0, len(statuses))
	for i, status := range statuses {
		marker := ""
		switch {
		case progress.IsComplete || i < progress.StepIndex:
			marker = "✓"
			if colorize {
				marker = ansiGreen + marker + ansiReset
			}
		case i == progress.StepIndex:
			marker = "→"
			if colorize {
				marker = ansiCyan + marker + ansiReset
			}
		}
		rows = append(rows, []string{marker, fmt.Sprintf("%d", i+1), statusTitle(status)})
	}
	fmt.Fprintln(out, renderTable(headers, rows, []columnAlignment{alignLeft, alignRight, alignLeft}))

	switch {
	case progress.IsComplete:
		fmt.Fprintln(out, "Onboarding complete.")
	case progress.RequiresUpload:
		fmt.Fprintln(out, "Next: upload your resume with 'onboard upload <file>'.")
	default:
		if action, ok := onboarding.ActionFor(progress.StepIndex); ok {
			if action.Target != "" {
				fmt.Fprintf(out, "Next: %s (%s)\n", action.Label, action.Target)
			} else {
				fmt.Fprintf(out, "Next: %s\n", action.Label)
			}
		}
	}
}

// renderUploadResult summarizes the server's candidate projection.
func renderUploadResult(out io.Writer, result *portal.UploadResult) {
	if result == nil {
		return
	}
	fmt.Fprintf(out, "Resume processed for %s\n", result.Name)
	if result.Location != "" {
		fmt.Fprintf(out, "Location: %s\n", result.Location)
	}
	if len(result.Skills) > 0 {
		skills := result.Skills
		if len(skills) > maxRenderedSkills {
			skills = skills[:maxRenderedSkills]
		}
		fmt.Fprintf(out, "Skills: %s\n", strings.Join(skills, ", "))
		if extra := len(result.Skills) - len(skills); extra > 0 {
			fmt.Fprintf(out, "(and %d more)\n", extra)
		}
	}
	if result.HasEmbeddings {
		fmt.Fprintln(out, "Profile embeddings generated.")
	}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
