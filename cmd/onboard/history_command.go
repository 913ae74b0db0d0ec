package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"onboard/internal/history"
	"onboard/internal/upload"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent upload attempts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			journal, err := history.Open(cfg)
			if err != nil {
				return err
			}
			defer journal.Close()

			attempts, err := journal.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(attempts) == 0 {
				fmt.Fprintln(out, "No upload attempts recorded yet.")
				return nil
			}

			rows := make([][]string, 0, len(attempts))
			for _, attempt := range attempts {
				rows = append(rows, []string{
					attempt.CreatedAt.Local().Format("2006-01-02 15:04"),
					attempt.FileName,
					formatSize(attempt.FileSize),
					string(attempt.State),
					attemptDetail(attempt),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"When", "File", "Size", "State", "Detail"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of attempts to show")
	return cmd
}

func attemptDetail(attempt history.Attempt) string {
	switch attempt.State {
	case upload.StateSucceeded:
		detail := attempt.CandidateName
		if attempt.SkillCount > 0 {
			detail += " (" + strconv.Itoa(attempt.SkillCount) + " skills)"
		}
		return detail
	case upload.StateFailed:
		return attempt.FailureReason
	default:
		return ""
	}
}

func formatSize(size int64) string {
	switch {
	case size >= 1<<20:
		return fmt.Sprintf("%.1f MiB", float64(size)/float64(1<<20))
	case size >= 1<<10:
		return fmt.Sprintf("%.1f KiB", float64(size)/float64(1<<10))
	default:
		return fmt.Sprintf("%d B", size)
	}
}
