package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"onboard/internal/history"
	"onboard/internal/logging"
	"onboard/internal/onboarding"
	"onboard/internal/portal"
	"onboard/internal/session"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var cached bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show onboarding progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			state, store, err := ctx.activeSession()
			if err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			journal, err := history.Open(cfg)
			if err != nil {
				return err
			}
			defer journal.Close()

			out := cmd.OutOrStdout()

			if cached {
				record, refreshedAt, err := journal.Snapshot(cmd.Context())
				if err != nil {
					return err
				}
				if record == nil {
					return fmt.Errorf("no cached progress; run 'onboard status' online first")
				}
				renderProgress(out, record, onboarding.Resolve(record.Status))
				fmt.Fprintf(out, "(cached view from %s)\n", refreshedAt.Local().Format(time.RFC1123))
				return nil
			}

			client, err := ctx.portalClient(state, 0)
			if err != nil {
				return err
			}
			record, err := client.CurrentUser(cmd.Context())
			if err != nil {
				ctx.ensureLogger().Warn("status fetch failed", logging.Error(err))
				return fmt.Errorf("%s", portal.Reason(err))
			}

			if err := journal.SaveSnapshot(cmd.Context(), record); err != nil {
				ctx.ensureLogger().Warn("snapshot save failed", logging.Error(err))
			}
			refreshSessionCache(ctx, store, state, record)

			renderProgress(out, record, onboarding.Resolve(record.Status))
			return nil
		},
	}

	cmd.Flags().BoolVar(&cached, "cached", false, "Render the last cached view without a network call")
	return cmd
}

// refreshSessionCache mirrors the latest authoritative record into the
// persisted session so whoami stays current.
func refreshSessionCache(ctx *commandContext, store *session.Store, state *session.Session, record *portal.UserRecord) {
	state.UserID = record.ID
	state.Name = record.Name
	state.Email = record.Email
	state.Role = record.Role
	state.Status = record.Status
	state.RefreshedAt = time.Now().UTC()
	if err := store.Save(state); err != nil {
		ctx.ensureLogger().Warn("session refresh failed", logging.Error(err))
	}
}
