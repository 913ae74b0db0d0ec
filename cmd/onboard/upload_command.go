package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"onboard/internal/history"
	"onboard/internal/logging"
	"onboard/internal/portal"
	"onboard/internal/upload"
	"onboard/internal/workflow"
)

func newUploadCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload a resume and advance onboarding",
		Long:  "Upload a resume and advance onboarding.\n\nOnly one file is uploaded per invocation; extra arguments are ignored.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, store, err := ctx.activeSession()
			if err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger := logging.NewComponentLogger(ctx.ensureLogger(), "upload")
			out := cmd.OutOrStdout()

			// One upload per state directory at a time, across processes.
			lock := flock.New(filepath.Join(cfg.Paths.StateDir, "upload.lock"))
			ok, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire upload lock: %w", err)
			}
			if !ok {
				return errors.New("another upload is already running for this state directory")
			}
			defer func() { _ = lock.Unlock() }()

			file, err := upload.NewCandidateFile(args[0])
			if err != nil {
				return fmt.Errorf("read candidate file: %w", err)
			}

			client, err := ctx.portalClient(state, cfg.UploadTimeout())
			if err != nil {
				return err
			}
			orch := upload.NewOrchestrator(
				&upload.PortalTransport{Client: client},
				upload.WithLogger(logger),
			)
			defer orch.Close()

			if err := orch.SelectFile(file); err != nil {
				if errors.Is(err, upload.ErrValidation) {
					return fmt.Errorf("%s", err.Error())
				}
				return err
			}

			journal, err := history.Open(cfg)
			if err != nil {
				return err
			}
			defer journal.Close()

			attempt, err := journal.StartAttempt(cmd.Context(), file)
			if err != nil {
				return fmt.Errorf("record attempt: %w", err)
			}
			logger = logger.With(logging.String(logging.FieldAttemptID, attempt.ID))

			result, err := orch.Submit(cmd.Context())
			if err != nil {
				reason := orch.FailureReason()
				if markErr := journal.MarkFailed(cmd.Context(), attempt.ID, reason); markErr != nil {
					logger.Warn("attempt journal update failed", logging.Error(markErr))
				}
				fmt.Fprintf(out, "Upload failed: %s\n", reason)
				fmt.Fprintf(out, "Your file selection was kept; run 'onboard upload %s' to try again.\n", args[0])
				return fmt.Errorf("upload failed")
			}

			if markErr := journal.MarkSucceeded(cmd.Context(), attempt.ID, result); markErr != nil {
				logger.Warn("attempt journal update failed", logging.Error(markErr))
			}
			renderUploadResult(out, result)

			sync := workflow.NewSynchronizer(client, workflow.WithLogger(logger))
			outcome, err := sync.FinalizeResumeUpload(cmd.Context(), state.Status)
			if err != nil {
				var syncErr *workflow.SyncError
				if errors.As(err, &syncErr) {
					fmt.Fprintln(out, "Your resume was uploaded, but your onboarding progress could not be updated.")
					fmt.Fprintf(out, "Do not upload the file again; run 'onboard status' to retry the refresh. (%s)\n", portal.Reason(syncErr.Err))
					return fmt.Errorf("progress update failed")
				}
				return err
			}

			if err := journal.SaveSnapshot(cmd.Context(), outcome.Record); err != nil {
				logger.Warn("snapshot save failed", logging.Error(err))
			}
			refreshSessionCache(ctx, store, state, outcome.Record)

			renderProgress(out, outcome.Record, outcome.Progress)
			if outcome.Stale {
				fmt.Fprintln(out, outcome.StaleReason)
			}
			return nil
		},
	}
	return cmd
}
