package workflow

import (
	"context"
	"fmt"
	"log/slog"

	"onboard/internal/logging"
	"onboard/internal/onboarding"
	"onboard/internal/portal"
)

// staleViewReason is shown when a record could not be refetched but no
// user data was lost.
const staleViewReason = "Progress saved, but the view could not be refreshed. Reload to see the latest state."

// StatusClient is the portal surface the synchronizer needs.
type StatusClient interface {
	UpdateStatus(ctx context.Context, status onboarding.Status) (*portal.UserRecord, error)
	CurrentUser(ctx context.Context) (*portal.UserRecord, error)
}

// SyncError reports that an upload was accepted server-side but the
// follow-on status transition failed. It is deliberately distinct from an
// upload failure: the caller must not prompt the user to re-upload.
type SyncError struct {
	Target onboarding.Status
	Err    error
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("synchronize status to %s: %v", e.Target, e.Err)
}

func (e *SyncError) Unwrap() error { return e.Err }

// Outcome is the reconciled display state after a status advance.
type Outcome struct {
	Record   *portal.UserRecord
	Progress onboarding.Progress
	// Stale is set when the transition applied but the refetch failed; the
	// record then reflects the transition's target rather than a fresh
	// server read.
	Stale bool
	// StaleReason carries the user-facing explanation for a stale view.
	StaleReason string
}

// Synchronizer advances the server-side onboarding status and reconciles the
// local view afterwards.
type Synchronizer struct {
	client StatusClient
	logger *slog.Logger
}

// SynchronizerOption customizes a Synchronizer.
type SynchronizerOption func(*Synchronizer)

// WithLogger attaches a logger; a no-op logger is used otherwise.
func WithLogger(logger *slog.Logger) SynchronizerOption {
	return func(s *Synchronizer) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSynchronizer builds a Synchronizer around the given portal surface.
func NewSynchronizer(client StatusClient, opts ...SynchronizerOption) *Synchronizer {
	s := &Synchronizer{
		client: client,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = logging.NewComponentLogger(s.logger, "workflow")
	return s
}

// FinalizeResumeUpload runs the follow-on sequence for a resume upload:
// advance the status to uploaded_resume and refetch the record. current is
// the last status known to the caller; a record already at or past
// uploaded_resume is only refreshed, never asked to regress.
func (s *Synchronizer) FinalizeResumeUpload(ctx context.Context, current onboarding.Status) (*Outcome, error) {
	return s.Advance(ctx, current, onboarding.StatusUploadedResume)
}

// Advance requests a forward status transition, then refetches the
// authoritative record, strictly in that order so the refetch observes the
// transition's effect. The client never requests a regression: when current
// already ranks at or past target, no transition is requested and only the
// refetch runs.
//
// A transition failure returns a SyncError and nothing else; the caller
// decides whether to retry (the transition is idempotent) or ask the user to
// refresh. A refetch failure after a successful transition yields a stale
// outcome built from the transition's target status.
func (s *Synchronizer) Advance(ctx context.Context, current, target onboarding.Status) (*Outcome, error) {
	if onboarding.StepIndex(target) <= onboarding.StepIndex(current) {
		s.logger.Debug("transition skipped; record already at or past target",
			logging.String("current", string(current)),
			logging.String(logging.FieldStatus, string(target)),
		)
		return s.refresh(ctx, current)
	}

	updated, err := s.client.UpdateStatus(ctx, target)
	if err != nil {
		s.logger.Warn("status transition failed",
			logging.String(logging.FieldStatus, string(target)),
			logging.Error(err),
		)
		return nil, &SyncError{Target: target, Err: err}
	}

	record, err := s.client.CurrentUser(ctx)
	if err != nil {
		// The transition is logically applied; only the local view lags.
		s.logger.Warn("record refetch failed after transition",
			logging.String(logging.FieldStatus, string(target)),
			logging.Error(err),
		)
		stale := staleRecord(updated, target)
		return &Outcome{
			Record:      stale,
			Progress:    onboarding.Resolve(stale.Status),
			Stale:       true,
			StaleReason: staleViewReason,
		}, nil
	}

	s.logger.Info("status synchronized",
		logging.String(logging.FieldStatus, string(record.Status)),
	)
	return &Outcome{
		Record:   record,
		Progress: onboarding.Resolve(record.Status),
	}, nil
}

// refresh refetches the record without a transition. A refetch failure is
// only a stale view of an unchanged record, so the known status carries the
// outcome rather than an error.
func (s *Synchronizer) refresh(ctx context.Context, current onboarding.Status) (*Outcome, error) {
	record, err := s.client.CurrentUser(ctx)
	if err != nil {
		s.logger.Warn("record refresh failed",
			logging.String(logging.FieldStatus, string(current)),
			logging.Error(err),
		)
		stale := &portal.UserRecord{Status: current}
		return &Outcome{
			Record:      stale,
			Progress:    onboarding.Resolve(stale.Status),
			Stale:       true,
			StaleReason: staleViewReason,
		}, nil
	}
	return &Outcome{
		Record:   record,
		Progress: onboarding.Resolve(record.Status),
	}, nil
}

// staleRecord synthesizes the best available record when the refetch failed.
// The transition response is preferred; otherwise only the target status is
// known.
func staleRecord(updated *portal.UserRecord, target onboarding.Status) *portal.UserRecord {
	if updated != nil {
		record := *updated
		if !onboarding.IsKnown(record.Status) {
			record.Status = target
		}
		return &record
	}
	return &portal.UserRecord{Status: target}
}
