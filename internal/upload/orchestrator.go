package upload

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"onboard/internal/logging"
	"onboard/internal/portal"
)

// AttemptState is the lifecycle of one upload attempt.
type AttemptState string

const (
	StateIdle      AttemptState = "idle"
	StateSelected  AttemptState = "selected"
	StateUploading AttemptState = "uploading"
	StateSucceeded AttemptState = "succeeded"
	StateFailed    AttemptState = "failed"
)

var (
	// ErrBusy is returned when an operation is rejected because a submission
	// is in flight. A second Submit is rejected, never queued.
	ErrBusy = errors.New("upload already in flight")
	// ErrNotStaged is returned by Submit when no validated file is staged.
	ErrNotStaged = errors.New("no file staged for upload")
	// ErrClosed is returned once the orchestrator has been torn down.
	ErrClosed = errors.New("orchestrator closed")
)

// Transport transmits a staged file to the server. Implementations own
// timeouts; failures surface as ordinary errors.
type Transport interface {
	UploadResume(ctx context.Context, file *CandidateFile) (*portal.UploadResult, error)
}

// Orchestrator drives a single upload attempt through selection, validation,
// transmission, and resolution. Every entry point (file picker, drag-drop,
// CLI argument) funnels through SelectFile so validation is identical
// regardless of input modality.
type Orchestrator struct {
	transport Transport
	logger    *slog.Logger

	mu      sync.Mutex
	state   AttemptState
	staged  *CandidateFile
	result  *portal.UploadResult
	failure string
	closed  bool
}

// OrchestratorOption customizes an Orchestrator.
type OrchestratorOption func(*Orchestrator)

// WithLogger attaches a logger; a no-op logger is used otherwise.
func WithLogger(logger *slog.Logger) OrchestratorOption {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// NewOrchestrator builds an idle orchestrator around the given transport.
func NewOrchestrator(transport Transport, opts ...OrchestratorOption) *Orchestrator {
	o := &Orchestrator{
		transport: transport,
		logger:    logging.NewNop(),
		state:     StateIdle,
	}
	for _, opt := range opts {
		opt(o)
	}
	o.logger = logging.NewComponentLogger(o.logger, "upload")
	return o
}

// State returns the current attempt state.
func (o *Orchestrator) State() AttemptState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Staged returns the staged file, if any.
func (o *Orchestrator) Staged() *CandidateFile {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.staged
}

// Result returns the server projection after a successful submit.
func (o *Orchestrator) Result() *portal.UploadResult {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.result
}

// FailureReason returns the user-facing reason for the most recent failure.
func (o *Orchestrator) FailureReason() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.failure
}

// SelectFile validates a candidate file and stages it for submission. On
// validation failure the error is recorded and no file is staged; a prior
// result or error is cleared on success.
func (o *Orchestrator) SelectFile(file *CandidateFile) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		return ErrClosed
	}
	if o.state == StateUploading {
		return ErrBusy
	}

	if err := Validate(file); err != nil {
		o.staged = nil
		o.state = StateIdle
		o.failure = err.Error()
		o.logger.Debug("file rejected", logging.Error(err))
		return err
	}

	o.staged = file
	o.state = StateSelected
	o.result = nil
	o.failure = ""
	o.logger.Debug("file staged",
		logging.String("file", file.Name),
		logging.Int64("size", file.Size),
	)
	return nil
}

// ClearSelection discards the staged file without side effects. It is
// rejected while a submission is in flight.
func (o *Orchestrator) ClearSelection() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		return ErrClosed
	}
	if o.state == StateUploading {
		return ErrBusy
	}
	o.staged = nil
	o.state = StateIdle
	return nil
}

// Submit transmits the staged file, issuing exactly one transport call; a
// concurrent Submit observes ErrBusy. On failure the staged file is
// preserved and Submit may be called again to retry without reselecting.
func (o *Orchestrator) Submit(ctx context.Context) (*portal.UploadResult, error) {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return nil, ErrClosed
	}
	if o.state == StateUploading {
		o.mu.Unlock()
		return nil, ErrBusy
	}
	// Selected is the normal entry; Failed with a preserved staged file
	// permits a retry without reselecting.
	retriable := o.state == StateSelected || o.state == StateFailed
	if !retriable || o.staged == nil {
		o.mu.Unlock()
		return nil, ErrNotStaged
	}
	file := o.staged
	o.state = StateUploading
	o.mu.Unlock()

	correlationID := uuid.NewString()
	logger := o.logger.With(logging.String(logging.FieldCorrelationID, correlationID))
	logger.Info("upload started",
		logging.String("file", file.Name),
		logging.Int64("size", file.Size),
	)

	result, err := o.transport.UploadResume(ctx, file)

	o.mu.Lock()
	defer o.mu.Unlock()

	// A response that resolves after teardown must not mutate state.
	if o.closed {
		return nil, ErrClosed
	}

	if err != nil {
		o.state = StateFailed
		o.failure = portal.Reason(err)
		logger.Warn("upload failed", logging.Error(err))
		return nil, fmt.Errorf("submit upload: %w", err)
	}

	o.state = StateSucceeded
	o.result = result
	o.staged = nil
	o.failure = ""
	logger.Info("upload succeeded",
		logging.Bool("has_embeddings", result != nil && result.HasEmbeddings),
	)
	return result, nil
}

// Reset returns the orchestrator to Idle, discarding any staged file,
// result, or error. It is rejected while a submission is in flight.
func (o *Orchestrator) Reset() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		return ErrClosed
	}
	if o.state == StateUploading {
		return ErrBusy
	}
	o.staged = nil
	o.result = nil
	o.failure = ""
	o.state = StateIdle
	return nil
}

// Close tears the orchestrator down. Any submission that resolves afterwards
// is discarded instead of mutating the dead instance.
func (o *Orchestrator) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.closed = true
	o.staged = nil
	o.result = nil
}
