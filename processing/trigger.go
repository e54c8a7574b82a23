package processing

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"

	"mediaflow/api"
	apperrors "mediaflow/errors"
)

const defaultPollInterval = 3 * time.Second

// Trigger dispatches processing jobs for files that finished uploading and
// optionally waits for them to reach a terminal state.
type Trigger struct {
	backend  api.Backend
	validate *validator.Validate
	interval time.Duration
	log      *slog.Logger
}

func NewTrigger(backend api.Backend, log *slog.Logger) *Trigger {
	return &Trigger{
		backend:  backend,
		validate: validator.New(),
		interval: defaultPollInterval,
		log:      log,
	}
}

// WithPollInterval overrides how often Await asks the backend for job status.
func (t *Trigger) WithPollInterval(d time.Duration) *Trigger {
	if d > 0 {
		t.interval = d
	}
	return t
}

// Start asks the backend to run a processing job against an uploaded file.
// A file that never finished its upload has no storage identifier, so an
// empty fileID is refused locally before any network traffic happens.
func (t *Trigger) Start(ctx context.Context, fileID string, req api.StartProcessRequest) (*api.ProcessInfo, error) {
	if fileID == "" {
		return nil, apperrors.ErrMissingFileID
	}
	if err := t.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid process request: %w", err)
	}

	info, err := t.backend.StartProcess(ctx, fileID, req)
	if err != nil {
		return nil, err
	}

	t.log.Info("Processing job dispatched",
		"job", shortID(info.ID), "file_id", fileID,
		"type", req.ProcessType, "hardware", req.TargetHardware)
	return info, nil
}

// Await polls the job until it reaches a terminal state or the context ends.
// The returned info carries the final status; a failed job is not an error
// here, callers decide what a failed job means for them.
func (t *Trigger) Await(ctx context.Context, fileID, processID string) (*api.ProcessInfo, error) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		info, err := t.backend.GetProcess(ctx, fileID, processID)
		if err != nil {
			return nil, fmt.Errorf("poll job %s: %w", shortID(processID), err)
		}
		if info.Status.Terminal() {
			t.log.Info("Processing job finished", "job", shortID(processID), "status", info.Status)
			return info, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

// Jobs lists every processing job the backend knows for a file, newest state
// included. Useful to spot an already-running job before dispatching another.
func (t *Trigger) Jobs(ctx context.Context, fileID string) ([]api.ProcessInfo, error) {
	if fileID == "" {
		return nil, apperrors.ErrMissingFileID
	}
	return t.backend.ListProcesses(ctx, fileID)
}

// shortID is the display fragment of a job id, enough to grep for in logs.
func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
