package workers

import (
	"context"
	"log/slog"

	"mediaflow/contract"
	"mediaflow/domain"
)

// Ensure *UploadWorker implements the contract.Worker interface at compile time.
var _ contract.Worker = (*UploadWorker)(nil)

// UploadWorker drains one handle at a time from the batch queue and hands it
// to the coordinator's upload routine. The routine owns all state updates;
// the worker only paces the batch. It finishes when the queue closes.
type UploadWorker struct {
	queue  chan domain.Handle
	upload func(ctx context.Context, h domain.Handle)
	log    *slog.Logger
}

func NewUploadWorker(queue chan domain.Handle, upload func(ctx context.Context, h domain.Handle), log *slog.Logger) *UploadWorker {
	return &UploadWorker{queue: queue, upload: upload, log: log}
}

func (w *UploadWorker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Stopping upload worker")
			return ctx.Err()
		case h, ok := <-w.queue:
			if !ok {
				w.log.Debug("Upload queue drained")
				return nil
			}
			w.upload(ctx, h)
		}
	}
}
