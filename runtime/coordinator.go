// Package runtime drives upload batches: it owns the per-file state and
// progress maps, the batch queue and the event pipeline. It orchestrates the
// transfers without containing transfer logic itself.
package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/samber/lo"

	"mediaflow/api"
	"mediaflow/contract"
	"mediaflow/domain"
	"mediaflow/domain/event"
	apperrors "mediaflow/errors"
	"mediaflow/observability"
	"mediaflow/processing"
	"mediaflow/runtime/workers"
	"mediaflow/transfer"
)

// entry is the coordinator-private record for one file in the batch.
type entry struct {
	file     domain.LocalFile
	state    domain.FileUploadState
	progress int
	inFlight bool
}

// FileView is the read-only snapshot of one file handed out to callers.
type FileView struct {
	Handle   domain.Handle
	Name     string
	Size     int64
	Status   domain.UploadStatus
	Message  string
	FileID   string
	Progress int
}

// Coordinator owns the upload batch. All derived state is keyed by the
// locally generated handle, never by the display name, so duplicate names in
// one batch stay independent.
type Coordinator struct {
	mu    sync.Mutex
	log   *slog.Logger
	files map[domain.Handle]*entry
	order []domain.Handle

	single  *transfer.SingleTransfer
	multi   *transfer.MultipartTransfer
	trigger *processing.Trigger
	monitor *observability.TransferMonitor

	numWorkers int
	events     chan event.UploadEvent
	sinks      []contract.EventSink
	supervisor contract.ISupervisor
}

func NewCoordinator(log *slog.Logger, single *transfer.SingleTransfer, multi *transfer.MultipartTransfer,
	trigger *processing.Trigger, monitor *observability.TransferMonitor,
	supervisor contract.ISupervisor, numWorkers, bufferSize int) *Coordinator {
	if numWorkers <= 0 {
		numWorkers = 1
	}
	if bufferSize <= 0 {
		bufferSize = 256
	}
	return &Coordinator{
		log:        log,
		files:      make(map[domain.Handle]*entry),
		single:     single,
		multi:      multi,
		trigger:    trigger,
		monitor:    monitor,
		numWorkers: numWorkers,
		events:     make(chan event.UploadEvent, bufferSize),
		supervisor: supervisor,
	}
}

// SetMultipart installs the multipart transfer after construction, so the
// transfer can be built against the coordinator's event channel.
func (c *Coordinator) SetMultipart(m *transfer.MultipartTransfer) {
	c.multi = m
}

// Events exposes the pipeline channel so transfers can publish diagnostics
// (part confirmations, abort failures) through the same fanout.
func (c *Coordinator) Events() chan event.UploadEvent { return c.events }

// AddSinks registers observability sinks. Must be called before Start.
func (c *Coordinator) AddSinks(sinks ...contract.EventSink) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sinks = append(c.sinks, sinks...)
}

// Add places a file in the batch. A fresh handle is generated when the file
// does not carry one yet; the handle is returned and identifies the file in
// every other call.
func (c *Coordinator) Add(file domain.LocalFile) domain.Handle {
	if file.Handle == "" {
		file.Handle = domain.NewHandle()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.files[file.Handle] = &entry{
		file:  file,
		state: domain.FileUploadState{Status: domain.StatusPendingUpload},
	}
	c.order = append(c.order, file.Handle)
	c.log.Debug("File queued", "file", file.Name, "size", file.Size, "handle", file.Handle)
	return file.Handle
}

// Remove drops a file and all its derived state. A file whose transfer is
// running cannot be removed; callers retry once it settled.
func (c *Coordinator) Remove(h domain.Handle) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.files[h]
	if !ok {
		return apperrors.ErrUnknownFile
	}
	if e.inFlight {
		return fmt.Errorf("%s: %w", e.file.Name, apperrors.ErrTransferInFlight)
	}

	delete(c.files, h)
	c.order = lo.Without(c.order, h)
	return nil
}

func (c *Coordinator) Progress(h domain.Handle) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.files[h]
	if !ok {
		return 0, apperrors.ErrUnknownFile
	}
	return e.progress, nil
}

func (c *Coordinator) State(h domain.Handle) (domain.FileUploadState, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.files[h]
	if !ok {
		return domain.FileUploadState{}, apperrors.ErrUnknownFile
	}
	return e.state, nil
}

// Snapshot returns the batch in insertion order.
func (c *Coordinator) Snapshot() []FileView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return lo.Map(c.order, func(h domain.Handle, _ int) FileView {
		e := c.files[h]
		return FileView{
			Handle:   h,
			Name:     e.file.Name,
			Size:     e.file.Size,
			Status:   e.state.Status,
			Message:  e.state.Message,
			FileID:   e.state.FileID,
			Progress: e.progress,
		}
	})
}

// UploadAll runs the batch: every file still waiting for its upload is fed to
// a bounded pool of upload workers. One file failing marks that file and
// moves on; the batch itself never aborts. UploadAll returns when every
// queued file settled or the context ended.
func (c *Coordinator) UploadAll(ctx context.Context) {
	pending := c.pendingHandles()
	if len(pending) == 0 {
		c.log.Info("No files waiting for upload")
		return
	}
	if c.monitor != nil {
		c.monitor.UpdateQueue(len(pending))
	}
	c.log.Info("Starting upload batch", "files", len(pending), "workers", c.numWorkers)

	queue := make(chan domain.Handle)
	pool := workers.NewSupervisor(c.log)
	for i := 0; i < c.numWorkers; i++ {
		pool.Add(workers.NewUploadWorker(queue, c.uploadOne, c.log))
	}

	go func() {
		defer close(queue)
		for _, h := range pending {
			select {
			case <-ctx.Done():
				return
			case queue <- h:
			}
		}
	}()

	pool.Run(ctx)
	if c.monitor != nil {
		c.monitor.UpdateQueue(0)
	}
}

// pendingHandles lists, in insertion order, the files whose upload has not
// settled yet. Files already at 100 or failed keep their terminal progress.
func (c *Coordinator) pendingHandles() []domain.Handle {
	c.mu.Lock()
	defer c.mu.Unlock()
	return lo.Filter(c.order, func(h domain.Handle, _ int) bool {
		e := c.files[h]
		return !e.inFlight && e.progress != 100 && e.progress != domain.ProgressFailed
	})
}

// uploadOne moves a single file through its transfer. All outcomes land in
// the state and progress maps; errors never propagate to the batch.
func (c *Coordinator) uploadOne(ctx context.Context, h domain.Handle) {
	c.mu.Lock()
	e, ok := c.files[h]
	if !ok || e.inFlight {
		c.mu.Unlock()
		return
	}
	e.inFlight = true
	file := e.file
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		if e, ok := c.files[h]; ok {
			e.inFlight = false
		}
		c.mu.Unlock()
	}()

	strategy := domain.SelectStrategy(file.Size)
	c.log.Info("Uploading file", "file", file.Name, "size", file.Size, "strategy", strategy.String())

	hooks := transfer.Hooks{
		Progress: func(percent int) { c.setProgress(h, percent) },
		Session:  func(s domain.UploadSession) { c.recordSession(h, s) },
	}

	var fileID string
	var err error
	switch strategy {
	case domain.Multipart:
		fileID, err = c.multi.Upload(ctx, file, hooks)
	default:
		fileID, err = c.single.Upload(ctx, file, hooks)
	}

	if err != nil {
		c.log.Error("Upload failed", "file", file.Name, "error", err)
		c.setProgress(h, domain.ProgressFailed)
		c.setState(h, domain.StatusError, err.Error(), "")
		if c.monitor != nil {
			c.monitor.IncrFilesFailed()
		}
		return
	}

	c.setProgress(h, 100)
	c.setState(h, domain.StatusAwaitingAction, "upload complete", fileID)
	if c.monitor != nil {
		c.monitor.IncrFilesCompleted()
	}
}

// StartProcessing dispatches a processing job for a file whose upload is
// done. The transition to processing is optimistic: it happens before the
// backend answered. A dispatch failure settles the file in error; the file
// never reverts to awaiting_action once the trigger was pulled.
func (c *Coordinator) StartProcessing(ctx context.Context, h domain.Handle, req api.StartProcessRequest) (*api.ProcessInfo, error) {
	c.mu.Lock()
	e, ok := c.files[h]
	if !ok {
		c.mu.Unlock()
		return nil, apperrors.ErrUnknownFile
	}
	fileID := e.state.FileID
	if fileID == "" {
		c.mu.Unlock()
		return nil, fmt.Errorf("%s: %w", e.file.Name, apperrors.ErrMissingFileID)
	}
	if !e.state.Status.CanTransitionTo(domain.StatusProcessing) {
		status := e.state.Status
		c.mu.Unlock()
		return nil, fmt.Errorf("%w: %s -> %s", apperrors.ErrInvalidTransition, status, domain.StatusProcessing)
	}
	e.state.Status = domain.StatusProcessing
	e.state.Message = "processing requested"
	c.mu.Unlock()
	c.emit(event.StateChanged{Handle: h, Name: e.file.Name, Size: e.file.Size,
		Status: domain.StatusProcessing, Message: "processing requested", FileID: fileID, At: time.Now()})

	info, err := c.trigger.Start(ctx, fileID, req)
	if err != nil {
		c.setState(h, domain.StatusError, err.Error(), "")
		return nil, err
	}
	return info, nil
}

// AwaitProcessing blocks until the job reaches a terminal state and records
// the outcome on the file.
func (c *Coordinator) AwaitProcessing(ctx context.Context, h domain.Handle, info *api.ProcessInfo) error {
	final, err := c.trigger.Await(ctx, info.FileID, info.ID)
	if err != nil {
		return err
	}

	if final.Status == api.ProcessCompleted {
		c.setState(h, domain.StatusProcessed, fmt.Sprintf("processing complete (job %.8s)", info.ID), info.FileID)
		return nil
	}
	c.setState(h, domain.StatusError, final.ErrorMessage, info.FileID)
	return nil
}

// Start runs the long-lived pipeline workers (event fanout, heartbeat) under
// supervision. It blocks until Stop is called or the context ends.
func (c *Coordinator) Start(ctx context.Context) {
	fanout := workers.NewEventFanout(c.log, c.events)

	c.mu.Lock()
	fanout.Add(c.sinks...)
	c.supervisor.Add(fanout)
	if c.monitor != nil {
		c.supervisor.Add(workers.NewHeartbeatWorker(c.log, c.monitor, 0))
	}
	c.mu.Unlock()

	c.log.Info("Starting upload pipeline workers")
	c.supervisor.Run(ctx)
}

// Stop initiates a graceful shutdown of the pipeline workers.
func (c *Coordinator) Stop() {
	c.log.Info("Requesting pipeline shutdown")
	c.supervisor.Stop()
}

// setProgress applies the monotonic progress rules: a value in [0,100] only
// ever grows, and 100 or ProgressFailed are terminal until the file is
// removed and re-added.
func (c *Coordinator) setProgress(h domain.Handle, percent int) {
	c.mu.Lock()
	e, ok := c.files[h]
	if !ok {
		c.mu.Unlock()
		return
	}
	if e.progress == 100 || e.progress == domain.ProgressFailed {
		c.mu.Unlock()
		return
	}
	if percent != domain.ProgressFailed && percent <= e.progress {
		c.mu.Unlock()
		return
	}
	e.progress = percent
	name := e.file.Name
	c.mu.Unlock()

	c.emit(event.ProgressUpdated{Handle: h, Name: name, Percent: percent})
}

func (c *Coordinator) setState(h domain.Handle, status domain.UploadStatus, message, fileID string) {
	c.mu.Lock()
	e, ok := c.files[h]
	if !ok {
		c.mu.Unlock()
		return
	}
	e.state.Status = status
	e.state.Message = message
	if fileID != "" {
		e.state.FileID = fileID
	}
	name, size := e.file.Name, e.file.Size
	id := e.state.FileID
	c.mu.Unlock()

	c.emit(event.StateChanged{Handle: h, Name: name, Size: size,
		Status: status, Message: message, FileID: id, At: time.Now()})
}

// recordSession stores the multipart session identifiers on the file so a
// stuck session can be identified from a snapshot.
func (c *Coordinator) recordSession(h domain.Handle, s domain.UploadSession) {
	c.mu.Lock()
	e, ok := c.files[h]
	if !ok {
		c.mu.Unlock()
		return
	}
	e.state.UploadID = s.UploadID
	e.state.Message = fmt.Sprintf("uploading in %d parts", s.TotalParts)
	c.mu.Unlock()
}

func (c *Coordinator) emit(e event.UploadEvent) {
	select {
	case c.events <- e:
	default:
		c.log.Debug("Event channel full, dropping event")
	}
}
