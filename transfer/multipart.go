package transfer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"time"

	"mediaflow/api"
	"mediaflow/domain"
	"mediaflow/domain/event"
	apperrors "mediaflow/errors"
	"mediaflow/observability"
)

const abortTimeout = 10 * time.Second

// MultipartTransfer moves a file as a sequence of independently presigned
// part PUTs: initiate, then parts 1..N in order, then complete. If anything
// fails after the session opened, the session is aborted exactly once and the
// primary error is returned; the abort outcome itself stays diagnostic.
type MultipartTransfer struct {
	backend api.Backend
	client  *http.Client
	monitor *observability.TransferMonitor
	retry   RetryPolicy
	events  chan<- event.UploadEvent
	log     *slog.Logger
}

func NewMultipartTransfer(backend api.Backend, client *http.Client, monitor *observability.TransferMonitor,
	retry RetryPolicy, events chan<- event.UploadEvent, log *slog.Logger) *MultipartTransfer {
	if client == nil {
		client = &http.Client{}
	}
	return &MultipartTransfer{
		backend: backend,
		client:  client,
		monitor: monitor,
		retry:   retry,
		events:  events,
		log:     log,
	}
}

// Upload runs the whole multipart conversation for one file and returns the
// backend file id. Parts are uploaded sequentially; progress is the fraction
// of parts confirmed, reaching 100 only after the completion call succeeded.
func (t *MultipartTransfer) Upload(ctx context.Context, file domain.LocalFile, hooks Hooks) (string, error) {
	if file.Size <= 0 {
		return "", fmt.Errorf("%s: %w", file.Name, apperrors.ErrEmptyFile)
	}

	info, err := t.backend.InitiateMultipart(ctx, api.InitiateMultipartRequest{
		Filename:      file.Name,
		ContentType:   file.ContentType,
		FileSizeBytes: file.Size,
	})
	if err != nil {
		return "", fmt.Errorf("initiate multipart for %s: %w", file.Name, err)
	}

	partSize := info.RecommendedPartSize
	if partSize <= 0 {
		partSize = domain.DefaultPartSize
	}
	session := domain.UploadSession{
		UploadID:   info.UploadID,
		FileID:     info.FileID,
		TotalParts: info.TotalParts,
		PartSize:   partSize,
	}

	if session.TotalParts <= 0 {
		t.compensate(ctx, file, session)
		return "", fmt.Errorf("%s: %w", file.Name, apperrors.ErrNoParts)
	}

	if hooks.Session != nil {
		hooks.Session(session)
	}
	t.log.Info("Multipart session opened",
		"file", file.Name, "upload_id", session.UploadID, "parts", session.TotalParts)

	parts := make([]domain.PartResult, 0, session.TotalParts)
	for p := 1; p <= session.TotalParts; p++ {
		etag, err := t.uploadPart(ctx, file, session, p)
		if err != nil {
			t.compensate(ctx, file, session)
			return "", fmt.Errorf("upload part %d/%d of %s: %w", p, session.TotalParts, file.Name, err)
		}

		parts = append(parts, domain.PartResult{PartNumber: p, ETag: etag})
		if t.monitor != nil {
			t.monitor.IncrPartsUploaded()
		}
		t.emit(event.PartUploaded{Handle: file.Handle, PartNumber: p, TotalParts: session.TotalParts, ETag: etag})

		percent := int(math.Round(float64(p) / float64(session.TotalParts) * 100))
		if percent > 99 {
			percent = 99
		}
		hooks.reportProgress(percent)
	}

	if _, err := t.backend.CompleteMultipart(ctx, api.CompleteMultipartRequest{
		FileID:   session.FileID,
		UploadID: session.UploadID,
		Parts:    parts,
	}); err != nil {
		t.compensate(ctx, file, session)
		return "", fmt.Errorf("complete multipart for %s: %w", file.Name, err)
	}

	t.log.Info("Multipart upload finished", "file", file.Name, "parts", session.TotalParts, "file_id", session.FileID)
	hooks.reportProgress(100)
	return session.FileID, nil
}

// uploadPart runs one part operation under the retry policy. Every attempt
// requests a fresh presigned URL: part URLs are short-lived and single-use, so
// replaying a stale one is never correct.
func (t *MultipartTransfer) uploadPart(ctx context.Context, file domain.LocalFile, session domain.UploadSession, p int) (string, error) {
	offset, length := session.PartRange(p, file.Size)
	if length <= 0 {
		return "", fmt.Errorf("part %d maps to an empty byte range", p)
	}

	var etag string
	op := func() error {
		desc, err := t.backend.CreatePartURL(ctx, api.PartURLRequest{
			FileID:     session.FileID,
			UploadID:   session.UploadID,
			PartNumber: p,
		})
		if err != nil {
			return err
		}

		body := &progressReader{
			r:       io.NewSectionReader(file.Content, offset, length),
			total:   length,
			monitor: t.monitor,
		}
		etag, err = putBytes(ctx, t.client, desc.URL, desc.HeadersToSet, body, length)
		return err
	}

	if err := t.retry.Execute(ctx, op); err != nil {
		return "", err
	}
	return etag, nil
}

// compensate aborts the session. Failures are logged and surfaced on the
// event channel but never returned: the caller already holds the primary
// error and the backend reaps orphaned sessions on its own schedule.
func (t *MultipartTransfer) compensate(ctx context.Context, file domain.LocalFile, session domain.UploadSession) {
	if t.monitor != nil {
		t.monitor.IncrAbortsIssued()
	}

	abortCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), abortTimeout)
	defer cancel()

	err := t.backend.AbortMultipart(abortCtx, api.AbortMultipartRequest{
		FileID:   session.FileID,
		UploadID: session.UploadID,
	})
	if err != nil {
		t.log.Error("Abort of multipart session failed",
			"file", file.Name, "upload_id", session.UploadID, "error", err)
		t.emit(event.AbortFailed{Handle: file.Handle, UploadID: session.UploadID, Reason: err.Error()})
	}
}

func (t *MultipartTransfer) emit(e event.UploadEvent) {
	if t.events == nil {
		return
	}
	select {
	case t.events <- e:
	default:
	}
}
