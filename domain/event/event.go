package event

import (
	"mediaflow/domain"
	"time"
)

// UploadEvent is implemented by every event emitted by the upload pipeline.
// Events are observability side channels: consumers get best-effort delivery
// and must never influence the transfer itself.
type UploadEvent interface {
	FileHandle() domain.Handle
}

type ProgressUpdated struct {
	Handle  domain.Handle
	Name    string
	Percent int
}

func (e ProgressUpdated) FileHandle() domain.Handle { return e.Handle }

type StateChanged struct {
	Handle  domain.Handle
	Name    string
	Size    int64
	Status  domain.UploadStatus
	Message string
	FileID  string
	At      time.Time
}

func (e StateChanged) FileHandle() domain.Handle { return e.Handle }

type PartUploaded struct {
	Handle     domain.Handle
	PartNumber int
	TotalParts int
	ETag       string
}

func (e PartUploaded) FileHandle() domain.Handle { return e.Handle }

// AbortFailed reports a failed abort compensation. It is diagnostic only:
// the primary upload error is what the caller sees, never the abort outcome.
type AbortFailed struct {
	Handle   domain.Handle
	UploadID string
	Reason   string
}

func (e AbortFailed) FileHandle() domain.Handle { return e.Handle }
