package domain

// UploadStatus is the lifecycle label of one file in the batch.
type UploadStatus string

const (
	StatusPendingUpload  UploadStatus = "pending_upload"
	StatusAwaitingAction UploadStatus = "awaiting_action"
	StatusProcessing     UploadStatus = "processing"
	StatusProcessed      UploadStatus = "processed"
	StatusError          UploadStatus = "error"
)

// ProgressFailed is the sentinel progress value for a failed upload.
// Once progress reaches 100 or ProgressFailed it is terminal for that file
// until the file is removed and re-added.
const ProgressFailed = -1

// CanTransitionTo encodes the per-file state machine:
//
//	pending_upload  -> awaiting_action | error
//	awaiting_action -> processing
//	processing      -> processed | error
//
// error and processed are terminal.
func (s UploadStatus) CanTransitionTo(next UploadStatus) bool {
	switch s {
	case StatusPendingUpload:
		return next == StatusAwaitingAction || next == StatusError
	case StatusAwaitingAction:
		return next == StatusProcessing
	case StatusProcessing:
		return next == StatusProcessed || next == StatusError
	default:
		return false
	}
}

// FileUploadState is the mutable per-file record owned by the coordinator.
type FileUploadState struct {
	Status   UploadStatus
	Message  string
	FileID   string // storage-side identifier, assigned once the upload succeeds
	UploadID string // present only while/after a multipart session is open
}
