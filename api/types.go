package api

import (
	"time"

	"mediaflow/domain"
)

// Request/response shapes for the upload backend. Field names follow the
// backend's JSON contract.

type SingleUploadRequest struct {
	Filename    string `json:"filename" validate:"required,max=1024"`
	ContentType string `json:"content_type,omitempty"`
}

// SingleUploadDescriptor authorizes one PUT of a whole file body.
// HeadersToSet must be applied verbatim to the PUT request.
type SingleUploadDescriptor struct {
	URL          string            `json:"url"`
	HeadersToSet map[string]string `json:"headers_to_set"`
	FileID       string            `json:"file_id"`
}

type InitiateMultipartRequest struct {
	Filename      string `json:"filename" validate:"required,max=1024"`
	ContentType   string `json:"content_type,omitempty"`
	FileSizeBytes int64  `json:"file_size_bytes" validate:"required,gt=0"`
}

type MultipartSessionInfo struct {
	UploadID            string `json:"upload_id"`
	FileID              string `json:"file_id"`
	RecommendedPartSize int64  `json:"recommended_part_size,omitempty"`
	TotalParts          int    `json:"total_parts"`
}

type PartURLRequest struct {
	FileID     string `json:"file_id" validate:"required"`
	UploadID   string `json:"upload_id" validate:"required"`
	PartNumber int    `json:"part_number" validate:"required,gt=0"`
}

// PartUploadDescriptor authorizes one PUT of a single byte range.
type PartUploadDescriptor struct {
	URL          string            `json:"url"`
	HeadersToSet map[string]string `json:"headers_to_set"`
}

type CompleteMultipartRequest struct {
	FileID   string              `json:"file_id" validate:"required"`
	UploadID string              `json:"upload_id" validate:"required"`
	Parts    []domain.PartResult `json:"parts" validate:"required,min=1,dive"`
}

type CompleteMultipartResponse struct {
	ETag string `json:"etag"`
}

type AbortMultipartRequest struct {
	FileID   string `json:"file_id" validate:"required"`
	UploadID string `json:"upload_id" validate:"required"`
}

// ProcessStatus mirrors the backend's job lifecycle labels.
type ProcessStatus string

const (
	ProcessPending    ProcessStatus = "pending"
	ProcessProcessing ProcessStatus = "processing"
	ProcessCompleted  ProcessStatus = "completed"
	ProcessFailed     ProcessStatus = "failed"
)

// Terminal reports whether the job will not change state anymore.
func (s ProcessStatus) Terminal() bool {
	return s == ProcessCompleted || s == ProcessFailed
}

type StartProcessRequest struct {
	ProcessType    string `json:"process_type" validate:"required,oneof=transcription"`
	TargetHardware string `json:"target_hardware" validate:"required,oneof=cpu cuda rocm"`
}

type ProcessInfo struct {
	ID           string        `json:"id"`
	FileID       string        `json:"file_id"`
	ProcessType  string        `json:"process_type"`
	Status       ProcessStatus `json:"status"`
	ErrorMessage string        `json:"error_message,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
}
