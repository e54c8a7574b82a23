package errors

import "fmt"

var (
	ErrWorkerPanic           = fmt.Errorf("worker panic")
	ErrMissingFileID         = fmt.Errorf("file has no storage identifier yet")
	ErrEmptyFile             = fmt.Errorf("file is empty")
	ErrNoParts               = fmt.Errorf("multipart session reports zero parts")
	ErrUnknownFile           = fmt.Errorf("unknown file handle")
	ErrTransferInFlight      = fmt.Errorf("transfer in flight")
	ErrTokenExpired          = fmt.Errorf("auth token is expired")
	ErrUploadFailed          = fmt.Errorf("upload rejected by storage")
	ErrNetworkFailure        = fmt.Errorf("network failure")
	ErrProcessAlreadyRunning = fmt.Errorf("process of this type is already in progress")
	ErrInvalidTransition     = fmt.Errorf("invalid upload state transition")
)
