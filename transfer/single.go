package transfer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"mediaflow/api"
	"mediaflow/domain"
	apperrors "mediaflow/errors"
	"mediaflow/observability"
)

// SingleTransfer moves a whole file in one presigned PUT. It is the path for
// anything at or below domain.MultipartThreshold.
type SingleTransfer struct {
	backend api.Backend
	client  *http.Client
	monitor *observability.TransferMonitor
	log     *slog.Logger
}

func NewSingleTransfer(backend api.Backend, client *http.Client, monitor *observability.TransferMonitor, log *slog.Logger) *SingleTransfer {
	if client == nil {
		client = &http.Client{}
	}
	return &SingleTransfer{backend: backend, client: client, monitor: monitor, log: log}
}

// Upload requests one upload descriptor, streams the file body to storage and
// returns the backend file id. Progress reaches 100 only after storage
// acknowledged the PUT.
func (t *SingleTransfer) Upload(ctx context.Context, file domain.LocalFile, hooks Hooks) (string, error) {
	if file.Size <= 0 {
		return "", fmt.Errorf("%s: %w", file.Name, apperrors.ErrEmptyFile)
	}

	desc, err := t.backend.CreateUploadURL(ctx, api.SingleUploadRequest{
		Filename:    file.Name,
		ContentType: file.ContentType,
	})
	if err != nil {
		return "", fmt.Errorf("request upload url for %s: %w", file.Name, err)
	}

	body := &progressReader{
		r:         io.NewSectionReader(file.Content, 0, file.Size),
		total:     file.Size,
		monitor:   t.monitor,
		onPercent: hooks.Progress,
	}

	if _, err := putBytes(ctx, t.client, desc.URL, desc.HeadersToSet, body, file.Size); err != nil {
		return "", fmt.Errorf("upload %s: %w", file.Name, err)
	}

	t.log.Info("Single-shot upload finished", "file", file.Name, "size", file.Size, "file_id", desc.FileID)
	hooks.reportProgress(100)
	return desc.FileID, nil
}
