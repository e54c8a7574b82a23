package transfer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"mediaflow/domain"
	apperrors "mediaflow/errors"
)

// Hooks lets the coordinator observe a transfer without owning it.
// Both callbacks are optional.
type Hooks struct {
	// Progress receives the overall percent for the file, in [0,100].
	Progress func(percent int)
	// Session fires once a multipart session is open, before any part is sent.
	Session func(s domain.UploadSession)
}

func (h Hooks) reportProgress(percent int) {
	if h.Progress != nil {
		h.Progress(percent)
	}
}

// putBytes issues one presigned PUT carrying a raw byte range. Success is any
// 2xx status; the response ETag is returned with surrounding quotes stripped.
// A transport error maps to ErrNetworkFailure, a non-2xx answer to
// ErrUploadFailed.
func putBytes(ctx context.Context, client *http.Client, url string, headers map[string]string, body io.Reader, length int64) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, body)
	if err != nil {
		return "", err
	}
	req.ContentLength = length
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrNetworkFailure, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: storage returned %d", apperrors.ErrUploadFailed, resp.StatusCode)
	}

	return strings.Trim(resp.Header.Get("ETag"), `"`), nil
}
