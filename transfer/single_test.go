package transfer

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"mediaflow/api"
	"mediaflow/domain"
	apperrors "mediaflow/errors"
	"mediaflow/mocks"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// progressLog collects reported percents. The HTTP transport may drive the
// body reader from its own goroutine, so access is locked.
type progressLog struct {
	mu   sync.Mutex
	seen []int
}

func (l *progressLog) add(p int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seen = append(l.seen, p)
}

func (l *progressLog) values() []int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]int(nil), l.seen...)
}

func assertMonotonicTo(req *require.Assertions, seen []int, final int) {
	req.NotEmpty(seen)
	last := -1
	for _, p := range seen {
		req.GreaterOrEqual(p, last)
		req.LessOrEqual(p, 100)
		last = p
	}
	req.Equal(final, last)
}

func localFile(name string, size int) domain.LocalFile {
	content := bytes.Repeat([]byte{0xAB}, size)
	return domain.LocalFile{
		Handle:      domain.NewHandle(),
		Name:        name,
		Size:        int64(size),
		ContentType: "audio/wav",
		Content:     bytes.NewReader(content),
	}
}

func TestSingleTransfer_Upload(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)

	var gotBody []byte
	var gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req.Equal(http.MethodPut, r.Method)
		gotContentType = r.Header.Get("Content-Type")
		var err error
		gotBody, err = io.ReadAll(r.Body)
		req.NoError(err)
	}))
	defer server.Close()

	backend := mocks.NewMockBackend(ctrl)
	backend.EXPECT().
		CreateUploadURL(gomock.Any(), api.SingleUploadRequest{Filename: "meeting.wav", ContentType: "audio/wav"}).
		Return(&api.SingleUploadDescriptor{
			URL:          server.URL + "/bucket/meeting.wav",
			HeadersToSet: map[string]string{"Content-Type": "audio/wav"},
			FileID:       "file-42",
		}, nil)

	file := localFile("meeting.wav", 4096)
	progress := &progressLog{}

	tr := NewSingleTransfer(backend, server.Client(), nil, discardLogger())
	fileID, err := tr.Upload(context.Background(), file, Hooks{Progress: progress.add})

	req.NoError(err)
	req.Equal("file-42", fileID)
	req.Len(gotBody, 4096)
	req.Equal("audio/wav", gotContentType)
	assertMonotonicTo(req, progress.values(), 100)
}

func TestSingleTransfer_EmptyFile(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)

	// No EXPECT: an empty file must be refused before any backend call.
	backend := mocks.NewMockBackend(ctrl)

	tr := NewSingleTransfer(backend, nil, nil, discardLogger())
	_, err := tr.Upload(context.Background(), localFile("empty.wav", 0), Hooks{})
	req.ErrorIs(err, apperrors.ErrEmptyFile)
}

func TestSingleTransfer_StorageRejectsPut(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "denied", http.StatusForbidden)
	}))
	defer server.Close()

	backend := mocks.NewMockBackend(ctrl)
	backend.EXPECT().
		CreateUploadURL(gomock.Any(), gomock.Any()).
		Return(&api.SingleUploadDescriptor{URL: server.URL, FileID: "file-42"}, nil)

	progress := &progressLog{}
	tr := NewSingleTransfer(backend, server.Client(), nil, discardLogger())
	_, err := tr.Upload(context.Background(), localFile("meeting.wav", 1024), Hooks{Progress: progress.add})

	req.ErrorIs(err, apperrors.ErrUploadFailed)
	req.NotContains(progress.values(), 100)
}
