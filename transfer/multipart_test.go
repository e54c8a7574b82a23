package transfer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"mediaflow/api"
	"mediaflow/domain"
	"mediaflow/domain/event"
	apperrors "mediaflow/errors"
	"mediaflow/mocks"
)

// partServer accepts PUTs on /part/{n}, answers with a quoted ETag and lets a
// test inject a number of failures per part.
type partServer struct {
	*httptest.Server
	mu       sync.Mutex
	failures map[int]int // part number -> remaining failed attempts
	received map[int]int64
}

func newPartServer(t *testing.T) *partServer {
	ps := &partServer{failures: map[int]int{}, received: map[int]int64{}}
	ps.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		part, err := strconv.Atoi(strings.TrimPrefix(r.URL.Path, "/part/"))
		require.NoError(t, err)

		n, err := io.Copy(io.Discard, r.Body)
		require.NoError(t, err)

		ps.mu.Lock()
		defer ps.mu.Unlock()
		if ps.failures[part] > 0 {
			ps.failures[part]--
			http.Error(w, "storage hiccup", http.StatusInternalServerError)
			return
		}
		ps.received[part] = n
		w.Header().Set("ETag", fmt.Sprintf("%q", "etag-"+strconv.Itoa(part)))
	}))
	t.Cleanup(ps.Close)
	return ps
}

func (ps *partServer) failPart(part, times int) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	ps.failures[part] = times
}

func (ps *partServer) bytesFor(part int) int64 {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return ps.received[part]
}

func expectPartURLs(backend *mocks.MockBackend, ps *partServer, times int) {
	backend.EXPECT().
		CreatePartURL(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req api.PartURLRequest) (*api.PartUploadDescriptor, error) {
			return &api.PartUploadDescriptor{
				URL: ps.URL + "/part/" + strconv.Itoa(req.PartNumber),
			}, nil
		}).
		Times(times)
}

func TestMultipartTransfer_Upload(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	ps := newPartServer(t)

	const totalParts = 15
	const partSize = 1024
	fileSize := (totalParts-1)*partSize + 512 // final part is short

	backend := mocks.NewMockBackend(ctrl)
	backend.EXPECT().
		InitiateMultipart(gomock.Any(), gomock.Any()).
		Return(&api.MultipartSessionInfo{
			UploadID:            "up-1",
			FileID:              "file-9",
			RecommendedPartSize: partSize,
			TotalParts:          totalParts,
		}, nil)
	expectPartURLs(backend, ps, totalParts)

	var completed api.CompleteMultipartRequest
	backend.EXPECT().
		CompleteMultipart(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, r api.CompleteMultipartRequest) (*api.CompleteMultipartResponse, error) {
			completed = r
			return &api.CompleteMultipartResponse{ETag: "final"}, nil
		})

	events := make(chan event.UploadEvent, 64)
	progress := &progressLog{}
	var session domain.UploadSession

	tr := NewMultipartTransfer(backend, ps.Client(), nil, NoRetry(), events, discardLogger())
	fileID, err := tr.Upload(context.Background(), localFile("big.mp4", fileSize), Hooks{
		Progress: progress.add,
		Session:  func(s domain.UploadSession) { session = s },
	})

	req.NoError(err)
	req.Equal("file-9", fileID)
	req.Equal("up-1", session.UploadID)
	req.Equal(totalParts, session.TotalParts)

	req.Len(completed.Parts, totalParts)
	for i, part := range completed.Parts {
		req.Equal(i+1, part.PartNumber)
		req.Equal("etag-"+strconv.Itoa(i+1), part.ETag, "quotes must be stripped")
	}
	req.EqualValues(partSize, ps.bytesFor(1))
	req.EqualValues(512, ps.bytesFor(totalParts))

	assertMonotonicTo(req, progress.values(), 100)

	var uploaded int
	for len(events) > 0 {
		if _, ok := (<-events).(event.PartUploaded); ok {
			uploaded++
		}
	}
	req.Equal(totalParts, uploaded)
}

func TestMultipartTransfer_PartFailureAbortsOnce(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	ps := newPartServer(t)
	ps.failPart(7, 1)

	backend := mocks.NewMockBackend(ctrl)
	backend.EXPECT().
		InitiateMultipart(gomock.Any(), gomock.Any()).
		Return(&api.MultipartSessionInfo{
			UploadID: "up-1", FileID: "file-9", RecommendedPartSize: 1024, TotalParts: 15,
		}, nil)
	expectPartURLs(backend, ps, 7) // parts 1..6 succeed, part 7 fails
	backend.EXPECT().
		AbortMultipart(gomock.Any(), api.AbortMultipartRequest{FileID: "file-9", UploadID: "up-1"}).
		Return(nil).
		Times(1)
	// No CompleteMultipart expectation: completion must never happen.

	progress := &progressLog{}
	tr := NewMultipartTransfer(backend, ps.Client(), nil, NoRetry(), nil, discardLogger())
	_, err := tr.Upload(context.Background(), localFile("big.mp4", 15*1024), Hooks{Progress: progress.add})

	req.ErrorIs(err, apperrors.ErrUploadFailed)
	req.NotContains(progress.values(), 100)
}

func TestMultipartTransfer_AbortFailureStaysDiagnostic(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	ps := newPartServer(t)
	ps.failPart(1, 1)

	backend := mocks.NewMockBackend(ctrl)
	backend.EXPECT().
		InitiateMultipart(gomock.Any(), gomock.Any()).
		Return(&api.MultipartSessionInfo{
			UploadID: "up-1", FileID: "file-9", RecommendedPartSize: 1024, TotalParts: 2,
		}, nil)
	expectPartURLs(backend, ps, 1)
	backend.EXPECT().
		AbortMultipart(gomock.Any(), gomock.Any()).
		Return(fmt.Errorf("backend unreachable"))

	events := make(chan event.UploadEvent, 8)
	tr := NewMultipartTransfer(backend, ps.Client(), nil, NoRetry(), events, discardLogger())
	_, err := tr.Upload(context.Background(), localFile("big.mp4", 2048), Hooks{})

	// The caller sees the part failure, never the abort failure.
	req.ErrorIs(err, apperrors.ErrUploadFailed)

	select {
	case e := <-events:
		failed, ok := e.(event.AbortFailed)
		req.True(ok, "expected an AbortFailed diagnostic, got %T", e)
		req.Equal("up-1", failed.UploadID)
		req.Contains(failed.Reason, "backend unreachable")
	case <-time.After(time.Second):
		t.Fatal("no AbortFailed event emitted")
	}
}

func TestMultipartTransfer_InitiateFailureDoesNotAbort(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)

	// Abort has nothing to target before a session exists, hence no
	// AbortMultipart expectation.
	backend := mocks.NewMockBackend(ctrl)
	backend.EXPECT().
		InitiateMultipart(gomock.Any(), gomock.Any()).
		Return(nil, fmt.Errorf("backend down"))

	tr := NewMultipartTransfer(backend, nil, nil, NoRetry(), nil, discardLogger())
	_, err := tr.Upload(context.Background(), localFile("big.mp4", 2048), Hooks{})
	req.ErrorContains(err, "initiate multipart")
}

func TestMultipartTransfer_ZeroPartsSession(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)

	backend := mocks.NewMockBackend(ctrl)
	backend.EXPECT().
		InitiateMultipart(gomock.Any(), gomock.Any()).
		Return(&api.MultipartSessionInfo{UploadID: "up-1", FileID: "file-9", TotalParts: 0}, nil)
	backend.EXPECT().
		AbortMultipart(gomock.Any(), api.AbortMultipartRequest{FileID: "file-9", UploadID: "up-1"}).
		Return(nil)

	tr := NewMultipartTransfer(backend, nil, nil, NoRetry(), nil, discardLogger())
	_, err := tr.Upload(context.Background(), localFile("big.mp4", 2048), Hooks{})
	req.ErrorIs(err, apperrors.ErrNoParts)
}

func TestMultipartTransfer_EmptyFile(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)

	backend := mocks.NewMockBackend(ctrl)

	tr := NewMultipartTransfer(backend, nil, nil, NoRetry(), nil, discardLogger())
	_, err := tr.Upload(context.Background(), localFile("empty.mp4", 0), Hooks{})
	req.ErrorIs(err, apperrors.ErrEmptyFile)
}

func TestMultipartTransfer_RetryRecoversPart(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	ps := newPartServer(t)
	ps.failPart(2, 1)

	backend := mocks.NewMockBackend(ctrl)
	backend.EXPECT().
		InitiateMultipart(gomock.Any(), gomock.Any()).
		Return(&api.MultipartSessionInfo{
			UploadID: "up-1", FileID: "file-9", RecommendedPartSize: 1024, TotalParts: 2,
		}, nil)
	// Part 1 once, part 2 twice: each attempt requests a fresh URL.
	expectPartURLs(backend, ps, 3)
	backend.EXPECT().
		CompleteMultipart(gomock.Any(), gomock.Any()).
		Return(&api.CompleteMultipartResponse{ETag: "final"}, nil)

	retry := RetryPolicy{MaxAttempts: 3, InitialInterval: time.Millisecond}
	tr := NewMultipartTransfer(backend, ps.Client(), nil, retry, nil, discardLogger())
	fileID, err := tr.Upload(context.Background(), localFile("big.mp4", 2048), Hooks{})

	req.NoError(err)
	req.Equal("file-9", fileID)
}
