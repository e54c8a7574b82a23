package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"mediaflow/auth"
	"mediaflow/domain"
	apperrors "mediaflow/errors"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestClient_CreateUploadURL(t *testing.T) {
	req := require.New(t)

	var gotAuth string
	var gotBody SingleUploadRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req.Equal(http.MethodPost, r.Method)
		req.Equal("/uploads/presigned-url", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		req.NoError(json.NewDecoder(r.Body).Decode(&gotBody))

		json.NewEncoder(w).Encode(SingleUploadDescriptor{
			URL:          "http://storage.local/bucket/key",
			HeadersToSet: map[string]string{"Content-Type": "audio/wav"},
			FileID:       "file-123",
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, server.Client(), auth.OpaqueToken("tok"), discardLogger())

	desc, err := client.CreateUploadURL(context.Background(), SingleUploadRequest{
		Filename:    "meeting.wav",
		ContentType: "audio/wav",
	})
	req.NoError(err)
	req.Equal("Bearer tok", gotAuth)
	req.Equal("meeting.wav", gotBody.Filename)
	req.Equal("file-123", desc.FileID)
	req.Equal("audio/wav", desc.HeadersToSet["Content-Type"])
}

func TestClient_CompleteMultipart(t *testing.T) {
	req := require.New(t)

	var gotBody CompleteMultipartRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req.Equal("/uploads/multipart/complete", r.URL.Path)
		req.NoError(json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(CompleteMultipartResponse{ETag: "final-etag"})
	}))
	defer server.Close()

	client := NewClient(server.URL, server.Client(), auth.OpaqueToken("tok"), discardLogger())

	out, err := client.CompleteMultipart(context.Background(), CompleteMultipartRequest{
		FileID:   "file-1",
		UploadID: "up-1",
		Parts: []domain.PartResult{
			{PartNumber: 1, ETag: "a"},
			{PartNumber: 2, ETag: "b"},
		},
	})
	req.NoError(err)
	req.Equal("final-etag", out.ETag)
	req.Len(gotBody.Parts, 2)
	req.Equal(1, gotBody.Parts[0].PartNumber)
}

func TestClient_ErrorMapping(t *testing.T) {
	req := require.New(t)

	t.Run("non-2xx becomes StatusError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer server.Close()

		client := NewClient(server.URL, server.Client(), auth.OpaqueToken("tok"), discardLogger())
		_, err := client.InitiateMultipart(context.Background(), InitiateMultipartRequest{
			Filename: "big.mp4", FileSizeBytes: 1,
		})

		var se *StatusError
		req.ErrorAs(err, &se)
		req.Equal(http.StatusInternalServerError, se.Code)
		req.Contains(se.Body, "boom")
	})

	t.Run("409 on start-process maps to ErrProcessAlreadyRunning", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "transcription already in progress", http.StatusConflict)
		}))
		defer server.Close()

		client := NewClient(server.URL, server.Client(), auth.OpaqueToken("tok"), discardLogger())
		_, err := client.StartProcess(context.Background(), "file-1", StartProcessRequest{
			ProcessType: "transcription", TargetHardware: "cpu",
		})
		req.ErrorIs(err, apperrors.ErrProcessAlreadyRunning)
	})

	t.Run("expired token blocks the call", func(t *testing.T) {
		calls := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
		}))
		defer server.Close()

		expired := expiredProvider{}
		client := NewClient(server.URL, server.Client(), expired, discardLogger())
		_, err := client.CreateUploadURL(context.Background(), SingleUploadRequest{Filename: "x"})
		req.ErrorIs(err, apperrors.ErrTokenExpired)
		req.Zero(calls)
	})
}

type expiredProvider struct{}

func (expiredProvider) Token(_ context.Context) (string, error) {
	return "", apperrors.ErrTokenExpired
}
