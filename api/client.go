//go:generate go run go.uber.org/mock/mockgen -source=client.go -destination=../mocks/mock_backend.go -package=mocks
package api

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"mediaflow/auth"
	apperrors "mediaflow/errors"
)

// Backend is the upload backend contract: it mints presigned URLs, manages
// multipart sessions and dispatches processing jobs. The actual byte PUTs go
// straight to object storage and never pass through here.
type Backend interface {
	CreateUploadURL(ctx context.Context, req SingleUploadRequest) (*SingleUploadDescriptor, error)
	InitiateMultipart(ctx context.Context, req InitiateMultipartRequest) (*MultipartSessionInfo, error)
	CreatePartURL(ctx context.Context, req PartURLRequest) (*PartUploadDescriptor, error)
	CompleteMultipart(ctx context.Context, req CompleteMultipartRequest) (*CompleteMultipartResponse, error)
	AbortMultipart(ctx context.Context, req AbortMultipartRequest) error
	StartProcess(ctx context.Context, fileID string, req StartProcessRequest) (*ProcessInfo, error)
	GetProcess(ctx context.Context, fileID, processID string) (*ProcessInfo, error)
	ListProcesses(ctx context.Context, fileID string) ([]ProcessInfo, error)
}

// StatusError is a non-2xx answer from the backend.
type StatusError struct {
	Op   string
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: backend returned %d: %s", e.Op, e.Code, e.Body)
}

var _ Backend = (*Client)(nil)

// Client talks HTTP+JSON to the upload backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     auth.TokenProvider
	log        *slog.Logger
}

func NewClient(baseURL string, httpClient *http.Client, tokens auth.TokenProvider, log *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		tokens:     tokens,
		log:        log,
	}
}

func (c *Client) CreateUploadURL(ctx context.Context, req SingleUploadRequest) (*SingleUploadDescriptor, error) {
	var out SingleUploadDescriptor
	if err := c.post(ctx, "/uploads/presigned-url", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) InitiateMultipart(ctx context.Context, req InitiateMultipartRequest) (*MultipartSessionInfo, error) {
	var out MultipartSessionInfo
	if err := c.post(ctx, "/uploads/multipart/initiate", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreatePartURL(ctx context.Context, req PartURLRequest) (*PartUploadDescriptor, error) {
	var out PartUploadDescriptor
	if err := c.post(ctx, "/uploads/multipart/part-url", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CompleteMultipart(ctx context.Context, req CompleteMultipartRequest) (*CompleteMultipartResponse, error) {
	var out CompleteMultipartResponse
	if err := c.post(ctx, "/uploads/multipart/complete", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AbortMultipart(ctx context.Context, req AbortMultipartRequest) error {
	return c.post(ctx, "/uploads/multipart/abort", req, nil)
}

func (c *Client) StartProcess(ctx context.Context, fileID string, req StartProcessRequest) (*ProcessInfo, error) {
	var out ProcessInfo
	path := fmt.Sprintf("/files/%s/start-process", fileID)
	if err := c.post(ctx, path, req, &out); err != nil {
		var se *StatusError
		if stderrors.As(err, &se) && se.Code == http.StatusConflict {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrProcessAlreadyRunning, se.Body)
		}
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetProcess(ctx context.Context, fileID, processID string) (*ProcessInfo, error) {
	var out ProcessInfo
	path := fmt.Sprintf("/files/%s/processes/%s", fileID, processID)
	if err := c.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListProcesses(ctx context.Context, fileID string) ([]ProcessInfo, error) {
	var out []ProcessInfo
	path := fmt.Sprintf("/files/%s/processes", fileID)
	if err := c.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode %s request: %w", path, err)
	}
	return c.do(ctx, http.MethodPost, path, bytes.NewReader(payload), out)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.log.Debug("Backend call finished",
		"method", method, "path", path,
		"status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4*1024))
		return &StatusError{Op: method + " " + path, Code: resp.StatusCode, Body: strings.TrimSpace(string(detail))}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
