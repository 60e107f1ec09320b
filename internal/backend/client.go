package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dreamforge/assetgen/internal/domain"
)

// Client is the contract for talking to the rendering backend.
type Client interface {
	Submit(ctx context.Context, req SubmitRequest) (*SubmitResponse, error)
	JobStatus(ctx context.Context, jobID string) (*StatusResponse, error)
	CancelJob(ctx context.Context, jobID string) error
}

// Options configures an HTTPClient.
type Options struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
	Timeout    time.Duration
}

// HTTPClient talks to the rendering backend over JSON/HTTP.
type HTTPClient struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient constructs a backend client with sane defaults.
func NewHTTPClient(opts Options) *HTTPClient {
	base := strings.TrimRight(opts.BaseURL, "/")
	client := opts.HTTPClient
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 60 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	return &HTTPClient{
		httpClient: client,
		baseURL:    base,
		token:      strings.TrimSpace(opts.APIKey),
	}
}

type errorBody struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// Submit posts one generation request. The response may carry finished assets
// or a job id; the caller discriminates.
func (c *HTTPClient) Submit(ctx context.Context, req SubmitRequest) (*SubmitResponse, error) {
	if c.token == "" {
		return nil, fmt.Errorf("%w: backend API key is missing", domain.ErrBackendFailure)
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/generations", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrBackendFailure, err)
	}
	defer resp.Body.Close()

	var out SubmitResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			return nil, fmt.Errorf("%w: http %d", domain.ErrBackendFailure, resp.StatusCode)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, backendError(resp.StatusCode, out.Message, out.Code)
	}
	return &out, nil
}

// JobStatus queries the status endpoint for one job.
func (c *HTTPClient) JobStatus(ctx context.Context, jobID string) (*StatusResponse, error) {
	if strings.TrimSpace(jobID) == "" {
		return nil, errors.New("backend: job id required")
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/jobs/"+jobID, nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrBackendFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: job %s", domain.ErrNotFound, jobID)
	}
	var out StatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			return nil, fmt.Errorf("%w: http %d", domain.ErrBackendFailure, resp.StatusCode)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, backendError(resp.StatusCode, out.Message, "")
	}
	if out.Status == "" {
		return nil, fmt.Errorf("%w: status missing for job %s", domain.ErrMalformedResponse, jobID)
	}
	return &out, nil
}

// CancelJob asks the backend to abandon a job. Best effort: the workflow
// stops observing regardless of whether the backend honors it.
func (c *HTTPClient) CancelJob(ctx context.Context, jobID string) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/jobs/"+jobID+"/cancel", nil)
	if err != nil {
		return err
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrBackendFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var eb errorBody
		_ = json.NewDecoder(resp.Body).Decode(&eb)
		return backendError(resp.StatusCode, eb.Message, eb.Code)
	}
	return nil
}

func backendError(status int, message, code string) error {
	if message != "" {
		if code != "" {
			return fmt.Errorf("%w: %s (%s)", domain.ErrBackendFailure, message, code)
		}
		return fmt.Errorf("%w: %s", domain.ErrBackendFailure, message)
	}
	return fmt.Errorf("%w: http %d", domain.ErrBackendFailure, status)
}
