package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dreamforge/assetgen/internal/domain"
)

func TestHTTPClientSubmitAsync(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Fatalf("unexpected auth header: %s", got)
		}
		if r.URL.Path != "/v1/generations" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		var payload SubmitRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if payload.Prompt != "a castle" || payload.Count != 2 {
			t.Fatalf("payload mismatch: %+v", payload)
		}
		_ = json.NewEncoder(w).Encode(SubmitResponse{JobID: "J1"})
	}))
	defer ts.Close()

	client := NewHTTPClient(Options{APIKey: "test-key", BaseURL: ts.URL})
	resp, err := client.Submit(context.Background(), SubmitRequest{Prompt: "a castle", Width: 512, Height: 512, Count: 2})
	if err != nil {
		t.Fatalf("Submit error: %v", err)
	}
	if resp.JobID != "J1" || len(resp.Assets) != 0 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestHTTPClientSubmitSync(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(SubmitResponse{Assets: []RawAsset{
			{ID: "a-1", URL: "https://cdn.example.com/a-1.png", Format: "png"},
		}})
	}))
	defer ts.Close()

	client := NewHTTPClient(Options{APIKey: "test-key", BaseURL: ts.URL})
	resp, err := client.Submit(context.Background(), SubmitRequest{Prompt: "a dragon", Width: 512, Height: 512, Count: 1})
	if err != nil {
		t.Fatalf("Submit error: %v", err)
	}
	if resp.JobID != "" || len(resp.Assets) != 1 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestHTTPClientSubmitBackendError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(SubmitResponse{Code: "overloaded", Message: "renderer busy"})
	}))
	defer ts.Close()

	client := NewHTTPClient(Options{APIKey: "test-key", BaseURL: ts.URL})
	_, err := client.Submit(context.Background(), SubmitRequest{Prompt: "x", Width: 1, Height: 1, Count: 1})
	if !errors.Is(err, domain.ErrBackendFailure) {
		t.Fatalf("expected ErrBackendFailure, got %v", err)
	}
}

func TestHTTPClientSubmitMissingKey(t *testing.T) {
	client := NewHTTPClient(Options{})
	if _, err := client.Submit(context.Background(), SubmitRequest{Prompt: "x"}); !errors.Is(err, domain.ErrBackendFailure) {
		t.Fatalf("expected ErrBackendFailure for missing key, got %v", err)
	}
}

func TestHTTPClientJobStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/jobs/J1" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(StatusResponse{JobID: "J1", Status: StatusGenerating, Progress: 40})
	}))
	defer ts.Close()

	client := NewHTTPClient(Options{APIKey: "test-key", BaseURL: ts.URL})
	resp, err := client.JobStatus(context.Background(), "J1")
	if err != nil {
		t.Fatalf("JobStatus error: %v", err)
	}
	if resp.Status != StatusGenerating || resp.Progress != 40 {
		t.Fatalf("unexpected status: %+v", resp)
	}
}

func TestHTTPClientJobStatusMissingField(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"job_id": "J1"})
	}))
	defer ts.Close()

	client := NewHTTPClient(Options{APIKey: "test-key", BaseURL: ts.URL})
	if _, err := client.JobStatus(context.Background(), "J1"); !errors.Is(err, domain.ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
}

func TestHTTPClientJobStatusNotFound(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such job", http.StatusNotFound)
	}))
	defer ts.Close()

	client := NewHTTPClient(Options{APIKey: "test-key", BaseURL: ts.URL})
	if _, err := client.JobStatus(context.Background(), "nope"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestHTTPClientCancelJob(t *testing.T) {
	var cancelled bool
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/jobs/J1/cancel" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		cancelled = true
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	client := NewHTTPClient(Options{APIKey: "test-key", BaseURL: ts.URL})
	if err := client.CancelJob(context.Background(), "J1"); err != nil {
		t.Fatalf("CancelJob error: %v", err)
	}
	if !cancelled {
		t.Fatalf("cancel endpoint was not called")
	}
}
