package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dreamforge/assetgen/internal/domain"
	"github.com/dreamforge/assetgen/internal/middleware"
)

type generateRequest struct {
	Prompt    string `json:"prompt"`
	AssetType string `json:"asset_type"`
	StyleID   string `json:"style_id"`
	Size      string `json:"size"`
	Count     int    `json:"count"`
	Provider  string `json:"provider"`
}

type progressResponse struct {
	JobID              string `json:"job_id"`
	Status             string `json:"status"`
	Progress           int    `json:"progress"`
	Message            string `json:"message"`
	StartTime          string `json:"start_time"`
	EstimatedRemaining int    `json:"estimated_seconds_remaining,omitempty"`
}

func toProgressResponse(rec domain.GenerationProgress) progressResponse {
	return progressResponse{
		JobID:              rec.JobID,
		Status:             rec.Status.Display(),
		Progress:           rec.Progress,
		Message:            rec.Message,
		StartTime:          rec.StartTime.Format(time.RFC3339),
		EstimatedRemaining: int(rec.EstimatedRemaining / time.Second),
	}
}

// Generate accepts one generation request and starts the workflow.
func (a *App) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.Count == 0 {
		req.Count = 1
	}
	if req.Size == "" {
		req.Size = "1024x1024"
	}

	locale := middleware.LocaleFromContext(r.Context())
	jobID, err := a.Service.Start(r.Context(), domain.GenerationRequest{
		Prompt:    req.Prompt,
		AssetType: domain.AssetType(req.AssetType),
		StyleID:   req.StyleID,
		Size:      req.Size,
		Count:     req.Count,
		Provider:  req.Provider,
	}, locale)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidRequest):
			a.error(w, http.StatusBadRequest, "invalid_request", err.Error())
		case errors.Is(err, domain.ErrBackendFailure), errors.Is(err, domain.ErrMalformedResponse):
			a.Logger.Error().Err(err).Msg("generate: backend submission failed")
			a.error(w, http.StatusBadGateway, "backend_failure", "generation backend rejected the request")
		default:
			a.Logger.Error().Err(err).Msg("generate: submission failed")
			a.error(w, http.StatusInternalServerError, "internal", "submission failed")
		}
		return
	}

	rec, _ := a.Service.Progress(jobID)
	a.json(w, http.StatusAccepted, toProgressResponse(rec))
}

// JobProgress returns the live tracking record for one job.
func (a *App) JobProgress(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "id")
	rec, ok := a.Service.Progress(jobID)
	if !ok {
		a.error(w, http.StatusNotFound, "not_found", "unknown or expired job")
		return
	}
	a.json(w, http.StatusOK, toProgressResponse(rec))
}

// CancelJob stops observing an in-flight job.
func (a *App) CancelJob(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "id")
	if err := a.Service.Cancel(r.Context(), jobID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "no in-flight job with that id")
			return
		}
		a.Logger.Error().Err(err).Str("job_id", jobID).Msg("cancel: failed")
		a.error(w, http.StatusInternalServerError, "internal", "cancel failed")
		return
	}
	a.json(w, http.StatusAccepted, map[string]any{"job_id": jobID, "status": "cancelling"})
}
