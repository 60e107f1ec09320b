package backend

// Job status values reported by the rendering backend.
const (
	StatusPending    = "pending"
	StatusGenerating = "generating"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// SubmitRequest is the payload sent to the backend submit endpoint.
type SubmitRequest struct {
	Prompt    string         `json:"prompt"`
	AssetType string         `json:"asset_type"`
	Style     string         `json:"style,omitempty"`
	Width     int            `json:"width"`
	Height    int            `json:"height"`
	Count     int            `json:"count"`
	Provider  string         `json:"provider,omitempty"`
	Settings  map[string]any `json:"settings,omitempty"`
}

// RawAsset is one finished unit as reported by the backend, prior to any
// local persistence.
type RawAsset struct {
	ID               string `json:"id"`
	URL              string `json:"url"`
	Format           string `json:"format"`
	Width            int    `json:"width"`
	Height           int    `json:"height"`
	Seed             int64  `json:"seed,omitempty"`
	Model            string `json:"model,omitempty"`
	Quality          string `json:"quality,omitempty"`
	GenerationTimeMS int64  `json:"generation_time_ms,omitempty"`
}

// SubmitResponse is the immediate reply to a submission. The backend is free
// to answer with finished assets directly or with a job id for later polling;
// both shapes decode into this struct.
type SubmitResponse struct {
	JobID   string     `json:"job_id"`
	Assets  []RawAsset `json:"assets,omitempty"`
	Code    string     `json:"code,omitempty"`
	Message string     `json:"message,omitempty"`
}

// StatusResponse is the reply from the job status endpoint. Assets are only
// present when Status is "completed".
type StatusResponse struct {
	JobID                     string     `json:"job_id"`
	Status                    string     `json:"status"`
	Progress                  int        `json:"progress,omitempty"`
	Message                   string     `json:"message,omitempty"`
	Assets                    []RawAsset `json:"assets,omitempty"`
	EstimatedSecondsRemaining int        `json:"estimated_seconds_remaining,omitempty"`
}
