package domain

import "time"

// AssetStatus enumerates asset lifecycle states.
type AssetStatus string

const (
	AssetStatusReady    AssetStatus = "ready"
	AssetStatusArchived AssetStatus = "archived"
)

// AssetMetadata carries the generation context a finished asset was produced
// under. The prompt here is always the original user prompt, even when a style
// preset rewrote the transmitted one.
type AssetMetadata struct {
	Prompt           string         `json:"prompt"`
	StyleID          string         `json:"style_id,omitempty"`
	Provider         string         `json:"provider"`
	Settings         map[string]any `json:"settings,omitempty"`
	Model            string         `json:"model,omitempty"`
	Seed             int64          `json:"seed,omitempty"`
	Quality          string         `json:"quality,omitempty"`
	GenerationTimeMS int64          `json:"generation_time_ms,omitempty"`
}

// GeneratedAsset is one finished generation unit. The workflow creates it,
// hands it to the persistence collaborator and the notification callback, and
// does not retain it afterwards.
type GeneratedAsset struct {
	ID         string        `json:"id"`
	JobID      string        `json:"job_id"`
	Filename   string        `json:"filename"`
	SourceURL  string        `json:"source_url"`
	Type       AssetType     `json:"type"`
	Format     string        `json:"format"`
	Dimensions Dimensions    `json:"dimensions"`
	Metadata   AssetMetadata `json:"metadata"`
	Status     AssetStatus   `json:"status"`
	Versions   []string      `json:"versions,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}
