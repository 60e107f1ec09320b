package generation

import (
	"context"
	"fmt"
	"strings"

	"github.com/dreamforge/assetgen/internal/backend"
	"github.com/dreamforge/assetgen/internal/domain"
	"github.com/dreamforge/assetgen/internal/infra"
	"github.com/dreamforge/assetgen/internal/styles"
)

// SubmitMode discriminates the two reply shapes of the backend submit
// endpoint.
type SubmitMode int

const (
	// SubmitSync means the backend returned finished assets directly.
	SubmitSync SubmitMode = iota
	// SubmitAsync means the backend accepted the job for later polling.
	SubmitAsync
)

// SubmitOutcome is the interpreted result of one submission.
type SubmitOutcome struct {
	Mode        SubmitMode
	JobID       string
	Assets      []backend.RawAsset
	Provider    string
	FinalPrompt string
}

// Submitter validates requests, applies style presets and issues the single
// outbound submit call. No retry happens at this layer.
type Submitter struct {
	client          backend.Client
	styles          *styles.Catalog
	defaultProvider string
	logger          infra.Logger
}

// NewSubmitter constructs a Submitter.
func NewSubmitter(client backend.Client, catalog *styles.Catalog, defaultProvider string, logger infra.Logger) *Submitter {
	return &Submitter{
		client:          client,
		styles:          catalog,
		defaultProvider: defaultProvider,
		logger:          logger,
	}
}

// Submit sends one generation request and interprets the reply shape.
// Validation failures surface before any backend traffic.
func (s *Submitter) Submit(ctx context.Context, req domain.GenerationRequest) (*SubmitOutcome, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	dims, err := req.Dimensions()
	if err != nil {
		return nil, err
	}

	prompt := strings.TrimSpace(req.Prompt)
	finalPrompt := prompt
	styleName := ""
	if req.StyleID != "" {
		if preset, ok := s.styles.Resolve(req.StyleID); ok {
			finalPrompt = preset.Apply(prompt)
			styleName = preset.Name
		} else {
			s.logger.Warn().Str("style_id", req.StyleID).Msg("submitter: unknown style preset, sending prompt unchanged")
		}
	}

	provider := req.Provider
	if provider == "" {
		provider = s.defaultProvider
	}

	resp, err := s.client.Submit(ctx, backend.SubmitRequest{
		Prompt:    finalPrompt,
		AssetType: string(req.AssetType),
		Style:     styleName,
		Width:     dims.Width,
		Height:    dims.Height,
		Count:     req.Count,
		Provider:  provider,
	})
	if err != nil {
		return nil, err
	}

	switch {
	case len(resp.Assets) > 0:
		return &SubmitOutcome{Mode: SubmitSync, Assets: resp.Assets, Provider: provider, FinalPrompt: finalPrompt}, nil
	case strings.TrimSpace(resp.JobID) != "":
		return &SubmitOutcome{Mode: SubmitAsync, JobID: resp.JobID, Provider: provider, FinalPrompt: finalPrompt}, nil
	default:
		return nil, fmt.Errorf("%w: reply carries neither assets nor a job id", domain.ErrMalformedResponse)
	}
}
