package generation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dreamforge/assetgen/internal/backend"
	"github.com/dreamforge/assetgen/internal/domain"
	"github.com/dreamforge/assetgen/internal/infra"
)

// NotifyFunc receives each successfully persisted asset, once per unit.
type NotifyFunc func(asset domain.GeneratedAsset)

// Persister turns completed raw units into GeneratedAsset records and hands
// each one to the repository and then the notification callback.
type Persister struct {
	repo   domain.AssetRepository
	notify NotifyFunc
	logger infra.Logger
	titler cases.Caser
}

// NewPersister constructs a Persister. notify may be nil.
func NewPersister(repo domain.AssetRepository, notify NotifyFunc, logger infra.Logger) *Persister {
	return &Persister{
		repo:   repo,
		notify: notify,
		logger: logger,
		titler: cases.Title(language.English),
	}
}

// PersistBatch persists every unit of a completed payload. A failure on one
// unit is recorded and the remaining units are still attempted; the joined
// error reports all per-unit failures.
func (p *Persister) PersistBatch(ctx context.Context, jobID string, req domain.GenerationRequest, finalPrompt, provider string, units []backend.RawAsset) ([]domain.GeneratedAsset, error) {
	reqDims, _ := req.Dimensions()
	prompt := strings.TrimSpace(req.Prompt)

	var saved []domain.GeneratedAsset
	var unitErrs []error
	for i, unit := range units {
		asset := p.buildAsset(jobID, req, prompt, finalPrompt, provider, reqDims, unit, i)
		if err := p.repo.Save(ctx, &asset); err != nil {
			p.logger.Error().Err(err).Str("job_id", jobID).Str("asset_id", asset.ID).Msg("persist: save failed")
			unitErrs = append(unitErrs, fmt.Errorf("unit %d (%s): %w", i+1, asset.ID, err))
			continue
		}
		if p.notify != nil {
			p.notify(asset)
		}
		saved = append(saved, asset)
	}
	return saved, errors.Join(unitErrs...)
}

func (p *Persister) buildAsset(jobID string, req domain.GenerationRequest, prompt, finalPrompt, provider string, reqDims domain.Dimensions, unit backend.RawAsset, index int) domain.GeneratedAsset {
	id := strings.TrimSpace(unit.ID)
	if id == "" {
		id = uuid.NewString()
	}
	format := strings.ToLower(strings.TrimSpace(unit.Format))
	if format == "" {
		format = "png"
	}
	dims := domain.Dimensions{Width: unit.Width, Height: unit.Height}
	if dims.Width <= 0 || dims.Height <= 0 {
		dims = reqDims
	}
	now := time.Now().UTC()
	return domain.GeneratedAsset{
		ID:         id,
		JobID:      jobID,
		Filename:   buildFilename(prompt, index, format),
		SourceURL:  unit.URL,
		Type:       req.AssetType,
		Format:     format,
		Dimensions: dims,
		Metadata: domain.AssetMetadata{
			Prompt:   prompt,
			StyleID:  req.StyleID,
			Provider: provider,
			Settings: map[string]any{
				"final_prompt": finalPrompt,
				"display_name": p.titler.String(prompt),
				"size":         reqDims.String(),
				"count":        req.Count,
			},
			Model:            unit.Model,
			Seed:             unit.Seed,
			Quality:          unit.Quality,
			GenerationTimeMS: unit.GenerationTimeMS,
		},
		Status:    domain.AssetStatusReady,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

const maxFilenameSlug = 40

// buildFilename derives a stable filename from the prompt, e.g.
// "a-castle-on-a-hill-01.png".
func buildFilename(prompt string, index int, format string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(prompt) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
		if b.Len() >= maxFilenameSlug {
			break
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		slug = "asset"
	}
	return fmt.Sprintf("%s-%02d.%s", slug, index+1, format)
}
