package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dreamforge/assetgen/internal/domain"
)

// AssetRepositoryPG implements domain.AssetRepository using PostgreSQL.
type AssetRepositoryPG struct {
	pool *pgxpool.Pool
}

var _ domain.AssetRepository = (*AssetRepositoryPG)(nil)

// NewAssetRepository constructs a new asset repository instance.
func NewAssetRepository(pool *pgxpool.Pool) *AssetRepositoryPG {
	return &AssetRepositoryPG{pool: pool}
}

// Save persists one generated asset.
func (r *AssetRepositoryPG) Save(ctx context.Context, asset *domain.GeneratedAsset) error {
	if asset == nil {
		return errors.New("repo: asset is required")
	}
	metadata, err := json.Marshal(asset.Metadata)
	if err != nil {
		return fmt.Errorf("repo: marshal metadata: %w", err)
	}
	query := `
INSERT INTO assets (id, job_id, filename, source_url, type, format, width, height, metadata, status, versions, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
`
	_, err = r.pool.Exec(ctx, query,
		asset.ID,
		asset.JobID,
		asset.Filename,
		asset.SourceURL,
		asset.Type,
		asset.Format,
		asset.Dimensions.Width,
		asset.Dimensions.Height,
		metadata,
		asset.Status,
		asset.Versions,
		asset.CreatedAt,
		asset.UpdatedAt,
	)
	return err
}

// GetByID fetches an asset by its identifier.
func (r *AssetRepositoryPG) GetByID(ctx context.Context, id string) (*domain.GeneratedAsset, error) {
	query := `
SELECT id, job_id, filename, source_url, type, format, width, height, metadata, status, versions, created_at, updated_at
FROM assets
WHERE id = $1;
`
	row := r.pool.QueryRow(ctx, query, id)
	asset, err := scanAsset(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return asset, nil
}

// ListRecent returns the most recently created assets, newest first.
func (r *AssetRepositoryPG) ListRecent(ctx context.Context, limit int) ([]domain.GeneratedAsset, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
SELECT id, job_id, filename, source_url, type, format, width, height, metadata, status, versions, created_at, updated_at
FROM assets
ORDER BY created_at DESC
LIMIT $1;
`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assets []domain.GeneratedAsset
	for rows.Next() {
		asset, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, *asset)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return assets, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAsset(row rowScanner) (*domain.GeneratedAsset, error) {
	var asset domain.GeneratedAsset
	var metadata []byte
	if err := row.Scan(
		&asset.ID,
		&asset.JobID,
		&asset.Filename,
		&asset.SourceURL,
		&asset.Type,
		&asset.Format,
		&asset.Dimensions.Width,
		&asset.Dimensions.Height,
		&metadata,
		&asset.Status,
		&asset.Versions,
		&asset.CreatedAt,
		&asset.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &asset.Metadata); err != nil {
			return nil, fmt.Errorf("repo: unmarshal metadata: %w", err)
		}
	}
	return &asset, nil
}
