package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/dreamforge/assetgen/internal/domain"
	"github.com/dreamforge/assetgen/internal/storage"
)

const assetKeyPrefix = "assets"

// AssetRepositoryFS implements domain.AssetRepository on top of a FileStore.
// One JSON document per asset; used when no database is configured.
type AssetRepositoryFS struct {
	store *storage.FileStore
}

var _ domain.AssetRepository = (*AssetRepositoryFS)(nil)

// NewAssetFileRepository constructs a filesystem-backed asset repository.
func NewAssetFileRepository(store *storage.FileStore) *AssetRepositoryFS {
	return &AssetRepositoryFS{store: store}
}

// Save writes the asset record as a JSON document keyed by asset id.
func (r *AssetRepositoryFS) Save(ctx context.Context, asset *domain.GeneratedAsset) error {
	if asset == nil {
		return errors.New("repo: asset is required")
	}
	if asset.ID == "" {
		return errors.New("repo: asset id is required")
	}
	data, err := json.Marshal(asset)
	if err != nil {
		return fmt.Errorf("repo: marshal asset: %w", err)
	}
	if _, err := r.store.Write(ctx, assetKey(asset.ID), data); err != nil {
		return fmt.Errorf("repo: write asset: %w", err)
	}
	return nil
}

// GetByID loads one asset record.
func (r *AssetRepositoryFS) GetByID(ctx context.Context, id string) (*domain.GeneratedAsset, error) {
	data, err := r.store.Read(ctx, assetKey(id))
	if err != nil {
		return nil, domain.ErrNotFound
	}
	var asset domain.GeneratedAsset
	if err := json.Unmarshal(data, &asset); err != nil {
		return nil, fmt.Errorf("repo: unmarshal asset: %w", err)
	}
	return &asset, nil
}

// ListRecent returns the most recently created assets, newest first.
func (r *AssetRepositoryFS) ListRecent(ctx context.Context, limit int) ([]domain.GeneratedAsset, error) {
	if limit <= 0 {
		limit = 50
	}
	keys, err := r.store.List(ctx, assetKeyPrefix)
	if err != nil {
		return nil, err
	}
	var assets []domain.GeneratedAsset
	for _, key := range keys {
		data, err := r.store.Read(ctx, key)
		if err != nil {
			continue
		}
		var asset domain.GeneratedAsset
		if err := json.Unmarshal(data, &asset); err != nil {
			continue
		}
		assets = append(assets, asset)
	}
	sort.Slice(assets, func(i, j int) bool {
		return assets[i].CreatedAt.After(assets[j].CreatedAt)
	})
	if len(assets) > limit {
		assets = assets[:limit]
	}
	return assets, nil
}

func assetKey(id string) string {
	return assetKeyPrefix + "/" + id + ".json"
}
