package domain

import "context"

// AssetRepository handles persistence for generated assets. The workflow
// depends only on this narrow contract, not on where assets are stored.
type AssetRepository interface {
	Save(ctx context.Context, asset *GeneratedAsset) error
	GetByID(ctx context.Context, id string) (*GeneratedAsset, error)
	ListRecent(ctx context.Context, limit int) ([]GeneratedAsset, error)
}
