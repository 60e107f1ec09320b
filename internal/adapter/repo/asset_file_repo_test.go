package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dreamforge/assetgen/internal/domain"
	"github.com/dreamforge/assetgen/internal/storage"
)

func newFileRepo(t *testing.T) *AssetRepositoryFS {
	t.Helper()
	store, err := storage.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore error: %v", err)
	}
	return NewAssetFileRepository(store)
}

func sampleAsset(id string, createdAt time.Time) *domain.GeneratedAsset {
	return &domain.GeneratedAsset{
		ID:         id,
		JobID:      "J1",
		Filename:   id + ".png",
		SourceURL:  "https://cdn.example.com/" + id + ".png",
		Type:       domain.AssetTypeSprite,
		Format:     "png",
		Dimensions: domain.Dimensions{Width: 512, Height: 512},
		Metadata:   domain.AssetMetadata{Prompt: "a castle", Provider: "test"},
		Status:     domain.AssetStatusReady,
		CreatedAt:  createdAt,
		UpdatedAt:  createdAt,
	}
}

func TestAssetFileRepoSaveAndGet(t *testing.T) {
	r := newFileRepo(t)
	ctx := context.Background()

	asset := sampleAsset("a-1", time.Now().UTC())
	if err := r.Save(ctx, asset); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	got, err := r.GetByID(ctx, "a-1")
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if got.Filename != "a-1.png" || got.Metadata.Prompt != "a castle" {
		t.Fatalf("unexpected asset: %+v", got)
	}
}

func TestAssetFileRepoGetMissing(t *testing.T) {
	r := newFileRepo(t)
	if _, err := r.GetByID(context.Background(), "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAssetFileRepoListRecent(t *testing.T) {
	r := newFileRepo(t)
	ctx := context.Background()
	base := time.Now().UTC()
	for i, id := range []string{"a-1", "a-2", "a-3"} {
		if err := r.Save(ctx, sampleAsset(id, base.Add(time.Duration(i)*time.Minute))); err != nil {
			t.Fatalf("Save error: %v", err)
		}
	}

	assets, err := r.ListRecent(ctx, 2)
	if err != nil {
		t.Fatalf("ListRecent error: %v", err)
	}
	if len(assets) != 2 {
		t.Fatalf("unexpected list size: %d", len(assets))
	}
	if assets[0].ID != "a-3" || assets[1].ID != "a-2" {
		t.Fatalf("unexpected ordering: %s %s", assets[0].ID, assets[1].ID)
	}
}
