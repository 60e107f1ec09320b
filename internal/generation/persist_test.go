package generation

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/dreamforge/assetgen/internal/backend"
	"github.com/dreamforge/assetgen/internal/domain"
)

func TestPersistBatchSavesEveryUnit(t *testing.T) {
	events := &eventLog{}
	repo := &fakeRepo{events: events}
	var mu sync.Mutex
	var notified []string
	notify := func(asset domain.GeneratedAsset) {
		mu.Lock()
		defer mu.Unlock()
		notified = append(notified, asset.ID)
		events.add("notify:" + asset.ID)
	}
	p := NewPersister(repo, notify, testLogger())

	req := validRequest()
	units := []backend.RawAsset{
		{ID: "a-1", URL: "https://cdn.example.com/a-1.png", Format: "png"},
		{ID: "a-2", URL: "https://cdn.example.com/a-2.png", Format: "png"},
	}
	saved, err := p.PersistBatch(context.Background(), "J1", req, "pixel art, a castle", "renderer-1", units)
	if err != nil {
		t.Fatalf("PersistBatch error: %v", err)
	}
	if len(saved) != 2 || repo.savedCount() != 2 {
		t.Fatalf("expected 2 saved assets, got %d", repo.savedCount())
	}
	if len(notified) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(notified))
	}
	want := []string{"save:a-1", "notify:a-1", "save:a-2", "notify:a-2"}
	got := events.snapshot()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("save/notify order mismatch: %v", got)
		}
	}
}

func TestPersistBatchMetadataKeepsOriginalPrompt(t *testing.T) {
	repo := &fakeRepo{}
	p := NewPersister(repo, nil, testLogger())

	req := validRequest()
	req.StyleID = "pixel-art"
	units := []backend.RawAsset{{ID: "a-1", Format: "webp", Width: 256, Height: 256, Seed: 42, Model: "df-xl", GenerationTimeMS: 1800}}
	saved, err := p.PersistBatch(context.Background(), "J1", req, "pixel art, a castle", "renderer-1", units)
	if err != nil {
		t.Fatalf("PersistBatch error: %v", err)
	}
	asset := saved[0]
	if asset.Metadata.Prompt != "a castle" {
		t.Fatalf("metadata must keep the original prompt: %q", asset.Metadata.Prompt)
	}
	if asset.Metadata.Settings["final_prompt"] != "pixel art, a castle" {
		t.Fatalf("final prompt missing from settings: %#v", asset.Metadata.Settings)
	}
	if asset.Metadata.Settings["display_name"] != "A Castle" {
		t.Fatalf("display name mismatch: %#v", asset.Metadata.Settings["display_name"])
	}
	if asset.Metadata.StyleID != "pixel-art" || asset.Metadata.Provider != "renderer-1" {
		t.Fatalf("metadata mismatch: %+v", asset.Metadata)
	}
	if asset.Metadata.Seed != 42 || asset.Metadata.Model != "df-xl" || asset.Metadata.GenerationTimeMS != 1800 {
		t.Fatalf("backend fields missing: %+v", asset.Metadata)
	}
	if asset.Dimensions.Width != 256 || asset.Dimensions.Height != 256 {
		t.Fatalf("unit dimensions should win: %+v", asset.Dimensions)
	}
	if asset.Filename != "a-castle-01.webp" {
		t.Fatalf("filename mismatch: %q", asset.Filename)
	}
	if asset.Status != domain.AssetStatusReady {
		t.Fatalf("status mismatch: %s", asset.Status)
	}
}

func TestPersistBatchFallbackID(t *testing.T) {
	repo := &fakeRepo{}
	p := NewPersister(repo, nil, testLogger())

	units := []backend.RawAsset{{URL: "https://cdn.example.com/x.png"}}
	saved, err := p.PersistBatch(context.Background(), "J1", validRequest(), "a castle", "renderer-1", units)
	if err != nil {
		t.Fatalf("PersistBatch error: %v", err)
	}
	if saved[0].ID == "" {
		t.Fatalf("missing backend id must fall back to a generated one")
	}
	if saved[0].Format != "png" {
		t.Fatalf("missing format should default to png: %q", saved[0].Format)
	}
	if saved[0].Dimensions != (domain.Dimensions{Width: 1024, Height: 768}) {
		t.Fatalf("request dimensions should fill in: %+v", saved[0].Dimensions)
	}
}

func TestPersistBatchPartialFailure(t *testing.T) {
	repo := &fakeRepo{failIDs: map[string]error{"a-2": errStorage}}
	var mu sync.Mutex
	var notified []string
	notify := func(asset domain.GeneratedAsset) {
		mu.Lock()
		defer mu.Unlock()
		notified = append(notified, asset.ID)
	}
	p := NewPersister(repo, notify, testLogger())

	units := []backend.RawAsset{{ID: "a-1"}, {ID: "a-2"}, {ID: "a-3"}}
	saved, err := p.PersistBatch(context.Background(), "J1", validRequest(), "a castle", "renderer-1", units)
	if err == nil {
		t.Fatalf("expected a joined per-unit error")
	}
	if !strings.Contains(err.Error(), "a-2") {
		t.Fatalf("error should name the failed unit: %v", err)
	}
	if len(saved) != 2 {
		t.Fatalf("siblings of a failed unit must still persist, got %d", len(saved))
	}
	if len(notified) != 2 || notified[0] != "a-1" || notified[1] != "a-3" {
		t.Fatalf("only persisted units may notify: %v", notified)
	}
}

func TestBuildFilename(t *testing.T) {
	got := buildFilename("A Castle on a Hill!", 0, "png")
	if got != "a-castle-on-a-hill-01.png" {
		t.Fatalf("unexpected filename: %q", got)
	}
	if got := buildFilename("???", 2, "jpg"); got != "asset-03.jpg" {
		t.Fatalf("unexpected fallback filename: %q", got)
	}
	long := buildFilename(strings.Repeat("very long prompt ", 20), 0, "png")
	if len(long) > maxFilenameSlug+8 {
		t.Fatalf("filename not truncated: %q", long)
	}
}
