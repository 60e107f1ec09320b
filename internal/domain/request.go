package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// AssetType enumerates the kinds of art assets a request can produce.
type AssetType string

const (
	AssetTypeSprite     AssetType = "sprite"
	AssetTypeBackground AssetType = "background"
	AssetTypeCharacter  AssetType = "character"
	AssetTypeTileset    AssetType = "tileset"
	AssetTypeConceptArt AssetType = "concept_art"
	AssetTypeIcon       AssetType = "icon"
)

// Dimensions is a parsed width×height pair.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (d Dimensions) String() string {
	return fmt.Sprintf("%dx%d", d.Width, d.Height)
}

// MaxRequestCount caps the generation multiplicity of a single request.
const MaxRequestCount = 8

// GenerationRequest describes one user-initiated generation. It is immutable
// once submitted; the workflow only reads from it.
type GenerationRequest struct {
	Prompt    string    `json:"prompt"`
	AssetType AssetType `json:"asset_type"`
	StyleID   string    `json:"style_id"`
	Size      string    `json:"size"`
	Count     int       `json:"count"`
	Provider  string    `json:"provider"`
}

// Validate checks the request before any backend traffic happens.
func (r GenerationRequest) Validate() error {
	if strings.TrimSpace(r.Prompt) == "" {
		return fmt.Errorf("%w: prompt is required", ErrInvalidRequest)
	}
	if r.Count < 1 {
		return fmt.Errorf("%w: count must be at least 1", ErrInvalidRequest)
	}
	if r.Count > MaxRequestCount {
		return fmt.Errorf("%w: count exceeds maximum of %d", ErrInvalidRequest, MaxRequestCount)
	}
	if _, err := r.Dimensions(); err != nil {
		return err
	}
	return nil
}

// Dimensions parses the "WxH" size token. Both components must be positive
// integers.
func (r GenerationRequest) Dimensions() (Dimensions, error) {
	return ParseSize(r.Size)
}

// ParseSize parses a size token of the form "1024x768".
func ParseSize(size string) (Dimensions, error) {
	token := strings.ToLower(strings.TrimSpace(size))
	if token == "" {
		return Dimensions{}, fmt.Errorf("%w: size is required", ErrInvalidRequest)
	}
	parts := strings.Split(token, "x")
	if len(parts) != 2 {
		return Dimensions{}, fmt.Errorf("%w: size %q is not of the form WxH", ErrInvalidRequest, size)
	}
	width, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || width <= 0 {
		return Dimensions{}, fmt.Errorf("%w: size %q has a non-positive width", ErrInvalidRequest, size)
	}
	height, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || height <= 0 {
		return Dimensions{}, fmt.Errorf("%w: size %q has a non-positive height", ErrInvalidRequest, size)
	}
	return Dimensions{Width: width, Height: height}, nil
}
