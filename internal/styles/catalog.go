package styles

import "strings"

// Preset is one entry in the style catalog. Prefix and Suffix are template
// fragments applied around the user prompt before transmission.
type Preset struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Prefix      string `json:"prefix,omitempty"`
	Suffix      string `json:"suffix,omitempty"`
}

// Apply rewrites a prompt with the preset's template. The caller keeps the
// original prompt for metadata.
func (p Preset) Apply(prompt string) string {
	parts := make([]string, 0, 3)
	if prefix := strings.TrimSpace(p.Prefix); prefix != "" {
		parts = append(parts, prefix)
	}
	parts = append(parts, strings.TrimSpace(prompt))
	if suffix := strings.TrimSpace(p.Suffix); suffix != "" {
		parts = append(parts, suffix)
	}
	return strings.Join(parts, ", ")
}

// Catalog is a read-only style preset lookup.
type Catalog struct {
	presets map[string]Preset
	order   []string
}

// NewCatalog builds a catalog from the given presets, preserving order.
func NewCatalog(presets []Preset) *Catalog {
	c := &Catalog{presets: make(map[string]Preset, len(presets))}
	for _, p := range presets {
		if _, ok := c.presets[p.ID]; ok {
			continue
		}
		c.presets[p.ID] = p
		c.order = append(c.order, p.ID)
	}
	return c
}

// Default returns the built-in game-art preset catalog.
func Default() *Catalog {
	return NewCatalog([]Preset{
		{
			ID:          "pixel-art",
			Name:        "Pixel Art",
			Description: "Retro low-resolution sprite work",
			Prefix:      "pixel art",
			Suffix:      "16-bit palette, crisp pixels, no anti-aliasing",
		},
		{
			ID:          "watercolor",
			Name:        "Watercolor",
			Description: "Soft painterly storybook look",
			Prefix:      "watercolor illustration",
			Suffix:      "soft edges, paper texture, muted palette",
		},
		{
			ID:          "low-poly",
			Name:        "Low Poly",
			Description: "Faceted 3D geometry render",
			Prefix:      "low poly 3d render",
			Suffix:      "flat shading, isometric lighting",
		},
		{
			ID:          "cel-shaded",
			Name:        "Cel Shaded",
			Description: "Bold anime-style outlines",
			Prefix:      "cel shaded",
			Suffix:      "bold outlines, flat colors, dramatic lighting",
		},
		{
			ID:          "dark-fantasy",
			Name:        "Dark Fantasy",
			Description: "Moody high-contrast concept art",
			Prefix:      "dark fantasy concept art",
			Suffix:      "volumetric fog, high contrast, painterly detail",
		},
	})
}

// Resolve looks a preset up by id. The empty id resolves to nothing without
// being an error.
func (c *Catalog) Resolve(id string) (Preset, bool) {
	if c == nil {
		return Preset{}, false
	}
	p, ok := c.presets[strings.TrimSpace(id)]
	return p, ok
}

// List returns all presets in catalog order.
func (c *Catalog) List() []Preset {
	if c == nil {
		return nil
	}
	out := make([]Preset, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.presets[id])
	}
	return out
}
