package dye

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ulikunitz/xz"

	"github.com/jmylchreest/dyematch/internal/colour"
)

// maxPaletteSize caps how many bytes a palette file may expand to.
const maxPaletteSize = 16 * 1024 * 1024

//go:embed data/dyes.json
var defaultData []byte

// record is the on-disk form of a dye.
type record struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Hex         string   `json:"hex"`
	Category    string   `json:"category,omitempty"`
	Acquisition string   `json:"acquisition,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// Default returns the embedded dye palette.
func Default() (*Palette, error) {
	p, err := Parse(defaultData)
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded palette: %w", err)
	}
	return p, nil
}

// Load reads a palette from a JSON file. Files ending in ".xz" are decompressed first.
// An empty path returns the embedded palette.
func Load(path string) (*Palette, error) {
	if path == "" {
		return Default()
	}

	file, err := os.Open(path) // #nosec G304 - User-specified palette path, intended to be read
	if err != nil {
		return nil, fmt.Errorf("failed to open palette file: %w", err)
	}
	defer file.Close()

	return Read(file, path)
}

// Read decodes a palette from r. A name ending in ".xz" marks xz-compressed input.
func Read(r io.Reader, name string) (*Palette, error) {
	if strings.HasSuffix(strings.ToLower(name), ".xz") {
		xzr, err := xz.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create xz reader: %w", err)
		}
		r = xzr
	}

	data, err := io.ReadAll(io.LimitReader(r, maxPaletteSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read palette: %w", err)
	}
	if len(data) > maxPaletteSize {
		return nil, fmt.Errorf("palette exceeds %d bytes", maxPaletteSize)
	}

	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse palette %s: %w", name, err)
	}
	return p, nil
}

// Parse decodes a JSON array of dyes and derives RGB and HSV for each entry.
func Parse(data []byte) (*Palette, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var records []record
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("invalid palette JSON: %w", err)
	}

	seen := make(map[int]bool, len(records))
	dyes := make([]Dye, 0, len(records))
	for i, rec := range records {
		if seen[rec.ID] {
			return nil, fmt.Errorf("entry %d: duplicate id %d", i, rec.ID)
		}
		seen[rec.ID] = true

		if strings.TrimSpace(rec.Name) == "" {
			return nil, fmt.Errorf("entry %d (id %d): name cannot be empty", i, rec.ID)
		}

		rgb, ok := colour.ParseHex(rec.Hex)
		if !ok {
			return nil, fmt.Errorf("entry %d (%s): invalid hex %q", i, rec.Name, rec.Hex)
		}

		dyes = append(dyes, Dye{
			ID:          rec.ID,
			Name:        rec.Name,
			Hex:         rgb.Hex(),
			RGB:         rgb,
			HSV:         colour.RGBToHSV(rgb),
			Category:    rec.Category,
			Acquisition: rec.Acquisition,
			Tags:        rec.Tags,
		})
	}

	return NewPalette(dyes), nil
}
