// Package dye provides the fixed dye palette that colours are matched against.
//
// A palette is loaded once, either from the embedded default data or from a JSON file,
// and is treated as read-only for the rest of the process. Derived RGB and HSV values
// are computed at load time so matching never re-parses hex strings.
package dye

import (
	"slices"

	"github.com/jmylchreest/dyematch/internal/colour"
)

// Dye is a single entry of the palette.
type Dye struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	Hex         string     `json:"hex"`
	RGB         colour.RGB `json:"rgb"`
	HSV         colour.HSV `json:"hsv"`
	Category    string     `json:"category,omitempty"`
	Acquisition string     `json:"acquisition,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
}

// HasTag reports whether the dye carries the given classification tag.
func (d Dye) HasTag(tag string) bool {
	return slices.Contains(d.Tags, tag)
}

// Palette is an ordered, immutable collection of dyes.
type Palette struct {
	dyes []Dye
	byID map[int]int
}

// NewPalette creates a palette from already-derived dyes. Order is preserved.
func NewPalette(dyes []Dye) *Palette {
	p := &Palette{
		dyes: slices.Clone(dyes),
		byID: make(map[int]int, len(dyes)),
	}
	for i, d := range p.dyes {
		p.byID[d.ID] = i
	}
	return p
}

// Len returns the number of dyes in the palette.
func (p *Palette) Len() int {
	if p == nil {
		return 0
	}
	return len(p.dyes)
}

// Dyes returns the palette entries in load order.
// The returned slice must not be modified.
func (p *Palette) Dyes() []Dye {
	if p == nil {
		return nil
	}
	return p.dyes
}

// ByID returns the dye with the given id.
func (p *Palette) ByID(id int) (Dye, bool) {
	if p == nil {
		return Dye{}, false
	}
	i, ok := p.byID[id]
	if !ok {
		return Dye{}, false
	}
	return p.dyes[i], true
}

// All returns an iterator over all dyes in the palette.
func (p *Palette) All() func(func(int, Dye) bool) {
	return func(yield func(int, Dye) bool) {
		for i, d := range p.Dyes() {
			if !yield(i, d) {
				return
			}
		}
	}
}
