package viewport

import (
	"math"
)

// SelectionKind distinguishes a click from a dragged region.
type SelectionKind int

const (
	SelectNone SelectionKind = iota
	SelectPoint
	SelectRegion
)

func (k SelectionKind) String() string {
	switch k {
	case SelectPoint:
		return "point"
	case SelectRegion:
		return "region"
	default:
		return "none"
	}
}

// Selection is the outcome of a completed drag, in raster coordinates.
// For a point selection Min and Max are both the release position.
type Selection struct {
	Kind SelectionKind `json:"kind"`
	Min  Point         `json:"min"`
	Max  Point         `json:"max"`
}

// Area returns the selected area in square raster pixels.
func (s Selection) Area() float64 {
	return (s.Max.X - s.Min.X) * (s.Max.Y - s.Min.Y)
}

// BeginDrag starts a selection at a screen position.
func (s *State) BeginDrag(sx, sy float64) {
	p := s.ScreenToRaster(sx, sy)
	s.dragging = true
	s.dragStart = p
	s.dragEnd = p
}

// UpdateDrag moves the free corner of the selection. It is ignored when no drag is active.
func (s *State) UpdateDrag(sx, sy float64) {
	if !s.dragging {
		return
	}
	s.dragEnd = s.ScreenToRaster(sx, sy)
}

// Dragging reports whether a drag is in progress.
func (s *State) Dragging() bool { return s.dragging }

// EndDrag finishes the drag and returns the normalised selection. Releasing
// without a drag in progress yields SelectNone.
func (s *State) EndDrag() Selection {
	if !s.dragging {
		return Selection{Kind: SelectNone}
	}
	s.dragging = false

	sel := Selection{
		Kind: SelectRegion,
		Min:  Point{X: math.Min(s.dragStart.X, s.dragEnd.X), Y: math.Min(s.dragStart.Y, s.dragEnd.Y)},
		Max:  Point{X: math.Max(s.dragStart.X, s.dragEnd.X), Y: math.Max(s.dragStart.Y, s.dragEnd.Y)},
	}
	if sel.Area() < MinRegionArea {
		return Selection{Kind: SelectPoint, Min: s.dragEnd, Max: s.dragEnd}
	}
	return sel
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
