// Package viewport maps pointer positions on a zoomed, panned and scrolled view of an
// image back to pixel coordinates in the image itself.
//
// Zoom is a percentage. Pan is measured in raster pixels and scroll in screen pixels, so
//
//	raster = (screen + scroll) / (zoom / 100) - pan
//
// A State belongs to one displayed image and is reset whenever a new image is loaded.
package viewport

import (
	"math"
)

const (
	DefaultMinZoom  = 10.0
	DefaultMaxZoom  = 400.0
	DefaultZoomStep = 10.0

	// MinRegionArea is the smallest drag rectangle, in square raster pixels, that is
	// averaged as a region. Smaller drags count as a click.
	MinRegionArea = 4.0
)

// Point is a 2D coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is a width and height.
type Size struct {
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// FitMode selects how FitToContainer sizes the image.
type FitMode int

const (
	// FitContain fits the whole image inside the container.
	FitContain FitMode = iota
	// FitWidth matches the image width to the container and ignores height.
	FitWidth
)

// State is the zoom, pan and scroll of one displayed image.
type State struct {
	MinZoom  float64
	MaxZoom  float64
	ZoomStep float64

	zoom    float64
	pan     Point
	scroll  Point
	surface Size

	dragging  bool
	dragStart Point
	dragEnd   Point
}

// New creates a viewport with the given zoom bounds. Invalid bounds fall back to the defaults.
func New(minZoom, maxZoom, step float64) *State {
	if minZoom <= 0 || maxZoom < minZoom {
		minZoom, maxZoom = DefaultMinZoom, DefaultMaxZoom
	}
	if step <= 0 {
		step = DefaultZoomStep
	}
	return &State{
		MinZoom:  minZoom,
		MaxZoom:  maxZoom,
		ZoomStep: step,
		zoom:     clamp(100, minZoom, maxZoom),
	}
}

// Reset prepares the viewport for a newly loaded image of the given size.
func (s *State) Reset(surface Size) {
	s.surface = surface
	s.zoom = clamp(100, s.MinZoom, s.MaxZoom)
	s.pan = Point{}
	s.scroll = Point{}
	s.dragging = false
	s.dragStart = Point{}
	s.dragEnd = Point{}
}

// Zoom returns the current zoom percentage.
func (s *State) Zoom() float64 { return s.zoom }

// Pan returns the current pan offset in raster pixels.
func (s *State) Pan() Point { return s.pan }

// Scroll returns the container scroll offset in screen pixels.
func (s *State) Scroll() Point { return s.scroll }

// Surface returns the size of the displayed image.
func (s *State) Surface() Size { return s.surface }

// SetZoom sets the zoom percentage, clamped to the bounds, and returns the applied value.
func (s *State) SetZoom(zoom float64) float64 {
	s.zoom = clamp(zoom, s.MinZoom, s.MaxZoom)
	return s.zoom
}

// ZoomBy adds delta percentage points to the zoom and returns the applied value.
func (s *State) ZoomBy(delta float64) float64 {
	return s.SetZoom(s.zoom + delta)
}

// Wheel applies a mouse wheel event. Only a wheel with the zoom modifier held zooms,
// by one fixed step regardless of the wheel delta; negative deltaY (wheel up) zooms in.
// Reports whether the zoom was handled.
func (s *State) Wheel(deltaY float64, modifier bool) bool {
	if !modifier || deltaY == 0 {
		return false
	}
	if deltaY < 0 {
		s.ZoomBy(s.ZoomStep)
	} else {
		s.ZoomBy(-s.ZoomStep)
	}
	return true
}

// SetPan sets the pan offset in raster pixels.
func (s *State) SetPan(x, y float64) {
	s.pan = Point{X: x, Y: y}
}

// SetScroll records the scroll offset of the container showing the image.
func (s *State) SetScroll(x, y float64) {
	s.scroll = Point{X: x, Y: y}
}

func (s *State) scale() float64 {
	return s.zoom / 100
}

// ScreenToRaster converts a pointer position inside the container to raster coordinates.
// The result is not clamped; the samplers clamp on read.
func (s *State) ScreenToRaster(sx, sy float64) Point {
	scale := s.scale()
	return Point{
		X: (sx+s.scroll.X)/scale - s.pan.X,
		Y: (sy+s.scroll.Y)/scale - s.pan.Y,
	}
}

// RasterToScreen is the inverse of ScreenToRaster.
func (s *State) RasterToScreen(rx, ry float64) Point {
	scale := s.scale()
	return Point{
		X: (rx+s.pan.X)*scale - s.scroll.X,
		Y: (ry+s.pan.Y)*scale - s.scroll.Y,
	}
}

// FitToContainer picks the zoom that makes the image fill the container, clamps it
// to the bounds and centres the image. Returns the applied zoom.
func (s *State) FitToContainer(container Size, mode FitMode) float64 {
	if s.surface.W <= 0 || s.surface.H <= 0 || container.W <= 0 || container.H <= 0 {
		return s.zoom
	}

	ratio := container.W / s.surface.W
	if mode == FitContain {
		ratio = math.Min(ratio, container.H/s.surface.H)
	}
	s.SetZoom(ratio * 100)

	scale := s.scale()
	s.pan = Point{
		X: (container.W/scale - s.surface.W) / 2,
		Y: (container.H/scale - s.surface.H) / 2,
	}
	s.scroll = Point{}
	return s.zoom
}
