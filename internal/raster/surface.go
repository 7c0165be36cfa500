// Package raster reads colours out of a bitmap and draws marker overlays on top of it.
//
// A Canvas keeps two bitmaps: the pristine pixels that every sampler reads and a
// display copy that overlays are drawn on. Overlays therefore never influence a sample.
package raster

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Surface is a read-only raster of non-premultiplied RGBA pixels.
type Surface interface {
	Width() int
	Height() int
	// ReadRegion returns the pixels of the given rectangle as RGBA bytes, row-major.
	// The rectangle is clipped to the surface; nil is returned when nothing remains.
	ReadRegion(x, y, w, h int) []byte
}

// Canvas is a Surface backed by an in-memory bitmap with a separate overlay layer.
type Canvas struct {
	pristine *image.NRGBA
	display  *image.NRGBA
}

// NewCanvas copies img into a new canvas. The source image is never modified.
func NewCanvas(img image.Image) *Canvas {
	b := img.Bounds()
	pristine := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))

	// NRGBA rows are copied as-is so translucent pixels keep their exact colour.
	if src, ok := img.(*image.NRGBA); ok {
		for y := 0; y < b.Dy(); y++ {
			off := src.PixOffset(b.Min.X, b.Min.Y+y)
			copy(pristine.Pix[y*pristine.Stride:], src.Pix[off:off+b.Dx()*4])
		}
		return newCanvas(pristine)
	}

	draw.Copy(pristine, image.Point{}, img, b, draw.Src, nil)
	return newCanvas(pristine)
}

// FromPixels wraps a flat RGBA buffer of w*h pixels.
func FromPixels(w, h int, pix []byte) (*Canvas, error) {
	if w < 0 || h < 0 {
		return nil, fmt.Errorf("invalid dimensions %dx%d", w, h)
	}
	if len(pix) != w*h*4 {
		return nil, fmt.Errorf("pixel buffer has %d bytes, want %d for %dx%d", len(pix), w*h*4, w, h)
	}
	img := &image.NRGBA{
		Pix:    append([]byte(nil), pix...),
		Stride: w * 4,
		Rect:   image.Rect(0, 0, w, h),
	}
	return newCanvas(img), nil
}

func newCanvas(pristine *image.NRGBA) *Canvas {
	c := &Canvas{
		pristine: pristine,
		display:  image.NewNRGBA(pristine.Rect),
	}
	c.Redraw()
	return c
}

// Width returns the surface width in pixels.
func (c *Canvas) Width() int {
	if c == nil {
		return 0
	}
	return c.pristine.Rect.Dx()
}

// Height returns the surface height in pixels.
func (c *Canvas) Height() int {
	if c == nil {
		return 0
	}
	return c.pristine.Rect.Dy()
}

// ReadRegion implements Surface. It always reads the pristine bitmap.
func (c *Canvas) ReadRegion(x, y, w, h int) []byte {
	if c == nil {
		return nil
	}
	r := image.Rect(x, y, x+w, y+h).Intersect(c.pristine.Rect)
	if r.Empty() {
		return nil
	}

	out := make([]byte, 0, r.Dx()*r.Dy()*4)
	for row := r.Min.Y; row < r.Max.Y; row++ {
		start := c.pristine.PixOffset(r.Min.X, row)
		out = append(out, c.pristine.Pix[start:start+r.Dx()*4]...)
	}
	return out
}

// Image returns the pristine bitmap. Callers must not modify it.
func (c *Canvas) Image() *image.NRGBA {
	return c.pristine
}

// Display returns the bitmap with overlays applied.
func (c *Canvas) Display() *image.NRGBA {
	return c.display
}

// Redraw restores the display bitmap to the pristine pixels, clearing every overlay.
func (c *Canvas) Redraw() {
	copy(c.display.Pix, c.pristine.Pix)
}

// FillCircle draws a filled circle of radius r centred on (cx, cy) on the overlay.
func (c *Canvas) FillCircle(cx, cy, r float64, col color.Color) {
	c.circle(cx, cy, r, r+1, col)
}

// StrokeCircle draws a ring of the given thickness whose outer radius is r.
func (c *Canvas) StrokeCircle(cx, cy, r, thickness float64, col color.Color) {
	c.circle(cx, cy, r, thickness, col)
}

func (c *Canvas) circle(cx, cy, r, thickness float64, col color.Color) {
	if r <= 0 {
		return
	}
	bounds := c.display.Rect
	nrgba := color.NRGBAModel.Convert(col).(color.NRGBA)

	minX := int(cx - r - 1)
	maxX := int(cx + r + 1)
	minY := int(cy - r - 1)
	maxY := int(cy + r + 1)

	r2 := r * r
	inner := max(r-thickness, 0)
	innerR2 := inner * inner

	for y := max(minY, bounds.Min.Y); y <= min(maxY, bounds.Max.Y-1); y++ {
		for x := max(minX, bounds.Min.X); x <= min(maxX, bounds.Max.X-1); x++ {
			dx := float64(x) - cx
			dy := float64(y) - cy
			dist2 := dx*dx + dy*dy
			if dist2 <= r2 && (inner == 0 || dist2 >= innerR2) {
				c.display.SetNRGBA(x, y, nrgba)
			}
		}
	}
}
