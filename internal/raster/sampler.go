package raster

import (
	"image"
	"math"

	"github.com/jmylchreest/dyematch/internal/colour"
)

// SamplePixel returns the hex colour of the pixel under (x, y).
// Coordinates are floored and clamped onto the surface; alpha is ignored.
// Returns false only for a nil or empty surface.
func SamplePixel(s Surface, x, y float64) (string, bool) {
	return SampleAverage(s, x, y, 1)
}

// SampleAverage returns the mean colour of a size x size box centred on (x, y).
// The box shrinks where it crosses the surface edge. A size below 1 samples one pixel.
func SampleAverage(s Surface, x, y float64, size int) (string, bool) {
	if !usable(s) {
		return "", false
	}
	size = max(size, 1)

	cx := clampInt(int(math.Floor(x)), 0, s.Width()-1)
	cy := clampInt(int(math.Floor(y)), 0, s.Height()-1)
	x0 := cx - size/2
	y0 := cy - size/2

	return SampleRect(s, image.Rect(x0, y0, x0+size, y0+size))
}

// SampleRect returns the mean colour of a raster rectangle. The rectangle is
// canonicalised and clipped; if nothing of it lies on the surface the nearest
// pixel to it is sampled instead.
func SampleRect(s Surface, r image.Rectangle) (string, bool) {
	rgb, ok := AverageRect(s, r)
	if !ok {
		return "", false
	}
	return rgb.Hex(), true
}

// SampleRegion averages the rectangle spanned by two raster points, in either order.
// Fractional corners are widened to cover every pixel they touch.
func SampleRegion(s Surface, x0, y0, x1, y1 float64) (string, bool) {
	r := image.Rect(
		int(math.Floor(math.Min(x0, x1))),
		int(math.Floor(math.Min(y0, y1))),
		int(math.Ceil(math.Max(x0, x1))),
		int(math.Ceil(math.Max(y0, y1))),
	)
	if r.Dx() == 0 {
		r.Max.X++
	}
	if r.Dy() == 0 {
		r.Max.Y++
	}
	return SampleRect(s, r)
}

// AverageRect is SampleRect returning the colour unpacked.
func AverageRect(s Surface, r image.Rectangle) (colour.RGB, bool) {
	if !usable(s) {
		return colour.RGB{}, false
	}
	w, h := s.Width(), s.Height()

	r = r.Canon()
	clipped := r.Intersect(image.Rect(0, 0, w, h))
	if clipped.Empty() {
		px := clampInt(r.Min.X, 0, w-1)
		py := clampInt(r.Min.Y, 0, h-1)
		clipped = image.Rect(px, py, px+1, py+1)
	}

	pix := s.ReadRegion(clipped.Min.X, clipped.Min.Y, clipped.Dx(), clipped.Dy())
	count := len(pix) / 4
	if count == 0 {
		return colour.RGB{}, false
	}

	var sr, sg, sb int
	for i := 0; i < len(pix); i += 4 {
		sr += int(pix[i])
		sg += int(pix[i+1])
		sb += int(pix[i+2])
	}

	return colour.RGB{
		R: roundMean(sr, count),
		G: roundMean(sg, count),
		B: roundMean(sb, count),
	}, true
}

func usable(s Surface) bool {
	return s != nil && s.Width() > 0 && s.Height() > 0
}

func roundMean(sum, count int) uint8 {
	return uint8(math.Round(float64(sum) / float64(count)))
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(hi, v))
}
