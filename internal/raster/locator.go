package raster

import (
	"math"

	"github.com/jmylchreest/dyematch/internal/colour"
)

const (
	// MinVisibleAlpha is the lowest alpha a pixel needs to be considered by Locate.
	MinVisibleAlpha = 128

	// targetSamples is roughly how many pixels Locate inspects regardless of image size.
	targetSamples = 10000
)

// Position is a representative pixel for one centroid.
type Position struct {
	X     int  `json:"x"`
	Y     int  `json:"y"`
	Found bool `json:"found"`
}

// Stride returns the sampling step Locate uses for a w x h surface.
func Stride(w, h int) int {
	return max(1, int(math.Floor(math.Sqrt(float64(w*h)/targetSamples))))
}

// Locate finds, for each centroid, the visible pixel closest to it in colour.
// The surface is scanned row-major on a grid so large images cost the same as small
// ones. The first pixel found at the best distance is kept. A centroid for which no
// visible pixel exists gets Found == false.
func Locate(s Surface, centroids []colour.RGB) []Position {
	positions := make([]Position, len(centroids))
	if len(centroids) == 0 || !usable(s) {
		return positions
	}

	w, h := s.Width(), s.Height()
	pix := s.ReadRegion(0, 0, w, h)
	if len(pix) < w*h*4 {
		return positions
	}

	stride := Stride(w, h)
	best := make([]int, len(centroids))
	for i := range best {
		best[i] = math.MaxInt
	}

	for y := 0; y < h; y += stride {
		for x := 0; x < w; x += stride {
			i := (y*w + x) * 4
			if pix[i+3] < MinVisibleAlpha {
				continue
			}
			r, g, b := int(pix[i]), int(pix[i+1]), int(pix[i+2])

			for c, centroid := range centroids {
				dr := r - int(centroid.R)
				dg := g - int(centroid.G)
				db := b - int(centroid.B)
				// Squared distance orders the same as the Euclidean distance.
				if d := dr*dr + dg*dg + db*db; d < best[c] {
					best[c] = d
					positions[c] = Position{X: x, Y: y, Found: true}
				}
			}
		}
	}

	return positions
}
