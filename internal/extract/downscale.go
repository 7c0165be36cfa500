package extract

import (
	"image"

	"github.com/disintegration/imaging"
)

// Downscale shrinks img so neither side exceeds maxDim, keeping the aspect ratio.
// Images that already fit, and maxDim <= 0, return img unchanged.
func Downscale(img *image.NRGBA, maxDim int) *image.NRGBA {
	if img == nil || maxDim <= 0 {
		return img
	}
	b := img.Bounds()
	if b.Dx() <= maxDim && b.Dy() <= maxDim {
		return img
	}
	return imaging.Fit(img, maxDim, maxDim, imaging.Box)
}
