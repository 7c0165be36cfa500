package extract

import (
	"crypto/sha256"
	"encoding/binary"
	"image"
)

// ContentSeed derives a deterministic clustering seed from the image content, so the
// same picture always yields the same swatches regardless of file name or location.
func ContentSeed(img *image.NRGBA) int64 {
	if img == nil {
		return 0
	}

	bounds := img.Bounds()
	hasher := sha256.New()

	dimBytes := make([]byte, 8)
	binary.LittleEndian.PutUint32(dimBytes[0:4], uint32(bounds.Dx())) // #nosec G115 -- image dimensions are safe to convert
	binary.LittleEndian.PutUint32(dimBytes[4:8], uint32(bounds.Dy())) // #nosec G115 -- image dimensions are safe to convert
	hasher.Write(dimBytes)

	// A 100x100 grid of pixels is enough to tell images apart.
	step := max(bounds.Dx()/100, bounds.Dy()/100, 1)
	for y := bounds.Min.Y; y < bounds.Max.Y; y += step {
		for x := bounds.Min.X; x < bounds.Max.X; x += step {
			off := img.PixOffset(x, y)
			hasher.Write(img.Pix[off : off+4])
		}
	}

	hash := hasher.Sum(nil)
	return int64(binary.LittleEndian.Uint64(hash[:8])) // #nosec G115 -- hash conversion is safe
}
