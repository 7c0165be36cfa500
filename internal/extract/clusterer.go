// Package extract pulls a small set of representative colours out of an image and
// matches each of them to a dye.
//
// Clustering is pluggable: KMeans runs in-process, PluginClusterer delegates to an
// external executable speaking the pkg/plugin protocol. A Session ties a clusterer
// to one loaded image and serialises extraction requests against it.
package extract

import (
	"cmp"
	"context"
	"errors"
	"image"
	"slices"

	"github.com/jmylchreest/dyematch/internal/colour"
)

var (
	// ErrNoPixels is returned when an image has no visible pixels to cluster.
	ErrNoPixels = errors.New("no visible pixels to extract colours from")

	// ErrExtractionInProgress is returned when an extraction is requested while
	// another one is still running on the same session.
	ErrExtractionInProgress = errors.New("an extraction is already in progress")
)

// MaxColours is the upper bound on the number of colours one extraction can ask for.
const MaxColours = 256

// Centroid is a representative colour and the share of visible pixels it stands for.
type Centroid struct {
	Colour colour.RGB `json:"colour"`
	Weight float64    `json:"weight"`
}

// Clusterer reduces an image to at most k centroids.
type Clusterer interface {
	Cluster(ctx context.Context, img *image.NRGBA, k int) ([]Centroid, error)
}

// normalise drops empty centroids, rescales weights to sum to 1 and orders the
// result by weight, heaviest first.
func normalise(centroids []Centroid) []Centroid {
	out := make([]Centroid, 0, len(centroids))
	total := 0.0
	for _, c := range centroids {
		if c.Weight > 0 {
			out = append(out, c)
			total += c.Weight
		}
	}
	if total == 0 {
		return out
	}
	for i := range out {
		out[i].Weight /= total
	}
	slices.SortStableFunc(out, func(a, b Centroid) int {
		return cmp.Compare(b.Weight, a.Weight)
	})
	return out
}
