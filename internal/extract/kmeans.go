package extract

import (
	"context"
	"fmt"
	"image"
	"math"
	"math/rand"

	"github.com/jmylchreest/dyematch/internal/colour"
	"github.com/jmylchreest/dyematch/internal/raster"
)

// KMeans clusters colours in-process using k-means with k-means++ seeding.
type KMeans struct {
	MaxIterations int
	// Convergence is the mean centroid movement below which iteration stops.
	Convergence float64
	// MaxSamples caps how many pixels are clustered; larger images are grid sampled.
	MaxSamples int
	// Seed overrides the content-derived seed when non-zero.
	Seed int64
}

// NewKMeans creates a KMeans clusterer with default settings.
func NewKMeans() *KMeans {
	return &KMeans{
		MaxIterations: 20,
		Convergence:   2.0,
		MaxSamples:    5000,
	}
}

// point3D represents a point in 3D RGB colour space.
type point3D struct {
	R, G, B float64
}

func (p point3D) distance(other point3D) float64 {
	dr := p.R - other.R
	dg := p.G - other.G
	db := p.B - other.B
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

func (p point3D) rgb() colour.RGB {
	return colour.RGB{
		R: uint8(math.Round(clampChannel(p.R))),
		G: uint8(math.Round(clampChannel(p.G))),
		B: uint8(math.Round(clampChannel(p.B))),
	}
}

func clampChannel(v float64) float64 {
	return math.Max(0, math.Min(255, v))
}

// Cluster implements Clusterer. Pixels below raster.MinVisibleAlpha are ignored.
func (km *KMeans) Cluster(ctx context.Context, img *image.NRGBA, k int) ([]Centroid, error) {
	if img == nil {
		return nil, fmt.Errorf("image cannot be nil")
	}
	if k < 1 {
		return nil, fmt.Errorf("colour count must be at least 1, got %d", k)
	}
	if k > MaxColours {
		return nil, fmt.Errorf("colour count too large: %d (maximum: %d)", k, MaxColours)
	}

	points := km.samplePixels(img)
	if len(points) == 0 {
		return nil, ErrNoPixels
	}

	// With no more distinct colours than clusters, the distinct colours are the answer.
	counts := make(map[colour.RGB]int)
	order := make([]colour.RGB, 0)
	for _, p := range points {
		c := p.rgb()
		if counts[c] == 0 {
			order = append(order, c)
		}
		counts[c]++
	}
	if k >= len(order) {
		out := make([]Centroid, len(order))
		for i, c := range order {
			out[i] = Centroid{Colour: c, Weight: float64(counts[c])}
		}
		return normalise(out), nil
	}

	seed := km.Seed
	if seed == 0 {
		seed = ContentSeed(img)
	}
	rng := rand.New(rand.NewSource(seed)) // #nosec G404 -- clustering needs reproducibility, not security

	centroids, assignments, err := km.kmeans(ctx, rng, points, k)
	if err != nil {
		return nil, err
	}

	weights := make([]float64, k)
	for _, a := range assignments {
		weights[a]++
	}

	out := make([]Centroid, k)
	for i, c := range centroids {
		out[i] = Centroid{Colour: c.rgb(), Weight: weights[i]}
	}
	return normalise(out), nil
}

// samplePixels collects the visible pixels of img, grid sampling large images.
func (km *KMeans) samplePixels(img *image.NRGBA) []point3D {
	bounds := img.Bounds()
	total := bounds.Dx() * bounds.Dy()

	maxSamples := km.MaxSamples
	if maxSamples <= 0 {
		maxSamples = total
	}
	step := 1
	if total > maxSamples {
		step = max(int(math.Sqrt(float64(total)/float64(maxSamples))), 1)
	}

	points := make([]point3D, 0, min(total, maxSamples))
	for y := bounds.Min.Y; y < bounds.Max.Y; y += step {
		for x := bounds.Min.X; x < bounds.Max.X; x += step {
			off := img.PixOffset(x, y)
			px := img.Pix[off : off+4]
			if px[3] < raster.MinVisibleAlpha {
				continue
			}
			points = append(points, point3D{R: float64(px[0]), G: float64(px[1]), B: float64(px[2])})
		}
	}
	return points
}

// kmeans performs k-means clustering and returns the centroids and the cluster of each point.
func (km *KMeans) kmeans(ctx context.Context, rng *rand.Rand, points []point3D, k int) ([]point3D, []int, error) {
	centroids := initializeCentroidsKMeansPlusPlus(rng, points, k)
	assignments := make([]int, len(points))
	for i, p := range points {
		assignments[i] = findNearestCentroid(p, centroids)
	}

	for range km.MaxIterations {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		newCentroids := recalculateCentroids(rng, points, assignments, k)

		movement := 0.0
		for i := range centroids {
			movement += centroids[i].distance(newCentroids[i])
		}
		centroids = newCentroids

		changed := 0
		for i, p := range points {
			nearest := findNearestCentroid(p, centroids)
			if assignments[i] != nearest {
				assignments[i] = nearest
				changed++
			}
		}

		// Stop once centroids barely move or fewer than 1% of points switch cluster.
		if movement/float64(k) < km.Convergence || float64(changed)/float64(len(points)) < 0.01 {
			break
		}
	}

	return centroids, assignments, nil
}

// initializeCentroidsKMeansPlusPlus picks starting centroids with probability
// proportional to their squared distance from the centroids chosen so far.
func initializeCentroidsKMeansPlusPlus(rng *rand.Rand, points []point3D, k int) []point3D {
	centroids := make([]point3D, 0, k)
	centroids = append(centroids, points[rng.Intn(len(points))])

	distances := make([]float64, len(points))
	for len(centroids) < k {
		totalDistance := 0.0
		for i, p := range points {
			minDist := math.MaxFloat64
			for _, c := range centroids {
				minDist = math.Min(minDist, p.distance(c))
			}
			distances[i] = minDist * minDist
			totalDistance += distances[i]
		}

		if totalDistance == 0 {
			last := centroids[len(centroids)-1]
			centroids = append(centroids, point3D{R: last.R + 0.1, G: last.G + 0.1, B: last.B + 0.1})
			continue
		}

		target := rng.Float64() * totalDistance
		cumulative := 0.0
		chosen := len(points) - 1
		for i, d := range distances {
			cumulative += d
			if cumulative >= target {
				chosen = i
				break
			}
		}
		centroids = append(centroids, points[chosen])
	}

	return centroids
}

func findNearestCentroid(p point3D, centroids []point3D) int {
	minDist := math.MaxFloat64
	nearest := 0
	for i, c := range centroids {
		if d := p.distance(c); d < minDist {
			minDist = d
			nearest = i
		}
	}
	return nearest
}

// recalculateCentroids moves each centroid to the mean of its points. An empty
// cluster is re-seeded from a random point.
func recalculateCentroids(rng *rand.Rand, points []point3D, assignments []int, k int) []point3D {
	sums := make([]point3D, k)
	counts := make([]int, k)
	for i, p := range points {
		c := assignments[i]
		sums[c].R += p.R
		sums[c].G += p.G
		sums[c].B += p.B
		counts[c]++
	}

	centroids := make([]point3D, k)
	for i := range k {
		if counts[i] == 0 {
			centroids[i] = points[rng.Intn(len(points))]
			continue
		}
		n := float64(counts[i])
		centroids[i] = point3D{R: sums[i].R / n, G: sums[i].G / n, B: sums[i].B / n}
	}
	return centroids
}
