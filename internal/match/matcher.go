// Package match finds the dyes closest to a colour.
//
// Distance is plain Euclidean distance in RGB space. Palettes are small, so every query
// is a linear scan in palette order; when two dyes are exactly as close as each other the
// one that appears first in the palette wins.
package match

import (
	"math"
	"slices"

	"github.com/jmylchreest/dyematch/internal/colour"
	"github.com/jmylchreest/dyematch/internal/dye"
)

// MaxDistance is the largest possible RGB distance (black to white).
var MaxDistance = math.Sqrt(3 * 255 * 255)

// Result is a dye matched against a query colour.
type Result struct {
	Dye      dye.Dye `json:"dye"`
	Distance float64 `json:"distance"`

	// IdealHSV and MatchedHSV are set for harmony targets: the theoretical colour
	// that was searched for and the HSV of the dye it snapped to.
	IdealHSV   *colour.HSV `json:"ideal_hsv,omitempty"`
	MatchedHSV *colour.HSV `json:"matched_hsv,omitempty"`
}

// Deviance returns the 0-10 deviance score of the match.
func (r Result) Deviance() float64 {
	return ToDeviance(r.Distance)
}

// Quality returns the quality tier of the match.
func (r Result) Quality() Quality {
	return Classify(r.Deviance())
}

// Distance returns the Euclidean distance between two colours in RGB space.
func Distance(a, b colour.RGB) float64 {
	dr := int(a.R) - int(b.R)
	dg := int(a.G) - int(b.G)
	db := int(a.B) - int(b.B)
	return math.Sqrt(float64(dr*dr + dg*dg + db*db))
}

// FindClosest returns the eligible dye nearest to target.
// A dye is eligible only if no filter excludes it. Returns false when the
// palette is empty or every dye is filtered out.
func FindClosest(target colour.RGB, palette []dye.Dye, filters ...Filter) (Result, bool) {
	best := -1
	bestDist := math.Inf(1)

	for i, d := range palette {
		if !Eligible(d, filters) {
			continue
		}
		dist := Distance(target, d.RGB)
		// Strict comparison keeps the earliest dye on ties.
		if dist < bestDist {
			best = i
			bestDist = dist
		}
	}

	if best < 0 {
		return Result{}, false
	}
	return Result{Dye: palette[best], Distance: bestDist}, true
}

// FindClosestHex is FindClosest for a hex query. Returns false for malformed hex.
func FindClosestHex(hex string, palette []dye.Dye, filters ...Filter) (Result, bool) {
	target, ok := colour.ParseHex(hex)
	if !ok {
		return Result{}, false
	}
	return FindClosest(target, palette, filters...)
}

// FindWithinDistance returns every eligible dye within radius of target, nearest first.
// Dyes at equal distance keep palette order. At most limit results are returned;
// limit <= 0 means no limit.
func FindWithinDistance(target colour.RGB, palette []dye.Dye, radius float64, limit int, filters ...Filter) []Result {
	results := make([]Result, 0)
	for _, d := range palette {
		if !Eligible(d, filters) {
			continue
		}
		if dist := Distance(target, d.RGB); dist <= radius {
			results = append(results, Result{Dye: d, Distance: dist})
		}
	}

	slices.SortStableFunc(results, func(a, b Result) int {
		switch {
		case a.Distance < b.Distance:
			return -1
		case a.Distance > b.Distance:
			return 1
		default:
			return 0
		}
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

// Similar returns the dyes near target excluding the given dye, typically the best match.
func Similar(target colour.RGB, palette []dye.Dye, exclude dye.Dye, radius float64, limit int, filters ...Filter) []Result {
	filters = append(slices.Clone(filters), ExcludeIDs(exclude.ID))
	return FindWithinDistance(target, palette, radius, limit, filters...)
}
