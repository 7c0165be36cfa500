package match

import (
	"math"
)

// Tier ranks match quality, lower is better.
type Tier int

const (
	TierExcellent Tier = iota + 1
	TierGood
	TierPoor
)

// Deviance cut points. A deviance equal to a cut point belongs to the better tier.
const (
	excellentMax = 3.0
	goodMax      = 6.0
)

// Quality is the label shown next to a match.
type Quality struct {
	Label string `json:"label"`
	Tier  Tier   `json:"tier"`
}

// String returns the quality label.
func (q Quality) String() string {
	return q.Label
}

// ToDeviance rescales an RGB distance onto [0, 10] in steps of 0.5.
func ToDeviance(distance float64) float64 {
	d := distance / MaxDistance * 10
	d = math.Round(d*2) / 2
	return math.Max(0, math.Min(10, d))
}

// Classify maps a deviance score to its quality tier.
func Classify(deviance float64) Quality {
	switch {
	case deviance <= excellentMax:
		return Quality{Label: "excellent", Tier: TierExcellent}
	case deviance <= goodMax:
		return Quality{Label: "good", Tier: TierGood}
	default:
		return Quality{Label: "poor", Tier: TierPoor}
	}
}
