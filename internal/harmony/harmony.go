// Package harmony derives colour harmonies from a base colour and snaps every
// theoretical target onto the nearest real dye.
package harmony

import (
	"math"
	"strings"

	"github.com/jmylchreest/dyematch/internal/colour"
	"github.com/jmylchreest/dyematch/internal/dye"
	"github.com/jmylchreest/dyematch/internal/match"
)

// Rule names a fixed pattern of hue offsets.
type Rule string

const (
	Complementary      Rule = "complementary"
	Analogous          Rule = "analogous"
	Triadic            Rule = "triadic"
	SplitComplementary Rule = "split-complementary"
	Tetradic           Rule = "tetradic"
	Square             Rule = "square"
)

var offsets = map[Rule][]float64{
	Complementary:      {180},
	Analogous:          {30, -30},
	Triadic:            {120, 240},
	SplitComplementary: {150, 210},
	Tetradic:           {60, 180, 240},
	Square:             {90, 180, 270},
}

// Rules returns every known rule in display order.
func Rules() []Rule {
	return []Rule{Complementary, Analogous, Triadic, SplitComplementary, Tetradic, Square}
}

// ParseRule normalises a user supplied rule name. Unknown names are returned
// as-is and produce no targets.
func ParseRule(name string) Rule {
	return Rule(strings.ToLower(strings.TrimSpace(name)))
}

// Valid reports whether r is one of the known rules.
func (r Rule) Valid() bool {
	_, ok := offsets[r]
	return ok
}

// Offsets returns the hue offsets in degrees for r, or nil for an unknown rule.
func Offsets(r Rule) []float64 {
	o, ok := offsets[r]
	if !ok {
		return nil
	}
	return append([]float64(nil), o...)
}

// TargetHue rotates base by offset and wraps the result into [0, 360).
func TargetHue(base, offset float64) float64 {
	return colour.WrapHue(base + offset)
}

// Target is one derived colour of a harmony.
type Target struct {
	Hue   float64       `json:"hue"`
	Ideal colour.HSV    `json:"ideal"`
	Match *match.Result `json:"match,omitempty"`

	// Deviance compares the matched dye against the ideal target.
	Deviance float64       `json:"deviance"`
	Quality  match.Quality `json:"quality"`
}

// Harmony is the result of Generate.
type Harmony struct {
	Rule    Rule          `json:"rule"`
	Base    *match.Result `json:"base,omitempty"`
	Targets []Target      `json:"targets"`
}

// Generate matches base and every target hue of rule against the palette.
// Saturation and value are copied from base, only the hue rotates. Targets for
// which every dye is filtered out carry a nil Match.
func Generate(base colour.HSV, rule Rule, palette []dye.Dye, filters ...match.Filter) Harmony {
	h := Harmony{
		Rule:    rule,
		Targets: make([]Target, 0, len(offsets[rule])),
	}

	if res, ok := snap(base, palette, filters); ok {
		h.Base = &res
	}

	for _, off := range offsets[rule] {
		ideal := colour.HSV{H: TargetHue(base.H, off), S: base.S, V: base.V}
		t := Target{Hue: ideal.H, Ideal: ideal}
		if res, ok := snap(ideal, palette, filters); ok {
			t.Match = &res
			t.Deviance = res.Deviance()
			t.Quality = res.Quality()
		}
		h.Targets = append(h.Targets, t)
	}

	return h
}

// GenerateHex is Generate for a hex base colour. Returns false for malformed hex.
func GenerateHex(hex string, rule Rule, palette []dye.Dye, filters ...match.Filter) (Harmony, bool) {
	rgb, ok := colour.ParseHex(hex)
	if !ok {
		return Harmony{}, false
	}
	return Generate(colour.RGBToHSV(rgb), rule, palette, filters...), true
}

func snap(ideal colour.HSV, palette []dye.Dye, filters []match.Filter) (match.Result, bool) {
	rgb := colour.HSVToRGB(ideal)
	res, ok := match.FindClosest(rgb, palette, filters...)
	if !ok {
		return match.Result{}, false
	}
	idealHSV := ideal
	matched := res.Dye.HSV
	res.IdealHSV = &idealHSV
	res.MatchedHSV = &matched
	return res, true
}

// HueDrift returns how far in degrees the matched dye's hue landed from the target.
func (t Target) HueDrift() float64 {
	if t.Match == nil || t.Match.MatchedHSV == nil {
		return math.NaN()
	}
	return colour.HueDistance(t.Ideal.H, t.Match.MatchedHSV.H)
}
