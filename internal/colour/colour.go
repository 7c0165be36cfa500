// Package colour provides the colour types and colour-space conversions used by dyematch.
package colour

import (
	"fmt"
	"image/color"
	"math"
	"regexp"

	"github.com/lucasb-eyer/go-colorful"
)

// hexPattern matches exactly six hex digits with an optional leading '#'.
var hexPattern = regexp.MustCompile(`^#?[0-9A-Fa-f]{6}$`)

// RGB represents a colour with 8-bit red, green and blue channels.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// HSV represents a colour in HSV space.
// H is in degrees [0, 360); S and V are percentages [0, 100] rounded to two decimals.
type HSV struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	V float64 `json:"v"`
}

// String returns the RGB colour as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the canonical hex form of the colour (e.g., "#1A2B3C").
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", rgb.R, rgb.G, rgb.B)
}

// NRGBA returns the colour as a fully opaque color.NRGBA.
func (rgb RGB) NRGBA() color.NRGBA {
	return color.NRGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 255}
}

// String returns the HSV colour as a string in the format "hsv(h, s%, v%)".
func (hsv HSV) String() string {
	return fmt.Sprintf("hsv(%g, %g%%, %g%%)", hsv.H, hsv.S, hsv.V)
}

// FromColor converts any color.Color to RGB, discarding alpha.
// Premultiplied colours are un-premultiplied first so translucent pixels keep their hue.
func FromColor(c color.Color) RGB {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGB{R: n.R, G: n.G, B: n.B}
}

// ParseHex parses a six digit hex colour with an optional leading '#'.
// Input is case-insensitive. Returns false for anything else, including
// three digit shorthand and partially typed values.
func ParseHex(hex string) (RGB, bool) {
	if !hexPattern.MatchString(hex) {
		return RGB{}, false
	}
	if hex[0] != '#' {
		hex = "#" + hex
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return RGB{}, false
	}
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}, true
}

// NormaliseHex canonicalises a hex string to "#RRGGBB".
func NormaliseHex(hex string) (string, bool) {
	rgb, ok := ParseHex(hex)
	if !ok {
		return "", false
	}
	return rgb.Hex(), true
}

// RGBToHSV converts an RGB colour to HSV.
// Achromatic colours have hue 0 and black has saturation 0.
func RGBToHSV(rgb RGB) HSV {
	c := colorful.Color{
		R: float64(rgb.R) / 255.0,
		G: float64(rgb.G) / 255.0,
		B: float64(rgb.B) / 255.0,
	}
	h, s, v := c.Hsv()

	hue := math.Round(h)
	if hue >= 360 {
		hue -= 360
	}

	return HSV{
		H: hue,
		S: round2(s * 100),
		V: round2(v * 100),
	}
}

// HSVToRGB converts an HSV colour to RGB. Hue wraps; saturation and value are clamped to [0, 100].
func HSVToRGB(hsv HSV) RGB {
	s := clampUnit(hsv.S / 100)
	v := clampUnit(hsv.V / 100)
	c := colorful.Hsv(WrapHue(hsv.H), s, v)
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}
}

// WrapHue maps any hue in degrees into [0, 360).
func WrapHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	// math.Mod of a tiny negative value plus 360 can round to exactly 360.
	if h >= 360 {
		h = 0
	}
	return h
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clampUnit(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
