package colour

import (
	"image/color"
	"math"
	"strings"
	"testing"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		name   string
		hex    string
		want   RGB
		wantOK bool
	}{
		{name: "red with hash", hex: "#FF0000", want: RGB{R: 255}, wantOK: true},
		{name: "lowercase without hash", hex: "1a2b3c", want: RGB{R: 0x1a, G: 0x2b, B: 0x3c}, wantOK: true},
		{name: "mixed case", hex: "#aBcDeF", want: RGB{R: 0xab, G: 0xcd, B: 0xef}, wantOK: true},
		{name: "empty", hex: "", wantOK: false},
		{name: "hash only", hex: "#", wantOK: false},
		{name: "shorthand", hex: "#FFF", wantOK: false},
		{name: "half typed", hex: "#FF00", wantOK: false},
		{name: "too long", hex: "#FF000000", wantOK: false},
		{name: "invalid digit", hex: "#GG0000", wantOK: false},
		{name: "double hash", hex: "##FF0000", wantOK: false},
		{name: "whitespace", hex: " #FF0000", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseHex(tt.hex)
			if ok != tt.wantOK {
				t.Fatalf("ParseHex(%q) ok = %v, want %v", tt.hex, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("ParseHex(%q) = %+v, want %+v", tt.hex, got, tt.want)
			}
		})
	}
}

func TestRGBHex(t *testing.T) {
	tests := []struct {
		rgb  RGB
		want string
	}{
		{RGB{R: 255}, "#FF0000"},
		{RGB{}, "#000000"},
		{RGB{R: 1, G: 2, B: 3}, "#010203"},
		{RGB{R: 0xab, G: 0xcd, B: 0xef}, "#ABCDEF"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.rgb.Hex(); got != tt.want {
				t.Errorf("Hex() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestHexRoundTrip(t *testing.T) {
	inputs := []string{"#000000", "#ffffff", "#1a2B3c", "7f7f7f", "#00FF80", "c0ffee"}
	for _, in := range inputs {
		rgb, ok := ParseHex(in)
		if !ok {
			t.Fatalf("ParseHex(%q) failed", in)
		}
		want := strings.ToUpper(in)
		if !strings.HasPrefix(want, "#") {
			want = "#" + want
		}
		if got := rgb.Hex(); got != want {
			t.Errorf("round trip of %q = %s, want %s", in, got, want)
		}
	}
}

func TestNormaliseHex(t *testing.T) {
	got, ok := NormaliseHex("c0ffee")
	if !ok || got != "#C0FFEE" {
		t.Errorf("NormaliseHex() = %q, %v, want #C0FFEE, true", got, ok)
	}
	if _, ok := NormaliseHex("nope"); ok {
		t.Error("NormaliseHex(nope) should fail")
	}
}

func TestRGBToHSV(t *testing.T) {
	tests := []struct {
		name string
		rgb  RGB
		want HSV
	}{
		{name: "red", rgb: RGB{R: 255}, want: HSV{H: 0, S: 100, V: 100}},
		{name: "green", rgb: RGB{G: 255}, want: HSV{H: 120, S: 100, V: 100}},
		{name: "blue", rgb: RGB{B: 255}, want: HSV{H: 240, S: 100, V: 100}},
		{name: "magenta", rgb: RGB{R: 255, B: 255}, want: HSV{H: 300, S: 100, V: 100}},
		{name: "black", rgb: RGB{}, want: HSV{H: 0, S: 0, V: 0}},
		{name: "white", rgb: RGB{R: 255, G: 255, B: 255}, want: HSV{H: 0, S: 0, V: 100}},
		{name: "grey", rgb: RGB{R: 128, G: 128, B: 128}, want: HSV{H: 0, S: 0, V: 50.2}},
		{name: "orange", rgb: RGB{R: 255, G: 128}, want: HSV{H: 30, S: 100, V: 100}},
		{name: "rose wraps below zero", rgb: RGB{R: 255, B: 1}, want: HSV{H: 0, S: 100, V: 100}},
		{name: "dark teal", rgb: RGB{R: 10, G: 80, B: 100}, want: HSV{H: 193, S: 90, V: 39.22}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RGBToHSV(tt.rgb)
			if got != tt.want {
				t.Errorf("RGBToHSV(%+v) = %+v, want %+v", tt.rgb, got, tt.want)
			}
		})
	}
}

func TestRGBToHSVHueRange(t *testing.T) {
	for r := 0; r < 256; r += 5 {
		for g := 0; g < 256; g += 5 {
			for b := 0; b < 256; b += 5 {
				hsv := RGBToHSV(RGB{R: uint8(r), G: uint8(g), B: uint8(b)})
				if hsv.H < 0 || hsv.H >= 360 {
					t.Fatalf("hue out of range for (%d,%d,%d): %v", r, g, b, hsv.H)
				}
				if hsv.S < 0 || hsv.S > 100 || hsv.V < 0 || hsv.V > 100 {
					t.Fatalf("s/v out of range for (%d,%d,%d): %+v", r, g, b, hsv)
				}
			}
		}
	}
}

func TestHSVToRGB(t *testing.T) {
	tests := []struct {
		name string
		hsv  HSV
		want RGB
	}{
		{name: "red", hsv: HSV{H: 0, S: 100, V: 100}, want: RGB{R: 255}},
		{name: "cyan", hsv: HSV{H: 180, S: 100, V: 100}, want: RGB{G: 255, B: 255}},
		{name: "hue 360 wraps to red", hsv: HSV{H: 360, S: 100, V: 100}, want: RGB{R: 255}},
		{name: "negative hue wraps", hsv: HSV{H: -120, S: 100, V: 100}, want: RGB{B: 255}},
		{name: "sector boundary 60", hsv: HSV{H: 60, S: 100, V: 100}, want: RGB{R: 255, G: 255}},
		{name: "half value grey", hsv: HSV{H: 90, S: 0, V: 50}, want: RGB{R: 128, G: 128, B: 128}},
		{name: "black", hsv: HSV{H: 200, S: 40, V: 0}, want: RGB{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HSVToRGB(tt.hsv); got != tt.want {
				t.Errorf("HSVToRGB(%+v) = %+v, want %+v", tt.hsv, got, tt.want)
			}
		})
	}
}

func TestHSVRoundTripPureColours(t *testing.T) {
	levels := []uint8{0, 255}
	for _, r := range levels {
		for _, g := range levels {
			for _, b := range levels {
				c := RGB{R: r, G: g, B: b}
				if got := HSVToRGB(RGBToHSV(c)); got != c {
					t.Errorf("round trip of %s = %s", c.Hex(), got.Hex())
				}
			}
		}
	}
}

func TestHSVRoundTripArbitraryColours(t *testing.T) {
	for r := 0; r < 256; r += 3 {
		for g := 0; g < 256; g += 7 {
			for b := 0; b < 256; b += 11 {
				c := RGB{R: uint8(r), G: uint8(g), B: uint8(b)}
				got := HSVToRGB(RGBToHSV(c))

				hi, lo := channelExtent(c)
				ghi, glo := channelExtent(got)
				if absDiff(hi, ghi) > 1 || absDiff(lo, glo) > 1 {
					t.Fatalf("round trip of %s = %s: max/min channels drifted", c.Hex(), got.Hex())
				}

				// The middle channel also absorbs the whole-degree hue quantisation.
				chroma := float64(hi) - float64(lo)
				bound := int(math.Ceil(chroma*0.5/60)) + 1
				for i, ch := range [3]int{int(c.R), int(c.G), int(c.B)} {
					gch := [3]int{int(got.R), int(got.G), int(got.B)}[i]
					if d := ch - gch; d > bound || -d > bound {
						t.Fatalf("round trip of %s = %s: channel %d off by %d (bound %d)", c.Hex(), got.Hex(), i, d, bound)
					}
				}
			}
		}
	}
}

func TestHSVRoundTripExactHues(t *testing.T) {
	// Colours whose hue lands on or very near a whole degree survive within one unit per channel.
	cases := []RGB{
		{R: 255, G: 128},
		{R: 200, G: 100, B: 100},
		{R: 17, G: 34, B: 51},
		{R: 128, G: 128, B: 128},
		{R: 90, G: 45, B: 180},
	}
	for _, c := range cases {
		got := HSVToRGB(RGBToHSV(c))
		if absDiff(int(c.R), int(got.R)) > 1 || absDiff(int(c.G), int(got.G)) > 1 || absDiff(int(c.B), int(got.B)) > 1 {
			t.Errorf("round trip of %s = %s", c.Hex(), got.Hex())
		}
	}
}

func TestWrapHue(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{359, 359},
		{360, 0},
		{540, 180},
		{-30, 330},
		{-360, 0},
		{-1e-15, 0},
	}
	for _, tt := range tests {
		if got := WrapHue(tt.in); got != tt.want {
			t.Errorf("WrapHue(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFromColor(t *testing.T) {
	tests := []struct {
		name  string
		color color.Color
		want  RGB
	}{
		{name: "opaque RGBA", color: color.RGBA{R: 255, G: 10, B: 20, A: 255}, want: RGB{R: 255, G: 10, B: 20}},
		{name: "NRGBA keeps channels", color: color.NRGBA{R: 200, G: 100, B: 50, A: 128}, want: RGB{R: 200, G: 100, B: 50}},
		{name: "grey", color: color.Gray{Y: 77}, want: RGB{R: 77, G: 77, B: 77}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromColor(tt.color); got != tt.want {
				t.Errorf("FromColor() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestContrast(t *testing.T) {
	if got := Contrast(RGB{R: 255, G: 255, B: 255}); got != (RGB{}) {
		t.Errorf("Contrast(white) = %+v, want black", got)
	}
	if got := Contrast(RGB{R: 20, G: 20, B: 60}); got != (RGB{R: 255, G: 255, B: 255}) {
		t.Errorf("Contrast(navy) = %+v, want white", got)
	}
}

func TestHueDistance(t *testing.T) {
	if got := HueDistance(350, 10); got != 20 {
		t.Errorf("HueDistance(350, 10) = %v, want 20", got)
	}
	if got := HueDistance(0, 180); got != 180 {
		t.Errorf("HueDistance(0, 180) = %v, want 180", got)
	}
}

func TestPreview(t *testing.T) {
	got := Preview(RGB{R: 1, G: 2, B: 3}, 4)
	want := "\033[48;2;1;2;3m    \033[0m"
	if got != want {
		t.Errorf("Preview() = %q, want %q", got, want)
	}
	if !strings.Contains(FormatWithPreview(RGB{R: 255}, 2), "#FF0000") {
		t.Error("FormatWithPreview() should include the hex code")
	}
}

func channelExtent(c RGB) (hi, lo int) {
	hi = max(int(c.R), int(c.G), int(c.B))
	lo = min(int(c.R), int(c.G), int(c.B))
	return hi, lo
}

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
