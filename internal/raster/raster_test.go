package raster

import (
	"image"
	"image/color"
	"testing"

	"github.com/jmylchreest/dyematch/internal/colour"
)

// createTestImage creates a w x h image filled with a single colour.
func createTestImage(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// createQuadrantImage creates a 10x10 image with red, green, blue and white quadrants.
func createQuadrantImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			var c color.NRGBA
			switch {
			case x < 5 && y < 5:
				c = color.NRGBA{R: 255, A: 255}
			case x >= 5 && y < 5:
				c = color.NRGBA{G: 255, A: 255}
			case x < 5:
				c = color.NRGBA{B: 255, A: 255}
			default:
				c = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestNewCanvas(t *testing.T) {
	src := image.NewRGBA(image.Rect(5, 5, 8, 7))
	src.Set(5, 5, color.RGBA{R: 10, G: 20, B: 30, A: 255})

	c := NewCanvas(src)
	if c.Width() != 3 || c.Height() != 2 {
		t.Fatalf("size = %dx%d, want 3x2", c.Width(), c.Height())
	}

	pix := c.ReadRegion(0, 0, 1, 1)
	if len(pix) != 4 || pix[0] != 10 || pix[1] != 20 || pix[2] != 30 || pix[3] != 255 {
		t.Errorf("ReadRegion(0,0) = %v, want origin translated to [10 20 30 255]", pix)
	}
}

func TestFromPixels(t *testing.T) {
	pix := []byte{1, 2, 3, 255, 4, 5, 6, 255}
	c, err := FromPixels(2, 1, pix)
	if err != nil {
		t.Fatalf("FromPixels() error = %v", err)
	}
	pix[0] = 99
	if got := c.ReadRegion(0, 0, 1, 1); got[0] != 1 {
		t.Error("FromPixels() must copy the buffer")
	}

	if _, err := FromPixels(2, 2, pix); err == nil {
		t.Error("FromPixels() expected error for short buffer")
	}
	if _, err := FromPixels(-1, 2, nil); err == nil {
		t.Error("FromPixels() expected error for negative width")
	}
}

func TestReadRegionClipping(t *testing.T) {
	c := NewCanvas(createTestImage(4, 4, color.NRGBA{R: 1, A: 255}))

	tests := []struct {
		name       string
		x, y, w, h int
		wantBytes  int
	}{
		{"inside", 1, 1, 2, 2, 16},
		{"overlapping edge", 3, 3, 5, 5, 4},
		{"negative origin", -2, -2, 3, 3, 4},
		{"outside", 10, 10, 2, 2, 0},
		{"zero size", 0, 0, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.ReadRegion(tt.x, tt.y, tt.w, tt.h); len(got) != tt.wantBytes {
				t.Errorf("ReadRegion() returned %d bytes, want %d", len(got), tt.wantBytes)
			}
		})
	}
}

func TestOverlaysDoNotAffectSampling(t *testing.T) {
	c := NewCanvas(createTestImage(20, 20, color.NRGBA{R: 255, A: 255}))

	c.FillCircle(10, 10, 5, color.White)
	if got := c.Display().NRGBAAt(10, 10); got != (color.NRGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Errorf("display centre = %v, want white overlay", got)
	}
	if hex, _ := SamplePixel(c, 10, 10); hex != "#FF0000" {
		t.Errorf("SamplePixel() = %s, overlay leaked into sampling", hex)
	}

	c.Redraw()
	if got := c.Display().NRGBAAt(10, 10); got.G != 0 {
		t.Errorf("display after Redraw = %v, want original red", got)
	}
}

func TestStrokeCircle(t *testing.T) {
	c := NewCanvas(createTestImage(21, 21, color.NRGBA{A: 255}))
	c.StrokeCircle(10, 10, 8, 2, color.White)

	if got := c.Display().NRGBAAt(10, 10); got.R != 0 {
		t.Error("stroke should leave the centre untouched")
	}
	if got := c.Display().NRGBAAt(18, 10); got.R != 255 {
		t.Error("stroke should paint the ring")
	}
	if got := c.Display().NRGBAAt(20, 10); got.R != 0 {
		t.Error("stroke should not paint outside the radius")
	}

	// Circles crossing the edge are clipped rather than panicking.
	c.FillCircle(0, 0, 30, color.White)
	c.FillCircle(10, 10, 0, color.Black)
}

func TestSamplePixel(t *testing.T) {
	c := NewCanvas(createQuadrantImage())

	tests := []struct {
		name string
		x, y float64
		want string
	}{
		{"red quadrant", 1, 1, "#FF0000"},
		{"green quadrant", 7.9, 2, "#00FF00"},
		{"floored not rounded", 4.99, 4.99, "#FF0000"},
		{"blue quadrant", 2, 8, "#0000FF"},
		{"clamped past max", 50, 50, "#FFFFFF"},
		{"clamped negative", -3, -0.5, "#FF0000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SamplePixel(c, tt.x, tt.y)
			if !ok || got != tt.want {
				t.Errorf("SamplePixel(%v, %v) = %s, %v; want %s", tt.x, tt.y, got, ok, tt.want)
			}
		})
	}
}

func TestSamplePixelIgnoresAlpha(t *testing.T) {
	c := NewCanvas(createTestImage(2, 2, color.NRGBA{R: 0x12, G: 0x34, B: 0x56, A: 10}))
	if got, _ := SamplePixel(c, 0, 0); got != "#123456" {
		t.Errorf("SamplePixel() = %s, want #123456", got)
	}
}

func TestSampleAverage(t *testing.T) {
	red := NewCanvas(createTestImage(10, 10, color.NRGBA{R: 255, A: 255}))
	for _, size := range []int{1, 3, 5, 10, 25} {
		if got, ok := SampleAverage(red, 5, 5, size); !ok || got != "#FF0000" {
			t.Errorf("SampleAverage(size %d) on uniform red = %s, want #FF0000", size, got)
		}
	}

	quad := NewCanvas(createQuadrantImage())

	t.Run("size one equals pixel", func(t *testing.T) {
		for _, p := range [][2]float64{{0, 0}, {4.5, 4.5}, {9, 3}, {7, 7}} {
			avg, _ := SampleAverage(quad, p[0], p[1], 1)
			px, _ := SamplePixel(quad, p[0], p[1])
			if avg != px {
				t.Errorf("SampleAverage(%v, 1) = %s, SamplePixel = %s", p, avg, px)
			}
		}
	})

	t.Run("size below one samples a pixel", func(t *testing.T) {
		if got, _ := SampleAverage(quad, 8, 8, 0); got != "#FFFFFF" {
			t.Errorf("SampleAverage(size 0) = %s", got)
		}
	})

	t.Run("box straddles quadrants", func(t *testing.T) {
		// 2x2 box with origin (4,4) covers one pixel of each quadrant.
		got, _ := SampleAverage(quad, 5, 5, 2)
		// (255+0+0+255)/4, (0+255+0+255)/4, (0+0+255+255)/4 = 127.5 rounds up.
		if got != "#808080" {
			t.Errorf("SampleAverage() = %s, want #808080", got)
		}
	})

	t.Run("box shrinks at edge", func(t *testing.T) {
		// A 5x5 box at the corner keeps only the 3x3 on-surface part, all red.
		got, _ := SampleAverage(quad, 0, 0, 5)
		if got != "#FF0000" {
			t.Errorf("SampleAverage() at corner = %s, want #FF0000", got)
		}
	})
}

func TestSampleEmptySurface(t *testing.T) {
	var nilCanvas *Canvas
	if _, ok := SamplePixel(nilCanvas, 0, 0); ok {
		t.Error("SamplePixel() on nil canvas should fail")
	}
	if _, ok := SamplePixel(nil, 0, 0); ok {
		t.Error("SamplePixel() on nil surface should fail")
	}

	empty := NewCanvas(image.NewNRGBA(image.Rect(0, 0, 0, 0)))
	if _, ok := SampleAverage(empty, 0, 0, 3); ok {
		t.Error("SampleAverage() on empty surface should fail")
	}
	if got := Locate(empty, []colour.RGB{{}}); len(got) != 1 || got[0].Found {
		t.Errorf("Locate() on empty surface = %+v", got)
	}
}

func TestSampleRegion(t *testing.T) {
	quad := NewCanvas(createQuadrantImage())

	tests := []struct {
		name           string
		x0, y0, x1, y1 float64
		want           string
	}{
		{"top half reversed corners", 10, 5, 0, 0, "#808000"},
		{"left column", 0, 0, 1, 10, "#800080"},
		{"degenerate point", 7, 7, 7, 7, "#FFFFFF"},
		{"fractional corners widen", 0.5, 0.5, 4.2, 4.2, "#FF0000"},
		{"entirely off surface", 20, 20, 30, 30, "#FFFFFF"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SampleRegion(quad, tt.x0, tt.y0, tt.x1, tt.y1)
			if !ok || got != tt.want {
				t.Errorf("SampleRegion() = %s, %v; want %s", got, ok, tt.want)
			}
		})
	}
}

func TestStride(t *testing.T) {
	tests := []struct {
		w, h, want int
	}{
		{10, 10, 1},
		{100, 100, 1},
		{200, 200, 2},
		{1000, 1000, 10},
		{1920, 1080, 14},
	}

	for _, tt := range tests {
		if got := Stride(tt.w, tt.h); got != tt.want {
			t.Errorf("Stride(%d, %d) = %d, want %d", tt.w, tt.h, got, tt.want)
		}
	}
}

func TestLocate(t *testing.T) {
	quad := NewCanvas(createQuadrantImage())

	got := Locate(quad, []colour.RGB{
		{R: 255},
		{G: 250},
		{B: 255},
		{R: 255, G: 255, B: 255},
	})

	want := []Position{
		{X: 0, Y: 0, Found: true},
		{X: 5, Y: 0, Found: true},
		{X: 0, Y: 5, Found: true},
		{X: 5, Y: 5, Found: true},
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Locate()[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}

	if got := Locate(quad, nil); len(got) != 0 {
		t.Errorf("Locate() with no centroids = %+v", got)
	}
}

func TestLocateSkipsTransparent(t *testing.T) {
	img := createTestImage(4, 4, color.NRGBA{R: 255, A: 255})
	img.SetNRGBA(0, 0, color.NRGBA{B: 255, A: 127})
	img.SetNRGBA(3, 3, color.NRGBA{B: 255, A: 128})

	got := Locate(NewCanvas(img), []colour.RGB{{B: 255}})
	if !got[0].Found || got[0].X != 3 || got[0].Y != 3 {
		t.Errorf("Locate() = %+v, want the only visible blue pixel at (3,3)", got[0])
	}

	clear := NewCanvas(createTestImage(4, 4, color.NRGBA{R: 255}))
	if got := Locate(clear, []colour.RGB{{R: 255}}); got[0].Found {
		t.Errorf("Locate() on fully transparent surface = %+v, want not found", got[0])
	}
}

func TestLocateUsesStride(t *testing.T) {
	img := createTestImage(300, 300, color.NRGBA{A: 255})
	// Stride is 3; (1,1) is never visited, (3,3) is.
	img.SetNRGBA(1, 1, color.NRGBA{R: 255, A: 255})
	img.SetNRGBA(3, 3, color.NRGBA{R: 200, A: 255})

	got := Locate(NewCanvas(img), []colour.RGB{{R: 255}})
	if got[0].X != 3 || got[0].Y != 3 {
		t.Errorf("Locate() = %+v, want strided hit at (3,3)", got[0])
	}
}
