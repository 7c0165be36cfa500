package extract

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/dyematch/internal/colour"
	"github.com/jmylchreest/dyematch/internal/dye"
	"github.com/jmylchreest/dyematch/internal/match"
	"github.com/jmylchreest/dyematch/internal/raster"
)

// Options configures a Session.
type Options struct {
	// Clusterer defaults to NewKMeans().
	Clusterer Clusterer
	// MaxDimension bounds the image side length handed to the clusterer; 0 disables downscaling.
	MaxDimension int
	// SimilarRadius and SimilarLimit control the alternatives listed for each swatch.
	SimilarRadius float64
	SimilarLimit  int
	// MarkerRadius defaults to a size proportional to the image.
	MarkerRadius float64
	Logger       hclog.Logger
}

// Swatch is one extracted colour with where it appears and which dye it matches.
type Swatch struct {
	Colour   colour.RGB      `json:"colour"`
	Hex      string          `json:"hex"`
	Weight   float64         `json:"weight"`
	Position raster.Position `json:"position"`
	Match    *match.Result   `json:"match,omitempty"`
	Deviance float64         `json:"deviance"`
	Quality  match.Quality   `json:"quality"`
	Similar  []match.Result  `json:"similar,omitempty"`
}

// Session extracts palettes from one loaded image. Extractions on a session are
// mutually exclusive because they redraw the canvas overlay in place.
type Session struct {
	ID string

	canvas  *raster.Canvas
	palette *dye.Palette
	opts    Options
	logger  hclog.Logger

	mu sync.Mutex
}

// NewSession creates a session for canvas, matching against palette.
func NewSession(canvas *raster.Canvas, palette *dye.Palette, opts Options) (*Session, error) {
	if canvas == nil {
		return nil, errors.New("canvas cannot be nil")
	}
	if palette == nil {
		return nil, errors.New("palette cannot be nil")
	}
	if opts.Clusterer == nil {
		opts.Clusterer = NewKMeans()
	}
	if opts.MarkerRadius <= 0 {
		opts.MarkerRadius = max(4, float64(min(canvas.Width(), canvas.Height()))/40)
	}

	id := uuid.NewString()
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	return &Session{
		ID:      id,
		canvas:  canvas,
		palette: palette,
		opts:    opts,
		logger:  logger.Named("extract").With("session", id),
	}, nil
}

// Canvas returns the canvas the session draws its markers on.
func (s *Session) Canvas() *raster.Canvas {
	return s.canvas
}

// Extract clusters the image into at most k colours, locates each on the image,
// matches it to the closest eligible dye and redraws the markers.
// A call made while another is running returns ErrExtractionInProgress.
func (s *Session) Extract(ctx context.Context, k int, filters ...match.Filter) ([]Swatch, error) {
	if !s.mu.TryLock() {
		return nil, ErrExtractionInProgress
	}
	defer s.mu.Unlock()

	if s.canvas.Width() == 0 || s.canvas.Height() == 0 {
		return nil, ErrNoPixels
	}

	img := Downscale(s.canvas.Image(), s.opts.MaxDimension)
	s.logger.Debug("clustering", "colours", k, "width", img.Bounds().Dx(), "height", img.Bounds().Dy())

	centroids, err := s.opts.Clusterer.Cluster(ctx, img, k)
	if err != nil {
		return nil, fmt.Errorf("failed to cluster colours: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	colours := make([]colour.RGB, len(centroids))
	for i, c := range centroids {
		colours[i] = c.Colour
	}
	positions := raster.Locate(s.canvas, colours)

	dyes := s.palette.Dyes()
	swatches := make([]Swatch, len(centroids))
	for i, c := range centroids {
		sw := Swatch{
			Colour:   c.Colour,
			Hex:      c.Colour.Hex(),
			Weight:   c.Weight,
			Position: positions[i],
		}
		if res, ok := match.FindClosest(c.Colour, dyes, filters...); ok {
			sw.Match = &res
			sw.Deviance = res.Deviance()
			sw.Quality = res.Quality()
			if s.opts.SimilarRadius > 0 {
				sw.Similar = match.Similar(c.Colour, dyes, res.Dye, s.opts.SimilarRadius, s.opts.SimilarLimit, filters...)
			}
		}
		swatches[i] = sw
	}

	s.drawMarkers(swatches)
	s.logger.Debug("extraction complete", "swatches", len(swatches))
	return swatches, nil
}

// drawMarkers clears previous overlays and draws one marker per located swatch.
func (s *Session) drawMarkers(swatches []Swatch) {
	s.canvas.Redraw()

	r := s.opts.MarkerRadius
	for _, sw := range swatches {
		if !sw.Position.Found {
			continue
		}
		cx := float64(sw.Position.X) + 0.5
		cy := float64(sw.Position.Y) + 0.5
		ring := colour.Contrast(sw.Colour)

		s.canvas.FillCircle(cx, cy, r, sw.Colour.NRGBA())
		s.canvas.StrokeCircle(cx, cy, r, max(1, r/4), ring.NRGBA())
	}
}
