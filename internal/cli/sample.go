package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jmylchreest/dyematch/internal/colour"
	imgloader "github.com/jmylchreest/dyematch/internal/image"
	"github.com/jmylchreest/dyematch/internal/match"
	"github.com/jmylchreest/dyematch/internal/raster"
	"github.com/jmylchreest/dyematch/internal/viewport"
)

type sampleFlags struct {
	x, y       float64
	toX, toY   float64
	size       int
	screen     bool
	zoom       float64
	panX, panY float64
	scrollX    float64
	scrollY    float64
	fit        string
	container  string
}

// sampleOutput is the JSON form of a sample command result.
type sampleOutput struct {
	Selection viewport.Selection `json:"selection"`
	Zoom      float64            `json:"zoom"`
	Hex       string             `json:"hex"`
	Colour    colour.RGB         `json:"colour"`
	Match     *match.Result      `json:"match,omitempty"`
	Deviance  float64            `json:"deviance"`
	Quality   match.Quality      `json:"quality"`
}

func newSampleCmd(opts *globalOptions) *cobra.Command {
	f := &sampleFlags{}

	cmd := &cobra.Command{
		Use:   "sample <image>",
		Short: "Sample a colour from an image and match it",
		Long: `Sample the colour under a point, or the average of a dragged region, and
match it to the closest eligible dye.

Coordinates are image pixels unless --screen is given, in which case they are
positions on a displayed view of the image described by --zoom, --pan-x/--pan-y,
--scroll-x/--scroll-y or --fit/--container. Giving --to-x/--to-y selects the
region between the two corners. Regions smaller than 4 square pixels are
treated as a point at the release position.

Examples:
  # Colour of one pixel
  dyematch sample wallpaper.png --x 120 --y 48

  # 5x5 average around a point
  dyematch sample wallpaper.png --x 120 --y 48 --size 5

  # Region dragged on a 200% zoomed view
  dyematch sample wallpaper.png --screen --zoom 200 --x 40 --y 40 --to-x 90 --to-y 70

  # Point on a view fitted to an 800x600 container
  dyematch sample wallpaper.png --screen --fit contain --container 800x600 --x 400 --y 300`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("size") {
				f.size = opts.cfg.SampleSize
			}
			if !cmd.Flags().Changed("to-x") {
				f.toX = f.x
			}
			if !cmd.Flags().Changed("to-y") {
				f.toY = f.y
			}
			return runSample(cmd, opts, f, args[0])
		},
	}

	flags := cmd.Flags()
	flags.Float64Var(&f.x, "x", 0, "x coordinate")
	flags.Float64Var(&f.y, "y", 0, "y coordinate")
	flags.Float64Var(&f.toX, "to-x", 0, "x coordinate of the opposite region corner")
	flags.Float64Var(&f.toY, "to-y", 0, "y coordinate of the opposite region corner")
	flags.IntVarP(&f.size, "size", "s", 1, "side of the square averaged around a point (default from DYEMATCH_SAMPLE_SIZE)")
	flags.BoolVar(&f.screen, "screen", false, "interpret coordinates as screen positions on a zoomed view")
	flags.Float64Var(&f.zoom, "zoom", 100, "view zoom percentage (with --screen)")
	flags.Float64Var(&f.panX, "pan-x", 0, "view pan in image pixels (with --screen)")
	flags.Float64Var(&f.panY, "pan-y", 0, "view pan in image pixels (with --screen)")
	flags.Float64Var(&f.scrollX, "scroll-x", 0, "container scroll offset in screen pixels (with --screen)")
	flags.Float64Var(&f.scrollY, "scroll-y", 0, "container scroll offset in screen pixels (with --screen)")
	flags.StringVar(&f.fit, "fit", "", "fit the view to --container (contain, width); explicit --zoom/--pan override it")
	flags.StringVar(&f.container, "container", "", "container size as WIDTHxHEIGHT (with --fit)")
	_ = cmd.MarkFlagRequired("x")
	_ = cmd.MarkFlagRequired("y")

	return cmd
}

func runSample(cmd *cobra.Command, opts *globalOptions, f *sampleFlags, path string) error {
	flags := cmd.Flags()
	if !f.screen {
		for _, name := range []string{"zoom", "pan-x", "pan-y", "scroll-x", "scroll-y", "fit", "container"} {
			if flags.Changed(name) {
				return fmt.Errorf("--%s requires --screen", name)
			}
		}
	}

	if err := imgloader.ValidateImagePath(path); err != nil {
		return fmt.Errorf("invalid image path: %w", err)
	}
	canvas, err := imgloader.LoadCanvas(cmd.Context(), opts.imageLoader(), path)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}
	opts.logger.Debug("image loaded", "path", path, "width", canvas.Width(), "height", canvas.Height())

	vp := viewport.New(opts.cfg.ZoomMin, opts.cfg.ZoomMax, opts.cfg.ZoomStep)
	vp.Reset(viewport.Size{W: float64(canvas.Width()), H: float64(canvas.Height())})
	if f.screen {
		if err := applyView(vp, f, flags); err != nil {
			return err
		}
		opts.logger.Debug("view", "zoom", vp.Zoom(), "pan", vp.Pan(), "scroll", vp.Scroll())
	}

	vp.BeginDrag(f.x, f.y)
	vp.UpdateDrag(f.toX, f.toY)
	sel := vp.EndDrag()

	var (
		hex string
		ok  bool
	)
	if sel.Kind == viewport.SelectRegion {
		hex, ok = raster.SampleRegion(canvas, sel.Min.X, sel.Min.Y, sel.Max.X, sel.Max.Y)
	} else {
		hex, ok = raster.SampleAverage(canvas, sel.Min.X, sel.Min.Y, f.size)
	}
	if !ok {
		return fmt.Errorf("nothing to sample in %s", path)
	}
	rgb, _ := colour.ParseHex(hex)
	opts.logger.Debug("sampled", "kind", sel.Kind, "min", sel.Min, "max", sel.Max, "hex", hex)

	palette, err := opts.loadPalette(cmd.Context())
	if err != nil {
		return err
	}

	result := sampleOutput{Selection: sel, Zoom: vp.Zoom(), Hex: hex, Colour: rgb}
	if res, found := match.FindClosest(rgb, palette.Dyes(), opts.matchFilters()...); found {
		result.Match = &res
		result.Deviance = res.Deviance()
		result.Quality = res.Quality()
	}

	out := cmd.OutOrStdout()
	if opts.json() {
		return writeJSON(out, result)
	}

	preview := isTerminal(out)
	switch sel.Kind {
	case viewport.SelectRegion:
		fmt.Fprintf(out, "Region: (%.1f, %.1f) - (%.1f, %.1f)\n", sel.Min.X, sel.Min.Y, sel.Max.X, sel.Max.Y)
	default:
		fmt.Fprintf(out, "Point: (%.1f, %.1f) size %d\n", sel.Min.X, sel.Min.Y, max(f.size, 1))
	}
	fmt.Fprintf(out, "Colour: %s\n\n", colourLabel(rgb, preview))

	if result.Match == nil {
		fmt.Fprintln(out, "No eligible dye.")
		return nil
	}
	table := newResultTable()
	table.AddRow(resultRow(*result.Match, preview))
	fmt.Fprint(out, table.Render())
	return nil
}

// applyView configures vp from the view flags. --fit runs first so explicit
// zoom and pan values can adjust the fitted view.
func applyView(vp *viewport.State, f *sampleFlags, flags *pflag.FlagSet) error {
	if f.fit != "" {
		mode, err := parseFitMode(f.fit)
		if err != nil {
			return err
		}
		container, err := parseSize(f.container)
		if err != nil {
			return err
		}
		vp.FitToContainer(container, mode)
	} else if f.container != "" {
		return fmt.Errorf("--container requires --fit")
	}

	changed := flags.Changed
	if changed("zoom") {
		vp.SetZoom(f.zoom)
	}
	if changed("pan-x") || changed("pan-y") {
		pan := vp.Pan()
		if changed("pan-x") {
			pan.X = f.panX
		}
		if changed("pan-y") {
			pan.Y = f.panY
		}
		vp.SetPan(pan.X, pan.Y)
	}
	vp.SetScroll(f.scrollX, f.scrollY)
	return nil
}

func parseFitMode(s string) (viewport.FitMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "contain":
		return viewport.FitContain, nil
	case "width":
		return viewport.FitWidth, nil
	default:
		return 0, fmt.Errorf("unknown fit mode %q (want contain or width)", s)
	}
}

// parseSize parses WIDTHxHEIGHT.
func parseSize(s string) (viewport.Size, error) {
	w, h, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return viewport.Size{}, fmt.Errorf("invalid container size %q (want WIDTHxHEIGHT)", s)
	}
	width, errW := strconv.ParseFloat(w, 64)
	height, errH := strconv.ParseFloat(h, 64)
	if errW != nil || errH != nil || width <= 0 || height <= 0 {
		return viewport.Size{}, fmt.Errorf("invalid container size %q (want WIDTHxHEIGHT)", s)
	}
	return viewport.Size{W: width, H: height}, nil
}
