package cli

import (
	"bytes"
	"fmt"
	"image/png"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/dyematch/internal/extract"
	imgloader "github.com/jmylchreest/dyematch/internal/image"
)

type extractFlags struct {
	colours      int
	markers      string
	plugin       string
	maxDimension int
	radius       float64
	limit        int
	output       string
}

// extractOutput is the JSON form of an extract command result.
type extractOutput struct {
	Session  string           `json:"session"`
	Image    string           `json:"image"`
	Swatches []extract.Swatch `json:"swatches"`
}

func newExtractCmd(opts *globalOptions) *cobra.Command {
	f := &extractFlags{}

	cmd := &cobra.Command{
		Use:   "extract <image>",
		Short: "Extract a palette from an image and match it to dyes",
		Long: `Extract the dominant colours of an image, locate each of them on the image
and match them to the closest eligible dyes.

Clustering runs in-process with k-means unless --plugin names a clusterer
plugin executable. Large images are downscaled before clustering.

Supported image formats: JPEG, PNG, GIF, WebP

Examples:
  # Five dominant colours and their dyes
  dyematch extract wallpaper.jpg

  # Eight colours, saving the image with location markers
  dyematch extract -c 8 --markers marked.png wallpaper.jpg

  # Cluster with an external plugin and write JSON to a file
  dyematch extract --plugin ./dyematch-cluster-kmeans -f json -o swatches.json wallpaper.jpg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if !flags.Changed("colours") {
				f.colours = opts.cfg.ExtractColours
			}
			if !flags.Changed("plugin") {
				f.plugin = opts.cfg.ClusterPlugin
			}
			if !flags.Changed("max-dimension") {
				f.maxDimension = opts.cfg.MaxDimension
			}
			if !flags.Changed("radius") {
				f.radius = opts.cfg.SimilarRadius
			}
			if !flags.Changed("limit") {
				f.limit = opts.cfg.SimilarLimit
			}
			return runExtract(cmd, opts, f, args[0])
		},
	}

	flags := cmd.Flags()
	flags.IntVarP(&f.colours, "colours", "c", 5, "number of colours to extract, 1-256 (default from DYEMATCH_EXTRACT_COLOURS)")
	flags.StringVarP(&f.markers, "markers", "m", "", "write the image with swatch markers to this PNG file")
	flags.StringVar(&f.plugin, "plugin", "", "clusterer plugin executable (default from DYEMATCH_CLUSTER_PLUGIN)")
	flags.IntVar(&f.maxDimension, "max-dimension", 512, "downscale images larger than this before clustering, 0 to disable")
	flags.Float64VarP(&f.radius, "radius", "r", 0, "RGB distance within which alternatives are listed, 0 to disable")
	flags.IntVarP(&f.limit, "limit", "l", 0, "maximum number of alternatives per swatch, 0 for all")
	flags.StringVarP(&f.output, "output", "o", "", "output file (default: stdout)")

	return cmd
}

func runExtract(cmd *cobra.Command, opts *globalOptions, f *extractFlags, path string) error {
	if f.colours < 1 || f.colours > extract.MaxColours {
		return fmt.Errorf("colours must be between 1 and %d, got %d", extract.MaxColours, f.colours)
	}
	if err := imgloader.ValidateImagePath(path); err != nil {
		return fmt.Errorf("invalid image path: %w", err)
	}

	ctx := cmd.Context()
	canvas, err := imgloader.LoadCanvas(ctx, opts.imageLoader(), path)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}
	opts.logger.Debug("image loaded", "path", path, "width", canvas.Width(), "height", canvas.Height())

	palette, err := opts.loadPalette(ctx)
	if err != nil {
		return err
	}

	sessionOpts := extract.Options{
		MaxDimension:  f.maxDimension,
		SimilarRadius: f.radius,
		SimilarLimit:  f.limit,
		Logger:        opts.logger,
	}
	if f.plugin != "" {
		sessionOpts.Clusterer = extract.NewPluginClusterer(f.plugin, opts.logger)
	}

	session, err := extract.NewSession(canvas, palette, sessionOpts)
	if err != nil {
		return err
	}
	swatches, err := session.Extract(ctx, f.colours, opts.matchFilters()...)
	if err != nil {
		return fmt.Errorf("failed to extract colours: %w", err)
	}

	if f.markers != "" {
		if err := writePNG(f.markers, session); err != nil {
			return err
		}
		opts.logger.Debug("markers written", "path", f.markers)
	}

	var out io.Writer = cmd.OutOrStdout()
	var buf bytes.Buffer
	if f.output != "" {
		out = &buf
	}

	if opts.json() {
		err = writeJSON(out, extractOutput{Session: session.ID, Image: path, Swatches: swatches})
	} else {
		fmt.Fprint(out, renderSwatches(swatches, f.output == "" && isTerminal(out)))
	}
	if err != nil {
		return err
	}

	if f.output != "" {
		if err := os.WriteFile(f.output, buf.Bytes(), 0o644); err != nil { // #nosec G306 - output is not sensitive
			return fmt.Errorf("failed to write output file: %w", err)
		}
		opts.logger.Debug("output written", "path", f.output)
	}
	return nil
}

// renderSwatches formats extracted swatches as a table.
func renderSwatches(swatches []extract.Swatch, preview bool) string {
	table := NewTable([]string{"", "Colour", "Share", "Position", "", "Dye", "Hex", "Deviance", "Quality", "Similar"})
	table.SetColumnMaxWidth(9, 40)
	table.SetAlignRight(2, 7)

	for _, sw := range swatches {
		pos := "-"
		if sw.Position.Found {
			pos = fmt.Sprintf("%d,%d", sw.Position.X, sw.Position.Y)
		}
		row := []string{
			swatch(sw.Colour, preview),
			sw.Hex,
			fmt.Sprintf("%.1f%%", sw.Weight*100),
			pos,
			"", "-", "-", "-", "-", "",
		}
		if sw.Match != nil {
			row[4] = swatch(sw.Match.Dye.RGB, preview)
			row[5] = sw.Match.Dye.Name
			row[6] = sw.Match.Dye.Hex
			row[7] = formatDeviance(sw.Deviance)
			row[8] = sw.Quality.Label
			row[9] = dyeNames(sw.Similar)
		}
		table.AddRow(row)
	}
	return table.Render()
}

func writePNG(path string, session *extract.Session) error {
	file, err := os.Create(path) // #nosec G304 - User-specified output path
	if err != nil {
		return fmt.Errorf("failed to create marker image: %w", err)
	}
	if err := png.Encode(file, session.Canvas().Display()); err != nil {
		file.Close()
		return fmt.Errorf("failed to encode marker image: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to write marker image: %w", err)
	}
	return nil
}
