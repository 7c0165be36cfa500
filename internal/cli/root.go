// Package cli provides the command-line interface for Dyematch.
package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/dyematch/internal/config"
	"github.com/jmylchreest/dyematch/internal/dye"
	imgloader "github.com/jmylchreest/dyematch/internal/image"
	"github.com/jmylchreest/dyematch/internal/match"
	"github.com/jmylchreest/dyematch/internal/util/cache"
	httputil "github.com/jmylchreest/dyematch/internal/util/http"
	"github.com/jmylchreest/dyematch/internal/version"
)

// Output formats accepted by --format.
const (
	formatText = "text"
	formatJSON = "json"
)

// globalOptions holds the persistent flags and the state derived from them
// before any subcommand runs.
type globalOptions struct {
	verbose     bool
	useCache    bool
	palettePath string
	format      string
	filters     match.FilterConfig

	cfg    config.Config
	logger hclog.Logger
}

// NewRootCmd builds the dyematch command tree.
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "dyematch",
		Short: "Match colours against a dye palette",
		Long: `Dyematch finds the dyes closest to a colour, builds colour harmonies out of
real dyes, and samples or extracts colours from images.

Every match reports its distance in RGB space, a deviance score from 0 (exact)
to 10 (opposite corner of the colour cube) and a quality tier.

Settings can also come from DYEMATCH_* environment variables or a .env file.`,
		Version:      version.Short(),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.init(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")
	flags.StringVarP(&opts.palettePath, "palette", "p", "", "palette file or URL (JSON, optionally .xz); defaults to the built-in palette")
	flags.StringVarP(&opts.format, "format", "f", formatText, "output format (text, json)")
	flags.BoolVar(&opts.useCache, "cache", false, "keep downloaded images and palettes on disk (DYEMATCH_CACHE_DIR or the user cache directory)")
	flags.BoolVar(&opts.filters.ExcludeMetallic, "exclude-metallic", false, "never suggest metallic dyes")
	flags.BoolVar(&opts.filters.ExcludePastel, "exclude-pastel", false, "never suggest pastel dyes")
	flags.BoolVar(&opts.filters.ExcludeDark, "exclude-dark", false, "never suggest dark dyes")
	flags.StringSliceVar(&opts.filters.ExcludeAcquisitions, "exclude-acquisition", nil, "never suggest dyes obtained this way (repeatable)")
	flags.StringSliceVar(&opts.filters.ExcludeTags, "exclude-tag", nil, "never suggest dyes carrying this tag (repeatable)")
	flags.IntSliceVar(&opts.filters.ExcludeIDs, "exclude-id", nil, "never suggest these dye IDs (repeatable)")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(
		newMatchCmd(opts),
		newHarmonyCmd(opts),
		newSampleCmd(opts),
		newExtractCmd(opts),
		newPaletteCmd(opts),
		newVersionCmd(opts),
	)

	return rootCmd
}

// init loads configuration and builds the logger shared by subcommands.
func (o *globalOptions) init(cmd *cobra.Command) error {
	switch o.format {
	case formatText, formatJSON:
	default:
		return fmt.Errorf("unknown output format %q (want %s or %s)", o.format, formatText, formatJSON)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	o.cfg = cfg
	if !cmd.Flags().Changed("palette") && o.palettePath == "" {
		o.palettePath = cfg.PalettePath
	}

	if o.verbose {
		o.logger = hclog.New(&hclog.LoggerOptions{
			Name:   "dyematch",
			Output: cmd.ErrOrStderr(),
			Level:  hclog.Debug,
		})
	} else {
		o.logger = hclog.New(&hclog.LoggerOptions{
			Name:   "dyematch",
			Output: io.Discard,
			Level:  hclog.Off,
		})
	}
	return nil
}

// loadPalette reads the configured palette from a file, a URL or the embedded default.
func (o *globalOptions) loadPalette(ctx context.Context) (*dye.Palette, error) {
	path := o.palettePath
	var (
		p   *dye.Palette
		err error
	)
	switch {
	case isURL(path) && o.useCache:
		var local string
		local, err = cache.Download(ctx, path, o.cacheOptions())
		if err != nil {
			return nil, fmt.Errorf("failed to fetch palette: %w", err)
		}
		p, err = dye.Load(local)
	case isURL(path):
		var data []byte
		data, err = httputil.Fetch(ctx, path, httputil.FetchOptions{})
		if err != nil {
			return nil, fmt.Errorf("failed to fetch palette: %w", err)
		}
		p, err = dye.Read(bytes.NewReader(data), path)
	default:
		p, err = dye.Load(path)
	}
	if err != nil {
		return nil, err
	}

	source := path
	if source == "" {
		source = "built-in"
	}
	o.logger.Debug("palette loaded", "source", source, "dyes", p.Len())
	return p, nil
}

// imageLoader returns the loader for source images, caching downloads when enabled.
func (o *globalOptions) imageLoader() *imgloader.SmartLoader {
	l := imgloader.NewSmartLoader()
	if o.useCache {
		l.WithCache(o.cacheOptions())
	}
	return l
}

func (o *globalOptions) cacheOptions() cache.Options {
	return cache.Options{Dir: o.cfg.CacheDir}
}

func isURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

// matchFilters returns the exclusion filters selected by the persistent flags.
func (o *globalOptions) matchFilters() []match.Filter {
	return o.filters.Build()
}

func (o *globalOptions) json() bool {
	return o.format == formatJSON
}

func newVersionCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := version.GetInfo()
			if opts.json() {
				return writeJSON(cmd.OutOrStdout(), info)
			}
			fmt.Fprintln(cmd.OutOrStdout(), info)
			return nil
		},
	}
}
