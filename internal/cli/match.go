package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/dyematch/internal/colour"
	"github.com/jmylchreest/dyematch/internal/match"
)

// matchOutput is the JSON form of a match command result.
type matchOutput struct {
	Input    string         `json:"input"`
	Target   colour.RGB     `json:"target"`
	Match    match.Result   `json:"match"`
	Deviance float64        `json:"deviance"`
	Quality  match.Quality  `json:"quality"`
	Similar  []match.Result `json:"similar"`
}

func newMatchCmd(opts *globalOptions) *cobra.Command {
	var (
		radius float64
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "match <hex>",
		Short: "Find the dye closest to a colour",
		Long: `Find the dye closest to a colour and list similar alternatives.

Examples:
  # Closest dye to a colour
  dyematch match "#8B4513"

  # Skip metallic dyes and anything sold by the market board
  dyematch match 8b4513 --exclude-metallic --exclude-acquisition "Market Board"

  # Widen the search for alternatives
  dyematch match "#8B4513" --radius 80 --limit 10`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("radius") {
				radius = opts.cfg.SimilarRadius
			}
			if !cmd.Flags().Changed("limit") {
				limit = opts.cfg.SimilarLimit
			}
			return runMatch(cmd, opts, args[0], radius, limit)
		},
	}

	cmd.Flags().Float64VarP(&radius, "radius", "r", 0, "RGB distance within which alternatives are listed (default from DYEMATCH_SIMILAR_RADIUS)")
	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "maximum number of alternatives, 0 for all (default from DYEMATCH_SIMILAR_LIMIT)")

	return cmd
}

func runMatch(cmd *cobra.Command, opts *globalOptions, input string, radius float64, limit int) error {
	target, ok := colour.ParseHex(input)
	if !ok {
		return fmt.Errorf("invalid hex colour %q", input)
	}

	palette, err := opts.loadPalette(cmd.Context())
	if err != nil {
		return err
	}

	dyes := palette.Dyes()
	filters := opts.matchFilters()
	best, ok := match.FindClosest(target, dyes, filters...)
	if !ok {
		return fmt.Errorf("no eligible dye for %s", target.Hex())
	}
	similar := match.Similar(target, dyes, best.Dye, radius, limit, filters...)
	opts.logger.Debug("matched", "target", target.Hex(), "dye", best.Dye.Name, "distance", best.Distance, "similar", len(similar))

	out := cmd.OutOrStdout()
	if opts.json() {
		return writeJSON(out, matchOutput{
			Input:    input,
			Target:   target,
			Match:    best,
			Deviance: best.Deviance(),
			Quality:  best.Quality(),
			Similar:  similar,
		})
	}

	preview := isTerminal(out)
	fmt.Fprintf(out, "Target: %s\n\n", colourLabel(target, preview))

	table := newResultTable()
	table.AddRow(resultRow(best, preview))
	for _, r := range similar {
		table.AddRow(resultRow(r, preview))
	}
	fmt.Fprint(out, table.Render())
	return nil
}
