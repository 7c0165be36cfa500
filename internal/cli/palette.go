package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/dyematch/internal/dye"
	"github.com/jmylchreest/dyematch/internal/match"
)

func newPaletteCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "palette",
		Short: "List the dyes in the palette",
		Long: `List the dyes in the loaded palette. Exclusion flags hide the dyes they
would exclude from matching, which makes this a quick way to check a filter.

Examples:
  # Every built-in dye
  dyematch palette

  # Dyes left once metallic and pastel dyes are excluded
  dyematch palette --exclude-metallic --exclude-pastel`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			palette, err := opts.loadPalette(cmd.Context())
			if err != nil {
				return err
			}

			filters := opts.matchFilters()
			dyes := make([]dye.Dye, 0, palette.Len())
			for _, d := range palette.All() {
				if match.Eligible(d, filters) {
					dyes = append(dyes, d)
				}
			}

			out := cmd.OutOrStdout()
			if opts.json() {
				return writeJSON(out, dyes)
			}

			preview := isTerminal(out)
			table := NewTable([]string{"", "ID", "Name", "Hex", "Category", "Acquisition", "Tags"})
			table.SetAlignRight(1)
			for _, d := range dyes {
				table.AddRow([]string{
					swatch(d.RGB, preview),
					fmt.Sprintf("%d", d.ID),
					d.Name,
					d.Hex,
					d.Category,
					d.Acquisition,
					strings.Join(d.Tags, ", "),
				})
			}
			fmt.Fprint(out, table.Render())
			fmt.Fprintf(out, "\n%d of %d dyes\n", len(dyes), palette.Len())
			return nil
		},
	}
}
