package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/dyematch/internal/colour"
	"github.com/jmylchreest/dyematch/internal/harmony"
	"github.com/jmylchreest/dyematch/internal/match"
)

func newHarmonyCmd(opts *globalOptions) *cobra.Command {
	var ruleName string

	rules := make([]string, 0, len(harmony.Rules()))
	for _, r := range harmony.Rules() {
		rules = append(rules, string(r))
	}

	cmd := &cobra.Command{
		Use:   "harmony <hex>",
		Short: "Build a colour harmony out of real dyes",
		Long: fmt.Sprintf(`Rotate the hue of a base colour by a harmony rule and snap the base and
every target to the closest eligible dye.

Rules: %s

Examples:
  # Complementary pair for a base colour
  dyematch harmony "#3B5BA5"

  # Triadic harmony without dark dyes
  dyematch harmony "#3B5BA5" --rule triadic --exclude-dark`, strings.Join(rules, ", ")),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHarmony(cmd, opts, args[0], ruleName)
		},
	}

	cmd.Flags().StringVarP(&ruleName, "rule", "r", string(harmony.Complementary), "harmony rule ("+strings.Join(rules, ", ")+")")

	return cmd
}

func runHarmony(cmd *cobra.Command, opts *globalOptions, input, ruleName string) error {
	rule := harmony.ParseRule(ruleName)
	if !rule.Valid() {
		return fmt.Errorf("unknown harmony rule %q", ruleName)
	}

	palette, err := opts.loadPalette(cmd.Context())
	if err != nil {
		return err
	}

	h, ok := harmony.GenerateHex(input, rule, palette.Dyes(), opts.matchFilters()...)
	if !ok {
		return fmt.Errorf("invalid hex colour %q", input)
	}
	if h.Base == nil {
		return fmt.Errorf("no eligible dye for %s", input)
	}
	opts.logger.Debug("harmony generated", "rule", rule, "base", h.Base.Dye.Name, "targets", len(h.Targets))

	out := cmd.OutOrStdout()
	if opts.json() {
		return writeJSON(out, h)
	}

	preview := isTerminal(out)
	table := NewTable([]string{"Role", "", "Ideal", "Hue", "", "Dye", "Hex", "Drift", "Deviance", "Quality"})
	table.SetAlignRight(3, 7, 8)

	base := *h.Base
	table.AddRow(harmonyRow("base", *base.IdealHSV, &base, preview))
	for i, t := range h.Targets {
		row := harmonyRow(fmt.Sprintf("target %d", i+1), t.Ideal, t.Match, preview)
		if t.Match != nil {
			row[7] = fmt.Sprintf("%.1f°", t.HueDrift())
		}
		table.AddRow(row)
	}

	fmt.Fprintf(out, "Rule: %s\n\n", rule)
	fmt.Fprint(out, table.Render())
	return nil
}

// harmonyRow renders an ideal colour and the dye it snapped to. Unmatched
// targets show a dash in the dye columns.
func harmonyRow(role string, ideal colour.HSV, res *match.Result, preview bool) []string {
	idealRGB := colour.HSVToRGB(ideal)
	row := []string{
		role,
		swatch(idealRGB, preview),
		idealRGB.Hex(),
		fmt.Sprintf("%.0f°", ideal.H),
		"", "-", "-", "", "-", "-",
	}
	if res == nil {
		return row
	}
	row[4] = swatch(res.Dye.RGB, preview)
	row[5] = res.Dye.Name
	row[6] = res.Dye.Hex
	row[8] = formatDeviance(res.Deviance())
	row[9] = res.Quality().Label
	return row
}
