package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/jmylchreest/dyematch/internal/colour"
	"github.com/jmylchreest/dyematch/internal/match"
)

// swatchWidth is the width of colour previews in table output.
const swatchWidth = 4

// isTerminal reports whether w is a terminal, in which case colour previews are shown.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// swatch renders a preview block for c, or nothing when previews are off.
func swatch(c colour.RGB, preview bool) string {
	if !preview {
		return ""
	}
	return colour.Preview(c, swatchWidth)
}

// resultRow renders one match result as a table row.
func resultRow(r match.Result, preview bool) []string {
	q := r.Quality()
	return []string{
		swatch(r.Dye.RGB, preview),
		fmt.Sprintf("%d", r.Dye.ID),
		r.Dye.Name,
		r.Dye.Hex,
		fmt.Sprintf("%.2f", r.Distance),
		formatDeviance(r.Deviance()),
		q.Label,
	}
}

// newResultTable creates a table for rows built by resultRow.
func newResultTable() *Table {
	t := NewTable([]string{"", "ID", "Dye", "Hex", "Distance", "Deviance", "Quality"})
	t.SetAlignRight(1, 4, 5)
	return t
}

func formatDeviance(d float64) string {
	return fmt.Sprintf("%.1f", d)
}

// dyeNames joins the names of results for compact display.
func dyeNames(results []match.Result) string {
	names := make([]string, len(results))
	for i, r := range results {
		names[i] = r.Dye.Name
	}
	return strings.Join(names, ", ")
}

// colourLabel renders c as its hex code, preceded by a preview when enabled.
func colourLabel(c colour.RGB, preview bool) string {
	if !preview {
		return c.Hex()
	}
	return colour.FormatWithPreview(c, swatchWidth)
}
