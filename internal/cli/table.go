package cli

import (
	"strings"
)

// Table lays out rows of text in aligned columns. Widths are measured in
// terminal cells, so cells may carry ANSI colour previews.
type Table struct {
	headers    []string
	rows       [][]string
	padding    int
	maxWidths  map[int]int // wrap cells wider than this; 0 = no limit
	alignRight map[int]bool
}

// NewTable creates a new table with the given headers.
func NewTable(headers []string) *Table {
	return &Table{
		headers:    headers,
		padding:    2,
		maxWidths:  make(map[int]int),
		alignRight: make(map[int]bool),
	}
}

// SetColumnMaxWidth wraps text in a column at word boundaries beyond maxWidth cells.
func (t *Table) SetColumnMaxWidth(col, maxWidth int) {
	t.maxWidths[col] = maxWidth
}

// SetAlignRight right-aligns a column, typically one holding numbers.
func (t *Table) SetAlignRight(cols ...int) {
	for _, c := range cols {
		t.alignRight[c] = true
	}
}

// AddRow appends a row, padding or truncating it to the header count.
func (t *Table) AddRow(row []string) {
	fitted := make([]string, len(t.headers))
	copy(fitted, row)
	t.rows = append(t.rows, fitted)
}

// Render formats the table: header, dashed separator, then the rows.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	cells := make([][][]string, len(t.rows))
	for r, row := range t.rows {
		cells[r] = make([][]string, len(row))
		for c, cell := range row {
			cells[r][c] = wrapText(cell, t.maxWidths[c])
		}
	}

	widths := make([]int, len(t.headers))
	for c, h := range t.headers {
		widths[c] = displayWidth(h)
	}
	for _, row := range cells {
		for c, lines := range row {
			for _, line := range lines {
				widths[c] = max(widths[c], displayWidth(line))
			}
		}
	}

	var b strings.Builder
	gap := strings.Repeat(" ", t.padding)
	writeLine := func(parts []string) {
		for c, p := range parts {
			if c > 0 {
				b.WriteString(gap)
			}
			if t.alignRight[c] {
				b.WriteString(padLeft(p, widths[c]))
			} else {
				b.WriteString(padRight(p, widths[c]))
			}
		}
		b.WriteString("\n")
	}

	writeLine(t.headers)
	sep := make([]string, len(widths))
	for c, w := range widths {
		sep[c] = strings.Repeat("-", w)
	}
	writeLine(sep)

	for _, row := range cells {
		height := 1
		for _, lines := range row {
			height = max(height, len(lines))
		}
		for i := range height {
			parts := make([]string, len(row))
			for c, lines := range row {
				if i < len(lines) {
					parts[c] = lines[i]
				}
			}
			writeLine(parts)
		}
	}

	return b.String()
}

// padRight pads s with spaces on the right to the given display width.
// Wider strings are returned unchanged.
func padRight(s string, width int) string {
	if w := displayWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

func padLeft(s string, width int) string {
	if w := displayWidth(s); w < width {
		return strings.Repeat(" ", width-w) + s
	}
	return s
}

// displayWidth counts the runes of s that occupy a terminal cell, skipping
// ANSI escape sequences.
func displayWidth(s string) int {
	n := 0
	inEscape := false
	for _, r := range s {
		switch {
		case inEscape:
			if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
				inEscape = false
			}
		case r == '\033':
			inEscape = true
		default:
			n++
		}
	}
	return n
}

// wrapText breaks text into lines of at most width runes at word boundaries,
// splitting words that are longer than a line. A width of 0 disables wrapping.
func wrapText(text string, width int) []string {
	if width <= 0 || displayWidth(text) <= width {
		return []string{text}
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{text}
	}

	var lines []string
	line := ""
	for _, word := range words {
		for len([]rune(word)) > width {
			if line != "" {
				lines = append(lines, line)
				line = ""
			}
			r := []rune(word)
			lines = append(lines, string(r[:width]))
			word = string(r[width:])
		}
		switch {
		case line == "":
			line = word
		case len([]rune(line))+1+len([]rune(word)) <= width:
			line += " " + word
		default:
			lines = append(lines, line)
			line = word
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}
