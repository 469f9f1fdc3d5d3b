// Package ui renders terminal output for the nativebinder commands.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
)

// IsTerminal reports whether w is a character device such as a TTY.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

func newColor(noColor bool, attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if noColor {
		c.DisableColor()
	}
	return c
}

// Table represents a simple table for displaying tabular data
type Table struct {
	writer  io.Writer
	headers []string
	rows    [][]string
	right   map[int]bool
	noColor bool
}

// TableOptions configures table behavior
type TableOptions struct {
	NoColor bool
	// RightAlign lists the column indexes rendered right-aligned.
	RightAlign []int
}

// NewTable creates a new table with the given headers
func NewTable(w io.Writer, headers []string, opts *TableOptions) *Table {
	t := &Table{
		writer:  w,
		headers: headers,
		rows:    make([][]string, 0),
		right:   make(map[int]bool),
	}
	if opts != nil {
		t.noColor = opts.NoColor
		for _, col := range opts.RightAlign {
			t.right[col] = true
		}
	}
	return t
}

// AddRow adds a row to the table
func (t *Table) AddRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.rows) }

// Render renders the table to the writer
func (t *Table) Render() {
	if len(t.headers) == 0 {
		return
	}

	widths := make([]int, len(t.headers))
	for i, header := range t.headers {
		widths[i] = width(header)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) && width(cell) > widths[i] {
				widths[i] = width(cell)
			}
		}
	}

	bold := newColor(t.noColor, color.Bold, color.FgCyan)
	for i, header := range t.headers {
		bold.Fprint(t.writer, t.pad(i, header, widths[i]))
		if i < len(t.headers)-1 {
			fmt.Fprint(t.writer, "  ")
		}
	}
	fmt.Fprintln(t.writer)

	gray := newColor(t.noColor, color.FgHiBlack)
	for i, w := range widths {
		gray.Fprint(t.writer, strings.Repeat("─", w))
		if i < len(widths)-1 {
			gray.Fprint(t.writer, "  ")
		}
	}
	fmt.Fprintln(t.writer)

	for _, row := range t.rows {
		n := min(len(row), len(widths))
		for i := 0; i < n; i++ {
			cell := t.pad(i, row[i], widths[i])
			if i == n-1 && !t.right[i] {
				cell = row[i]
			}
			fmt.Fprint(t.writer, cell)
			if i < n-1 {
				fmt.Fprint(t.writer, "  ")
			}
		}
		fmt.Fprintln(t.writer)
	}
}

func (t *Table) pad(col int, s string, w int) string {
	if t.right[col] {
		return padLeft(s, w)
	}
	return padRight(s, w)
}

func width(s string) int { return utf8.RuneCountInString(s) }

// padRight pads a string with spaces on the right to reach the target width
func padRight(s string, w int) string {
	if width(s) >= w {
		return s
	}
	return s + strings.Repeat(" ", w-width(s))
}

func padLeft(s string, w int) string {
	if width(s) >= w {
		return s
	}
	return strings.Repeat(" ", w-width(s)) + s
}

// KeyValueTable renders a simple key-value table (2 columns)
type KeyValueTable struct {
	writer  io.Writer
	keys    []string
	values  []string
	noColor bool
}

// NewKeyValueTable creates a new key-value table
func NewKeyValueTable(w io.Writer, noColor bool) *KeyValueTable {
	return &KeyValueTable{writer: w, noColor: noColor}
}

// AddRow adds a key-value pair to the table
func (t *KeyValueTable) AddRow(key, value string) {
	t.keys = append(t.keys, key)
	t.values = append(t.values, value)
}

// Render renders the key-value table
func (t *KeyValueTable) Render() {
	maxKeyWidth := 0
	for _, k := range t.keys {
		maxKeyWidth = max(maxKeyWidth, width(k))
	}

	cyan := newColor(t.noColor, color.FgCyan)
	for i, k := range t.keys {
		cyan.Fprint(t.writer, padRight(k+":", maxKeyWidth+1))
		fmt.Fprintf(t.writer, " %s\n", t.values[i])
	}
}

// Section is a titled block of indented lines.
type Section struct {
	writer  io.Writer
	title   string
	content []string
	noColor bool
}

// NewSection creates a new section
func NewSection(w io.Writer, title string, noColor bool) *Section {
	return &Section{writer: w, title: title, noColor: noColor}
}

// AddLine adds a line to the section content
func (s *Section) AddLine(format string, args ...any) {
	s.content = append(s.content, fmt.Sprintf(format, args...))
}

// Render prints nothing for a section without lines.
func (s *Section) Render() {
	if len(s.content) == 0 {
		return
	}
	newColor(s.noColor, color.Bold, color.FgCyan).Fprintln(s.writer, s.title)
	for _, line := range s.content {
		fmt.Fprintf(s.writer, "  %s\n", line)
	}
	fmt.Fprintln(s.writer)
}

// Header renders a styled header
func Header(w io.Writer, title string, noColor bool) {
	newColor(noColor, color.Bold, color.FgCyan).Fprintln(w, title)
	newColor(noColor, color.FgHiBlack).Fprintln(w, strings.Repeat("─", width(title)))
}
