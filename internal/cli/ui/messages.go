package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// ErrorLevel represents the severity of an error message
type ErrorLevel int

const (
	ErrorLevelError ErrorLevel = iota
	ErrorLevelWarning
	ErrorLevelInfo
)

// ErrorOptions configures the error message formatting
type ErrorOptions struct {
	Level        ErrorLevel
	Context      string
	Problem      string
	Consequence  string
	Suggestions  []string
	HelpCommands []string
	NoColor      bool
}

// FormatError renders a message such as:
//
//	✗ TYPE NOT FOUND
//	   Cannot find type 'Actr'.
//
//	   Did you mean: Actor?
//
//	   → List types: nativebinder introspect types
func FormatError(opts ErrorOptions) string {
	var b strings.Builder

	var header, body *color.Color
	var symbol string
	switch opts.Level {
	case ErrorLevelWarning:
		header = newColor(opts.NoColor, color.FgYellow, color.Bold)
		body = newColor(opts.NoColor, color.FgYellow)
		symbol = "!"
	case ErrorLevelInfo:
		header = newColor(opts.NoColor, color.FgCyan, color.Bold)
		body = newColor(opts.NoColor, color.FgCyan)
		symbol = "i"
	default:
		header = newColor(opts.NoColor, color.FgRed, color.Bold)
		body = newColor(opts.NoColor, color.FgRed)
		symbol = "✗"
	}

	if opts.Context != "" {
		header.Fprintf(&b, "%s %s\n", symbol, strings.ToUpper(opts.Context))
		body.Fprintf(&b, "   %s\n", opts.Problem)
	} else {
		header.Fprintf(&b, "%s %s\n", symbol, opts.Problem)
	}

	if opts.Consequence != "" {
		b.WriteString("\n")
		body.Fprintf(&b, "   %s\n", opts.Consequence)
	}

	if len(opts.Suggestions) > 0 {
		b.WriteString("\n")
		newColor(opts.NoColor, color.FgYellow).Fprintf(&b, "   Did you mean: %s?\n", strings.Join(opts.Suggestions, ", "))
	}

	if len(opts.HelpCommands) > 0 {
		b.WriteString("\n")
		cyan := newColor(opts.NoColor, color.FgCyan)
		for _, cmd := range opts.HelpCommands {
			cyan.Fprintf(&b, "   → %s\n", cmd)
		}
	}

	return b.String()
}

// WriteError writes a formatted error message to the writer
func WriteError(w io.Writer, opts ErrorOptions) {
	fmt.Fprint(w, FormatError(opts))
}

// FormatSuccess creates a success message
func FormatSuccess(message string, noColor bool) string {
	return newColor(noColor, color.FgGreen, color.Bold).Sprintf("✓ %s", message)
}

// WriteSuccess writes a success message to the writer
func WriteSuccess(w io.Writer, message string, noColor bool) {
	fmt.Fprintln(w, FormatSuccess(message, noColor))
}

// TypeNotFoundError reports an unknown type name in an exported tree.
func TypeNotFoundError(name string, suggestions []string, noColor bool) string {
	return FormatError(ErrorOptions{
		Level:       ErrorLevelError,
		Context:     "type not found",
		Problem:     fmt.Sprintf("Cannot find type '%s'.", name),
		Suggestions: suggestions,
		HelpCommands: []string{
			"List types: nativebinder introspect types",
			"Qualify ambiguous names as Module.Name",
		},
		NoColor: noColor,
	})
}

// SnapshotError reports a snapshot that could not be loaded.
func SnapshotError(path string, err error, noColor bool) string {
	return FormatError(ErrorOptions{
		Level:       ErrorLevelError,
		Context:     "snapshot error",
		Problem:     fmt.Sprintf("Cannot load reflection snapshot '%s'.", path),
		Consequence: err.Error(),
		HelpCommands: []string{
			"Point at another file: nativebinder export --snapshot <file>",
		},
		NoColor: noColor,
	})
}

// ConfigError creates a standardized configuration error
func ConfigError(message string, noColor bool) string {
	return FormatError(ErrorOptions{
		Level:   ErrorLevelError,
		Context: "configuration error",
		Problem: message,
		HelpCommands: []string{
			"Create a config: nativebinder init",
			"Get help: nativebinder --help",
		},
		NoColor: noColor,
	})
}

// Warning creates a standardized warning message
func Warning(message string, noColor bool) string {
	return FormatError(ErrorOptions{Level: ErrorLevelWarning, Problem: message, NoColor: noColor})
}
