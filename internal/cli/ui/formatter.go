package ui

import (
	"fmt"
	"io"
	"sort"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// OutputFormat selects how commands print their results
type OutputFormat string

const (
	// FormatPretty prints styled tables and key renderings
	FormatPretty OutputFormat = "pretty"
	// FormatJSON prints one indented JSON document per command
	FormatJSON OutputFormat = "json"
)

var formatters = map[OutputFormat]func() Formatter{
	FormatPretty: NewPrettyFormatter,
	FormatJSON:   NewJSONFormatter,
}

// ParseFormat converts a --format value, case-insensitively. Empty means pretty.
func ParseFormat(s string) (OutputFormat, error) {
	format := OutputFormat(strings.ToLower(strings.TrimSpace(s)))
	if format == "" {
		return FormatPretty, nil
	}
	if _, ok := formatters[format]; !ok {
		return "", fmt.Errorf("unsupported format: %s (use %s)", s, strings.Join(formatNames(), " or "))
	}
	return format, nil
}

func formatNames() []string {
	names := make([]string, 0, len(formatters))
	for f := range formatters {
		names = append(names, string(f))
	}
	sort.Strings(names)
	return names
}

// Formatter writes command results
type Formatter interface {
	// Render writes data as JSON, or calls pretty for human-readable output
	Render(data interface{}, pretty func()) error

	// Output writes data as is
	Output(data interface{}) error

	// OutputError writes a command failure to stderr
	OutputError(err error) error

	IsJSON() bool
}

type prettyFormatter struct{}

// NewPrettyFormatter creates the styled terminal formatter
func NewPrettyFormatter() Formatter {
	return &prettyFormatter{}
}

func (f *prettyFormatter) Render(data interface{}, pretty func()) error {
	if pretty == nil {
		return f.Output(data)
	}
	pretty()
	return nil
}

func (f *prettyFormatter) Output(data interface{}) error {
	if str, ok := data.(string); ok {
		_, err := fmt.Fprint(stdout, str)
		return err
	}
	_, err := fmt.Fprintln(stdout, data)
	return err
}

func (f *prettyFormatter) OutputError(err error) error {
	_, werr := fmt.Fprintf(stderr, "%s %s\n", ErrorIcon, ErrorStyle.Render(err.Error()))
	return werr
}

func (f *prettyFormatter) IsJSON() bool { return false }

type jsonFormatter struct{}

// NewJSONFormatter creates the machine-readable formatter
func NewJSONFormatter() Formatter {
	return &jsonFormatter{}
}

func (f *jsonFormatter) Render(data interface{}, _ func()) error {
	return f.Output(data)
}

func (f *jsonFormatter) Output(data interface{}) error {
	return writeJSON(stdout, data)
}

// OutputError writes {"error": "..."} to stderr so stdout stays parseable
func (f *jsonFormatter) OutputError(err error) error {
	return writeJSON(stderr, map[string]string{"error": err.Error()})
}

func (f *jsonFormatter) IsJSON() bool { return true }

func writeJSON(w io.Writer, data interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// GlobalFormatter is the formatter selected by --format
var GlobalFormatter Formatter = NewPrettyFormatter()

// SetGlobalFormatter replaces GlobalFormatter
func SetGlobalFormatter(format OutputFormat) error {
	newFormatter, ok := formatters[format]
	if !ok {
		return fmt.Errorf("unsupported format: %s", format)
	}
	GlobalFormatter = newFormatter()
	return nil
}
