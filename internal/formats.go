package internal

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/henrytill/notes-go/internal/formatter"
	"github.com/henrytill/notes-go/internal/note"
	"github.com/henrytill/notes-go/internal/parser"
)

type FormatCapability uint8

const (
	CapInput FormatCapability = 1 << iota
	CapOutput
	CapBoth = CapInput | CapOutput
)

type Format struct {
	Name       string
	Capability FormatCapability
}

func (f Format) CanInput() bool  { return f.Capability&CapInput != 0 }
func (f Format) CanOutput() bool { return f.Capability&CapOutput != 0 }
func (f Format) String() string  { return f.Name }

// Type names the flag value kind in cobra help output.
func (f *Format) Type() string { return "format" }

var (
	JSON     = Format{"json", CapBoth}
	HTML     = Format{"html", CapBoth}
	Markdown = Format{"markdown", CapInput}
	YAML     = Format{"yaml", CapOutput}
	Text     = Format{"text", CapOutput}
)

var parsers = map[Format]note.Parser{
	JSON:     parser.NewJSONParser(),
	HTML:     parser.NewHTMLParser(),
	Markdown: parser.NewMarkdownParser(),
}

var formatters = map[Format]note.Formatter{
	JSON: formatter.NewJSONFormatter(),
	HTML: formatter.NewHTMLFormatter(),
	YAML: formatter.NewYAMLFormatter(),
	Text: formatter.NewTextFormatter(),
}

var allFormats = []Format{JSON, HTML, Markdown, YAML, Text}

func AllInputFormats() []Format {
	var result []Format
	for _, format := range allFormats {
		if format.CanInput() {
			result = append(result, format)
		}
	}
	return result
}

func AllOutputFormats() []Format {
	var result []Format
	for _, format := range allFormats {
		if format.CanOutput() {
			result = append(result, format)
		}
	}
	return result
}

func FormatNames(formats []Format) string {
	names := make([]string, 0, len(formats))
	for _, f := range formats {
		names = append(names, f.Name)
	}
	return strings.Join(names, ", ")
}

func parseFormat(name string) (Format, bool) {
	normalized := strings.ToLower(name)
	if normalized == "md" {
		normalized = Markdown.Name
	}
	for _, format := range allFormats {
		if format.Name == normalized {
			return format, true
		}
	}
	return Format{}, false
}

// Set parses value into f. When f already carries a capability (the flag's
// default), the parsed format must offer it too.
func (f *Format) Set(value string) error {
	parsed, ok := parseFormat(value)
	if !ok {
		return fmt.Errorf("invalid format: %s", value)
	}

	if f.CanInput() && !parsed.CanInput() {
		return fmt.Errorf("format %s cannot be used for input", value)
	}
	if f.CanOutput() && !parsed.CanOutput() {
		return fmt.Errorf("format %s cannot be used for output", value)
	}

	*f = parsed
	return nil
}

// InputFlag and OutputFlag are empty formats restricted to one direction,
// for use as flag values.
func InputFlag() Format  { return Format{Capability: CapInput} }
func OutputFlag() Format { return Format{Capability: CapOutput} }

func DetectInputFormat(filename string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".html", ".htm":
		return HTML, true
	case ".json":
		return JSON, true
	case ".md", ".markdown":
		return Markdown, true
	default:
		return Format{}, false
	}
}

func Parse(format Format, r io.Reader) ([]note.Note, error) {
	if !format.CanInput() {
		return nil, fmt.Errorf("format %s cannot be used for input", format.Name)
	}

	parser, ok := parsers[format]
	if !ok {
		return nil, fmt.Errorf("no parser available for format: %s", format.Name)
	}

	return parser.Parse(r)
}

func Unparse(format Format, w io.Writer, notes []note.Note) error {
	if !format.CanOutput() {
		return fmt.Errorf("format %s cannot be used for output", format.Name)
	}

	formatter, ok := formatters[format]
	if !ok {
		return fmt.Errorf("no formatter available for format: %s", format.Name)
	}

	return formatter.Format(w, notes)
}
