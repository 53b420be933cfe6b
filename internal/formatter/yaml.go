package formatter

import (
	"io"

	"github.com/goccy/go-yaml"

	"github.com/henrytill/notes-go/internal/note"
)

type YAMLFormatter struct{}

func NewYAMLFormatter() *YAMLFormatter {
	return &YAMLFormatter{}
}

func (f *YAMLFormatter) Format(w io.Writer, notes []note.Note) error {
	encoder := yaml.NewEncoder(w,
		yaml.UseSingleQuote(true),
		yaml.Indent(2),
	)
	defer encoder.Close()

	if notes == nil {
		notes = []note.Note{}
	}
	return encoder.Encode(notes)
}
