package formatter

import (
	"encoding/json"
	"io"

	"github.com/henrytill/notes-go/internal/note"
)

type JSONFormatter struct{}

func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

func (f *JSONFormatter) Format(w io.Writer, notes []note.Note) error {
	if notes == nil {
		notes = []note.Note{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(notes)
}
