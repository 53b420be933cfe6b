package parser

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/henrytill/notes-go/internal/note"
)

type JSONParser struct{}

func NewJSONParser() *JSONParser {
	return &JSONParser{}
}

func (p *JSONParser) Parse(r io.Reader) ([]note.Note, error) {
	var notes []note.Note

	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&notes); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	return keep(notes), nil
}

// keep normalizes content and drops notes left empty.
func keep(notes []note.Note) []note.Note {
	out := make([]note.Note, 0, len(notes))
	for _, n := range notes {
		n.Content = note.NormalizeContent(n.Content)
		if n.Content == "" {
			continue
		}
		out = append(out, n)
	}
	return out
}
