package note

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ID is the server-assigned identifier of a note. Servers in the wild emit it
// either as a JSON string or as a JSON number; both decode to the same ID.
type ID string

func (id ID) String() string { return string(id) }

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("failed to decode note id: %w", err)
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("failed to decode note id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

type Note struct {
	ID        ID     `json:"id,omitempty"   yaml:"id"`
	Content   string `json:"content"        yaml:"content"`
	Important bool   `json:"important"      yaml:"important"`
}

// NormalizeContent trims surrounding whitespace and puts the text in NFC so
// that visually identical notes compare equal.
func NormalizeContent(content string) string {
	return norm.NFC.String(strings.TrimSpace(content))
}

// WithImportance returns a copy of n with the important flag set to v.
func (n Note) WithImportance(v bool) Note {
	n.Important = v
	return n
}

// Parser reads notes from an import file.
type Parser interface {
	Parse(r io.Reader) ([]Note, error)
}

// Formatter writes notes in some output format.
type Formatter interface {
	Format(w io.Writer, notes []Note) error
}
