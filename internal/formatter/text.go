package formatter

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/henrytill/notes-go/internal/note"
)

const (
	importantMarker = "★"
	plainMarker     = " "
)

var (
	importantStyle = lipgloss.NewStyle().Bold(true)
	idStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	noticeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

// TextFormatter prints one line per note for a terminal.
type TextFormatter struct{}

func NewTextFormatter() *TextFormatter {
	return &TextFormatter{}
}

func (f *TextFormatter) Format(w io.Writer, notes []note.Note) error {
	for _, n := range notes {
		marker, content := plainMarker, n.Content
		if n.Important {
			marker, content = importantMarker, importantStyle.Render(n.Content)
		}
		if _, err := fmt.Fprintf(w, "%s %s  %s\n", marker, content, idStyle.Render("("+string(n.ID)+")")); err != nil {
			return err
		}
	}
	return nil
}

// Notice renders a notification line.
func Notice(msg string) string {
	return noticeStyle.Render(msg)
}
