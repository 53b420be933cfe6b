package formatter

import (
	"bytes"
	"fmt"
	"html/template"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/henrytill/notes-go/internal/note"
)

// HTMLFormatter writes a standalone page. Each note keeps its raw text in
// <pre class="source"> so the page can be imported again, next to the text
// rendered as Markdown.
type HTMLFormatter struct {
	md goldmark.Markdown
}

func NewHTMLFormatter() *HTMLFormatter {
	return &HTMLFormatter{
		md: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

type templateNote struct {
	ID        string
	Content   string
	Important bool
	Rendered  template.HTML
}

const htmlTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Notes</title>
</head>
<body>
<h1>Notes</h1>
<ul>
{{- range .Notes}}
<li{{if .ID}} data-id="{{.ID}}"{{end}} data-important="{{.Important}}">
<pre class="source">{{.Content}}</pre>
<div class="rendered">{{.Rendered}}</div>
</li>
{{- end}}
</ul>
</body>
</html>
`

var page = template.Must(template.New("html").Parse(htmlTemplate))

func (f *HTMLFormatter) render(content string) (template.HTML, error) {
	md := f.md
	if md == nil {
		md = goldmark.New(goldmark.WithExtensions(extension.GFM))
	}

	var buf bytes.Buffer
	// goldmark escapes raw HTML in the source unless WithUnsafe is set.
	if err := md.Convert([]byte(content), &buf); err != nil {
		return "", fmt.Errorf("failed to render note content: %w", err)
	}
	return template.HTML(buf.String()), nil
}

func (f *HTMLFormatter) Format(writer io.Writer, notes []note.Note) error {
	templateData := struct {
		Notes []templateNote
	}{
		Notes: make([]templateNote, 0, len(notes)),
	}

	for _, n := range notes {
		rendered, err := f.render(n.Content)
		if err != nil {
			return err
		}
		templateData.Notes = append(templateData.Notes, templateNote{
			ID:        string(n.ID),
			Content:   n.Content,
			Important: n.Important,
			Rendered:  rendered,
		})
	}

	return page.Execute(writer, templateData)
}
