package internal

import (
	"bytes"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/henrytill/notes-go/internal/note"
)

var sample = []note.Note{
	{ID: "1", Content: "buy *milk*", Important: true},
	{ID: "2", Content: "call <bob> & co", Important: false},
}

func TestFormatCapabilities(t *testing.T) {
	assert.Equal(t, "json, html, markdown", FormatNames(AllInputFormats()))
	assert.Equal(t, "json, html, yaml, text", FormatNames(AllOutputFormats()))
}

func TestFormatSet(t *testing.T) {
	in := InputFlag()
	require.NoError(t, in.Set("MD"))
	assert.Equal(t, Markdown, in)

	in = InputFlag()
	assert.Error(t, in.Set("yaml"))

	out := OutputFlag()
	assert.Error(t, out.Set("markdown"))
	require.NoError(t, out.Set("yaml"))
	assert.Equal(t, YAML, out)

	assert.Error(t, out.Set("docx"))
	assert.Equal(t, "format", out.Type())
}

func TestDetectInputFormat(t *testing.T) {
	tests := map[string]Format{
		"notes.html":     HTML,
		"notes.HTM":      HTML,
		"export.json":    JSON,
		"todo.md":        Markdown,
		"todo.markdown":  Markdown,
		"dir.v1/archive": {},
	}
	for name, want := range tests {
		got, ok := DetectInputFormat(name)
		assert.Equal(t, want != Format{}, ok, name)
		assert.Equal(t, want, got, name)
	}
}

func TestHTMLRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Unparse(HTML, &buf, sample))

	out := buf.String()
	assert.Contains(t, out, `<li data-id="1" data-important="true">`)
	assert.Contains(t, out, `<pre class="source">call &lt;bob&gt; &amp; co</pre>`)
	assert.Contains(t, out, `<em>milk</em>`)
	assert.NotContains(t, out, "<bob>")

	notes, err := Parse(HTML, strings.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, sample, notes)
}

func TestJSONRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Unparse(JSON, &buf, sample))

	notes, err := Parse(JSON, &buf)
	require.NoError(t, err)
	assert.Equal(t, sample, notes)
}

func TestEmptyJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Unparse(JSON, &buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestYAMLOutput(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Unparse(YAML, &buf, sample[:1]))

	assert.Contains(t, buf.String(), "important: true")

	var decoded []note.Note
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, sample[:1], decoded)
}

func TestTextOutput(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Unparse(Text, &buf, sample))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "★ "))
	assert.Contains(t, lines[0], "buy *milk*")
	assert.Contains(t, lines[0], "(1)")
	assert.True(t, strings.HasPrefix(lines[1], "  call <bob> & co"))
}

func TestMarkdownInput(t *testing.T) {
	src := `# Groceries

- [x] buy milk
- [ ] buy bread
- plain item with ` + "`code`" + `
  - nested item

Not a list item.
`
	notes, err := Parse(Markdown, strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, []note.Note{
		{Content: "buy milk", Important: true},
		{Content: "buy bread", Important: false},
		{Content: "plain item with `code`", Important: false},
		{Content: "nested item", Important: false},
	}, notes)
}

func TestDirectionIsEnforced(t *testing.T) {
	_, err := Parse(YAML, strings.NewReader(""))
	assert.Error(t, err)

	assert.Error(t, Unparse(Markdown, &bytes.Buffer{}, sample))
}
