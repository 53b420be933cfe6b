package parser

import (
	"bytes"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/henrytill/notes-go/internal/note"
)

// MarkdownParser turns every list item into a note. A checked task box
// ("- [x] ...") marks the note important.
type MarkdownParser struct{}

func NewMarkdownParser() *MarkdownParser {
	return &MarkdownParser{}
}

func extractText(node ast.Node, content []byte) string {
	var buf bytes.Buffer

	type stackItem struct {
		node        ast.Node
		postProcess string
	}

	var stack []stackItem
	stack = append(stack, stackItem{node: node})

	for len(stack) > 0 {
		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if item.postProcess != "" {
			buf.WriteString(item.postProcess)
			continue
		}

		switch currentNode := item.node.(type) {
		case *ast.Text:
			buf.Write(currentNode.Segment.Value(content))
			if currentNode.SoftLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.CodeSpan:
			buf.WriteByte('`')
			stack = append(stack, stackItem{postProcess: "`"})
			for child := item.node.LastChild(); child != nil; child = child.PreviousSibling() {
				stack = append(stack, stackItem{node: child})
			}
		default:
			for child := item.node.LastChild(); child != nil; child = child.PreviousSibling() {
				stack = append(stack, stackItem{node: child})
			}
		}
	}

	return strings.TrimSpace(buf.String())
}

func isChecked(block ast.Node) bool {
	if block == nil {
		return false
	}
	if box, ok := block.FirstChild().(*extast.TaskCheckBox); ok {
		return box.IsChecked
	}
	return false
}

func (p *MarkdownParser) Parse(r io.Reader) ([]note.Note, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New(goldmark.WithExtensions(extension.TaskList))
	doc := md.Parser().Parse(text.NewReader(content))

	var notes []note.Note

	err = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		item, ok := n.(*ast.ListItem)
		if !ok || !entering {
			return ast.WalkContinue, nil
		}

		// Only the item's own first block; nested lists become notes of
		// their own.
		first := item.FirstChild()
		if first == nil {
			return ast.WalkContinue, nil
		}
		if _, nested := first.(*ast.List); nested {
			return ast.WalkContinue, nil
		}

		notes = append(notes, note.Note{
			Content:   extractText(first, content),
			Important: isChecked(first),
		})
		return ast.WalkContinue, nil
	})

	if err != nil {
		return nil, err
	}

	return keep(notes), nil
}
