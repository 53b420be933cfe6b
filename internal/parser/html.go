package parser

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/henrytill/notes-go/internal/note"
)

// HTMLParser reads the document written by formatter.HTMLFormatter: one
// <li> per note carrying data-id and data-important, with the raw content in
// a <pre class="source"> child. A <li> without that child contributes its
// whole text.
type HTMLParser struct{}

func NewHTMLParser() *HTMLParser {
	return &HTMLParser{}
}

func getTextContent(n *html.Node) string {
	var result strings.Builder
	var worklist []*html.Node

	worklist = append(worklist, n)

	for len(worklist) > 0 {
		current := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		if current.Type == html.TextNode {
			result.WriteString(current.Data)
			continue
		}

		for c := current.LastChild; c != nil; c = c.PrevSibling {
			worklist = append(worklist, c)
		}
	}

	return result.String()
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val, true
		}
	}
	return "", false
}

func hasClass(n *html.Node, class string) bool {
	v, ok := attr(n, "class")
	if !ok {
		return false
	}
	for _, c := range strings.Fields(v) {
		if c == class {
			return true
		}
	}
	return false
}

func handleItem(li *html.Node) (note.Note, error) {
	var ret note.Note

	if id, ok := attr(li, "data-id"); ok {
		ret.ID = note.ID(strings.TrimSpace(id))
	}

	if v, ok := attr(li, "data-important"); ok && v != "" {
		important, err := strconv.ParseBool(v)
		if err != nil {
			return note.Note{}, fmt.Errorf("invalid data-important %q: %w", v, err)
		}
		ret.Important = important
	}

	source := li
	for c := li.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && strings.EqualFold(c.Data, "pre") && hasClass(c, "source") {
			source = c
			break
		}
	}
	ret.Content = getTextContent(source)

	return ret, nil
}

func parse(root *html.Node) ([]note.Note, error) {
	var (
		worklist []*html.Node
		notes    []note.Note
	)

	worklist = append(worklist, root)

	for len(worklist) > 0 {
		node := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		if node.Type == html.ElementNode && strings.EqualFold(node.Data, "li") {
			n, err := handleItem(node)
			if err != nil {
				return nil, err
			}
			notes = append(notes, n)
			continue
		}

		for c := node.LastChild; c != nil; c = c.PrevSibling {
			if c.Type == html.ElementNode || c.Type == html.DocumentNode {
				worklist = append(worklist, c)
			}
		}
	}

	return keep(notes), nil
}

func (p *HTMLParser) Parse(reader io.Reader) ([]note.Note, error) {
	doc, err := html.Parse(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	return parse(doc)
}
