package heading

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// markdownParser assigns heading ids the same way the site renderer does.
var markdownParser = goldmark.New(
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
).Parser()

// FromMarkdown parses markdown source and returns its section and item
// headings in document order, with the ids the renderer will give them.
func FromMarkdown(src []byte, sel Selector) []Heading {
	sectionRank, itemRank := rank(sel.SectionTag), rank(sel.ItemTag)
	doc := markdownParser.Parse(text.NewReader(src))

	var headings []Heading
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}

		var level Level
		switch h.Level {
		case sectionRank:
			level = LevelSection
		case itemRank:
			level = LevelItem
		default:
			return ast.WalkSkipChildren, nil
		}

		id := ""
		if v, ok := h.AttributeString("id"); ok {
			if b, ok := v.([]byte); ok {
				id = string(b)
			}
		}
		headings = append(headings, Heading{
			ID:     id,
			Label:  nodeText(h, src),
			Level:  level,
			Source: rawLines(h, src),
		})
		return ast.WalkSkipChildren, nil
	})
	return headings
}

// nodeText renders the plain text of an inline subtree.
func nodeText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	var walk func(ast.Node)
	walk = func(n ast.Node) {
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			switch t := c.(type) {
			case *ast.Text:
				buf.Write(t.Segment.Value(src))
				if t.SoftLineBreak() {
					buf.WriteByte(' ')
				}
			case *ast.String:
				buf.Write(t.Value)
			default:
				walk(c)
			}
		}
	}
	walk(n)
	return strings.TrimSpace(buf.String())
}

// rawLines returns the unrendered source of a block node.
func rawLines(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(src))
	}
	return strings.TrimSpace(buf.String())
}
