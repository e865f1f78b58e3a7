// Package markdown extracts prose from document bodies with goldmark.
//
// JSX components in MDX bodies parse as raw HTML and contribute no text.
package markdown

import (
	"bytes"
	"strings"
	"unicode"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Heading is a heading found in a body.
type Heading struct {
	Level int
	Text  string
	// Line is 1-based, relative to the start of the body.
	Line int
}

// ParseBody parses a Markdown body (frontmatter already removed) into a Goldmark AST.
func ParseBody(body []byte) gmast.Node {
	return goldmark.New().Parser().Parse(text.NewReader(body))
}

// PlainText returns the rendered prose of body: paragraph, heading, list and
// emphasis text, without code blocks, raw HTML or link destinations.
func PlainText(body []byte) string {
	root := ParseBody(body)
	var b strings.Builder
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			if n.Type() == gmast.TypeBlock {
				b.WriteByte(' ')
			}
			return gmast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *gmast.Text:
			b.Write(node.Segment.Value(body))
			if node.SoftLineBreak() || node.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *gmast.String:
			b.Write(node.Value)
		}
		return gmast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}

// WordCount counts the words of the rendered prose of body.
func WordCount(body []byte) int {
	return len(strings.FieldsFunc(PlainText(body), func(r rune) bool {
		return unicode.IsSpace(r) || (unicode.IsPunct(r) && r != '\'' && r != '-')
	}))
}

// Headings returns every heading of body in document order.
func Headings(body []byte) []Heading {
	root := ParseBody(body)
	var headings []Heading
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		h, ok := n.(*gmast.Heading)
		if !entering || !ok {
			return gmast.WalkContinue, nil
		}
		line := 0
		if h.Lines().Len() > 0 {
			line = bytes.Count(body[:h.Lines().At(0).Start], []byte("\n")) + 1
		}
		headings = append(headings, Heading{
			Level: h.Level,
			Text:  strings.TrimSpace(inlineText(h, body)),
			Line:  line,
		})
		return gmast.WalkSkipChildren, nil
	})
	return headings
}

func inlineText(n gmast.Node, source []byte) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch node := c.(type) {
		case *gmast.Text:
			b.Write(node.Segment.Value(source))
		case *gmast.String:
			b.Write(node.Value)
		default:
			b.WriteString(inlineText(c, source))
		}
	}
	return b.String()
}
