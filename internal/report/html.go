package report

import (
	"fmt"
	"io"
	"strconv"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// HTMLFormatter renders a standalone HTML page, suitable for CI artifacts.
type HTMLFormatter struct{}

// NewHTMLFormatter creates an HTML formatter.
func NewHTMLFormatter() *HTMLFormatter {
	return &HTMLFormatter{}
}

// Format outputs the report as an HTML document.
func (f *HTMLFormatter) Format(w io.Writer, r *Report) error {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	root := element(atom.Html, attr("lang", "en"))
	doc.AppendChild(root)

	head := element(atom.Head)
	head.AppendChild(element(atom.Meta, attr("charset", "utf-8")))
	head.AppendChild(withText(element(atom.Title), "sitelint report"))
	root.AppendChild(head)

	body := element(atom.Body)
	root.AppendChild(body)

	status := "pass"
	if !r.Passed() {
		status = "fail"
	}
	body.AppendChild(withText(element(atom.H1), "Content validation report"))
	body.AppendChild(withText(element(atom.P, attr("class", "summary "+status)), r.Summary()))

	if r.RunID != "" {
		body.AppendChild(withText(element(atom.P, attr("class", "run")), fmt.Sprintf("Run %s", r.RunID)))
	}

	body.AppendChild(issueSection("Warnings", r.Warnings))
	body.AppendChild(issueSection("Errors", r.Errors))

	return html.Render(w, doc)
}

func issueSection(title string, issues []Issue) *html.Node {
	section := element(atom.Section)
	section.AppendChild(withText(element(atom.H2), fmt.Sprintf("%s (%d)", title, len(issues))))
	if len(issues) == 0 {
		return section
	}

	table := element(atom.Table)
	headRow := element(atom.Tr)
	for _, h := range []string{"Page", "Line", "Rule", "Message"} {
		headRow.AppendChild(withText(element(atom.Th, attr("scope", "col")), h))
	}
	thead := element(atom.Thead)
	thead.AppendChild(headRow)
	table.AppendChild(thead)

	tbody := element(atom.Tbody)
	for _, issue := range issues {
		row := element(atom.Tr)
		line := ""
		if issue.Line > 0 {
			line = strconv.Itoa(issue.Line)
		}
		for _, cell := range []string{issue.Page, line, issue.Rule, issue.Message} {
			row.AppendChild(withText(element(atom.Td), cell))
		}
		tbody.AppendChild(row)
	}
	table.AppendChild(tbody)
	section.AppendChild(table)
	return section
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}

func attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

func withText(n *html.Node, text string) *html.Node {
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return n
}
