package content

import (
	"path"
	"strings"

	"git.home.luguber.info/inful/sitelint/internal/frontmatter"
)

// Document is one content file, i.e. one (content path, locale) pair.
// Documents are immutable after loading.
type Document struct {
	// RelPath is the slash-separated path relative to the content root.
	RelPath string
	// Page identifies the document in findings, e.g. "content/features/en.mdx".
	Page string
	// ContentPath is the directory of the document relative to the content
	// root; "" for documents at the root.
	ContentPath string
	// Locale is the file stem.
	Locale string
	Text   string
	// Frontmatter is nil when the document has no parseable frontmatter.
	Frontmatter frontmatter.Frontmatter

	lines     []string
	bodyStart int
}

// NewDocument builds a document from its relative path and raw text.
// label prefixes the page identifier.
func NewDocument(label, relPath, text string) *Document {
	relPath = strings.TrimPrefix(path.Clean("/"+relPath), "/")

	dir := path.Dir(relPath)
	if dir == "." {
		dir = ""
	}
	base := path.Base(relPath)

	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}

	doc := &Document{
		RelPath:     relPath,
		Page:        path.Join(label, relPath),
		ContentPath: dir,
		Locale:      strings.TrimSuffix(base, path.Ext(base)),
		Text:        text,
		lines:       lines,
	}

	if fm, ok := frontmatter.Parse(text); ok {
		doc.Frontmatter = fm
		if block, had, err := frontmatter.Split(text); had && err == nil {
			doc.bodyStart = block.EndLine
		}
	}
	return doc
}

// Lines returns the text split into lines; index i holds line i+1.
func (d *Document) Lines() []string {
	return d.lines
}

// Line returns the 1-based line n, or "" when out of range.
func (d *Document) Line(n int) string {
	if n < 1 || n > len(d.lines) {
		return ""
	}
	return d.lines[n-1]
}

// Body returns the text after the frontmatter block.
func (d *Document) Body() string {
	if d.bodyStart == 0 {
		return d.Text
	}
	return strings.Join(d.lines[d.bodyStart:], "\n")
}

// BodyStartLine returns the 1-based line number of the first body line.
func (d *Document) BodyStartLine() int {
	return d.bodyStart + 1
}

// Title returns the frontmatter title, trimmed.
func (d *Document) Title() string {
	return d.Frontmatter.Get("title")
}

// Description returns the frontmatter description, trimmed.
func (d *Document) Description() string {
	return d.Frontmatter.Get("description")
}
