package frontmatter

import (
	"errors"
	"strings"
)

// Delimiter opens and closes a frontmatter block.
const Delimiter = "---"

// Frontmatter maps field names to their (unquoted) string values.
type Frontmatter map[string]string

// Get returns the trimmed value of key, or "" if absent.
func (f Frontmatter) Get(key string) string {
	return strings.TrimSpace(f[key])
}

// Has reports whether key is present with a non-blank value.
func (f Frontmatter) Has(key string) bool {
	return f.Get(key) != ""
}

// Block locates a frontmatter block within a document.
type Block struct {
	// Lines are the raw lines between the delimiters.
	Lines []string
	// EndLine is the 1-based line number of the closing delimiter.
	EndLine int
}

// ErrMissingClosingDelimiter indicates the document started with a
// frontmatter delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("frontmatter start delimiter found but closing delimiter is missing")

// Split finds the frontmatter block at the top of content.
//
// The block must start on the very first line with a line that is exactly
// `---` and ends at the next line that is exactly `---`. If the first line is
// not a delimiter, had is false and err is nil.
func Split(content string) (block Block, had bool, err error) {
	lines := strings.Split(content, "\n")
	if len(lines) == 0 || trimCR(lines[0]) != Delimiter {
		return Block{}, false, nil
	}

	for i := 1; i < len(lines); i++ {
		if trimCR(lines[i]) == Delimiter {
			inner := make([]string, 0, i-1)
			for _, l := range lines[1:i] {
				inner = append(inner, trimCR(l))
			}
			return Block{Lines: inner, EndLine: i + 1}, true, nil
		}
	}
	return Block{}, false, ErrMissingClosingDelimiter
}

// Parse extracts the frontmatter of content.
//
// ok is false when the document has no (or an unterminated) frontmatter
// block; an empty block yields ok with an empty, non-nil map. Lines are read
// as `key: value`; blank lines, `#` comments and lines without a colon are
// skipped. One layer of matching single or double quotes is removed from the
// value. A repeated key keeps its last value.
func Parse(content string) (fm Frontmatter, ok bool) {
	block, had, err := Split(content)
	if err != nil || !had {
		return nil, false
	}
	return ParseLines(block.Lines), true
}

// ParseLines parses the body of a frontmatter block.
func ParseLines(lines []string) Frontmatter {
	fm := make(Frontmatter, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		key, value, found := strings.Cut(trimmed, ":")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		fm[key] = Unquote(strings.TrimSpace(value))
	}
	return fm
}

// Unquote removes one layer of matching leading/trailing single or double quotes.
func Unquote(value string) string {
	if len(value) >= 2 {
		first, last := value[0], value[len(value)-1]
		if first == last && (first == '"' || first == '\'') {
			return value[1 : len(value)-1]
		}
	}
	return value
}

func trimCR(line string) string {
	return strings.TrimSuffix(line, "\r")
}
