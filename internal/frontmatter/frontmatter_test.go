package frontmatter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplit_NoFrontmatter_ReturnsNotHad(t *testing.T) {
	_, had, err := Split("# Title\n\nHello\n")
	require.NoError(t, err)
	require.False(t, had)
}

func TestSplit_Frontmatter_ReturnsInnerLines(t *testing.T) {
	block, had, err := Split("---\nkey: value\n---\n# Title\n")
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, []string{"key: value"}, block.Lines)
	require.Equal(t, 3, block.EndLine)
}

func TestSplit_MissingClosingDelimiter_ReturnsError(t *testing.T) {
	_, had, err := Split("---\nkey: value\n# Title\n")
	require.Error(t, err)
	require.False(t, had)
	require.True(t, errors.Is(err, ErrMissingClosingDelimiter))
}

func TestSplit_CRLF(t *testing.T) {
	block, had, err := Split("---\r\nkey: value\r\n---\r\n# Title\r\n")
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, []string{"key: value"}, block.Lines)
}

func TestSplit_DelimiterMustBeExact(t *testing.T) {
	_, had, err := Split("--- \nkey: value\n---\n")
	require.NoError(t, err)
	require.False(t, had)

	_, had, err = Split("\n---\nkey: value\n---\n")
	require.NoError(t, err)
	require.False(t, had, "block must start on the first line")
}

func TestParse_NoFrontmatterIsDistinctFromEmpty(t *testing.T) {
	fm, ok := Parse("# Title\n")
	require.False(t, ok)
	require.Nil(t, fm)

	fm, ok = Parse("---\n---\n# Title\n")
	require.True(t, ok)
	require.NotNil(t, fm)
	require.Empty(t, fm)

	fm, ok = Parse("---\ntitle: x\n")
	require.False(t, ok, "unterminated block is treated as absent")
	require.Nil(t, fm)
}

func TestParse_Fields(t *testing.T) {
	content := "---\n" +
		"title: \"Pricing plans for teams\"\n" +
		"description: 'Compare: plans and features'\n" +
		"# a comment\n" +
		"\n" +
		"not a field\n" +
		"date: 2024-05-01\n" +
		"empty:\n" +
		"quoted: \"unbalanced'\n" +
		"title: Last wins\n" +
		"---\n" +
		"body: not frontmatter\n"

	fm, ok := Parse(content)
	require.True(t, ok)
	require.Equal(t, Frontmatter{
		"title":       "Last wins",
		"description": "Compare: plans and features",
		"date":        "2024-05-01",
		"empty":       "",
		"quoted":      "\"unbalanced'",
	}, fm)
}

func TestUnquote(t *testing.T) {
	cases := map[string]string{
		`"a"`:   "a",
		`'a'`:   "a",
		`""a""`: `"a"`,
		`"`:     `"`,
		`'a"`:   `'a"`,
		`plain`: "plain",
		`''`:    "",
	}
	for in, want := range cases {
		require.Equal(t, want, Unquote(in), "Unquote(%q)", in)
	}
}

func TestFrontmatter_GetHas(t *testing.T) {
	fm := Frontmatter{"title": "  Hello  ", "blank": "   "}
	require.Equal(t, "Hello", fm.Get("title"))
	require.True(t, fm.Has("title"))
	require.False(t, fm.Has("blank"))
	require.False(t, fm.Has("missing"))

	var none Frontmatter
	require.False(t, none.Has("title"))
}
