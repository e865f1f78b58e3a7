package component

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitelint/internal/report"
	"git.home.luguber.info/inful/sitelint/internal/util/sets"
)

func TestFind(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		found     bool
		attrs     []string
		line      int
		component string
	}{
		{"attributes", "intro\n<Hero title=\"A\" description={desc} />", true, []string{"description", "title"}, 2, "Hero"},
		{"bare tag", "<Article>\nbody\n</Article>", true, []string{}, 1, "Article"},
		{"self closing", "<Hero/>", true, []string{}, 1, "Hero"},
		{"absent", "# Just markdown", false, nil, 0, "Hero"},
		{"prefix name not matched", "<HeroBanner title=\"x\">", false, nil, 0, "Hero"},
		{"first occurrence wins", "<Hero title=\"a\">\n<Hero description=\"b\">", true, []string{"title"}, 1, "Hero"},
		{"hyphenated attribute", "<Hero data-test=\"x\" title='y'>", true, []string{"data-test", "title"}, 1, "Hero"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tag, ok := Find(tt.text, tt.component)
			require.Equal(t, tt.found, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.attrs, sets.Sorted(tag.Attrs))
			assert.Equal(t, tt.line, tag.Line)
		})
	}
}

func TestFind_AttributeValueWithAngleBracket(t *testing.T) {
	// The opening tag ends at the first ">", even inside a quoted value.
	tag, ok := Find(`<Hero title="a > b" description="c">`, "Hero")
	require.True(t, ok)
	assert.Equal(t, []string{"title"}, sets.Sorted(tag.Attrs))
}

func TestMissing(t *testing.T) {
	attrs := sets.New("title")
	assert.Equal(t, []string{"description"}, Missing(attrs, []string{"title", "description"}))
	assert.Empty(t, Missing(attrs, nil))
}

func TestCheck(t *testing.T) {
	landing := Contracts["landing"]

	t.Run("missing component", func(t *testing.T) {
		f := Check("p", "# nothing", landing)
		require.Len(t, f.Errors, 1)
		assert.Equal(t, report.RuleComponent, f.Errors[0].Rule)
		assert.Contains(t, f.Errors[0].Message, "<Hero>")
	})

	t.Run("missing attributes", func(t *testing.T) {
		f := Check("p", "x\n<Hero>", landing)
		require.Len(t, f.Errors, 2)
		assert.Contains(t, f.Errors[0].Message, `"title"`)
		assert.Contains(t, f.Errors[1].Message, `"description"`)
		assert.Equal(t, 2, f.Errors[0].Line)
	})

	t.Run("satisfied", func(t *testing.T) {
		f := Check("p", `<Hero title="t" description="d">`, landing)
		assert.Empty(t, f.Errors)
	})

	t.Run("article wrapper", func(t *testing.T) {
		assert.Empty(t, CheckPageType("p", "<Article>\ntext\n</Article>", "blog-article").Errors)
		assert.Len(t, CheckPageType("p", "text", "blog-article").Errors, 1)
	})

	t.Run("unknown type", func(t *testing.T) {
		assert.Empty(t, CheckPageType("p", "text", "docs").Errors)
	})
}
