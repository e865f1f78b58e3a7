package content

import (
	"context"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitelint/internal/foundation/errors"
	"git.home.luguber.info/inful/sitelint/internal/testutil"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "content")
	testutil.MkdirAll(t, root)
	testutil.WriteFiles(t, root, files)
	return root
}

func TestLoad_TraversalOrderAndFiltering(t *testing.T) {
	root := writeTree(t, map[string]string{
		"en.mdx":               "---\ntitle: Home\n---\n# Home",
		"features/en.mdx":      "# Features",
		"features/de.mdx":      "# Funktionen",
		"features/notes.txt":   "ignored",
		"_drafts/en.mdx":       "draft",
		".hidden/en.mdx":       "hidden",
		"pricing/_private.mdx": "private",
		"pricing/en.MDX":       "# Pricing",
	})

	docs, err := Load(context.Background(), root, Options{Workers: 2})
	require.NoError(t, err)

	var rels []string
	for _, d := range docs {
		rels = append(rels, d.RelPath)
	}
	assert.Equal(t, []string{"en.mdx", "features/de.mdx", "features/en.mdx", "pricing/en.MDX"}, rels)

	home := docs[0]
	assert.Equal(t, "content/en.mdx", home.Page)
	assert.Equal(t, "", home.ContentPath)
	assert.Equal(t, "en", home.Locale)
	assert.Equal(t, "Home", home.Title())

	de := docs[1]
	assert.Equal(t, "features", de.ContentPath)
	assert.Equal(t, "de", de.Locale)
	assert.Nil(t, de.Frontmatter)
}

func TestLoad_MissingRootIsEmpty(t *testing.T) {
	docs, err := Load(context.Background(), filepath.Join(t.TempDir(), "nope"), Options{})
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestLoad_Exclude(t *testing.T) {
	root := writeTree(t, map[string]string{
		"blog/a/en.mdx":    "a",
		"blog/b/en.mdx":    "b",
		"archive/x/en.mdx": "x",
	})

	docs, err := Load(context.Background(), root, Options{Exclude: []string{"archive/**", "blog/b"}})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "blog/a/en.mdx", docs[0].RelPath)
}

func TestLoad_CanceledContext(t *testing.T) {
	root := writeTree(t, map[string]string{"en.mdx": "x"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, root, Options{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestRequireRoot(t *testing.T) {
	require.NoError(t, RequireRoot(t.TempDir()))

	err := RequireRoot(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryFileSystem))
}

func TestWalk_SkipsPrivateDirectories(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a/en.mdx":        "a",
		"a/_draft/en.mdx": "d",
		"b/c/en.mdx":      "c",
	})

	var dirs []string
	err := Walk(root, Options{}, func(rel string, _ []fs.DirEntry) error {
		dirs = append(dirs, rel)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"", "a", "b", "b/c"}, dirs)
}

func TestDocument_LinesAndBody(t *testing.T) {
	doc := NewDocument("content", "guide/en.mdx", "---\r\ntitle: \"Guide\"\r\n---\r\nfirst\r\nsecond")

	assert.Equal(t, "Guide", doc.Title())
	assert.Equal(t, "---", doc.Line(1))
	assert.Equal(t, "first", doc.Line(4))
	assert.Equal(t, "", doc.Line(99))
	assert.Equal(t, "first\nsecond", doc.Body())
	assert.Equal(t, 4, doc.BodyStartLine())
}

func TestDocument_UnterminatedFrontmatter(t *testing.T) {
	doc := NewDocument("content", "en.mdx", "---\ntitle: x\nbody")
	assert.Nil(t, doc.Frontmatter)
	assert.Equal(t, doc.Text, doc.Body())
	assert.Equal(t, 1, doc.BodyStartLine())
}
