package seo

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitelint/internal/content"
	"git.home.luguber.info/inful/sitelint/internal/frontmatter"
	"git.home.luguber.info/inful/sitelint/internal/report"
)

const (
	goodTitle = "Pricing plans for growing engineering teams"
	goodDesc  = "Compare plans, see what each tier includes and pick the option that fits your team today."
)

func messages(issues []report.Issue) []string {
	out := make([]string, 0, len(issues))
	for _, i := range issues {
		out = append(out, i.Message)
	}
	return out
}

func TestCheckDocument_Clean(t *testing.T) {
	fm := frontmatter.Frontmatter{"title": goodTitle, "description": goodDesc}
	assert.Empty(t, CheckDocument("p", fm, DefaultThresholds()))
}

func TestCheckDocument(t *testing.T) {
	tests := []struct {
		name  string
		title string
		desc  string
		want  []string
	}{
		{
			name:  "short title",
			title: "Pricing",
			desc:  goodDesc,
			want:  []string{"Title too short (7 chars, minimum 30)"},
		},
		{
			name:  "long title",
			title: strings.Repeat("x", 71),
			desc:  goodDesc,
			want:  []string{"Title too long (71 chars, maximum 70)"},
		},
		{
			name:  "short description",
			title: goodTitle,
			desc:  "Too short.",
			want:  []string{"Description too short (10 chars, minimum 70)"},
		},
		{
			name:  "truncated",
			title: goodTitle,
			desc:  "Compare plans, see what each tier includes and pick the option that fits...",
			want:  []string{"Description appears truncated (ends with \"...\")"},
		},
		{
			name:  "missing punctuation",
			title: goodTitle,
			desc:  "Compare plans, see what each tier includes and pick the option that fits you",
			want:  []string{"Description is missing terminal punctuation"},
		},
		{
			name:  "starts with title",
			title: goodTitle,
			desc:  strings.ToUpper(goodTitle) + " with monthly or yearly billing and volume discounts.",
			want:  []string{"Description starts with the title"},
		},
		{
			name:  "identical",
			title: "Same text that is long enough for a title.",
			desc:  "same text that is long enough for a title.",
			want: []string{
				"Description too short (42 chars, minimum 70)",
				"Title and description are identical",
			},
		},
		{
			name:  "repeated word",
			title: goodTitle,
			desc:  "Cloud hosting, cloud storage, cloud backup and cloud sync in one cloud plan for teams.",
			want:  []string{`Word "cloud" repeated 5 times in description`},
		},
		{
			name:  "title only",
			title: "Pricing",
			want:  []string{"Title too short (7 chars, minimum 30)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fm := frontmatter.Frontmatter{}
			if tt.title != "" {
				fm["title"] = tt.title
			}
			if tt.desc != "" {
				fm["description"] = tt.desc
			}
			issues := CheckDocument("p", fm, DefaultThresholds())
			assert.Equal(t, tt.want, messages(issues))
			for _, i := range issues {
				assert.Equal(t, report.RuleSEO, i.Rule)
			}
		})
	}
}

func TestRepeatedWord(t *testing.T) {
	tests := []struct {
		text  string
		word  string
		count int
		ok    bool
	}{
		{"data data data data", "data", 4, true},
		{"data data data", "", 0, false},
		{"the the the the the", "", 0, false},
		{"ab ab ab ab", "", 0, false},
		{"Fast-fast FAST_fast; speed speed speed speed", "fast", 4, true},
		{"zeta alpha zeta alpha zeta alpha zeta alpha", "zeta", 4, true},
		{"café café café café", "café", 4, true},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			word, count, ok := RepeatedWord(tt.text, 4)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.word, word)
			assert.Equal(t, tt.count, count)
		})
	}
}

func TestCheck_OneRepetitionWarningPerDocument(t *testing.T) {
	text := "---\ntitle: " + goodTitle + "\ndescription: alpha beta alpha beta alpha beta alpha beta gamma delta epsilon zeta eta.\n---\n"
	docs := []*content.Document{
		content.NewDocument("content", "x/en.mdx", text),
		content.NewDocument("content", "y/en.mdx", "no frontmatter"),
	}

	f := Check(docs, DefaultThresholds())
	assert.Empty(t, f.Errors)
	require.Len(t, f.Warnings, 1)
	assert.Contains(t, f.Warnings[0].Message, `"alpha"`)
	assert.Equal(t, "content/x/en.mdx", f.Warnings[0].Page)
}
