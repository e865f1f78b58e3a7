package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitelint/internal/foundation/errors"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "site.json", cfg.Manifest)
	assert.Equal(t, "content", cfg.Content.Root)
	assert.True(t, cfg.Content.Required)
	assert.Equal(t, []string{".mdx"}, cfg.Content.Extensions)
	assert.Equal(t, "public", cfg.PublicDir)
	assert.Equal(t, 30, cfg.SEO.TitleMin)
	assert.Equal(t, 70, cfg.SEO.TitleMax)
	assert.Equal(t, 70, cfg.SEO.DescriptionMin)
	assert.Equal(t, 160, cfg.SEO.DescriptionMax)
	assert.Equal(t, 4, cfg.SEO.RepeatThreshold)
	assert.Equal(t, LogLevelInfo, cfg.Logging.Level)
	assert.Equal(t, LogFormatText, cfg.Logging.Format)
	assert.Equal(t, 300*time.Millisecond, cfg.Watch.Debounce)
	assert.Equal(t, ReportFormatText, cfg.Report.Format)
}

func TestParse_OverridesAndKeepsDefaults(t *testing.T) {
	data := []byte(`
manifest: config/site.json
content:
  root: src/content
  required: false
  extensions: [mdx, .MD]
  exclude: ["**/drafts/**"]
seo:
  title_max: 60
logging:
  level: DEBUG
  format: json
watch:
  debounce: 1s
report:
  format: Json
`)

	cfg, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, "config/site.json", cfg.Manifest)
	assert.Equal(t, "src/content", cfg.Content.Root)
	assert.False(t, cfg.Content.Required)
	assert.Equal(t, []string{".mdx", ".md"}, cfg.Content.Extensions)
	assert.Equal(t, []string{"**/drafts/**"}, cfg.Content.Exclude)
	assert.Equal(t, 30, cfg.SEO.TitleMin)
	assert.Equal(t, 60, cfg.SEO.TitleMax)
	assert.Equal(t, LogLevelDebug, cfg.Logging.Level)
	assert.Equal(t, LogFormatJSON, cfg.Logging.Format)
	assert.Equal(t, time.Second, cfg.Watch.Debounce)
	assert.Equal(t, ReportFormatJSON, cfg.Report.Format)
}

func TestParse_ExpandsEnvironment(t *testing.T) {
	t.Setenv("SITELINT_TEST_NATS", "nats://127.0.0.1:4222")

	cfg, err := Parse([]byte("publish:\n  nats_url: ${SITELINT_TEST_NATS}\n"))
	require.NoError(t, err)
	assert.Equal(t, "nats://127.0.0.1:4222", cfg.Publish.NATSURL)
	assert.Equal(t, "sitelint.reports", cfg.Publish.Subject)
	assert.Equal(t, 2, cfg.Publish.Retries)
	assert.Equal(t, "linear", cfg.Publish.Backoff)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad yaml", "content: [unclosed"},
		{"bad exclude glob", "content:\n  exclude: [\"[\"]\n"},
		{"inverted title range", "seo:\n  title_min: 80\n  title_max: 40\n"},
		{"repeat threshold too small", "seo:\n  repeat_threshold: 1\n"},
		{"unknown report format", "report:\n  format: xml\n"},
		{"unknown publish backoff", "publish:\n  backoff: random\n"},
		{"negative publish retries", "publish:\n  retries: -1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.True(t, errors.HasCategory(err, errors.CategoryConfig), "got %v", err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
}

func TestLoadOrDefault_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestInit_WritesLoadableConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultPath)

	require.NoError(t, Init(path, false))
	require.Error(t, Init(path, false), "second init without force must fail")
	require.NoError(t, Init(path, true))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# sitelint configuration")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"**/drafts/**"}, cfg.Content.Exclude)
	assert.Equal(t, ".sitelint/history.db", cfg.History.Path)
}
