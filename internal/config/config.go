package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/sitelint/internal/foundation/errors"
)

// DefaultPath is the configuration file looked up when --config is not given.
const DefaultPath = "sitelint.yaml"

// Config represents the validator configuration.
type Config struct {
	Manifest  string        `yaml:"manifest"`
	Content   ContentConfig `yaml:"content"`
	PublicDir string        `yaml:"public_dir"`
	SEO       SEOConfig     `yaml:"seo"`
	Logging   LoggingConfig `yaml:"logging"`
	Metrics   MetricsConfig `yaml:"metrics"`
	History   HistoryConfig `yaml:"history"`
	Publish   PublishConfig `yaml:"publish"`
	Watch     WatchConfig   `yaml:"watch"`
	Report    ReportConfig  `yaml:"report"`
}

// ContentConfig describes where documents live and which of them are scanned.
type ContentConfig struct {
	Root string `yaml:"root"`
	// Required makes a missing content root a fatal error instead of an empty corpus.
	Required   bool     `yaml:"required"`
	Extensions []string `yaml:"extensions"`
	// Exclude holds doublestar patterns matched against slash-separated paths
	// relative to Root.
	Exclude []string `yaml:"exclude,omitempty"`
	Workers int      `yaml:"workers"`
}

// SEOConfig overrides the SEO heuristic thresholds.
type SEOConfig struct {
	TitleMin        int `yaml:"title_min"`
	TitleMax        int `yaml:"title_max"`
	DescriptionMin  int `yaml:"description_min"`
	DescriptionMax  int `yaml:"description_max"`
	RepeatThreshold int `yaml:"repeat_threshold"`
	MinArticleWords int `yaml:"min_article_words"`
}

// LoggingConfig selects slog level and handler.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// MetricsConfig enables the Prometheus endpoint in watch mode.
type MetricsConfig struct {
	Listen string `yaml:"listen,omitempty"`
}

// HistoryConfig enables the SQLite run history.
type HistoryConfig struct {
	Path string `yaml:"path,omitempty"`
}

// PublishConfig enables publishing run summaries to NATS JetStream.
type PublishConfig struct {
	NATSURL string        `yaml:"nats_url,omitempty"`
	Subject string        `yaml:"subject"`
	Timeout time.Duration `yaml:"timeout"`
	// Retries is the number of attempts after a failed publish.
	Retries    int           `yaml:"retries"`
	Backoff    string        `yaml:"backoff"`
	RetryDelay time.Duration `yaml:"retry_delay"`
}

// WatchConfig tunes watch mode.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce"`
	Interval time.Duration `yaml:"interval"`
}

// ReportConfig selects the report output.
type ReportConfig struct {
	Format ReportFormat `yaml:"format"`
	Output string       `yaml:"output,omitempty"`
}

// Load loads configuration from the specified file.
func Load(configPath string) (*Config, error) {
	loadEnvFile()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, errors.ConfigError("configuration file not found").
			WithPath(configPath).
			Build()
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to read config file").
			Fatal().
			WithPath(configPath).
			Build()
	}

	return Parse(data)
}

// LoadOrDefault behaves like Load but returns the defaults when configPath
// does not exist.
func LoadOrDefault(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		loadEnvFile()
		cfg := Default()
		if err := Validate(cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	return Load(configPath)
}

// Parse decodes YAML configuration on top of the defaults, expanding
// environment variables first.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to unmarshal config").
			Fatal().
			Build()
	}

	applyDefaults(cfg)
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Init writes an example configuration file.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return errors.ConfigError(fmt.Sprintf("configuration file already exists: %s (use --force to overwrite)", configPath)).Build()
	}

	example := Default()
	example.Content.Exclude = []string{"**/drafts/**"}
	example.History.Path = ".sitelint/history.db"

	data, err := yaml.Marshal(example)
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to marshal example config").Build()
	}

	header := "# sitelint configuration\n# Values support ${ENV_VAR} expansion; .env files are loaded first.\n"
	if err := os.WriteFile(configPath, append([]byte(header), data...), 0o600); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write config file").
			WithPath(configPath).
			Build()
	}
	return nil
}
