package config

import (
	"strings"
	"time"
)

// Default returns a configuration populated with every default value.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	cfg.Content.Required = true
	cfg.Publish.Retries = 2
	return cfg
}

// defaultApplier fills in zero values for one configuration section.
type defaultApplier func(cfg *Config)

var defaultAppliers = []defaultApplier{
	contentDefaults,
	seoDefaults,
	loggingDefaults,
	publishDefaults,
	watchDefaults,
	reportDefaults,
}

func applyDefaults(cfg *Config) {
	for _, apply := range defaultAppliers {
		apply(cfg)
	}
}

func contentDefaults(cfg *Config) {
	if cfg.Manifest == "" {
		cfg.Manifest = "site.json"
	}
	if cfg.Content.Root == "" {
		cfg.Content.Root = "content"
	}
	if len(cfg.Content.Extensions) == 0 {
		cfg.Content.Extensions = []string{".mdx"}
	}
	for i, ext := range cfg.Content.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		cfg.Content.Extensions[i] = ext
	}
	if cfg.Content.Workers <= 0 {
		cfg.Content.Workers = 8
	}
	if cfg.PublicDir == "" {
		cfg.PublicDir = "public"
	}
}

func seoDefaults(cfg *Config) {
	s := &cfg.SEO
	if s.TitleMin == 0 {
		s.TitleMin = 30
	}
	if s.TitleMax == 0 {
		s.TitleMax = 70
	}
	if s.DescriptionMin == 0 {
		s.DescriptionMin = 70
	}
	if s.DescriptionMax == 0 {
		s.DescriptionMax = 160
	}
	if s.RepeatThreshold == 0 {
		s.RepeatThreshold = 4
	}
	if s.MinArticleWords == 0 {
		s.MinArticleWords = 300
	}
}

func loggingDefaults(cfg *Config) {
	cfg.Logging.Level = NormalizeLogLevel(string(cfg.Logging.Level))
	cfg.Logging.Format = NormalizeLogFormat(string(cfg.Logging.Format))
}

func publishDefaults(cfg *Config) {
	if cfg.Publish.Subject == "" {
		cfg.Publish.Subject = "sitelint.reports"
	}
	if cfg.Publish.Timeout == 0 {
		cfg.Publish.Timeout = 5 * time.Second
	}
	if cfg.Publish.Backoff == "" {
		cfg.Publish.Backoff = "linear"
	}
	if cfg.Publish.RetryDelay == 0 {
		cfg.Publish.RetryDelay = time.Second
	}
}

func watchDefaults(cfg *Config) {
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = 300 * time.Millisecond
	}
	if cfg.Watch.Interval == 0 {
		cfg.Watch.Interval = 10 * time.Minute
	}
}

func reportDefaults(cfg *Config) {
	if cfg.Report.Format == "" {
		cfg.Report.Format = ReportFormatText
	}
}
