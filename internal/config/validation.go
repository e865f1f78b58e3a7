package config

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"git.home.luguber.info/inful/sitelint/internal/foundation/errors"
	"git.home.luguber.info/inful/sitelint/internal/retry"
)

// Validate checks the configuration for values no run could succeed with.
func Validate(cfg *Config) error {
	v := &configurationValidator{config: cfg}
	return v.validate()
}

// configurationValidator coordinates validation across configuration sections.
type configurationValidator struct {
	config *Config
}

func (cv *configurationValidator) validate() error {
	if err := cv.validateContent(); err != nil {
		return err
	}
	if err := cv.validateSEO(); err != nil {
		return err
	}
	if err := cv.validatePublish(); err != nil {
		return err
	}
	return cv.validateReport()
}

func (cv *configurationValidator) validateContent() error {
	c := cv.config.Content
	if strings.TrimSpace(cv.config.Manifest) == "" {
		return invalid("manifest path cannot be empty")
	}
	for _, ext := range c.Extensions {
		if ext == "" || ext == "." {
			return invalid("content extensions cannot be empty")
		}
	}
	for _, pattern := range c.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return invalid(fmt.Sprintf("invalid exclude pattern %q", pattern))
		}
	}
	return nil
}

func (cv *configurationValidator) validateSEO() error {
	s := cv.config.SEO
	if s.TitleMin < 0 || s.TitleMin > s.TitleMax {
		return invalid(fmt.Sprintf("seo title range [%d, %d] is invalid", s.TitleMin, s.TitleMax))
	}
	if s.DescriptionMin < 0 || s.DescriptionMin > s.DescriptionMax {
		return invalid(fmt.Sprintf("seo description range [%d, %d] is invalid", s.DescriptionMin, s.DescriptionMax))
	}
	if s.RepeatThreshold < 2 {
		return invalid("seo repeat_threshold must be at least 2")
	}
	return nil
}

func (cv *configurationValidator) validatePublish() error {
	p := cv.config.Publish
	if p.NATSURL != "" && strings.TrimSpace(p.Subject) == "" {
		return invalid("publish subject is required when nats_url is set")
	}
	if p.Timeout < 0 {
		return invalid("publish timeout cannot be negative")
	}
	if p.Retries < 0 {
		return invalid("publish retries cannot be negative")
	}
	if _, err := retry.ParseMode(p.Backoff); err != nil {
		return errors.WrapError(err, errors.CategoryConfig, "invalid publish backoff").Fatal().Build()
	}
	return nil
}

func (cv *configurationValidator) validateReport() error {
	format, err := NormalizeReportFormat(string(cv.config.Report.Format))
	if err != nil {
		return errors.WrapError(err, errors.CategoryConfig, "invalid report format").Fatal().Build()
	}
	cv.config.Report.Format = format
	return nil
}

func invalid(message string) error {
	return errors.ConfigError(message).Build()
}
