package config

import (
	"fmt"
	"time"

	"github.com/SunilKividor/bfhl-webhook-client/models"
)

// fileConfig mirrors Config for YAML input. Durations are strings such as
// "1500ms" and unset keys leave the current value alone.
type fileConfig struct {
	FetchURL       string `yaml:"fetch_url"`
	Name           string `yaml:"name"`
	RegNo          string `yaml:"reg_no"`
	Email          string `yaml:"email"`
	HTTPTimeout    string `yaml:"http_timeout"`
	AttemptTimeout string `yaml:"attempt_timeout"`
	SubmitAttempts *int   `yaml:"submit_attempts"`
	SubmitDelay    string `yaml:"submit_delay"`
	MetricsFile    string `yaml:"metrics_file"`
	LogLevel       string `yaml:"log_level"`
	LogFormat      string `yaml:"log_format"`
}

func (f *fileConfig) apply(c *Config) error {
	overlay(&c.FetchURL, f.FetchURL)
	overlay(&c.Name, f.Name)
	overlay(&c.RegNo, f.RegNo)
	if f.Email != "" {
		c.Email = models.Secret(f.Email)
	}
	overlay(&c.MetricsFile, f.MetricsFile)
	overlay(&c.LogLevel, f.LogLevel)
	overlay(&c.LogFormat, f.LogFormat)
	if f.SubmitAttempts != nil {
		c.SubmitAttempts = *f.SubmitAttempts
	}

	durations := []struct {
		key string
		raw string
		dst *time.Duration
	}{
		{"http_timeout", f.HTTPTimeout, &c.HTTPTimeout},
		{"attempt_timeout", f.AttemptTimeout, &c.AttemptTimeout},
		{"submit_delay", f.SubmitDelay, &c.SubmitDelay},
	}
	for _, d := range durations {
		if d.raw == "" {
			continue
		}
		v, err := time.ParseDuration(d.raw)
		if err != nil {
			return fmt.Errorf("config file %s must be a duration: %w", d.key, err)
		}
		*d.dst = v
	}

	return nil
}

func overlay(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
