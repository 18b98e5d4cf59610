// Package config loads client configuration from defaults, an optional YAML
// file and environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/SunilKividor/bfhl-webhook-client/models"
)

// DefaultFetchURL is the webhook generation endpoint.
const DefaultFetchURL = "https://bfhldevapigw.healthrx.co.in/hiring/generateWebhook"

// ConfigFileEnv names the environment variable holding the YAML config path.
const ConfigFileEnv = "BFHL_CONFIG_FILE"

var configValidate = validator.New()

// Config holds all client configuration values.
type Config struct {
	FetchURL       string        `validate:"required,url"`
	Name           string        `validate:"required"`
	RegNo          string        `validate:"required"`
	Email          models.Secret `validate:"required,email"`
	HTTPTimeout    time.Duration `validate:"gt=0"`
	AttemptTimeout time.Duration `validate:"gt=0"`
	SubmitAttempts int           `validate:"min=1,max=10"`
	SubmitDelay    time.Duration `validate:"gt=0"`
	MetricsFile    string
	LogLevel       string        `validate:"oneof=debug info warn error"`
	LogFormat      string        `validate:"oneof=text json"`
}

// Identity returns the body of the initial webhook generation request.
func (c *Config) Identity() models.IdentityRequest {
	return models.IdentityRequest{
		Name:  c.Name,
		RegNo: c.RegNo,
		Email: c.Email.Value(),
	}
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		FetchURL:       DefaultFetchURL,
		HTTPTimeout:    30 * time.Second,
		AttemptTimeout: 30 * time.Second,
		SubmitAttempts: 4,
		SubmitDelay:    time.Second,
		LogLevel:       "info",
		LogFormat:      "text",
	}
}

// Load reads the YAML file named by BFHL_CONFIG_FILE, if any, then applies
// environment overrides and validates the result.
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv(ConfigFileEnv); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.loadEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks every field against its constraints.
func (c *Config) Validate() error {
	if err := configValidate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("config validation: %s failed %q", verrs[0].Field(), verrs[0].Tag())
		}
		return fmt.Errorf("config validation: %w", err)
	}
	return nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var f fileConfig
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	return f.apply(c)
}

func (c *Config) loadEnv() error {
	setString(&c.FetchURL, "BFHL_FETCH_URL")
	setString(&c.Name, "BFHL_NAME")
	setString(&c.RegNo, "BFHL_REG_NO")
	if v := os.Getenv("BFHL_EMAIL"); v != "" {
		c.Email = models.Secret(v)
	}
	setString(&c.MetricsFile, "BFHL_METRICS_FILE")
	setString(&c.LogLevel, "LOG_LEVEL")
	setString(&c.LogFormat, "LOG_FORMAT")

	if err := setDuration(&c.HTTPTimeout, "BFHL_HTTP_TIMEOUT"); err != nil {
		return err
	}
	if err := setDuration(&c.AttemptTimeout, "BFHL_ATTEMPT_TIMEOUT"); err != nil {
		return err
	}
	if err := setDuration(&c.SubmitDelay, "BFHL_SUBMIT_DELAY"); err != nil {
		return err
	}

	if v := os.Getenv("BFHL_SUBMIT_ATTEMPTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("BFHL_SUBMIT_ATTEMPTS must be an integer: %w", err)
		}
		c.SubmitAttempts = n
	}

	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s must be a duration: %w", key, err)
	}
	*dst = d
	return nil
}
