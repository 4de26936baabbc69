package config

import (
	"errors"
	"fmt"
	"github.com/spf13/viper"
	"net/url"
	"time"
)

type SamConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
	Limit   int           `mapstructure:"limit"`
}

// validate leaves api_key optional: a missing key is reported on every
// search instead of preventing startup.
func (config SamConfig) validate() error {
	var errs []error

	if config.BaseURL == "" {
		errs = append(errs, fmt.Errorf("missing variable: base_url"))
	} else if u, err := url.Parse(config.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("invalid base_url: %q", config.BaseURL))
	}

	if config.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("timeout must be positive"))
	}

	if config.Limit < 1 || config.Limit > 1000 {
		errs = append(errs, fmt.Errorf("limit must be between 1 and 1000"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}

	return nil
}

func (config SamConfig) bindEnvironmentVariables(v *viper.Viper) error {
	return bindAll(v, map[string]string{
		"sam.api_key":  "SAM_API_KEY",
		"sam.base_url": "SAM_BASE_URL",
		"sam.timeout":  "SAM_TIMEOUT",
		"sam.limit":    "SAM_LIMIT",
	})
}
