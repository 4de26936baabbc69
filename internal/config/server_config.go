package config

import (
	"errors"
	"fmt"
	"github.com/spf13/viper"
	"time"
)

type Mode string

const (
	ModeDevelopment Mode = "development"
	ModeRelease     Mode = "release"
	ModeTest        Mode = "test"
)

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Mode            Mode          `mapstructure:"mode"`
	NotificationTTL time.Duration `mapstructure:"notification_ttl"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

func (config ServerConfig) IsDevelopment() bool {
	return config.Mode == ModeDevelopment
}

func (config ServerConfig) validate() error {
	var errs []error

	if config.Port < 1 || config.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port: %d", config.Port))
	}

	switch config.Mode {
	case ModeDevelopment, ModeRelease, ModeTest:
	default:
		errs = append(errs, fmt.Errorf("invalid mode: %q", config.Mode))
	}

	if config.NotificationTTL <= 0 {
		errs = append(errs, fmt.Errorf("notification_ttl must be positive"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}

	return nil
}

func (config ServerConfig) bindEnvironmentVariables(v *viper.Viper) error {
	return bindAll(v, map[string]string{
		"server.port":             "PORT",
		"server.mode":             "MODE",
		"server.notification_ttl": "NOTIFICATION_TTL",
		"server.shutdown_timeout": "SHUTDOWN_TIMEOUT",
	})
}
