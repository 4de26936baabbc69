package config

import (
	"errors"
	"fmt"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"io/fs"
	"os"
)

type Config struct {
	Logger LoggerConfig `mapstructure:"logger"`
	Sam    SamConfig    `mapstructure:"sam"`
	Server ServerConfig `mapstructure:"server"`
}

var configFile = "./configs/config.yaml"

func Load() (*Config, error) {
	file := configFile

	if value, _ := os.LookupEnv("MODE"); value == string(ModeTest) {
		file = "../../configs/config.yaml"
	}

	if value, _ := os.LookupEnv("CONFIG_PATH"); value != "" {
		file = value
	}

	return loadConfig(file)
}

func loadConfig(file string) (*Config, error) {

	v := viper.New()
	v.SetConfigFile(file)
	setDefaults(v)

	err := bindEnvironmentVariables(v)
	if err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error reading config file %s: %w", file, err)
		}
		log.Warnf("config file %s not found, using defaults and environment", file)
	}

	config := Config{}
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	err = config.validate()
	if err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logger.log_level", string(LevelInfo))
	v.SetDefault("logger.app_name", "sam-finder")
	v.SetDefault("logger.output_file", "./logs/sam-finder.log")

	v.SetDefault("sam.base_url", "https://api.sam.gov/prod/opportunities/v2")
	v.SetDefault("sam.timeout", "30s")
	v.SetDefault("sam.limit", 10)

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", string(ModeRelease))
	v.SetDefault("server.notification_ttl", "5s")
	v.SetDefault("server.shutdown_timeout", "10s")
}

func bindEnvironmentVariables(v *viper.Viper) error {
	var errs []error

	sam, server, logger := SamConfig{}, ServerConfig{}, LoggerConfig{}

	if err := sam.bindEnvironmentVariables(v); err != nil {
		errs = append(errs, fmt.Errorf("SamConfig: %w", err))
	}

	if err := server.bindEnvironmentVariables(v); err != nil {
		errs = append(errs, fmt.Errorf("ServerConfig: %w", err))
	}

	if err := logger.bindEnvironmentVariables(v); err != nil {
		errs = append(errs, fmt.Errorf("LoggerConfig: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}

	return nil
}

func (config Config) validate() error {
	var errs []error

	if err := config.Sam.validate(); err != nil {
		errs = append(errs, fmt.Errorf("SamConfig: %w", err))
	}

	if err := config.Server.validate(); err != nil {
		errs = append(errs, fmt.Errorf("ServerConfig: %w", err))
	}

	if err := config.Logger.validate(); err != nil {
		errs = append(errs, fmt.Errorf("LoggerConfig: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}

	return nil
}

func bindAll(v *viper.Viper, bindings map[string]string) error {
	var errs []error
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
