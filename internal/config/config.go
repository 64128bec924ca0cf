// Package config loads bagextract settings from bagextract.yml, BAGEXTRACT_*
// environment variables and built-in defaults.
package config

import (
	"errors"
	"runtime"
	"strings"

	"github.com/spf13/viper"

	"bagextract/internal/layout"
)

// Config holds all settings. It maps directly to the structure of
// bagextract.yml.
type Config struct {
	Converter string   `mapstructure:"converter"`
	Mode      string   `mapstructure:"mode"`
	LogFile   string   `mapstructure:"log_file"`
	TUI       bool     `mapstructure:"tui"`
	Verbose   bool     `mapstructure:"verbose"`
	Include   []string `mapstructure:"include"`
	Exclude   []string `mapstructure:"exclude"`
}

// DefaultConverter is the converter looked up on PATH when none is
// configured.
func DefaultConverter() string {
	if runtime.GOOS == "windows" {
		return "rs-convert.exe"
	}
	return "rs-convert"
}

// Load reads configuration from path, or from bagextract.yml in the current
// directory when path is empty. A missing default file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("bagextract")
		v.SetConfigType("yml")
		v.AddConfigPath(".")
	}

	// BAGEXTRACT_CONVERTER overrides `converter`, BAGEXTRACT_LOG_FILE
	// overrides `log_file`, and so on.
	v.SetEnvPrefix("BAGEXTRACT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("converter", DefaultConverter())
	v.SetDefault("mode", "both")
	v.SetDefault("log_file", "")
	v.SetDefault("tui", true)
	v.SetDefault("verbose", false)
	v.SetDefault("include", []string{})
	v.SetDefault("exclude", []string{})

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that cannot be verified while decoding.
func (c *Config) Validate() error {
	_, err := layout.ParseMode(c.Mode)
	return err
}

// ExtractionMode returns the parsed mode.
func (c *Config) ExtractionMode() (layout.Mode, error) {
	return layout.ParseMode(c.Mode)
}
