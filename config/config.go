// Package config loads foldersync settings from an optional YAML file and
// FOLDERSYNC_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/philipp01105/foldersync/core"
	"github.com/philipp01105/foldersync/formatter"
	"github.com/philipp01105/foldersync/logger"
)

// EnvPrefix prefixes every environment override, e.g. FOLDERSYNC_LOGGING_LEVEL.
const EnvPrefix = "FOLDERSYNC"

// Config is the runtime configuration of foldersync.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
}

// LoggingConfig configures the logging subsystem.
type LoggingConfig struct {
	Level         string `mapstructure:"level"`
	File          string `mapstructure:"file"`
	MessageFormat string `mapstructure:"message_format"`
	DateFormat    string `mapstructure:"date_format"`
}

// Load reads foldersync.yaml from the first of paths that has one, then
// applies environment overrides. A missing file is not an error.
func Load(paths ...string) (*Config, error) {
	v := newViper()
	v.SetConfigName("foldersync")
	v.SetConfigType("yaml")
	for _, path := range paths {
		v.AddConfigPath(path)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read file: %w", err)
		}
	}
	return decode(v)
}

// LoadFile reads the given file, then applies environment overrides. The
// format follows the file extension.
func LoadFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "INFO")
	v.SetDefault("logging.file", "")
	v.SetDefault("logging.message_format", formatter.DefaultMessageFormat)
	v.SetDefault("logging.date_format", formatter.DefaultTimestampFormat)
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	return &cfg, nil
}

// Validate reports a level name that would fall back to INFO. The
// configuration is still usable when it fails.
func (c LoggingConfig) Validate() error {
	if strings.TrimSpace(c.Level) == "" {
		return nil
	}
	if _, ok := core.LookupLevel(c.Level); !ok {
		return fmt.Errorf("config: unknown log level %q, using INFO", c.Level)
	}
	return nil
}

// Logger converts c to a logger.Config writing to stdout.
func (c LoggingConfig) Logger() logger.Config {
	return logger.Config{
		Level:         c.Level,
		File:          c.File,
		MessageFormat: c.MessageFormat,
		TimeFormat:    c.DateFormat,
	}
}
