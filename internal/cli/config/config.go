// Package config loads the hooks CLI configuration from hooks.yaml (or
// .hooks.yaml) and HOOKS_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/goliatone/go-hooks/pkg/present"
)

// EnvPrefix namespaces environment overrides, e.g. HOOKS_OUTPUT_LIMIT.
const EnvPrefix = "HOOKS"

var configNames = []string{"hooks", ".hooks"}

// Config represents the CLI configuration.
type Config struct {
	Sources         []string     `mapstructure:"sources"`
	DocLinkTemplate string       `mapstructure:"doc_link_template"`
	Output          OutputConfig `mapstructure:"output"`
	Log             LogConfig    `mapstructure:"log"`
}

// OutputConfig controls how results are printed.
type OutputConfig struct {
	Color  bool   `mapstructure:"color"`
	Limit  int    `mapstructure:"limit"`
	Format string `mapstructure:"format"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// Options locates the configuration file.
type Options struct {
	// File is an explicit config path; it must exist when set.
	File string
	// Dir is searched for hooks.yaml or .hooks.yaml when File is empty.
	Dir string
}

// Load reads the configuration. A missing config file in Dir is not an error;
// defaults and environment variables still apply.
func Load(opts Options) (*Config, error) {
	v := viper.New()

	v.SetDefault("sources", []string{})
	v.SetDefault("doc_link_template", "")
	v.SetDefault("output.color", true)
	v.SetDefault("output.limit", 0)
	v.SetDefault("output.format", present.FormatText)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.development", false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := readConfig(v, opts); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func readConfig(v *viper.Viper, opts Options) error {
	if opts.File != "" {
		v.SetConfigFile(opts.File)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("config: read %s: %w", opts.File, err)
		}
		return nil
	}

	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	for _, name := range configNames {
		v.SetConfigName(name)
		err := v.ReadInConfig()
		if err == nil {
			return nil
		}
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("config: read %s: %w", name, err)
		}
	}
	return nil
}

func validate(cfg *Config) error {
	cfg.Output.Format = strings.ToLower(strings.TrimSpace(cfg.Output.Format))
	if !present.DefaultRegistry().Has(cfg.Output.Format) {
		return fmt.Errorf("config: output.format %q is not one of %s", cfg.Output.Format, strings.Join(present.DefaultRegistry().List(), ", "))
	}
	if cfg.Output.Limit < 0 {
		cfg.Output.Limit = 0
	}
	if _, err := zapcore.ParseLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("config: log.level: %w", err)
	}
	return nil
}

// NewLogger builds a zap logger writing to stderr at the configured level.
func (c LogConfig) NewLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.Level)
	if err != nil {
		return nil, fmt.Errorf("config: log.level: %w", err)
	}

	zc := zap.NewProductionConfig()
	if c.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}
	return zc.Build()
}
