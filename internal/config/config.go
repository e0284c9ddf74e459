// Package config provides configuration for the lens command using viper.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. LENS_LOGGING_LEVEL=debug.
const EnvPrefix = "LENS"

// Config is the complete command configuration.
type Config struct {
	Input   InputConfig   `mapstructure:"input"`
	Output  OutputConfig  `mapstructure:"output"`
	Logging LoggingConfig `mapstructure:"logging" validate:"required"`
}

// InputConfig selects how documents are decoded. An empty format is inferred from
// the file extension.
type InputConfig struct {
	Format string `mapstructure:"format" validate:"omitempty,oneof=json jsonc yaml yml cbor"`
}

// OutputConfig selects how documents are encoded. An empty format reuses the input format.
type OutputConfig struct {
	Format string `mapstructure:"format" validate:"omitempty,oneof=json jsonc yaml yml cbor"`
	Pretty bool   `mapstructure:"pretty"`
	Indent int    `mapstructure:"indent" validate:"min=0,max=8"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=json text"`
}

// flagKeys maps command-line flags to configuration keys.
var flagKeys = map[string]string{
	"input-format":  "input.format",
	"output-format": "output.format",
	"pretty":        "output.pretty",
	"indent":        "output.indent",
	"log-level":     "logging.level",
	"log-format":    "logging.format",
}

var configValidator = validator.New()

// Load reads configuration from defaults, an optional file, LENS_* environment
// variables and flags, in increasing order of precedence.
//
// With an empty file, a lens.yaml in the working directory or $HOME/.config/lens is
// used when present. Flags that were not set on the command line do not override
// other sources. flags may be nil.
func Load(file string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("lens")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/lens")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// Default returns the configuration used when no source overrides anything.
func Default() *Config {
	return &Config{
		Output:  OutputConfig{Indent: 2},
		Logging: LoggingConfig{Level: "warn", Format: "text"},
	}
}

// Validate validates the configuration using struct tags.
func Validate(cfg *Config) error {
	if err := configValidator.Struct(cfg); err != nil {
		return formatValidationError(err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("input.format", d.Input.Format)
	v.SetDefault("output.format", d.Output.Format)
	v.SetDefault("output.pretty", d.Output.Pretty)
	v.SetDefault("output.indent", d.Output.Indent)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
}

func formatValidationError(err error) error {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err
	}
	messages := make([]string, 0, len(errs))
	for _, e := range errs {
		if e.Param() != "" {
			messages = append(messages, fmt.Sprintf("%s must satisfy %s=%s (got %v)", e.Namespace(), e.Tag(), e.Param(), e.Value()))
			continue
		}
		messages = append(messages, fmt.Sprintf("%s is %s", e.Namespace(), e.Tag()))
	}
	return errors.New(strings.Join(messages, "; "))
}
