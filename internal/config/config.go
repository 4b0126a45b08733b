// Package config provides Viper-based configuration loading for the game-data tools.
package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/viper"
)

// LoggingConfig selects the zap level and encoder.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // one of logLevels
	Format string `mapstructure:"format"` // "json" or "console"
}

// ContentConfig points at optional balance content that overrides built-in tables.
type ContentConfig struct {
	// Bonuses is a YAML race/class bonus table. Empty means the built-in table.
	Bonuses string `mapstructure:"bonuses"`
}

// ScriptingConfig holds balance-script sandbox settings.
type ScriptingConfig struct {
	// InstructionLimit caps Lua opcodes per script run; 0 uses the sandbox default.
	InstructionLimit int `mapstructure:"instruction_limit"`
}

// Config is everything the gamedata tools read from file and environment.
type Config struct {
	Logging   LoggingConfig   `mapstructure:"logging"`
	Content   ContentConfig   `mapstructure:"content"`
	Scripting ScriptingConfig `mapstructure:"scripting"`
}

// Validate reports every invalid field at once.
//
// Postcondition: Returns nil, or one error listing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateScripting(c.Scripting); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(errs, "; "))
}

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"json", "console"}
)

func validateLogging(l LoggingConfig) error {
	if !slices.Contains(logLevels, l.Level) {
		return fmt.Errorf("logging.level %q is not one of %v", l.Level, logLevels)
	}
	if !slices.Contains(logFormats, l.Format) {
		return fmt.Errorf("logging.format %q is not one of %v", l.Format, logFormats)
	}
	return nil
}

func validateScripting(s ScriptingConfig) error {
	if s.InstructionLimit < 0 {
		return fmt.Errorf("scripting.instruction_limit must be >= 0, got %d", s.InstructionLimit)
	}
	return nil
}

// Load reads the YAML file at path, layers DARKTHRONE_* environment variables
// over it and validates the result.
//
// Precondition: path names a YAML file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
	}
	return LoadFromViper(v)
}

// Default returns the defaults with environment overrides applied, without
// reading a file.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Default() (Config, error) {
	return LoadFromViper(newViper())
}

// LoadFromViper decodes and validates v.
//
// Precondition: v must be non-nil.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decoding: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()

	v.SetEnvPrefix("DARKTHRONE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("content.bonuses", "")

	v.SetDefault("scripting.instruction_limit", 0)
}
