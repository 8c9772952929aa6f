package uploader

import (
	"errors"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrParsingConfig is returned when the environment cannot be parsed into Config.
var ErrParsingConfig = errors.New("failed to parse uploader config")

// Config describes an upload policy loaded from the environment.
type Config struct {
	MaxSize    string   `env:"UPLOADER_MAX_SIZE" envDefault:"10M"`
	MinSize    string   `env:"UPLOADER_MIN_SIZE"`
	Extensions []string `env:"UPLOADER_EXTENSIONS" envSeparator:","`
	MimeTypes  []string `env:"UPLOADER_MIME_TYPES" envSeparator:","`
	Directory  string   `env:"UPLOADER_DIRECTORY"`
	Dynamic    string   `env:"UPLOADER_DYNAMIC"`
	Hash       string   `env:"UPLOADER_HASH"`
	Sanitize   bool     `env:"UPLOADER_SANITIZE" envDefault:"true"`
	Required   bool     `env:"UPLOADER_REQUIRED"`
	// MaxMemory is passed to FromRequest.
	MaxMemory int64 `env:"UPLOADER_MAX_MEMORY" envDefault:"33554432"`
}

// LoadConfig reads Config from the environment. A .env file in the working
// directory is loaded first when present.
func LoadConfig() (Config, error) {
	// Ignore errors - the .env file might not exist and that's ok
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Join(ErrParsingConfig, err)
	}
	return cfg, nil
}

// Rules converts the config to a rule map for WithRules or SetRules.
// Unset values produce no rule.
func (c Config) Rules() map[string]any {
	rules := make(map[string]any)

	switch {
	case c.MinSize != "":
		limits := map[string]string{"min": c.MinSize}
		if c.MaxSize != "" {
			limits["max"] = c.MaxSize
		}
		rules[RuleSize] = limits
	case c.MaxSize != "":
		rules[RuleSize] = c.MaxSize
	}

	if len(c.Extensions) > 0 {
		rules[RuleExtension] = c.Extensions
	}
	if len(c.MimeTypes) > 0 {
		rules[RuleMimeType] = c.MimeTypes
	}
	if c.Directory != "" {
		rules[RuleDirectory] = c.Directory
	}
	if c.Dynamic != "" {
		rules[RuleDynamic] = c.Dynamic
	}
	if c.Hash != "" {
		rules[RuleHash] = c.Hash
	}
	if c.Sanitize {
		rules[RuleSanitize] = true
	}
	if c.Required {
		rules[RuleRequired] = true
	}

	return rules
}
