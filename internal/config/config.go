// Package config provides construction-time options and their loading.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/hightemp/telin/internal/apperr"
)

const (
	// AppName is the application name.
	AppName = "telin"

	// EnvPrefix prefixes every environment variable read by LoadEnv.
	EnvPrefix = "TELIN_"

	// DefaultCountry is the region used for numbers typed without a dial code
	// when no preferred countries are configured on the command line.
	DefaultCountry = "us"

	// DefaultConcurrency is the default number of batch workers.
	DefaultConcurrency = 4

	// MaxConcurrency is the maximum number of batch workers.
	MaxConcurrency = 32

	// DefaultLogLevel is the default log level.
	DefaultLogLevel = "warn"

	// DefaultLogFormat is the default log format.
	DefaultLogFormat = "text"
)

// Options are the recognized construction-time options of a control.
type Options struct {
	// InitialValue seeds the text buffer.
	InitialValue string `validate:"max=64"`
	// PreferredCountries are ISO2 codes surfaced first.
	PreferredCountries []string `validate:"dive,len=2,alpha"`
	// EnablePlaceholder precomputes example numbers per country.
	EnablePlaceholder bool
	// ErrorTextPlaceholders shows the library error text when no example exists.
	ErrorTextPlaceholders bool
	// AutoDetect switches the selection from a typed "+<dial code>".
	AutoDetect bool
	// StrictValidation also requires the number to be valid for the region.
	StrictValidation bool
}

// Config holds runtime configuration for the command-line front end.
type Config struct {
	Options
	DefaultCountry string `validate:"omitempty,len=2,alpha"`
	Concurrency    int    `validate:"min=1,max=32"`
	LogLevel       string `validate:"oneof=debug info warn error"`
	LogFormat      string `validate:"oneof=text json"`
	JSONOutput     bool
	CountriesFile  string
}

// DefaultOptions returns the default control options.
func DefaultOptions() Options {
	return Options{
		EnablePlaceholder: true,
	}
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Options:        DefaultOptions(),
		DefaultCountry: DefaultCountry,
		Concurrency:    DefaultConcurrency,
		LogLevel:       DefaultLogLevel,
		LogFormat:      DefaultLogFormat,
	}
}

var validate = validator.New()

// Validate checks the options.
func (o Options) Validate() error {
	if err := validate.Struct(o); err != nil {
		return apperr.Wrap(apperr.KindValidation, "invalid options", err)
	}
	return nil
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return apperr.Wrap(apperr.KindValidation, "invalid configuration", err)
	}
	return nil
}

// LoadEnv reads an optional .env file, then TELIN_* variables over the defaults.
func LoadEnv() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a configuration from a variable lookup function.
func FromEnv(lookup func(string) (string, bool)) (*Config, error) {
	cfg := DefaultConfig()

	get := func(key string) (string, bool) {
		val, ok := lookup(EnvPrefix + key)
		return strings.TrimSpace(val), ok
	}

	if v, ok := get("INITIAL_VALUE"); ok {
		cfg.InitialValue = v
	}
	if v, ok := get("PREFERRED_COUNTRIES"); ok {
		cfg.PreferredCountries = SplitCodes(v)
	}
	if v, ok := get("DEFAULT_COUNTRY"); ok {
		cfg.DefaultCountry = strings.ToLower(v)
	}
	if v, ok := get("LOG_LEVEL"); ok && v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v, ok := get("LOG_FORMAT"); ok && v != "" {
		cfg.LogFormat = strings.ToLower(v)
	}

	bools := []struct {
		key string
		dst *bool
	}{
		{"ENABLE_PLACEHOLDER", &cfg.EnablePlaceholder},
		{"ERROR_TEXT_PLACEHOLDERS", &cfg.ErrorTextPlaceholders},
		{"AUTO_DETECT", &cfg.AutoDetect},
		{"STRICT", &cfg.StrictValidation},
	}
	for _, b := range bools {
		v, ok := get(b.key)
		if !ok || v == "" {
			continue
		}
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return nil, apperr.Validation(fmt.Sprintf("%s%s: %q is not a boolean", EnvPrefix, b.key, v))
		}
		*b.dst = parsed
	}

	if v, ok := get("CONCURRENCY"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, apperr.Validation(fmt.Sprintf("%sCONCURRENCY: %q is not an integer", EnvPrefix, v))
		}
		cfg.Concurrency = n
	}

	return cfg, nil
}

// SplitCodes splits a comma-separated code list, dropping empty items.
// Case is preserved: preferred codes match the catalog exactly.
func SplitCodes(s string) []string {
	var codes []string
	for _, part := range strings.Split(s, ",") {
		if code := strings.TrimSpace(part); code != "" {
			codes = append(codes, code)
		}
	}
	return codes
}

// ClampConcurrency bounds n to [1, MaxConcurrency].
func ClampConcurrency(n int) int {
	if n < 1 {
		return 1
	}
	if n > MaxConcurrency {
		return MaxConcurrency
	}
	return n
}
