package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hightemp/telin/internal/apperr"
)

func envMap(m map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.True(t, cfg.EnablePlaceholder)
	assert.False(t, cfg.AutoDetect)
	assert.Equal(t, DefaultCountry, cfg.DefaultCountry)
	assert.Equal(t, DefaultConcurrency, cfg.Concurrency)
	require.NoError(t, cfg.Validate())
}

func TestFromEnv(t *testing.T) {
	cfg, err := FromEnv(envMap(map[string]string{
		"TELIN_PREFERRED_COUNTRIES": "gb, us,,de",
		"TELIN_ENABLE_PLACEHOLDER":  "false",
		"TELIN_AUTO_DETECT":         "true",
		"TELIN_STRICT":              "1",
		"TELIN_DEFAULT_COUNTRY":     "GB",
		"TELIN_LOG_LEVEL":           "DEBUG",
		"TELIN_LOG_FORMAT":          "json",
		"TELIN_CONCURRENCY":         "8",
		"TELIN_INITIAL_VALUE":       " 2025550123 ",
	}))
	require.NoError(t, err)

	assert.Equal(t, []string{"gb", "us", "de"}, cfg.PreferredCountries)
	assert.False(t, cfg.EnablePlaceholder)
	assert.True(t, cfg.AutoDetect)
	assert.True(t, cfg.StrictValidation)
	assert.Equal(t, "gb", cfg.DefaultCountry)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 8, cfg.Concurrency)
	assert.Equal(t, "2025550123", cfg.InitialValue)
	require.NoError(t, cfg.Validate())
}

func TestFromEnvInvalidBool(t *testing.T) {
	_, err := FromEnv(envMap(map[string]string{"TELIN_STRICT": "maybe"}))
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestFromEnvInvalidConcurrency(t *testing.T) {
	_, err := FromEnv(envMap(map[string]string{"TELIN_CONCURRENCY": "many"}))
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"defaults", DefaultOptions(), false},
		{"two letter codes", Options{PreferredCountries: []string{"gb", "US"}}, false},
		{"three letter code", Options{PreferredCountries: []string{"gbr"}}, true},
		{"digits", Options{PreferredCountries: []string{"1a"}}, true},
		{"empty code", Options{PreferredCountries: []string{""}}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.opts.Validate()
			if tc.wantErr {
				require.Error(t, err)
				assert.True(t, apperr.Is(err, apperr.KindValidation))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LogFormat = "xml"
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Concurrency = 0
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.DefaultCountry = ""
	assert.NoError(t, cfg.Validate())
}

func TestSplitCodes(t *testing.T) {
	assert.Nil(t, SplitCodes(""))
	assert.Equal(t, []string{"gb"}, SplitCodes(" gb "))
	assert.Equal(t, []string{"GB", "us"}, SplitCodes("GB,us"))
}

func TestClampConcurrency(t *testing.T) {
	assert.Equal(t, 1, ClampConcurrency(0))
	assert.Equal(t, 1, ClampConcurrency(-5))
	assert.Equal(t, 4, ClampConcurrency(4))
	assert.Equal(t, MaxConcurrency, ClampConcurrency(1000))
}
