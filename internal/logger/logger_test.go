package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{" error ", slog.LevelError},
		{"warn", slog.LevelWarn},
		{"", slog.LevelWarn},
		{"bogus", slog.LevelWarn},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, ParseLevel(tc.in), "ParseLevel(%q)", tc.in)
	}
}

func TestPlaceholderFailedJSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "info", "json")

	log.PlaceholderFailed("ZZ", errors.New("no example number"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "placeholder_failed", entry["msg"])
	assert.Equal(t, "ZZ", entry["region"])
	assert.Equal(t, "no example number", entry["error"])
	assert.Equal(t, "WARN", entry["level"])
}

func TestDebugSuppressedAtWarn(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "warn", "text")

	log.ChangeEmitted("edit", "US", true)
	log.DeferredDropped()
	assert.Empty(t, buf.String())

	log.PreferredCountryMissing("xx")
	assert.True(t, strings.Contains(buf.String(), "preferred_country_missing"))
	assert.True(t, strings.Contains(buf.String(), "code=xx"))
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "debug", "text").WithComponent("catalog")

	log.CountryDetected("US", "CA")
	out := buf.String()
	assert.Contains(t, out, "component=catalog")
	assert.Contains(t, out, "from=US")
	assert.Contains(t, out, "to=CA")
}

func TestNop(t *testing.T) {
	// Must not panic.
	Nop().PlaceholderFailed("XX", errors.New("boom"))
}
