// Package logger provides structured logging for the telin packages.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger wraps slog.Logger for structured logging
type Logger struct {
	*slog.Logger
}

// New creates a logger writing to stderr.
// format is "text" or "json"; level is one of debug, info, warn, error.
func New(level, format string) *Logger {
	return NewWithWriter(os.Stderr, level, format)
}

// NewWithWriter creates a logger writing to w.
func NewWithWriter(w io.Writer, level, format string) *Logger {
	opts := &slog.HandlerOptions{
		Level: ParseLevel(level),
	}

	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return &Logger{
		Logger: slog.New(handler),
	}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// ParseLevel converts a level name to slog.Level, defaulting to warn.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// WithComponent returns a logger tagged with a component name
func (l *Logger) WithComponent(name string) *Logger {
	return &Logger{
		Logger: l.With(slog.String("component", name)),
	}
}

// PlaceholderFailed logs a region whose example number could not be produced
func (l *Logger) PlaceholderFailed(regionCode string, err error) {
	l.Warn("placeholder_failed",
		slog.String("region", regionCode),
		slog.String("error", err.Error()),
	)
}

// PreferredCountryMissing logs a preferred code absent from the catalog
func (l *Logger) PreferredCountryMissing(code string) {
	l.Warn("preferred_country_missing",
		slog.String("code", code),
	)
}

// CountryDetected logs a selection switch driven by a typed dial code
func (l *Logger) CountryDetected(from, to string) {
	l.Debug("country_detected",
		slog.String("from", from),
		slog.String("to", to),
	)
}

// ChangeEmitted logs a change event pushed to the host
func (l *Logger) ChangeEmitted(trigger, countryCode string, parsed bool) {
	l.Debug("change_emitted",
		slog.String("trigger", trigger),
		slog.String("country_code", countryCode),
		slog.Bool("parsed", parsed),
	)
}

// DeferredDropped logs a deferred reconcile skipped after destroy
func (l *Logger) DeferredDropped() {
	l.Debug("deferred_dropped")
}
