package xlog

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
)

// Format is the wire shape jsonkit writes log records in.
type Format string

const (
	// FormatJSON emits one JSON object per log record, for shipping to a
	// log aggregator.
	FormatJSON Format = "json"
	// FormatLogfmt emits logfmt key=value records, jsonkit's default for
	// interactive terminal use.
	FormatLogfmt Format = "logfmt"
)

var (
	// ErrInvalidArgument wraps a malformed --log-level or --log-format
	// value.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnknownLogLevel is returned by GetLevel for a level string
	// outside {debug, info, warn, error}.
	ErrUnknownLogLevel = errors.New("unknown log level")
	// ErrUnknownLogFormat is returned by GetFormat for a format string
	// outside {json, logfmt}.
	ErrUnknownLogFormat = errors.New("unknown log format")
)

// CreateHandlerWithStrings resolves logLevel and logFormat and builds the
// corresponding [slog.Handler] writing to w. Used by [Config.NewHandler]
// to turn the CLI's --log-level/--log-format flag values into a handler.
func CreateHandlerWithStrings(w io.Writer, logLevel, logFormat string) (slog.Handler, error) {
	level, err := GetLevel(logLevel)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	format, err := GetFormat(logFormat)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	return CreateHandler(w, level, format), nil
}

// CreateHandler builds a [slog.Handler] at the given level and format.
// AddSource is always on, since a diagnostic line about a malformed batch
// document is most useful with the call site that logged it attached.
func CreateHandler(w io.Writer, level slog.Level, format Format) slog.Handler {
	opts := &slog.HandlerOptions{
		AddSource: true,
		Level:     level,
	}

	switch format {
	case FormatJSON:
		return slog.NewJSONHandler(w, opts)
	case FormatLogfmt:
		return slog.NewTextHandler(w, opts)
	}

	return nil
}

// GetLevel parses a --log-level value into a [slog.Level]. Matching is
// case-insensitive and accepts "warning" as a synonym for "warn".
func GetLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "error":
		return slog.LevelError, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	}

	return 0, ErrUnknownLogLevel
}

// GetFormat parses a --log-format value into a [Format]. Matching is
// case-insensitive.
func GetFormat(format string) (Format, error) {
	candidate := Format(strings.ToLower(format))
	if slices.Contains([]Format{FormatJSON, FormatLogfmt}, candidate) {
		return candidate, nil
	}

	return "", ErrUnknownLogFormat
}
