// Package logging configures the global zerolog logger used throughout flowsome.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	// TraceLevel indicates a log message's level of criticality
	TraceLevel = iota
	// DebugLevel indicates a log message's level of criticality
	DebugLevel
	// InfoLevel indicates a log message's level of criticality
	InfoLevel
	// WarnLevel indicates a log message's level of criticality
	WarnLevel
	// ErrorLevel indicates a log message's level of criticality
	ErrorLevel
	// FatalLevel indicates a log message's level of criticality
	FatalLevel
)

const (
	// JSONFormat writes one JSON object per log message
	JSONFormat = "json"
	// TextFormat writes human-readable log lines
	TextFormat = "text"
)

// LogLevelToString translates a log level enum to a string representation
func LogLevelToString(level int) string {
	switch level {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	case FatalLevel:
		return "FATAL"
	default:
		return "TRACE"
	}
}

// ParseLogLevel translates a case-insensitive level name into a log level enum
func ParseLogLevel(name string) (int, error) {
	for level := TraceLevel; level <= FatalLevel; level++ {
		if strings.EqualFold(name, LogLevelToString(level)) {
			return level, nil
		}
	}
	if strings.EqualFold(name, "warning") {
		return WarnLevel, nil
	}
	return 0, fmt.Errorf("Unknown log level %q", name)
}

func toZerologLevel(level int) zerolog.Level {
	switch level {
	case DebugLevel:
		return zerolog.DebugLevel
	case InfoLevel:
		return zerolog.InfoLevel
	case WarnLevel:
		return zerolog.WarnLevel
	case ErrorLevel:
		return zerolog.ErrorLevel
	case FatalLevel:
		return zerolog.FatalLevel
	default:
		return zerolog.TraceLevel
	}
}

// SetLogLevel replaces the global logger with one writing to stderr at the given
// level, in either the text or json format
func SetLogLevel(levelName string, format string) error {
	return SetLogOutput(os.Stderr, levelName, format)
}

// SetLogOutput replaces the global logger with one writing to w
func SetLogOutput(w io.Writer, levelName string, format string) error {
	level, err := ParseLogLevel(levelName)
	if err != nil {
		return err
	}
	var formatWriter io.Writer
	switch strings.ToLower(format) {
	case JSONFormat:
		formatWriter = w
	case TextFormat, "":
		formatWriter = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	default:
		return fmt.Errorf("Unknown log format %q", format)
	}
	ctx := zerolog.New(formatWriter).
		Level(toZerologLevel(level)).
		With().
		Timestamp()
	if level <= DebugLevel {
		ctx = ctx.Caller().Int("pid", os.Getpid())
	}
	log.Logger = ctx.Logger()
	return nil
}
