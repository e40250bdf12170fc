// Package logging builds the zerolog loggers used by the ecotray binaries.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

const (
	// LevelEnvVar selects the minimum level (trace, debug, info, warn, error).
	LevelEnvVar = "ECOTRAY_LOG_LEVEL"

	// FormatEnvVar selects "console" for human-readable output; anything
	// else means JSON.
	FormatEnvVar = "ECOTRAY_LOG_FORMAT"

	formatConsole = "console"
)

// Options configures New.
type Options struct {
	// Level is a zerolog level name. Empty means info.
	Level string

	// Format is "console" or "json". Empty means json.
	Format string

	// Component is attached to every event as the "component" field.
	Component string
}

// OptionsFromEnv reads Level and Format from the environment.
func OptionsFromEnv(component string) Options {
	return Options{
		Level:     os.Getenv(LevelEnvVar),
		Format:    os.Getenv(FormatEnvVar),
		Component: component,
	}
}

// New builds a logger writing to w. An unparseable level falls back to
// info and logs a warning through the new logger.
func New(w io.Writer, opts Options) zerolog.Logger {
	if strings.EqualFold(opts.Format, formatConsole) {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	}

	level, levelErr := parseLevel(opts.Level)

	ctx := zerolog.New(w).Level(level).With().Timestamp()
	if opts.Component != "" {
		ctx = ctx.Str("component", opts.Component)
	}
	logger := ctx.Logger()

	if levelErr != nil {
		logger.Warn().
			Str("env_var", LevelEnvVar).
			Str("value", opts.Level).
			Msg("Invalid log level; using info")
	}
	return logger
}

func parseLevel(s string) (zerolog.Level, error) {
	if strings.TrimSpace(s) == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return zerolog.InfoLevel, err
	}
	return level, nil
}
