package app

import (
	"github.com/rs/zerolog"

	"github.com/reelkeeper/reelkeeper/pkg/logging"
)

// NewLogger creates a configured logger based on the application
// configuration. Log level precedence (highest to lowest):
//  1. -v/--verbose flag (shortcut for debug)
//  2. -q/--quiet flag (shortcut for warn)
//  3. LOG_LEVEL environment variable
//  4. Default (info)
func NewLogger(config *Config) zerolog.Logger {
	return logging.NewFromConfig(&logging.Config{
		Level:   determineLogLevel(config),
		Format:  config.LogFormat,
		Output:  config.LogOutput,
		NoColor: config.NoColor,
	})
}

func determineLogLevel(config *Config) string {
	switch {
	case config.Verbose && config.Quiet:
		// Conflicting shortcuts resolve to the more restrictive one.
		return "warn"
	case config.Verbose:
		return "debug"
	case config.Quiet:
		return "warn"
	case config.LogLevel != "":
		return config.LogLevel
	default:
		return "info"
	}
}
