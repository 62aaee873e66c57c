// Package logging builds the structured loggers used across the binaries.
package logging

import (
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/skyraid/internal/config"
)

// LevelEnv names the environment variable holding the log level.
const LevelEnv = "SKYRAID_LOG_LEVEL"

// New returns a stderr logger with timestamps, the given prefix and the
// level from SKYRAID_LOG_LEVEL. Unknown levels fall back to info.
func New(prefix string) *log.Logger {
	l := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Prefix:          prefix,
	})
	l.SetLevel(ParseLevel(config.GetEnv(LevelEnv, "info")))
	return l
}

// ParseLevel maps a level name to a log.Level, defaulting to info.
func ParseLevel(name string) log.Level {
	lvl, err := log.ParseLevel(name)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
