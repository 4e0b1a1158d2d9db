package cli

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// logLevelEnv overrides the log level when --verbose is not given.
const logLevelEnv = "FIGTOOLS_LOG_LEVEL"

// newLogger creates a logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// logLevel picks debug for --verbose, else the level named by
// FIGTOOLS_LOG_LEVEL, else info.
func logLevel(verbose bool) log.Level {
	if verbose {
		return log.DebugLevel
	}
	if v := os.Getenv(logLevelEnv); v != "" {
		if lvl, err := log.ParseLevel(v); err == nil {
			return lvl
		}
	}
	return log.InfoLevel
}

// progress logs completion of an operation with its elapsed time.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time, e.g. "Tiled 3 figures (1.234s)".
func (p *progress) done(msg string, keyvals ...interface{}) {
	keyvals = append(keyvals, "elapsed", time.Since(p.start).Round(time.Millisecond))
	p.logger.Info(msg, keyvals...)
}
