// Package logger builds the charm loggers used by the wdl command and server.
package logger

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// New returns a text logger on stderr so stdout stays free for results.
func New(prefix string, level log.Level) *log.Logger {
	return NewWithWriter(os.Stderr, prefix, level)
}

func NewWithWriter(w io.Writer, prefix string, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix:          prefix,
		Level:           level,
		ReportCaller:    false,
		ReportTimestamp: true,
		Formatter:       log.TextFormatter,
	})
}

// Discard returns a logger that drops everything, for library callers that
// pass no logger.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}

// ParseLevel accepts debug, info, warn, error and fatal. An empty string is info.
func ParseLevel(s string) (log.Level, error) {
	if s == "" {
		return log.InfoLevel, nil
	}
	return log.ParseLevel(s)
}
