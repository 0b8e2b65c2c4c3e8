// Package logging creates the structured loggers used across the module.
package logging

import (
	"io"

	"github.com/charmbracelet/log"
)

const prefix = "dws"

// New creates a logger writing to w.
// In debug mode the logger reports the caller and a timestamp, and logs at debug level.
func New(w io.Writer, debug bool) *log.Logger {
	if debug {
		logger := log.NewWithOptions(w, log.Options{
			ReportCaller:    true,
			ReportTimestamp: true,
			Prefix:          prefix,
		})
		logger.SetLevel(log.DebugLevel)

		return logger
	}

	logger := log.New(w)
	logger.SetLevel(log.InfoLevel)

	return logger
}

// Discard returns a logger dropping every entry.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
