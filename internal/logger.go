package internal

import (
	"os"

	"github.com/charmbracelet/log"
)

// Logging goes to stderr so it never interferes with the terminal UI or
// with command output on stdout.
var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
})

// SetVerbose enables debug-level logging.
func SetVerbose(verbose bool) {
	if verbose {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.InfoLevel)
	}
}

// LogDebug logs a debug message.
func LogDebug(format string, args ...interface{}) {
	logger.Debugf(format, args...)
}

// LogInfo logs an info message.
func LogInfo(format string, args ...interface{}) {
	logger.Infof(format, args...)
}

// LogWarn logs a warning message.
func LogWarn(format string, args ...interface{}) {
	logger.Warnf(format, args...)
}

// LogError logs an error message.
func LogError(format string, args ...interface{}) {
	logger.Errorf(format, args...)
}
