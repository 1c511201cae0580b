package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogDisabled is the log-file value that turns file logging off.
const LogDisabled = "none"

// SetupLogger configures the global logger based on verbosity level.
// Output goes to the console and, unless logFile is "none", to a log
// file ($XDG_STATE_HOME/dotstrap/dotstrap.log by default; logFile
// overrides the path).
func SetupLogger(verbosity int, logFile string) {
	switch verbosity {
	case 0:
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case 1:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case 2:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	}

	consoleWriter := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	}

	writers := []io.Writer{consoleWriter}

	var fileErr error
	var filePath string
	if logFile != LogDisabled {
		filePath = logFile
		if filePath == "" {
			filePath = DefaultLogFilePath()
		}
		handle, err := openLogFile(filePath)
		if err == nil {
			writers = append(writers, handle)
		} else {
			fileErr = err
		}
	}

	multi := io.MultiWriter(writers...)
	log.Logger = zerolog.New(multi).With().Timestamp().Logger()

	if fileErr != nil {
		log.Warn().Err(fileErr).Str("path", filePath).Msg("Failed to create log file, logging to console only")
	}

	if verbosity >= 2 {
		log.Logger = log.Logger.With().Caller().Logger()
	}

	log.Debug().Int("verbosity", verbosity).Str("logFile", filePath).Msg("Logger initialized")
}

// GetLogger returns a contextualized logger with the given name
func GetLogger(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

// DefaultLogFilePath returns the XDG state path of the log file.
func DefaultLogFilePath() string {
	return filepath.Join(xdg.StateHome, "dotstrap", "dotstrap.log")
}

// openLogFile creates the log file and its parent directories
func openLogFile(logPath string) (*os.File, error) {
	logDir := filepath.Dir(logPath)
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return file, nil
}
