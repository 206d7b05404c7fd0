package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// AppName names the state directory the log file lives in
const AppName = "brokensym"

// Options controls where log output goes
type Options struct {
	// Verbosity is the count of -v flags
	Verbosity int
	// FileLogging appends log lines to the XDG state log file as well
	FileLogging bool
	// Console receives human readable log lines; nil means os.Stderr.
	// Log lines never go to stdout, which is reserved for results.
	Console io.Writer
	// NoColor disables colour in the console writer
	NoColor bool
}

// logFile is the handle opened by the last Setup with FileLogging, and
// consoleWriter the console half of that logger.
var (
	logFile       *os.File
	consoleWriter zerolog.ConsoleWriter
)

// Setup configures the global logger based on verbosity level.
// With FileLogging it writes to both the console and a log file.
// A log file opened by an earlier Setup is closed first.
func Setup(opts Options) {
	closeLogFile()

	switch opts.Verbosity {
	case 0:
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case 1:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case 2:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	}

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	consoleWriter = zerolog.ConsoleWriter{
		Out:        console,
		TimeFormat: time.Kitchen,
		NoColor:    opts.NoColor,
	}

	writers := []io.Writer{consoleWriter}

	var (
		logPath string
		fileErr error
	)
	if opts.FileLogging {
		logPath = getLogFilePath()
		var handle *os.File
		handle, fileErr = setupLogFile(logPath)
		if fileErr == nil {
			logFile = handle
			writers = append(writers, handle)
		}
	}

	multi := io.MultiWriter(writers...)
	log.Logger = zerolog.New(multi).With().Timestamp().Logger()

	// If we couldn't create the log file, log the error now with the new logger
	if fileErr != nil {
		log.Warn().Err(fileErr).Str("path", logPath).Msg("Failed to create log file, logging to console only")
	}

	// Add caller information for debug and trace levels
	if opts.Verbosity >= 2 {
		log.Logger = log.Logger.With().Caller().Logger()
	}

	log.Debug().Int("verbosity", opts.Verbosity).Str("logFile", logPath).Msg("Logger initialized")
}

// Close closes the log file, if any, and leaves the global logger writing
// to the console only.
func Close() error {
	if logFile == nil {
		return nil
	}
	log.Logger = log.Logger.Output(consoleWriter)
	err := logFile.Close()
	logFile = nil
	return err
}

func closeLogFile() {
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
}

// GetLogger returns a contextualized logger with the given name
func GetLogger(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

// getLogFilePath returns the path to the log file
// It respects XDG_STATE_HOME if set, otherwise uses the platform state dir
func getLogFilePath() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		stateHome = xdg.StateHome
	}
	if stateHome == "" {
		return AppName + ".log"
	}
	return filepath.Join(stateHome, AppName, AppName+".log")
}

// setupLogFile creates the log file and its parent directories
func setupLogFile(logPath string) (*os.File, error) {
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

// LogCommand logs a command execution with its arguments
func LogCommand(cmd string, args []string) {
	log.Debug().
		Str("command", cmd).
		Strs("args", args).
		Msg("Executing command")
}

// LogOperationStart logs the start of an operation and returns a function to log its completion
func LogOperationStart(logger zerolog.Logger, operation string) func() {
	start := time.Now()
	logger.Debug().
		Str("operation", operation).
		Msg("Operation started")

	return func() {
		logger.Debug().
			Str("operation", operation).
			Dur("duration", time.Since(start)).
			Msg("Operation completed")
	}
}
