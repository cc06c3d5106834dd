// Package logging provides unified logging functionality for vcsettings.
package logging

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/dongho-jung/vcsettings/internal/constants"
)

// Level is a log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the short level tag written to the log file.
func (l Level) String() string {
	return fmt.Sprintf("L%d", int(l))
}

// Name returns the human readable level name.
func (l Level) Name() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Logger provides logging capabilities for vcsettings.
type Logger interface {
	// Debug outputs debug information (only when VCSETTINGS_DEBUG=1)
	Debug(format string, args ...interface{})

	// Info writes informational message to log file
	Info(format string, args ...interface{})

	// Warn outputs warning to the console and log file
	Warn(format string, args ...interface{})

	// Error outputs error to the console and log file
	Error(format string, args ...interface{})

	// SetCommand sets the current CLI command for context
	SetCommand(command string)

	// SetComponent sets the current component (store, panel, host) for context
	SetComponent(component string)

	// SetConsole redirects console output. nil silences it, which the
	// panel needs while it owns the terminal.
	SetConsole(w io.Writer)

	// StartTimer starts a timer for measuring operation duration
	StartTimer(operation string) *Timer

	// Close closes the log file
	Close() error
}

// Timer represents a timer for measuring operation duration
type Timer struct {
	operation string
	start     time.Time
	logger    *fileLogger
}

// Stop stops the timer and logs the elapsed time
func (t *Timer) Stop() time.Duration {
	elapsed := time.Since(t.start)
	if t.logger != nil {
		t.logger.write(LevelInfo, fmt.Sprintf("%s completed in %v", t.operation, elapsed))
	}
	return elapsed
}

// StopWithResult stops the timer and logs the result
func (t *Timer) StopWithResult(success bool, detail string) time.Duration {
	elapsed := time.Since(t.start)
	if t.logger == nil {
		return elapsed
	}
	status, level := "completed", LevelInfo
	if !success {
		status, level = "failed", LevelWarn
	}
	msg := fmt.Sprintf("%s %s in %v", t.operation, status, elapsed)
	if detail != "" {
		msg += ": " + detail
	}
	t.logger.write(level, msg)
	return elapsed
}

type fileLogger struct {
	file      *os.File
	console   io.Writer
	command   string
	component string
	debug     bool
	mu        sync.Mutex
}

// New creates a new Logger that writes to the specified file.
func New(logPath string, debug bool) (Logger, error) {
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return &fileLogger{
		file:    file,
		console: os.Stderr,
		debug:   debug,
	}, nil
}

// NewStdout creates a logger that only outputs to stderr.
func NewStdout(debug bool) Logger {
	return &fileLogger{
		console: os.Stderr,
		debug:   debug,
	}
}

func (l *fileLogger) SetCommand(command string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.command = command
}

func (l *fileLogger) SetComponent(component string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.component = component
}

func (l *fileLogger) SetConsole(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.console = w
}

// getContext must be called with l.mu held.
func (l *fileLogger) getContext() string {
	if l.component != "" {
		return fmt.Sprintf("%s:%s", l.command, l.component)
	}
	return l.command
}

// getCaller returns the caller function name (skipping internal logging frames)
func getCaller(skip int) string {
	pc, _, _, ok := runtime.Caller(skip)
	if !ok {
		return "unknown"
	}
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return "unknown"
	}
	name := fn.Name()
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		name = name[idx+1:]
	}
	if idx := strings.Index(name, "."); idx >= 0 {
		name = name[idx+1:]
	}
	return name
}

// write appends one line to the log file.
// Format: [timestamp] [level] [context] [caller] message
func (l *fileLogger) write(level Level, msg string) {
	caller := getCaller(3)

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return
	}

	timestamp := time.Now().Format("06-01-02 15:04:05.0")
	line := fmt.Sprintf("[%s] [%s] [%s] [%s] %s\n", timestamp, level, l.getContext(), caller, msg)
	if _, err := l.file.WriteString(line); err != nil && l.console != nil {
		fmt.Fprintf(l.console, "Failed to write to log file: %v\n", err)
	}
}

func (l *fileLogger) printConsole(prefix, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.console != nil {
		fmt.Fprintf(l.console, "%s%s\n", prefix, msg)
	}
}

func (l *fileLogger) Debug(format string, args ...interface{}) {
	if !l.debug {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if l.file == nil {
		l.printConsole("[DEBUG] ", msg)
		return
	}
	l.write(LevelDebug, msg)
}

func (l *fileLogger) Info(format string, args ...interface{}) {
	l.write(LevelInfo, fmt.Sprintf(format, args...))
}

func (l *fileLogger) Warn(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	l.printConsole("Warning: ", msg)
	l.write(LevelWarn, msg)
}

func (l *fileLogger) Error(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	l.printConsole("Error: ", msg)
	l.write(LevelError, msg)
}

func (l *fileLogger) StartTimer(operation string) *Timer {
	if l.debug {
		l.write(LevelDebug, operation+" started")
	}
	return &Timer{
		operation: operation,
		start:     time.Now(),
		logger:    l,
	}
}

func (l *fileLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}

// Global logger instance
var (
	globalMu     sync.RWMutex
	globalLogger = NewStdout(os.Getenv(constants.EnvDebug) == constants.DebugEnabledEnvMarker)
)

// SetGlobal sets the global logger instance.
func SetGlobal(l Logger) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalLogger = l
}

// Global returns the global logger instance.
func Global() Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalLogger
}

// Debug logs debug information using the global logger.
func Debug(format string, args ...interface{}) {
	Global().Debug(format, args...)
}

// Info logs informational message using the global logger.
func Info(format string, args ...interface{}) {
	Global().Info(format, args...)
}

// Warn logs a warning using the global logger.
func Warn(format string, args ...interface{}) {
	Global().Warn(format, args...)
}

// Error logs an error using the global logger.
func Error(format string, args ...interface{}) {
	Global().Error(format, args...)
}

// StartTimer starts a timer for measuring operation duration using the global logger.
func StartTimer(operation string) *Timer {
	return Global().StartTimer(operation)
}
