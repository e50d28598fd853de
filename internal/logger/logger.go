package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// LogLevel represents the severity level of a log message
type LogLevel int

// Log levels
const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
	FATAL
)

// levelColors maps log levels to ANSI color codes
var levelColors = map[LogLevel]string{
	DEBUG: "\033[36m", // Cyan
	INFO:  "\033[32m", // Green
	WARN:  "\033[33m", // Yellow
	ERROR: "\033[31m", // Red
	FATAL: "\033[35m", // Magenta
}

// levelPrefixes maps log levels to fixed-width text prefixes
var levelPrefixes = map[LogLevel]string{
	DEBUG: "DEBUG",
	INFO:  "INFO ",
	WARN:  "WARN ",
	ERROR: "ERROR",
	FATAL: "FATAL",
}

const colorReset = "\033[0m"

// exit is swapped out by tests
var exit = os.Exit

// ParseLevel converts a config value into a level. Unknown names report
// false and fall back to INFO.
func ParseLevel(s string) (LogLevel, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DEBUG, true
	case "info", "":
		return INFO, true
	case "warn", "warning":
		return WARN, true
	case "error":
		return ERROR, true
	case "fatal":
		return FATAL, true
	}
	return INFO, false
}

func (l LogLevel) String() string {
	if p, ok := levelPrefixes[l]; ok {
		return strings.TrimSpace(p)
	}
	return fmt.Sprintf("LogLevel(%d)", int(l))
}

// sink is the output shared by a logger and its component children
type sink struct {
	logger    *log.Logger
	file      *os.File
	useColors bool
}

// Logger handles logging for one component of the renderer
type Logger struct {
	level     LogLevel
	sink      *sink
	component string
}

// NewLogger creates a console logger with the specified log level
func NewLogger(levelStr string) *Logger {
	level, _ := ParseLevel(levelStr)
	s := &sink{logger: log.New(os.Stdout, "", 0)}

	// Colors only when stdout is a terminal
	if fileInfo, err := os.Stdout.Stat(); err == nil && fileInfo.Mode()&os.ModeCharDevice != 0 {
		s.useColors = true
	}
	return &Logger{level: level, sink: s}
}

// NewWriterLogger creates an uncolored logger writing to w
func NewWriterLogger(levelStr string, w io.Writer) *Logger {
	level, _ := ParseLevel(levelStr)
	return &Logger{level: level, sink: &sink{logger: log.New(w, "", 0)}}
}

func openLogFile(filePath string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return file, nil
}

// NewFileLogger creates a new logger that writes to a file
func NewFileLogger(levelStr, filePath string) (*Logger, error) {
	file, err := openLogFile(filePath)
	if err != nil {
		return nil, err
	}
	l := NewWriterLogger(levelStr, file)
	l.sink.file = file
	return l, nil
}

// NewMultiLogger creates a logger that writes to both console and file
func NewMultiLogger(levelStr, filePath string) (*Logger, error) {
	file, err := openLogFile(filePath)
	if err != nil {
		return nil, err
	}
	l := NewLogger(levelStr)
	l.sink.logger.SetOutput(io.MultiWriter(os.Stdout, file))
	l.sink.file = file
	return l, nil
}

// With returns a child logger tagging every line with component. The child
// shares the parent's output and starts at the parent's level.
func (l *Logger) With(component string) *Logger {
	name := component
	if l.component != "" {
		name = l.component + "." + component
	}
	return &Logger{level: l.level, sink: l.sink, component: name}
}

// Enabled reports whether messages at level would be written
func (l *Logger) Enabled(level LogLevel) bool {
	return level >= l.level
}

// output writes one line. depth counts stack frames above output up to the
// caller named in the prefix.
func (l *Logger) output(depth int, level LogLevel, msg string) {
	if !l.Enabled(level) {
		return
	}

	_, file, line, ok := runtime.Caller(depth)
	if !ok {
		file = "unknown"
		line = 0
	}

	now := time.Now().Format("2006/01/02 15:04:05")
	prefix := fmt.Sprintf("%s [%s] %s:%d:", now, levelPrefixes[level], filepath.Base(file), line)
	if l.sink.useColors {
		prefix = levelColors[level] + prefix + colorReset
	}
	if l.component != "" {
		prefix += " [" + l.component + "]"
	}

	l.sink.logger.Println(prefix, msg)

	if level == FATAL {
		l.Close()
		exit(1)
	}
}

// Debug logs a debug message
func (l *Logger) Debug(v ...interface{}) {
	l.output(2, DEBUG, fmt.Sprint(v...))
}

// Debugf logs a formatted debug message
func (l *Logger) Debugf(format string, v ...interface{}) {
	l.output(2, DEBUG, fmt.Sprintf(format, v...))
}

// Info logs an info message
func (l *Logger) Info(v ...interface{}) {
	l.output(2, INFO, fmt.Sprint(v...))
}

// Infof logs a formatted info message
func (l *Logger) Infof(format string, v ...interface{}) {
	l.output(2, INFO, fmt.Sprintf(format, v...))
}

// Warn logs a warning message
func (l *Logger) Warn(v ...interface{}) {
	l.output(2, WARN, fmt.Sprint(v...))
}

// Warnf logs a formatted warning message
func (l *Logger) Warnf(format string, v ...interface{}) {
	l.output(2, WARN, fmt.Sprintf(format, v...))
}

// Error logs an error message
func (l *Logger) Error(v ...interface{}) {
	l.output(2, ERROR, fmt.Sprint(v...))
}

// Errorf logs a formatted error message
func (l *Logger) Errorf(format string, v ...interface{}) {
	l.output(2, ERROR, fmt.Sprintf(format, v...))
}

// Fatal logs a fatal message and exits the program
func (l *Logger) Fatal(v ...interface{}) {
	l.output(2, FATAL, fmt.Sprint(v...))
}

// Fatalf logs a formatted fatal message and exits the program
func (l *Logger) Fatalf(format string, v ...interface{}) {
	l.output(2, FATAL, fmt.Sprintf(format, v...))
}

// SetLevel sets the log level of this logger only
func (l *Logger) SetLevel(levelStr string) {
	l.level, _ = ParseLevel(levelStr)
}

// SetOutput sets the output writer shared with child loggers
func (l *Logger) SetOutput(w io.Writer) {
	l.sink.logger.SetOutput(w)
}

// EnableColors enables or disables colored output
func (l *Logger) EnableColors(enable bool) {
	l.sink.useColors = enable
}

// Close closes the logger's file if it exists
func (l *Logger) Close() {
	if l.sink.file != nil {
		l.sink.file.Close()
		l.sink.file = nil
	}
}
