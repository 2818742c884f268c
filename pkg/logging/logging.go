package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"
)

// Level defines the severity of a log entry.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String makes Level satisfy fmt.Stringer.
func (l Level) String() string {
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

// SlogLevel converts Level to the corresponding slog.Level.
func (l Level) SlogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Entry is the structured log entry delivered to the TUI log pane.
type Entry struct {
	Timestamp time.Time
	Level     Level
	Subsystem string
	Message   string
	Err       error
}

const tuiChannelBufferSize = 2048

var (
	mu          sync.Mutex
	logger      *slog.Logger
	filterLevel Level
	tuiChannel  chan Entry
	tuiMode     bool
)

// InitForCLI routes log output through a slog text handler to the given
// writer. Used by all plain commands.
func InitForCLI(level Level, output io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	tuiMode = false
	tuiChannel = nil
	filterLevel = level
	handler := slog.NewTextHandler(output, &slog.HandlerOptions{Level: level.SlogLevel()})
	logger = slog.New(handler)
	slog.SetDefault(logger)
}

// InitForTUI switches logging into channel mode: entries at or above level
// are delivered on the returned channel instead of being written anywhere.
// The TUI drains the channel into its log pane; stderr stays clean so it
// does not tear the alternate screen.
func InitForTUI(level Level) <-chan Entry {
	mu.Lock()
	defer mu.Unlock()
	tuiMode = true
	filterLevel = level
	tuiChannel = make(chan Entry, tuiChannelBufferSize)
	return tuiChannel
}

// CloseTUIChannel closes the TUI log channel on shutdown.
func CloseTUIChannel() {
	mu.Lock()
	defer mu.Unlock()
	if tuiChannel != nil {
		close(tuiChannel)
		tuiChannel = nil
		tuiMode = false
	}
}

func logInternal(level Level, subsystem string, err error, messageFmt string, args ...interface{}) {
	msg := messageFmt
	if len(args) > 0 {
		msg = fmt.Sprintf(messageFmt, args...)
	}

	mu.Lock()
	defer mu.Unlock()

	if level < filterLevel {
		return
	}

	if tuiMode {
		if tuiChannel == nil {
			return
		}
		entry := Entry{
			Timestamp: time.Now(),
			Level:     level,
			Subsystem: subsystem,
			Message:   msg,
			Err:       err,
		}
		// Drop on a full buffer rather than stalling the update loop.
		select {
		case tuiChannel <- entry:
		default:
		}
		return
	}

	if logger == nil {
		fmt.Fprintf(os.Stderr, "[%s] %s: %s\n", level, subsystem, msg)
		return
	}
	attrs := []slog.Attr{slog.String("subsystem", subsystem)}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	logger.LogAttrs(context.Background(), level.SlogLevel(), msg, attrs...)
}

// Debug logs a debug message for the given subsystem.
func Debug(subsystem string, messageFmt string, args ...interface{}) {
	logInternal(LevelDebug, subsystem, nil, messageFmt, args...)
}

// Info logs an informational message for the given subsystem.
func Info(subsystem string, messageFmt string, args ...interface{}) {
	logInternal(LevelInfo, subsystem, nil, messageFmt, args...)
}

// Warn logs a warning message for the given subsystem.
func Warn(subsystem string, messageFmt string, args ...interface{}) {
	logInternal(LevelWarn, subsystem, nil, messageFmt, args...)
}

// Error logs an error message for the given subsystem.
func Error(subsystem string, err error, messageFmt string, args ...interface{}) {
	logInternal(LevelError, subsystem, err, messageFmt, args...)
}
