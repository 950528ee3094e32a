// internal/logger/logger.go
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	charmlog "github.com/charmbracelet/log"
)

var (
	defaultLogger atomic.Pointer[slog.Logger]
	initOnce      sync.Once
	logOutput     io.Writer = io.Discard

	// discardLogger serves records logged before Init.
	discardLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelInfo}))

	// debugFilter traces every filtering decision to stderr.
	debugFilter bool
)

// SetFilterDebug toggles tracing of the filtering handler. Call before Init.
func SetFilterDebug(on bool) {
	debugFilter = on
}

// Init initializes the logger package from cfg, writing to output.
// Only the first call has any effect.
func Init(cfg Config, output io.Writer) {
	initOnce.Do(func() {
		if output == nil {
			output = io.Discard
		}
		cfg.process()
		logOutput = output
		logLevel := new(slog.LevelVar)
		logLevel.Set(cfg.level.Level())

		base := newBaseHandler(cfg.Format, output, logLevel)
		defaultLogger.Store(slog.New(newFilteringHandler(base, &cfg)))

		r := slog.NewRecord(time.Now(), slog.LevelInfo, "Logger initialized", 0)
		r.AddAttrs(slog.String("level", cfg.level.Level().String()), slog.String("format", cfg.Format))
		_ = base.Handle(context.Background(), r)
	})
}

// newBaseHandler builds the output handler for one of the supported formats.
func newBaseHandler(format string, output io.Writer, level *slog.LevelVar) slog.Handler {
	switch format {
	case FormatJSON:
		return slog.NewJSONHandler(output, &slog.HandlerOptions{Level: level, AddSource: true})
	case FormatPretty:
		l := charmlog.NewWithOptions(output, charmlog.Options{
			Level:           charmlog.Level(level.Level()),
			ReportTimestamp: true,
			TimeFormat:      time.TimeOnly,
			Prefix:          "regextester",
		})
		return l
	}
	opts := slog.HandlerOptions{
		Level:     level,
		AddSource: true,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.SourceKey {
				if source, ok := a.Value.Any().(*slog.Source); ok && source != nil {
					source.File = filepath.Base(source.File)
				}
			}
			if a.Key == slog.TimeKey {
				a.Value = slog.StringValue(a.Value.Time().Format(time.TimeOnly))
			}
			return a
		},
	}
	return slog.NewTextHandler(output, &opts)
}

// current is the logger installed by Init, or one that discards everything.
func current() *slog.Logger {
	if l := defaultLogger.Load(); l != nil {
		return l
	}
	return discardLogger
}

// logAtLevel creates and logs a record at the specified level, capturing the correct caller source.
func logAtLevel(level slog.Level, attrs []slog.Attr, format string, args ...interface{}) {
	l := current()
	if !l.Enabled(context.Background(), level) {
		return
	}

	// Skip runtime.Callers, logAtLevel and the exported wrapper.
	var pcs [1]uintptr
	runtime.Callers(3, pcs[:])

	r := slog.NewRecord(time.Now(), level, fmt.Sprintf(format, args...), pcs[0])
	r.AddAttrs(attrs...)
	_ = l.Handler().Handle(context.Background(), r)
}

// Debugf logs a debug message using Printf-style formatting.
func Debugf(format string, args ...interface{}) {
	logAtLevel(slog.LevelDebug, nil, format, args...)
}

// DebugTagf logs a debug message carrying a tag the filtering handler can select on.
func DebugTagf(tag string, format string, args ...interface{}) {
	logAtLevel(slog.LevelDebug, []slog.Attr{slog.String(tagKey, tag)}, format, args...)
}

// Infof logs an info message using Printf-style formatting.
func Infof(format string, args ...interface{}) {
	logAtLevel(slog.LevelInfo, nil, format, args...)
}

// Warnf logs a warning message using Printf-style formatting.
func Warnf(format string, args ...interface{}) {
	logAtLevel(slog.LevelWarn, nil, format, args...)
}

// Errorf logs an error message using Printf-style formatting.
func Errorf(format string, args ...interface{}) {
	logAtLevel(slog.LevelError, nil, format, args...)
}

// Fatalf logs an error message then exits.
func Fatalf(format string, args ...interface{}) {
	logAtLevel(slog.LevelError, nil, format, args...)
	os.Exit(1)
}

// Get retrieves the configured logger instance.
func Get() *slog.Logger {
	return current()
}

// Output returns the writer passed to Init.
func Output() io.Writer {
	return logOutput
}
