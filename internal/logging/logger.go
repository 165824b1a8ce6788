// Package logging builds the process-wide structured logger. A single
// *slog.Logger fans every record out to a console sink and, optionally, to
// an error-only file and a combined file. Each record carries a static
// service attribute.
package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	slogmulti "github.com/samber/slog-multi"
)

// ServiceKey is the attribute that tags every record with the service name.
const ServiceKey = "service"

// Options configures New.
type Options struct {
	// Service is attached to every record under ServiceKey.
	Service string
	// Level is one of debug, info, warn, error. Unknown values mean info.
	Level string
	// Console receives every enabled record. Defaults to os.Stdout.
	Console io.Writer
	// Pretty renders console output as coloured text instead of JSON.
	Pretty bool
	// ErrorFile receives error records only. Empty disables the sink.
	ErrorFile string
	// CombinedFile receives every enabled record. Empty disables the sink.
	CombinedFile string
}

// ParseLevel maps a level name to a slog.Level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New constructs the logger described by opts. The returned closer releases
// the file sinks and must be called once the logger is no longer used.
func New(opts Options) (*slog.Logger, io.Closer, error) {
	level := ParseLevel(opts.Level)

	console := opts.Console
	if console == nil {
		console = os.Stdout
	}

	handlers := []slog.Handler{consoleHandler(console, level, opts.Pretty)}
	files := &fileSet{}

	if opts.ErrorFile != "" {
		f, err := openAppend(opts.ErrorFile)
		if err != nil {
			return nil, nil, err
		}
		files.add(f)
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelError}))
	}

	if opts.CombinedFile != "" {
		f, err := openAppend(opts.CombinedFile)
		if err != nil {
			_ = files.Close()
			return nil, nil, err
		}
		files.add(f)
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level}))
	}

	logger := slog.New(slogmulti.Fanout(handlers...))
	if opts.Service != "" {
		logger = logger.With(slog.String(ServiceKey, opts.Service))
	}
	return logger, files, nil
}

func consoleHandler(w io.Writer, level slog.Level, pretty bool) slog.Handler {
	if pretty {
		return tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.RFC3339,
			ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
				if err, ok := a.Value.Any().(error); ok {
					aErr := tint.Err(err)
					aErr.Key = a.Key
					return aErr
				}
				return a
			},
		})
	}
	return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
}

func openAppend(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logging: open %s: %w", path, err)
	}
	return f, nil
}

// fileSet closes every opened log file.
type fileSet struct {
	files []*os.File
}

func (s *fileSet) add(f *os.File) {
	s.files = append(s.files, f)
}

// Close closes all files and joins their errors.
func (s *fileSet) Close() error {
	var errs []error
	for _, f := range s.files {
		if err := f.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	s.files = nil
	return errors.Join(errs...)
}
