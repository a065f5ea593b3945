// Package logging provides slog handlers shared by the entry points.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// MultiHandler writes log records to multiple handlers.
type MultiHandler struct {
	handlers []slog.Handler
}

// NewMultiHandler creates a new multi-handler that writes text records to all
// provided writers at the given level.
func NewMultiHandler(level slog.Leveler, writers ...io.Writer) slog.Handler {
	var handlers []slog.Handler
	for _, w := range writers {
		handlers = append(handlers, slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	}
	return &MultiHandler{handlers: handlers}
}

// Handle handles the log record by forwarding to all enabled handlers.
func (m *MultiHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, h := range m.handlers {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil {
			return err
		}
	}
	return nil
}

// Enabled reports whether the handler is enabled for the given level.
func (m *MultiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

// WithAttrs returns a new handler with the given attributes.
func (m *MultiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	var newHandlers []slog.Handler
	for _, h := range m.handlers {
		newHandlers = append(newHandlers, h.WithAttrs(attrs))
	}
	return &MultiHandler{handlers: newHandlers}
}

// WithGroup returns a new handler with the given group name.
func (m *MultiHandler) WithGroup(name string) slog.Handler {
	var newHandlers []slog.Handler
	for _, h := range m.handlers {
		newHandlers = append(newHandlers, h.WithGroup(name))
	}
	return &MultiHandler{handlers: newHandlers}
}

// ParseLevel converts a config level name to a slog level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level: %s", name)
	}
}

// Setup installs a default logger writing to console and, when logDir is
// set, to a dated file named after app. The returned closer releases the file.
func Setup(app, level, logDir string, console io.Writer) (string, io.Closer, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return "", nil, err
	}

	writers := []io.Writer{console}
	var (
		logFile string
		closer  io.Closer = io.NopCloser(nil)
	)

	if logDir != "" {
		if err := os.MkdirAll(logDir, 0755); err != nil {
			return "", nil, fmt.Errorf("create log dir: %w", err)
		}
		timestamp := time.Now().Format("2006-01-02")
		logFile = filepath.Join(logDir, fmt.Sprintf("%s-%s.log", app, timestamp))

		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return "", nil, fmt.Errorf("open log file: %w", err)
		}
		writers = append(writers, file)
		closer = file
	}

	slog.SetDefault(slog.New(NewMultiHandler(lvl, writers...)))
	return logFile, closer, nil
}
