package utils

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"
)

// NewLogger returns a colourised text logger in development and a JSON logger
// with GCP-friendly attribute names otherwise.
func NewLogger(env string, level slog.Level) *slog.Logger {
	if env == "development" {
		return slog.New(newDevHandler(os.Stderr, level))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: GCPLoggerAttributeReplacer,
	}))
}

func ParseLogLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func GCPLoggerAttributeReplacer(groups []string, a slog.Attr) slog.Attr {
	// stackdriver reads the main message from "message"
	if a.Key == slog.MessageKey {
		a.Key = "message"
		return a
	}

	if a.Key == slog.LevelKey {
		a.Key = "severity"
		level, _ := a.Value.Any().(slog.Level)
		switch {
		case level < slog.LevelInfo:
			a.Value = slog.StringValue("DEBUG")
		case level < slog.LevelWarn:
			a.Value = slog.StringValue("INFO")
		case level < slog.LevelError:
			a.Value = slog.StringValue("WARNING")
		default:
			a.Value = slog.StringValue("ERROR")
		}
	}

	return a
}

// devHandler prefixes each text record with its time and a coloured level.
type devHandler struct {
	inner slog.Handler
	mu    *sync.Mutex
	w     io.Writer
}

func newDevHandler(w io.Writer, level slog.Level) *devHandler {
	return &devHandler{
		w:  w,
		mu: &sync.Mutex{},
		inner: slog.NewTextHandler(w, &slog.HandlerOptions{
			Level: level,
			ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
				if a.Key == slog.TimeKey || a.Key == slog.LevelKey || a.Key == slog.MessageKey {
					return slog.Attr{}
				}
				return a
			},
		}),
	}
}

func (h *devHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *devHandler) Handle(ctx context.Context, r slog.Record) error {
	prefix := fmt.Sprintf("%s \x1b[%dm%s\x1b[0m %s ", r.Time.Format(time.TimeOnly), levelColor(r.Level), r.Level, r.Message)

	h.mu.Lock()
	defer h.mu.Unlock()
	if _, err := io.WriteString(h.w, prefix); err != nil {
		return err
	}
	return h.inner.Handle(ctx, r)
}

func (h *devHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &devHandler{w: h.w, mu: h.mu, inner: h.inner.WithAttrs(attrs)}
}

func (h *devHandler) WithGroup(name string) slog.Handler {
	return &devHandler{w: h.w, mu: h.mu, inner: h.inner.WithGroup(name)}
}

func levelColor(level slog.Level) int {
	switch {
	case level < slog.LevelInfo:
		return 35
	case level < slog.LevelWarn:
		return 34
	case level < slog.LevelError:
		return 33
	default:
		return 31
	}
}
