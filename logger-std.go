//go:build !tinygo

package rotary

import (
	"context"
	"io"
	"log"
	"log/slog"
	"os"
)

func init() {
	globalLogger = NewStdLogger(os.Stderr)
}

// stdLogger writes through the standard library log package.
type stdLogger struct {
	l *log.Logger
}

// NewStdLogger returns a Logger writing level-tagged lines to w.
func NewStdLogger(w io.Writer) Logger {
	return &stdLogger{l: log.New(w, "rotary ", log.LstdFlags)}
}

func (l *stdLogger) Debug(msg string) { l.l.Print("[DEBUG] " + msg) }
func (l *stdLogger) Info(msg string)  { l.l.Print("[INFO]  " + msg) }
func (l *stdLogger) Warn(msg string)  { l.l.Print("[WARN]  " + msg) }
func (l *stdLogger) Error(msg string) { l.l.Print("[ERROR] " + msg) }

// slogLogger forwards messages to a structured logger.
type slogLogger struct {
	l *slog.Logger
}

// NewSlogLogger adapts a *slog.Logger to the Logger interface.
// Records carry a component=rotary attribute.
func NewSlogLogger(l *slog.Logger) Logger {
	if l == nil {
		l = slog.Default()
	}
	return &slogLogger{l: l.With("component", "rotary")}
}

func (l *slogLogger) Debug(msg string) { l.l.Log(context.Background(), slog.LevelDebug, msg) }
func (l *slogLogger) Info(msg string)  { l.l.Log(context.Background(), slog.LevelInfo, msg) }
func (l *slogLogger) Warn(msg string)  { l.l.Log(context.Background(), slog.LevelWarn, msg) }
func (l *slogLogger) Error(msg string) { l.l.Log(context.Background(), slog.LevelError, msg) }
