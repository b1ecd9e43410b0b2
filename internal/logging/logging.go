// Package logging configures the process-wide slog logger.
//
// Terminals get a colored tint handler; anything else (CI logs, pipes) gets
// a plain slog text handler on stderr.
package logging

import (
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// Level is the shared level of the default logger. It defaults to warn so
// that a plain merge only prints the console summary.
var Level = &slog.LevelVar{}

func init() {
	Level.Set(slog.LevelWarn)
	slog.SetDefault(New(os.Stderr))
}

// New returns a logger writing to w. A tint handler is used when w is a terminal.
func New(w io.Writer) *slog.Logger {
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		return slog.New(newTerminalHandler(w))
	}
	return slog.New(newTextHandler(w))
}

func newTextHandler(w io.Writer) slog.Handler {
	return slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: Level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			switch a.Key {
			case slog.TimeKey:
				return slog.Attr{}
			case slog.LevelKey:
				lvl := a.Value.Any().(slog.Level)
				return slog.String(a.Key, strings.ToLower(lvl.String()))
			}
			return a
		},
	})
}

func newTerminalHandler(w io.Writer) slog.Handler {
	return tint.NewHandler(w, &tint.Options{
		NoColor: runtime.GOOS == "windows",
		Level:   Level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	})
}

// SetLevelByName sets the level from a name such as "debug" or "warning".
// It reports false for an unknown name and leaves the level unchanged.
func SetLevelByName(name string) bool {
	switch strings.ToLower(name) {
	case "err", "error":
		Level.Set(slog.LevelError)
	case "warn", "warning":
		Level.Set(slog.LevelWarn)
	case "info":
		Level.Set(slog.LevelInfo)
	case "debug":
		Level.Set(slog.LevelDebug)
	default:
		return false
	}
	return true
}
