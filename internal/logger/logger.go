package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Logger carries a usable default so packages can log before Init runs.
var Logger = slog.New(slog.NewTextHandler(os.Stdout, nil))

// Init sets up the default logger. When logFile is non-empty the output is
// mirrored to that file in addition to stdout.
func Init(logFile string, debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var w io.Writer = os.Stdout
	if logFile != "" {
		if err := os.MkdirAll(filepath.Dir(logFile), 0755); err == nil {
			if f, ferr := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644); ferr == nil {
				w = io.MultiWriter(os.Stdout, f)
			}
		}
	}

	Logger = slog.New(slog.NewTextHandler(w, opts))
	slog.SetDefault(Logger)
}

func Info(msg string, args ...any) {
	Logger.Info(msg, args...)
}

func Error(msg string, args ...any) {
	Logger.Error(msg, args...)
}

func Debug(msg string, args ...any) {
	Logger.Debug(msg, args...)
}

func Warn(msg string, args ...any) {
	Logger.Warn(msg, args...)
}
