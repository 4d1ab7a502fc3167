package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Log defaults to slog's default logger so packages can log before Init runs
// (tests never call Init).
var Log = slog.Default()

func Init(level string) {
	InitWithWriter(os.Stdout, level)
}

func InitWithWriter(w io.Writer, level string) {
	// JSON handler for production-ready logging
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: parseLevel(level),
	})
	Log = slog.New(handler)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelDebug
	}
}
