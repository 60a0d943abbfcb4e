package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config controls how a Logger renders output. It is built from the
// bridge's CLI flags (-l/--log, -v), not loaded from a file.
type Config struct {
	// Level is one of debug, info, warn, error. Unrecognised values
	// default to info.
	Level string

	// Format is "json" or "text". Any other value defaults to json.
	Format string

	// Output is "stdout" or "stderr"; empty means stdout. Any other value
	// is a file path opened for append, falling back to stdout if it
	// cannot be opened.
	Output string
}

// Logger wraps slog.Logger with the bridge's default fields.
//
// Thread Safety: all methods are safe for concurrent use from multiple
// goroutines - this is relied on by the port drivers, the bridge, and the
// MQTT client logging concurrently from their own goroutines.
type Logger struct {
	*slog.Logger
}

// New creates a Logger from cfg. Output is "stdout", "stderr", or any
// other non-empty value is treated as a file path to append to (the
// -l/--log CLI flag); a path that can't be opened falls back to stdout
// rather than failing startup over a logging destination.
func New(cfg Config) *Logger {
	output := resolveOutput(cfg.Output)

	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}

	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "text":
		handler = slog.NewTextHandler(output, opts)
	default:
		handler = slog.NewJSONHandler(output, opts)
	}

	handler = handler.WithAttrs([]slog.Attr{
		slog.String("service", "wallpad-bridge"),
	})

	return &Logger{Logger: slog.New(handler)}
}

// resolveOutput turns cfg.Output into a writer: the two well-known
// names, or a file path opened for append.
func resolveOutput(name string) io.Writer {
	switch strings.ToLower(name) {
	case "", "stdout":
		return os.Stdout
	case "stderr":
		return os.Stderr
	default:
		f, err := os.OpenFile(name, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return os.Stdout
		}
		return f
	}
}

// parseLevel converts a string log level to slog.Level, defaulting to
// info for anything unrecognised.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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

// With returns a new Logger with additional default attributes, used to
// tag every log line from one component (e.g. "port", "primary").
func (l *Logger) With(args ...any) *Logger {
	return &Logger{Logger: l.Logger.With(args...)}
}

// Default returns a JSON logger at info level to stdout, for use before
// CLI flags have been parsed.
func Default() *Logger {
	return New(Config{Level: "info", Format: "json", Output: "stdout"})
}
