package runtime

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// LogOptions controls where and how verbosely a service logs.
// File is optional; when set, every record is also appended to it as JSON lines.
type LogOptions struct {
	Level string
	File  string
}

func NewLogger(service string, opts LogOptions) (*slog.Logger, func() error, error) {
	var out io.Writer = os.Stdout
	closeFn := func() error { return nil }

	if path := strings.TrimSpace(opts.File); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file %q: %w", path, err)
		}
		out = io.MultiWriter(os.Stdout, f)
		closeFn = f.Close
	}

	h := slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level: ParseLevel(opts.Level),
	})
	return slog.New(h).With("service", service), closeFn, nil
}

// ParseLevel maps LOG_LEVEL style strings to slog levels. Unknown values mean info.
func ParseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
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
