// Package runlog opens the per-day run log and builds the run logger.
package runlog

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ErrAlreadyRan means today's log file exists, so today's run happened.
var ErrAlreadyRan = errors.New("run log for today already exists")

const dayLayout = "20060102"

// FileName returns <dir>/<app>_<YYYYMMDD>.log for the given day.
func FileName(dir, app string, day time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("%s_%s.log", app, day.Format(dayLayout)))
}

// ParseLevel maps a config level name to a slog level, defaulting to info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
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

// Open creates today's log file exclusively and returns a logger writing to
// it, teed to console when non-nil. The caller closes the returned file.
func Open(dir, app string, day time.Time, level slog.Level, console io.Writer) (*slog.Logger, io.Closer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}

	path := FileName(dir, app, day)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return nil, nil, fmt.Errorf("%w: %s", ErrAlreadyRan, path)
		}
		return nil, nil, fmt.Errorf("open run log: %w", err)
	}

	var w io.Writer = f
	if console != nil {
		w = io.MultiWriter(f, console)
	}

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})).With("app", app)
	return logger, f, nil
}
