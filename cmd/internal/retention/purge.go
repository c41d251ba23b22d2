// Package retention removes aged files from a directory.
package retention

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
)

const secondsPerDay = 86400

var remove = os.Remove

// Purge deletes every file in dir modified strictly before now minus
// retentionDays. Subdirectories are left alone. Failures are logged per
// entry and never stop the sweep. It returns the paths that were removed.
func Purge(retentionDays int, dir string, now time.Time, logger *slog.Logger) []string {
	if logger == nil {
		logger = slog.Default()
	}

	cutoff := now.Add(-time.Duration(retentionDays) * secondsPerDay * time.Second)
	logger.Info("removing old files", "dir", dir, "retention_days", retentionDays)

	entries, err := os.ReadDir(dir)
	if err != nil {
		logger.Error("cannot list directory", "dir", dir, "error", err)
		return nil
	}

	removed := []string{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())

		info, err := entry.Info()
		if err != nil {
			logger.Error("cannot stat file", "path", path, "error", err)
			continue
		}

		modTime := info.ModTime()
		if !modTime.Before(cutoff) {
			continue
		}

		logger.Info("removing file", "path", path, "modified", modTime.Format(time.DateTime), "age", humanize.RelTime(modTime, now, "old", "ahead"))
		if err := remove(path); err != nil {
			logger.Error("cannot remove file", "path", path, "error", err)
			continue
		}
		removed = append(removed, path)
	}

	return removed
}
