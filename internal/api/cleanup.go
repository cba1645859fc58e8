package api

import (
	"context"
	log "log/slog"
	"os"
	"path/filepath"
	"time"
)

// StartTempCleanup removes generated reply audio and uploads older than
// maxAge, sweeping every ten minutes until ctx is cancelled.
func StartTempCleanup(ctx context.Context, dir string, maxAge time.Duration) {
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				sweep(dir, maxAge)
			}
		}
	}()
}

func sweep(dir string, maxAge time.Duration) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}

	cutoff := time.Now().Add(-maxAge)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil {
				log.Warn("Failed to remove stale temp file", "file", entry.Name(), "err", err)
			}
		}
	}
}
