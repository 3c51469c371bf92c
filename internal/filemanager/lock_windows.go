//go:build windows

package filemanager

import (
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

const staleLockAge = 5 * time.Second

// createLock uses a sibling .lock file so the document can be renamed over
// while the lock is held
func createLock(path string) *flock.Flock {
	lockPath := lockPathFor(path)
	_ = os.MkdirAll(filepath.Dir(lockPath), 0o755)
	return flock.New(lockPath)
}

// cleanupLockFile removes lock files nobody has touched recently
func cleanupLockFile(path string) {
	lockPath := lockPathFor(path)
	if info, err := os.Stat(lockPath); err == nil && time.Since(info.ModTime()) > staleLockAge {
		_ = os.Remove(lockPath)
	}
}

func lockPathFor(path string) string {
	return path + ".lock"
}
