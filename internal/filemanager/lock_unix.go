//go:build !windows

package filemanager

import "github.com/gofrs/flock"

// createLock locks the document itself
func createLock(path string) *flock.Flock {
	return flock.New(path)
}

func cleanupLockFile(string) {}
