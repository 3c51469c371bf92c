//go:build windows

package filemanager

import (
	"math/rand"
	"os"
	"strings"
	"time"
)

const readAttempts = 5

// readFileWithRetry retries reads that fail because another process still
// has the file open, backing off exponentially with jitter
func readFileWithRetry(path string) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	for i := 0; i < readAttempts; i++ {
		data, err = os.ReadFile(path)
		if err == nil {
			return data, nil
		}
		if !os.IsPermission(err) && !isSharingViolation(err) {
			return nil, err
		}
		delay := time.Duration(10<<uint(i)) * time.Millisecond
		time.Sleep(delay + time.Duration(rand.Intn(10))*time.Millisecond)
	}
	return nil, err
}

func isSharingViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "being used by another process") ||
		strings.Contains(msg, "The process cannot access")
}
