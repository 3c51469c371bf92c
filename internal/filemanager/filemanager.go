// Package filemanager reads and writes YAML documents under a file lock,
// with compare-and-swap updates for concurrent keybit processes.
package filemanager

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrConcurrentModification is returned when a file changed after it was read
var ErrConcurrentModification = errors.New("file was modified concurrently")

// ErrLockTimeout is returned when a file lock cannot be acquired in time
var ErrLockTimeout = errors.New("timeout acquiring file lock")

const (
	defaultLockTimeout = 5 * time.Second
	lockRetryDelay     = 50 * time.Millisecond
	maxUpdateRetries   = 10
)

// FileInfo identifies the version of a file that was read
type FileInfo struct {
	Path    string
	ModTime time.Time
	Size    int64
}

func (fi *FileInfo) matches(stat os.FileInfo) bool {
	return stat.ModTime().Equal(fi.ModTime) && stat.Size() == fi.Size
}

// UpdateFunc modifies a document in place
type UpdateFunc[T any] func(doc *T) error

// Manager stores documents of type T as YAML files
type Manager[T any] struct {
	lockTimeout time.Duration
}

// NewManager creates a manager with the default lock timeout
func NewManager[T any]() *Manager[T] {
	return NewManagerWithTimeout[T](defaultLockTimeout)
}

// NewManagerWithTimeout creates a manager with a custom lock timeout
func NewManagerWithTimeout[T any](timeout time.Duration) *Manager[T] {
	if timeout <= 0 {
		timeout = defaultLockTimeout
	}
	return &Manager[T]{lockTimeout: timeout}
}

// withLock runs fn while holding a shared or exclusive lock on path
func (m *Manager[T]) withLock(ctx context.Context, path string, exclusive bool, fn func() error) error {
	lock := createLock(path)
	defer cleanupLockFile(path)

	lockCtx, cancel := context.WithTimeout(ctx, m.lockTimeout)
	defer cancel()

	var (
		locked bool
		err    error
	)
	if exclusive {
		locked, err = lock.TryLockContext(lockCtx, lockRetryDelay)
	} else {
		locked, err = lock.TryRLockContext(lockCtx, lockRetryDelay)
	}
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			return ErrLockTimeout
		}
		return fmt.Errorf("failed to acquire lock on %s: %w", path, err)
	}
	if !locked {
		return ErrLockTimeout
	}
	defer func() { _ = lock.Unlock() }()

	return fn()
}

// Read loads the document at path under a shared lock
func (m *Manager[T]) Read(ctx context.Context, path string) (*T, *FileInfo, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, nil, err
	}

	var (
		doc  T
		info *FileInfo
	)
	err := m.withLock(ctx, path, false, func() error {
		raw, err := readFileWithRetry(path)
		if err != nil {
			return err
		}
		stat, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("failed to stat file: %w", err)
		}
		info = &FileInfo{Path: path, ModTime: stat.ModTime(), Size: stat.Size()}

		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return fmt.Errorf("failed to unmarshal %s: %w", filepath.Base(path), err)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &doc, info, nil
}

// Write stores doc at path, replacing any existing file
func (m *Manager[T]) Write(ctx context.Context, path string, doc *T) error {
	return m.WriteWithCAS(ctx, path, doc, nil)
}

// WriteWithCAS stores doc only if the file still matches expected.
// A nil expected skips the check.
func (m *Manager[T]) WriteWithCAS(ctx context.Context, path string, doc *T, expected *FileInfo) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	return m.withLock(ctx, path, true, func() error {
		if expected != nil {
			stat, err := os.Stat(path)
			switch {
			case err == nil:
				if !expected.matches(stat) {
					return ErrConcurrentModification
				}
			case os.IsNotExist(err):
				return ErrConcurrentModification
			default:
				return fmt.Errorf("failed to stat file: %w", err)
			}
		}
		return writeAtomic(path, doc)
	})
}

func writeAtomic[T any](path string, doc *T) error {
	raw, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal yaml: %w", err)
	}

	tmp := fmt.Sprintf("%s.%d.%d.tmp", path, os.Getpid(), time.Now().UnixNano())
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := f.Write(raw); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	_ = f.Sync()
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := atomicRename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to rename file: %w", err)
	}
	return nil
}

// Update reads the document, applies fn and writes it back, retrying when
// another process wins the race. A missing file starts from the zero value.
func (m *Manager[T]) Update(ctx context.Context, path string, fn UpdateFunc[T]) error {
	for attempt := 0; attempt < maxUpdateRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		doc, info, err := m.Read(ctx, path)
		switch {
		case os.IsNotExist(err):
			doc = new(T)
			info = nil
		case err != nil:
			return fmt.Errorf("failed to read file: %w", err)
		}

		if err := fn(doc); err != nil {
			return err
		}

		err = m.WriteWithCAS(ctx, path, doc, info)
		if errors.Is(err, ErrConcurrentModification) {
			continue
		}
		return err
	}
	return fmt.Errorf("failed after %d retries: %w", maxUpdateRetries, ErrConcurrentModification)
}

// Delete removes the file at path. A missing file is not an error.
func (m *Manager[T]) Delete(ctx context.Context, path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to stat file: %w", err)
	}

	err := m.withLock(ctx, path, true, func() error { return nil })
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove file: %w", err)
	}
	return nil
}
