// Package workbench keeps open calculator sessions on disk between keybit
// invocations, one YAML file per session plus a short-handle index.
package workbench

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/aki/keybit/internal/core/calculator"
	"github.com/aki/keybit/internal/core/logger"
	"github.com/aki/keybit/internal/filemanager"
)

const (
	filePrefix = "session-"
	fileSuffix = ".yaml"

	// minPrefixLen is the shortest ID prefix accepted as a reference
	minPrefixLen = 4
)

// Entry is an open session together with its short handle
type Entry struct {
	Handle   string               `json:"handle"`
	Snapshot *calculator.Snapshot `json:"session"`
}

// UpdateFunc modifies a stored session in place
type UpdateFunc func(snap *calculator.Snapshot) error

// Store persists open sessions
type Store interface {
	// Save writes a session and returns its handle
	Save(ctx context.Context, snap *calculator.Snapshot) (string, error)
	// Load returns the session a reference points to. A reference is a
	// handle, a full ID or a unique ID prefix.
	Load(ctx context.Context, ref string) (*Entry, error)
	// Update applies fn to the referenced session and writes it back
	Update(ctx context.Context, ref string, fn UpdateFunc) (*Entry, error)
	// List returns every open session ordered by handle
	List(ctx context.Context) ([]*Entry, error)
	// Delete closes the referenced session
	Delete(ctx context.Context, ref string) error
}

// FileStore implements Store on the filesystem
type FileStore struct {
	rootDir  string
	sessions *filemanager.Manager[calculator.Snapshot]
	handles  *filemanager.Manager[handleIndex]
	logger   logger.Logger
}

// Option configures a FileStore
type Option func(*FileStore)

// WithLogger sets the store logger
func WithLogger(l logger.Logger) Option {
	return func(s *FileStore) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewFileStore creates a store rooted at rootDir; files go to rootDir/sessions
func NewFileStore(rootDir string, opts ...Option) *FileStore {
	s := &FileStore{
		rootDir:  rootDir,
		sessions: filemanager.NewManager[calculator.Snapshot](),
		handles:  filemanager.NewManager[handleIndex](),
		logger:   logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *FileStore) sessionDir() string {
	return filepath.Join(s.rootDir, "sessions")
}

func (s *FileStore) sessionFile(id string) string {
	return filepath.Join(s.sessionDir(), filePrefix+id+fileSuffix)
}

func (s *FileStore) indexFile() string {
	return filepath.Join(s.sessionDir(), "handles.yaml")
}

// Save persists a session and assigns it a handle if it has none
func (s *FileStore) Save(ctx context.Context, snap *calculator.Snapshot) (string, error) {
	if snap == nil || snap.ID == "" {
		return "", errors.New("cannot save a session without an ID")
	}
	if err := s.sessions.Write(ctx, s.sessionFile(snap.ID), snap); err != nil {
		return "", fmt.Errorf("failed to write session %s: %w", snap.ID, err)
	}

	var handle int
	err := s.handles.Update(ctx, s.indexFile(), func(ix *handleIndex) error {
		handle = ix.acquire(snap.ID)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to assign handle: %w", err)
	}

	s.logger.Debug("session saved", "session", snap.ID, "handle", handle, "positions", snap.Positions)
	return strconv.Itoa(handle), nil
}

// Load resolves ref and reads the session
func (s *FileStore) Load(ctx context.Context, ref string) (*Entry, error) {
	id, handle, err := s.resolve(ctx, ref)
	if err != nil {
		return nil, err
	}
	snap, _, err := s.sessions.Read(ctx, s.sessionFile(id))
	if err != nil {
		if isNotExist(err) {
			return nil, ErrSessionNotFound{ID: ref}
		}
		return nil, fmt.Errorf("failed to read session %s: %w", id, err)
	}
	return &Entry{Handle: handle, Snapshot: snap}, nil
}

// Update applies fn under the file lock, retrying if another process wrote
// the session concurrently
func (s *FileStore) Update(ctx context.Context, ref string, fn UpdateFunc) (*Entry, error) {
	id, handle, err := s.resolve(ctx, ref)
	if err != nil {
		return nil, err
	}
	path := s.sessionFile(id)
	if _, err := os.Stat(path); err != nil {
		if isNotExist(err) {
			return nil, ErrSessionNotFound{ID: ref}
		}
		return nil, err
	}

	var updated calculator.Snapshot
	err = s.sessions.Update(ctx, path, func(snap *calculator.Snapshot) error {
		if err := fn(snap); err != nil {
			return err
		}
		updated = *snap
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("session updated", "session", id, "positions", updated.Positions)
	return &Entry{Handle: handle, Snapshot: &updated}, nil
}

// List returns every readable session. Files that fail to parse are skipped
// and logged.
func (s *FileStore) List(ctx context.Context) ([]*Entry, error) {
	ids, err := s.sessionIDs()
	if err != nil {
		return nil, err
	}
	ix, err := s.readHandles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read handle index: %w", err)
	}

	entries := make([]*Entry, 0, len(ids))
	for _, id := range ids {
		snap, _, err := s.sessions.Read(ctx, s.sessionFile(id))
		if err != nil {
			s.logger.Warn("skipping unreadable session", "session", id, "error", err)
			continue
		}
		entries = append(entries, &Entry{Handle: handleFor(ix, id), Snapshot: snap})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		hi, errI := strconv.Atoi(entries[i].Handle)
		hj, errJ := strconv.Atoi(entries[j].Handle)
		switch {
		case errI == nil && errJ == nil:
			return hi < hj
		case errI == nil:
			return true
		case errJ == nil:
			return false
		}
		return entries[i].Snapshot.CreatedAt.Before(entries[j].Snapshot.CreatedAt)
	})
	return entries, nil
}

// Delete removes the session file and releases its handle
func (s *FileStore) Delete(ctx context.Context, ref string) error {
	id, _, err := s.resolve(ctx, ref)
	if err != nil {
		return err
	}
	if err := s.sessions.Delete(ctx, s.sessionFile(id)); err != nil {
		return fmt.Errorf("failed to remove session %s: %w", id, err)
	}
	err = s.handles.Update(ctx, s.indexFile(), func(ix *handleIndex) error {
		ix.release(id)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to release handle: %w", err)
	}

	s.logger.Info("session closed", "session", id)
	return nil
}

// Reconcile releases handles of sessions whose files were removed by hand.
// It returns the number of handles released.
func (s *FileStore) Reconcile(ctx context.Context) (int, error) {
	ids, err := s.sessionIDs()
	if err != nil {
		return 0, err
	}
	existing := make(map[string]bool, len(ids))
	for _, id := range ids {
		existing[id] = true
	}

	removed := 0
	if _, err := os.Stat(s.indexFile()); isNotExist(err) {
		return 0, nil
	}
	err = s.handles.Update(ctx, s.indexFile(), func(ix *handleIndex) error {
		removed = ix.reconcile(existing)
		return nil
	})
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		s.logger.Info("released orphaned handles", "count", removed)
	}
	return removed, nil
}

// resolve maps a handle, full ID or unique ID prefix to a session ID
func (s *FileStore) resolve(ctx context.Context, ref string) (id, handle string, err error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", "", ErrSessionNotFound{ID: ref}
	}

	ix, err := s.readHandles(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to read handle index: %w", err)
	}

	if h, convErr := strconv.Atoi(ref); convErr == nil {
		if id, ok := ix.Active[h]; ok {
			return id, ref, nil
		}
	}

	ids, err := s.sessionIDs()
	if err != nil {
		return "", "", err
	}
	var matches []string
	for _, candidate := range ids {
		if candidate == ref {
			return candidate, handleFor(ix, candidate), nil
		}
		if len(ref) >= minPrefixLen && strings.HasPrefix(candidate, ref) {
			matches = append(matches, candidate)
		}
	}
	switch len(matches) {
	case 0:
		return "", "", ErrSessionNotFound{ID: ref}
	case 1:
		return matches[0], handleFor(ix, matches[0]), nil
	default:
		return "", "", ErrAmbiguousSession{Prefix: ref, Matches: matches}
	}
}

// sessionIDs lists the IDs of every session file, sorted
func (s *FileStore) sessionIDs() ([]string, error) {
	dirEntries, err := os.ReadDir(s.sessionDir())
	if err != nil {
		if isNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read session directory: %w", err)
	}

	var ids []string
	for _, e := range dirEntries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, fileSuffix) {
			continue
		}
		ids = append(ids, strings.TrimSuffix(strings.TrimPrefix(name, filePrefix), fileSuffix))
	}
	sort.Strings(ids)
	return ids, nil
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
