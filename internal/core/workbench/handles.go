package workbench

import (
	"context"
	"sort"
	"strconv"
)

// handleIndex assigns short numeric handles to session IDs.
// Released handles are reused smallest first.
type handleIndex struct {
	Counter  int            `yaml:"counter"`
	Active   map[int]string `yaml:"active"`
	Released []int          `yaml:"released,omitempty"`
}

func (ix *handleIndex) acquire(id string) int {
	if ix.Active == nil {
		ix.Active = make(map[int]string)
	}
	if h, ok := ix.lookup(id); ok {
		return h
	}

	var h int
	if len(ix.Released) > 0 {
		sort.Ints(ix.Released)
		h, ix.Released = ix.Released[0], ix.Released[1:]
	} else {
		ix.Counter++
		h = ix.Counter
	}
	ix.Active[h] = id
	return h
}

func (ix *handleIndex) release(id string) {
	if h, ok := ix.lookup(id); ok {
		delete(ix.Active, h)
		ix.Released = append(ix.Released, h)
	}
}

func (ix *handleIndex) lookup(id string) (int, bool) {
	for h, active := range ix.Active {
		if active == id {
			return h, true
		}
	}
	return 0, false
}

// reconcile drops handles whose session file no longer exists
func (ix *handleIndex) reconcile(existing map[string]bool) int {
	removed := 0
	for h, id := range ix.Active {
		if !existing[id] {
			delete(ix.Active, h)
			ix.Released = append(ix.Released, h)
			removed++
		}
	}
	return removed
}

func (s *FileStore) readHandles(ctx context.Context) (*handleIndex, error) {
	ix, _, err := s.handles.Read(ctx, s.indexFile())
	if err != nil {
		if isNotExist(err) {
			return &handleIndex{}, nil
		}
		return nil, err
	}
	return ix, nil
}

// handleFor returns the handle of id, or "" when it has none
func handleFor(ix *handleIndex, id string) string {
	if h, ok := ix.lookup(id); ok {
		return strconv.Itoa(h)
	}
	return ""
}
