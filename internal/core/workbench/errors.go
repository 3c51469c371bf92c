package workbench

import (
	"fmt"
	"strings"
)

// ErrSessionNotFound is returned when no open session matches a reference
type ErrSessionNotFound struct {
	ID string
}

func (e ErrSessionNotFound) Error() string {
	return fmt.Sprintf("session not found: %s", e.ID)
}

// ErrAmbiguousSession is returned when an ID prefix matches several sessions
type ErrAmbiguousSession struct {
	Prefix  string
	Matches []string
}

func (e ErrAmbiguousSession) Error() string {
	return fmt.Sprintf("session prefix %q is ambiguous: %s", e.Prefix, strings.Join(e.Matches, ", "))
}
