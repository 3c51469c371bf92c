package calculator

import "fmt"

// ErrPositionOutOfRange is returned when an edit targets a position the key does not have
type ErrPositionOutOfRange struct {
	Index  int
	Spaces int
}

func (e ErrPositionOutOfRange) Error() string {
	return fmt.Sprintf("position %d out of range: key has %d spaces", e.Index+1, e.Spaces)
}

// ErrEnumerationUnavailable is returned when FindMatchingCodes is called from a
// state that does not allow it
type ErrEnumerationUnavailable struct {
	Status   Status
	Unknowns int
	Limit    int
}

func (e ErrEnumerationUnavailable) Error() string {
	if !e.Status.CanFindMatches() {
		return fmt.Sprintf("cannot search for matches: key is %s", e.Status)
	}
	return fmt.Sprintf("cannot search for matches: %d unknown positions, limit is %d", e.Unknowns, e.Limit)
}
