package calculator

import "github.com/aki/keybit/internal/core/bitting"

// Status describes how much of the key is known
type Status string

const (
	// StatusEmpty means every position is Blank
	StatusEmpty Status = "empty"
	// StatusPartial means some positions are not concrete depths
	StatusPartial Status = "partial"
	// StatusFull means every position is a concrete depth
	StatusFull Status = "full"
)

// String returns the string representation of the status
func (s Status) String() string {
	return string(s)
}

// CanFindMatches reports whether enumeration may run from this status
func (s Status) CanFindMatches() bool {
	switch s {
	case StatusPartial, StatusFull:
		return true
	case StatusEmpty:
		return false
	}
	return false
}

// deriveStatus computes the status of a position slice
func deriveStatus(values []bitting.Value) Status {
	blank, concrete := 0, 0
	for _, v := range values {
		switch v.Kind() {
		case bitting.KindBlank:
			blank++
		case bitting.KindDepth:
			concrete++
		case bitting.KindUnknown, bitting.KindWildcard, bitting.KindHalf:
		}
	}
	switch {
	case blank == len(values):
		return StatusEmpty
	case concrete == len(values):
		return StatusFull
	default:
		return StatusPartial
	}
}
