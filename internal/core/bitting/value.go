// Package bitting models key cut positions and provides the MACS validator,
// the candidate-code enumerator and the code parser/formatter.
package bitting

import (
	"fmt"
	"strconv"
)

// Kind identifies what is known about a single cut position
type Kind int

const (
	// KindBlank means nothing has been entered for the position
	KindBlank Kind = iota
	// KindUnknown is an explicit "?" entry
	KindUnknown
	// KindWildcard is an "X" entry; it expands like KindUnknown
	KindWildcard
	// KindHalf is a half-depth reading (A, B or T)
	KindHalf
	// KindDepth is a concrete depth
	KindDepth
)

// String returns the name of the kind
func (k Kind) String() string {
	switch k {
	case KindBlank:
		return "blank"
	case KindUnknown:
		return "unknown"
	case KindWildcard:
		return "wildcard"
	case KindHalf:
		return "half"
	case KindDepth:
		return "depth"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// HalfKind names a half-depth reading between two standard depths
type HalfKind byte

const (
	// HalfA lies between depths 1 and 2
	HalfA HalfKind = 'A'
	// HalfB lies between depths 3 and 4
	HalfB HalfKind = 'B'
	// HalfT lies between depths 2 and 3
	HalfT HalfKind = 'T'
)

// Depths returns the two concrete depths a half reading resolves to
func (h HalfKind) Depths() (lo, hi int) {
	switch h {
	case HalfA:
		return 1, 2
	case HalfB:
		return 3, 4
	case HalfT:
		return 2, 3
	}
	return 0, 0
}

// Value is the tagged state of one position.
// The zero Value is Blank.
type Value struct {
	kind  Kind
	depth int
	half  HalfKind
}

// Blank returns a position with no information
func Blank() Value { return Value{kind: KindBlank} }

// Unknown returns an explicit "?" position
func Unknown() Value { return Value{kind: KindUnknown} }

// Wildcard returns an "X" position
func Wildcard() Value { return Value{kind: KindWildcard} }

// Half returns a half-depth position
func Half(h HalfKind) Value { return Value{kind: KindHalf, half: h} }

// Depth returns a concrete depth position. Callers are expected to pass a
// depth already clamped to the keyway range; see ParseChar.
func Depth(d int) Value { return Value{kind: KindDepth, depth: d} }

// Kind returns the tag of the value
func (v Value) Kind() Kind { return v.kind }

// IsConcrete reports whether the value is a single known depth
func (v Value) IsConcrete() bool { return v.kind == KindDepth }

// DepthValue returns the concrete depth and true for KindDepth values
func (v Value) DepthValue() (int, bool) {
	if v.kind != KindDepth {
		return 0, false
	}
	return v.depth, true
}

// HalfKind returns the half-depth reading and true for KindHalf values
func (v Value) HalfKind() (HalfKind, bool) {
	if v.kind != KindHalf {
		return 0, false
	}
	return v.half, true
}

// ParseChar maps a typed character to a position value.
// Letters are case-insensitive. Digits above maxDepth are clamped to maxDepth;
// '0' and every unrecognised character yield Blank.
func ParseChar(c rune, maxDepth int) Value {
	switch c {
	case '?':
		return Unknown()
	case 'X', 'x':
		return Wildcard()
	case 'A', 'a':
		return Half(HalfA)
	case 'B', 'b':
		return Half(HalfB)
	case 'T', 't':
		return Half(HalfT)
	}
	if c >= '1' && c <= '9' {
		return Depth(clamp(int(c-'0'), 1, maxDepth))
	}
	return Blank()
}

// ParseToken parses a single-position entry such as a keystroke. Empty input
// yields Blank, longer input uses only its first character.
func ParseToken(raw string, maxDepth int) Value {
	for _, c := range raw {
		return ParseChar(c, maxDepth)
	}
	return Blank()
}

// DisplayChar is the inverse of ParseChar
func (v Value) DisplayChar() string {
	switch v.kind {
	case KindBlank:
		return ""
	case KindUnknown:
		return "?"
	case KindWildcard:
		return "X"
	case KindHalf:
		return string(rune(v.half))
	case KindDepth:
		return strconv.Itoa(v.depth)
	}
	return ""
}

// String implements fmt.Stringer; Blank renders as "_" so it stays visible
func (v Value) String() string {
	if v.kind == KindBlank {
		return "_"
	}
	return v.DisplayChar()
}

// Candidates returns the concrete depths the value may stand for, ascending.
// A half reading whose depths all exceed maxDepth yields an empty set.
func (v Value) Candidates(maxDepth int) []int {
	switch v.kind {
	case KindDepth:
		return []int{v.depth}
	case KindBlank, KindUnknown, KindWildcard:
		out := make([]int, 0, maxDepth)
		for d := 1; d <= maxDepth; d++ {
			out = append(out, d)
		}
		return out
	case KindHalf:
		lo, hi := v.half.Depths()
		out := make([]int, 0, 2)
		for _, d := range []int{lo, hi} {
			if d >= 1 && d <= maxDepth {
				out = append(out, d)
			}
		}
		return out
	}
	return nil
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
