package bitting

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseCode converts a typed code such as "12A3?9" into exactly spaces
// positions. Extra characters are ignored and missing positions are Blank.
func ParseCode(code string, spaces, maxDepth int) []Value {
	if spaces < 0 {
		spaces = 0
	}
	values := make([]Value, spaces)
	i := 0
	for _, c := range code {
		if i >= spaces {
			break
		}
		values[i] = ParseChar(c, maxDepth)
		i++
	}
	return values
}

// FormatCode concatenates the display character of every position
func FormatCode(values []Value) string {
	var sb strings.Builder
	for _, v := range values {
		sb.WriteString(v.DisplayChar())
	}
	return sb.String()
}

// FormatPositions renders one character per position, Blank as "_", so the
// result always parses back with ParseCode to the same positions.
func FormatPositions(values []Value) string {
	var sb strings.Builder
	for _, v := range values {
		sb.WriteString(v.String())
	}
	return sb.String()
}

// Code is a fully concrete depth sequence produced by the enumerator
type Code []int

// String concatenates the depths
func (c Code) String() string {
	var sb strings.Builder
	for _, d := range c {
		sb.WriteString(strconv.Itoa(d))
	}
	return sb.String()
}

// Values converts the code back to position values
func (c Code) Values() []Value {
	values := make([]Value, len(c))
	for i, d := range c {
		values[i] = Depth(d)
	}
	return values
}

// MarshalText renders the code as its digit string
func (c Code) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText reads a digit string produced by MarshalText
func (c *Code) UnmarshalText(text []byte) error {
	code := make(Code, len(text))
	for i, r := range text {
		if r < '0' || r > '9' {
			return fmt.Errorf("invalid code %q: position %d is not a depth", text, i+1)
		}
		code[i] = int(r - '0')
	}
	*c = code
	return nil
}
