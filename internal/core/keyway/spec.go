// Package keyway provides the keyway specification consumed by the
// calculator and the static table of advisory keyway rules.
package keyway

import (
	"fmt"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	// DefaultSpaces is used when a spec does not set the number of cut positions
	DefaultSpaces = 8
	// DefaultMaxDepth is used when a spec does not set its depths
	DefaultMaxDepth = 4
	// DefaultMACS is used when a spec does not set the maximum adjacent cut
	DefaultMACS = 4
	// MaxSpaces bounds the number of cut positions; no real key has more
	MaxSpaces = 20
	// minListDepth is the floor applied to comma-separated depth lists
	minListDepth = 4
)

// Depths holds a keyway's depth specification: either a single maximum
// depth ("4") or a comma-separated list of valid depths ("1,2,3,4,5").
// YAML and JSON accept both a number and a string.
type Depths struct {
	raw string
}

// DepthsMax returns a Depths in single-integer form
func DepthsMax(n int) Depths {
	return Depths{raw: strconv.Itoa(n)}
}

// ParseDepths wraps a raw depth specification
func ParseDepths(s string) Depths {
	return Depths{raw: strings.TrimSpace(s)}
}

// IsZero reports whether no depths were specified
func (d Depths) IsZero() bool {
	return d.raw == ""
}

// String returns the raw specification
func (d Depths) String() string {
	return d.raw
}

// IsList reports whether the specification is a comma-separated list
func (d Depths) IsList() bool {
	return strings.Contains(d.raw, ",")
}

// MaxDepth reduces the specification to the deepest cut.
// A single integer is taken as is; a list is reduced to max(values, 4).
// Missing or unusable input falls back to DefaultMaxDepth.
func (d Depths) MaxDepth() int {
	if d.raw == "" {
		return DefaultMaxDepth
	}
	if !d.IsList() {
		n, err := strconv.Atoi(d.raw)
		if err != nil || n <= 0 {
			return DefaultMaxDepth
		}
		return n
	}
	maxDepth := minListDepth
	for _, part := range strings.Split(d.raw, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		if n > maxDepth {
			maxDepth = n
		}
	}
	return maxDepth
}

// UnmarshalYAML accepts a scalar number or string
func (d *Depths) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("depths must be a number or a comma-separated string, got %s", node.Tag)
	}
	d.raw = strings.TrimSpace(node.Value)
	return nil
}

// MarshalYAML writes single-integer specs as numbers
func (d Depths) MarshalYAML() (interface{}, error) {
	if n, err := strconv.Atoi(d.raw); err == nil {
		return n, nil
	}
	return d.raw, nil
}

// UnmarshalJSON accepts a number or a string
func (d *Depths) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		d.raw = strings.TrimSpace(s)
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("depths must be a number or a comma-separated string: %w", err)
	}
	d.raw = strconv.Itoa(n)
	return nil
}

// MarshalJSON writes single-integer specs as numbers
func (d Depths) MarshalJSON() ([]byte, error) {
	if n, err := strconv.Atoi(d.raw); err == nil {
		return json.Marshal(n)
	}
	return json.Marshal(d.raw)
}

// Spec is the mechanical specification of a keyway
type Spec struct {
	CodeSeries string `yaml:"codeSeries,omitempty" json:"codeSeries,omitempty"`
	Spaces     int    `yaml:"spaces,omitempty" json:"spaces,omitempty"`
	Depths     Depths `yaml:"depths,omitempty" json:"depths,omitempty"`
	// MACS is a pointer so an explicit 0 differs from "unset"
	MACS   *int   `yaml:"macs,omitempty" json:"macs,omitempty"`
	Keyway string `yaml:"keyway,omitempty" json:"keyway,omitempty"`
	Lishi  string `yaml:"lishi,omitempty" json:"lishi,omitempty"`
}

// NewSpec builds a spec with every calculation field set
func NewSpec(spaces int, depths Depths, macs int) Spec {
	return Spec{
		Spaces: spaces,
		Depths: depths,
		MACS:   &macs,
	}
}

// MaxDepth returns the deepest cut of the spec
func (s Spec) MaxDepth() int {
	return s.Depths.MaxDepth()
}

// MaxAdjacent returns the MACS, defaulting when unset or negative
func (s Spec) MaxAdjacent() int {
	if s.MACS == nil || *s.MACS < 0 {
		return DefaultMACS
	}
	return *s.MACS
}

// PositionCount returns the number of cut positions, defaulting when unset
func (s Spec) PositionCount() int {
	if s.Spaces <= 0 {
		return DefaultSpaces
	}
	return s.Spaces
}

// Merge fills every unset field of s from fallback
func (s Spec) Merge(fallback Spec) Spec {
	if s.CodeSeries == "" {
		s.CodeSeries = fallback.CodeSeries
	}
	if s.Spaces <= 0 {
		s.Spaces = fallback.Spaces
	}
	if s.Depths.IsZero() {
		s.Depths = fallback.Depths
	}
	if s.MACS == nil && fallback.MACS != nil {
		macs := *fallback.MACS
		s.MACS = &macs
	}
	if s.Keyway == "" {
		s.Keyway = fallback.Keyway
	}
	if s.Lishi == "" {
		s.Lishi = fallback.Lishi
	}
	return s
}

// Normalize returns a copy with every calculation field resolved to a usable value
func (s Spec) Normalize() Spec {
	s.Spaces = s.PositionCount()
	if s.Depths.IsZero() {
		s.Depths = DepthsMax(DefaultMaxDepth)
	}
	macs := s.MaxAdjacent()
	s.MACS = &macs
	return s
}

// Describe renders the spec for display, e.g. "8 spaces, depths 1-4, MACS 2"
func (s Spec) Describe() string {
	n := s.Normalize()
	return fmt.Sprintf("%d spaces, depths 1-%d, MACS %d", n.Spaces, n.MaxDepth(), n.MaxAdjacent())
}
