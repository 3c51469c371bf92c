package keyway

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aki/keybit/internal/core/bitting"
)

// Rule is the advisory metadata known for one keyway.
// Positions in a Rule are 1-based, as printed on code cards.
type Rule struct {
	Name               string      `yaml:"-" json:"name"`
	FixedPositions     map[int]int `yaml:"fixedPositions,omitempty" json:"fixedPositions,omitempty"`
	DoorOnly           []int       `yaml:"doorOnly,omitempty" json:"doorOnly,omitempty"`
	IgnitionOnly       []int       `yaml:"ignitionOnly,omitempty" json:"ignitionOnly,omitempty"`
	MaxConsecutiveSame int         `yaml:"maxConsecutiveSame,omitempty" json:"maxConsecutiveSame,omitempty"`
	ReverseDepth       bool        `yaml:"reverseDepth,omitempty" json:"reverseDepth,omitempty"`
	Angular            bool        `yaml:"angular,omitempty" json:"angular,omitempty"`
	Hint               string      `yaml:"hint" json:"hint"`
	Aliases            []string    `yaml:"aliases,omitempty" json:"aliases,omitempty"`
	Spec               *Spec       `yaml:"spec,omitempty" json:"spec,omitempty"`
}

// Level grades an advisory
type Level string

const (
	// LevelInfo is a tip that needs no action
	LevelInfo Level = "info"
	// LevelWarning flags an entry that conflicts with the keyway's known structure
	LevelWarning Level = "warning"
)

// Advisory is a non-enforcing note derived from a rule.
// Position is 1-based; 0 means the note applies to the whole key.
type Advisory struct {
	Level    Level  `json:"level"`
	Position int    `json:"position,omitempty"`
	Message  string `json:"message"`
}

// Advise checks the entered positions against the rule without changing them
func (r Rule) Advise(values []bitting.Value) []Advisory {
	var out []Advisory

	for _, pos := range sortedKeys(r.FixedPositions) {
		want := r.FixedPositions[pos]
		if pos < 1 || pos > len(values) {
			continue
		}
		got, ok := values[pos-1].DepthValue()
		switch {
		case !ok:
			out = append(out, Advisory{
				Level:    LevelInfo,
				Position: pos,
				Message:  fmt.Sprintf("position %d is fixed at depth %d on %s", pos, want, r.Name),
			})
		case got != want:
			out = append(out, Advisory{
				Level:    LevelWarning,
				Position: pos,
				Message:  fmt.Sprintf("position %d is %d but %s fixes it at %d", pos, got, r.Name, want),
			})
		}
	}

	if r.MaxConsecutiveSame > 0 {
		run := 0
		prev := 0
		for i, v := range values {
			d, ok := v.DepthValue()
			if !ok {
				run = 0
				continue
			}
			if run > 0 && d == prev {
				run++
			} else {
				run = 1
			}
			prev = d
			if run == r.MaxConsecutiveSame+1 {
				out = append(out, Advisory{
					Level:    LevelWarning,
					Position: i + 1,
					Message:  fmt.Sprintf("more than %d consecutive cuts at depth %d", r.MaxConsecutiveSame, d),
				})
			}
		}
	}

	if r.ReverseDepth {
		out = append(out, Advisory{
			Level:   LevelWarning,
			Message: "depth numbering may be reversed for this keyway family; confirm depth 1 against the decoder",
		})
	}
	if r.Angular {
		out = append(out, Advisory{
			Level:   LevelInfo,
			Message: "cuts are angle-based; depth numbers index cut angles, not heights",
		})
	}
	if len(r.DoorOnly) > 0 {
		out = append(out, Advisory{
			Level:   LevelInfo,
			Message: "door lock reads positions " + joinPositions(r.DoorOnly),
		})
	}
	if len(r.IgnitionOnly) > 0 {
		out = append(out, Advisory{
			Level:   LevelInfo,
			Message: "ignition-only positions " + joinPositions(r.IgnitionOnly),
		})
	}
	return out
}

// Constraint returns the rule's enforceable fields as a search constraint.
// Only fixed positions and the consecutive-depth cap are enforced.
func (r Rule) Constraint() bitting.Constraint {
	return ruleConstraint{rule: r}
}

type ruleConstraint struct {
	rule Rule
}

func (c ruleConstraint) AllowDepth(pos, depth int) bool {
	want, ok := c.rule.FixedPositions[pos+1]
	return !ok || want == depth
}

func (c ruleConstraint) AllowPrefix(prefix bitting.Code) bool {
	limit := c.rule.MaxConsecutiveSame
	if limit <= 0 || len(prefix) <= limit {
		return true
	}
	last := prefix[len(prefix)-1]
	for _, d := range prefix[len(prefix)-limit-1 : len(prefix)-1] {
		if d != last {
			return true
		}
	}
	return false
}

func sortedKeys(m map[int]int) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

func joinPositions(positions []int) string {
	parts := make([]string, len(positions))
	for i, p := range positions {
		parts[i] = fmt.Sprint(p)
	}
	return strings.Join(parts, ", ")
}
