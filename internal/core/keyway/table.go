package keyway

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/agnivade/levenshtein"
	"gopkg.in/yaml.v3"
)

//go:embed keyways.yaml
var builtinCatalog []byte

// suggestDistance is the largest edit distance offered as a "did you mean"
const suggestDistance = 2

// catalogFile is the on-disk layout of a keyway catalog
type catalogFile struct {
	Keyways map[string]Rule `yaml:"keyways"`
}

// Table maps keyway identifiers to their rules. Lookups are exact and
// case-sensitive. A Table is read-only once built.
type Table struct {
	rules   map[string]Rule
	aliases map[string]string
}

var (
	builtinOnce  sync.Once
	builtinTable *Table
)

// Builtin returns the table compiled into the binary
func Builtin() *Table {
	builtinOnce.Do(func() {
		t, err := Parse(builtinCatalog)
		if err != nil {
			panic(fmt.Sprintf("embedded keyway catalog is invalid: %v", err))
		}
		builtinTable = t
	})
	return builtinTable
}

// Parse builds a table from a YAML catalog
func Parse(data []byte) (*Table, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse keyway catalog: %w", err)
	}

	t := &Table{
		rules:   make(map[string]Rule, len(file.Keyways)),
		aliases: make(map[string]string),
	}
	for name, rule := range file.Keyways {
		if strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("keyway catalog contains an empty name")
		}
		rule.Name = name
		t.rules[name] = rule
	}
	for name, rule := range t.rules {
		for _, alias := range rule.Aliases {
			if _, clash := t.rules[alias]; clash {
				return nil, fmt.Errorf("alias %q of %s collides with a keyway name", alias, name)
			}
			if owner, clash := t.aliases[alias]; clash && owner != name {
				return nil, fmt.Errorf("alias %q is used by both %s and %s", alias, owner, name)
			}
			t.aliases[alias] = name
		}
	}
	return t, nil
}

// LoadFile reads a YAML catalog from disk
func LoadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read keyway catalog: %w", err)
	}
	return Parse(data)
}

// Merge returns a new table holding t's rules overridden by other's
func (t *Table) Merge(other *Table) *Table {
	merged := &Table{
		rules:   make(map[string]Rule, len(t.rules)+len(other.rules)),
		aliases: make(map[string]string, len(t.aliases)+len(other.aliases)),
	}
	for name, rule := range t.rules {
		merged.rules[name] = rule
	}
	for alias, name := range t.aliases {
		merged.aliases[alias] = name
	}
	for name, rule := range other.rules {
		merged.rules[name] = rule
		delete(merged.aliases, name)
	}
	for alias, name := range other.aliases {
		if _, isName := merged.rules[alias]; !isName {
			merged.aliases[alias] = name
		}
	}
	return merged
}

// Lookup returns the rule for an exact keyway name or alias
func (t *Table) Lookup(name string) (Rule, bool) {
	if rule, ok := t.rules[name]; ok {
		return rule, true
	}
	if canonical, ok := t.aliases[name]; ok {
		rule, ok := t.rules[canonical]
		return rule, ok
	}
	return Rule{}, false
}

// Hint returns the user-facing tip for a keyway
func (t *Table) Hint(name string) (string, bool) {
	rule, ok := t.Lookup(name)
	if !ok || rule.Hint == "" {
		return "", false
	}
	return rule.Hint, true
}

// Resolve is Lookup with a typed error carrying suggestions
func (t *Table) Resolve(name string) (Rule, error) {
	if rule, ok := t.Lookup(name); ok {
		return rule, nil
	}
	return Rule{}, &ErrKeywayNotFound{Name: name, Suggestions: t.Suggest(name)}
}

// Names returns every keyway name in sorted order
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.rules))
	for name := range t.rules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Rules returns every rule sorted by name
func (t *Table) Rules() []Rule {
	names := t.Names()
	rules := make([]Rule, len(names))
	for i, name := range names {
		rules[i] = t.rules[name]
	}
	return rules
}

// Len returns the number of keyways in the table
func (t *Table) Len() int {
	return len(t.rules)
}

// Suggest returns keyway names close to name, nearest first
func (t *Table) Suggest(name string) []string {
	if name == "" {
		return nil
	}
	type candidate struct {
		name     string
		distance int
	}
	var found []candidate
	upper := strings.ToUpper(name)
	for _, known := range t.Names() {
		d := levenshtein.ComputeDistance(upper, strings.ToUpper(known))
		if d <= suggestDistance {
			found = append(found, candidate{name: known, distance: d})
		}
	}
	sort.SliceStable(found, func(i, j int) bool {
		return found[i].distance < found[j].distance
	})
	out := make([]string, len(found))
	for i, c := range found {
		out[i] = c.name
	}
	return out
}
