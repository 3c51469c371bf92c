package keyway

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aki/keybit/internal/core/bitting"
)

func TestBuiltin(t *testing.T) {
	table := Builtin()
	require.NotNil(t, table)
	assert.Greater(t, table.Len(), 10)

	rule, ok := table.Lookup("HU66")
	require.True(t, ok)
	assert.Equal(t, "HU66", rule.Name)
	require.NotNil(t, rule.Spec)
	assert.Equal(t, 8, rule.Spec.Spaces)
	assert.Equal(t, 3, rule.Spec.MaxAdjacent())

	fo38, ok := table.Lookup("FO38")
	require.True(t, ok)
	assert.Equal(t, 5, fo38.Spec.MaxDepth())
}

func TestLookup_ExactMatch(t *testing.T) {
	table := Builtin()

	_, ok := table.Lookup("hu66")
	assert.False(t, ok, "lookup is case-sensitive")

	_, ok = table.Lookup("HU66 ")
	assert.False(t, ok)

	rule, ok := table.Lookup("TR47")
	require.True(t, ok, "aliases resolve exactly")
	assert.Equal(t, "TOY43", rule.Name)
}

func TestHint(t *testing.T) {
	hint, ok := Builtin().Hint("HU100")
	require.True(t, ok)
	assert.Contains(t, hint, "ignition only")

	_, ok = Builtin().Hint("NOPE")
	assert.False(t, ok)
}

func TestSuggestAndResolve(t *testing.T) {
	table := Builtin()

	assert.Contains(t, table.Suggest("hu66"), "HU66")
	assert.Contains(t, table.Suggest("HU6"), "HU66")
	assert.Empty(t, table.Suggest(""))

	_, err := table.Resolve("TOY4")
	require.Error(t, err)
	var notFound *ErrKeywayNotFound
	require.ErrorAs(t, err, &notFound)
	assert.Contains(t, notFound.Suggestions, "TOY43")
	assert.Contains(t, err.Error(), "did you mean")

	_, err = table.Resolve("ZZZZZZZZ")
	require.Error(t, err)
	assert.Equal(t, "keyway not found: ZZZZZZZZ", err.Error())
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse([]byte("keyways: [oops"))
	assert.Error(t, err)

	_, err = Parse([]byte(`
keyways:
  AAA:
    hint: a
    aliases: [BBB]
  BBB:
    hint: b
`))
	assert.ErrorContains(t, err, "collides")
}

func TestLoadFileAndMerge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shop.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
keyways:
  HU66:
    hint: "shop override"
  SHOP1:
    hint: "shop master system"
    aliases: [S1]
    spec:
      spaces: 6
      depths: "1,2,3,4,5,6,7,8,9"
      macs: 5
`), 0o644))

	custom, err := LoadFile(path)
	require.NoError(t, err)

	merged := Builtin().Merge(custom)
	hint, _ := merged.Hint("HU66")
	assert.Equal(t, "shop override", hint)

	rule, ok := merged.Lookup("S1")
	require.True(t, ok)
	assert.Equal(t, 9, rule.Spec.MaxDepth())

	_, ok = merged.Lookup("HU100")
	assert.True(t, ok, "builtin rules survive the merge")

	origHint, _ := Builtin().Hint("HU66")
	assert.NotEqual(t, "shop override", origHint, "merge does not mutate the receiver")

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestRule_Advise(t *testing.T) {
	rule := Rule{
		Name:               "TEST",
		FixedPositions:     map[int]int{1: 1, 3: 2},
		MaxConsecutiveSame: 2,
		ReverseDepth:       true,
		Angular:            true,
		DoorOnly:           []int{2, 3},
		IgnitionOnly:       []int{1},
	}

	values := bitting.ParseCode("3?2444", 6, 4)
	advisories := rule.Advise(values)

	require.Len(t, advisories, 6)
	assert.Equal(t, Advisory{Level: LevelWarning, Position: 1, Message: "position 1 is 3 but TEST fixes it at 1"}, advisories[0])
	assert.Equal(t, LevelWarning, advisories[1].Level)
	assert.Equal(t, 6, advisories[1].Position)
	assert.Contains(t, advisories[2].Message, "reversed")
	assert.Contains(t, advisories[3].Message, "angle")
	assert.Equal(t, "door lock reads positions 2, 3", advisories[4].Message)
	assert.Equal(t, "ignition-only positions 1", advisories[5].Message)

	unknownFixed := Rule{Name: "T", FixedPositions: map[int]int{2: 4, 9: 1}}
	advisories = unknownFixed.Advise(bitting.ParseCode("1?", 2, 4))
	require.Len(t, advisories, 1)
	assert.Equal(t, LevelInfo, advisories[0].Level)

	assert.Empty(t, Rule{Name: "plain"}.Advise(values))
}

func TestRule_Constraint(t *testing.T) {
	rule := Rule{FixedPositions: map[int]int{1: 2}, MaxConsecutiveSame: 2}
	c := rule.Constraint()

	assert.True(t, c.AllowDepth(0, 2))
	assert.False(t, c.AllowDepth(0, 3))
	assert.True(t, c.AllowDepth(1, 3))

	assert.True(t, c.AllowPrefix(bitting.Code{2, 2}))
	assert.False(t, c.AllowPrefix(bitting.Code{2, 2, 2}))
	assert.True(t, c.AllowPrefix(bitting.Code{1, 2, 2}))
	assert.True(t, c.AllowPrefix(bitting.Code{2, 2, 1}))
}
