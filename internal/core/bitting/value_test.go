package bitting

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseChar(t *testing.T) {
	tests := []struct {
		name     string
		input    rune
		maxDepth int
		want     Value
	}{
		{"question mark", '?', 4, Unknown()},
		{"wildcard upper", 'X', 4, Wildcard()},
		{"wildcard lower", 'x', 4, Wildcard()},
		{"half A", 'A', 4, Half(HalfA)},
		{"half b lower", 'b', 4, Half(HalfB)},
		{"half T", 'T', 4, Half(HalfT)},
		{"digit in range", '3', 4, Depth(3)},
		{"digit clamped", '9', 4, Depth(4)},
		{"zero is blank", '0', 4, Blank()},
		{"other letter", 'Q', 4, Blank()},
		{"space", ' ', 4, Blank()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseChar(tt.input, tt.maxDepth))
		})
	}
}

func TestParseToken(t *testing.T) {
	assert.Equal(t, Blank(), ParseToken("", 4))
	assert.Equal(t, Depth(2), ParseToken("2", 4))
	assert.Equal(t, Unknown(), ParseToken("?7", 4))
}

func TestDisplayChar(t *testing.T) {
	tests := []struct {
		value Value
		want  string
	}{
		{Blank(), ""},
		{Unknown(), "?"},
		{Wildcard(), "X"},
		{Half(HalfA), "A"},
		{Half(HalfB), "B"},
		{Half(HalfT), "T"},
		{Depth(7), "7"},
	}

	for _, tt := range tests {
		t.Run(tt.value.Kind().String()+tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.value.DisplayChar())
		})
	}
}

func TestCandidates(t *testing.T) {
	tests := []struct {
		name     string
		value    Value
		maxDepth int
		want     []int
	}{
		{"depth", Depth(3), 4, []int{3}},
		{"blank", Blank(), 4, []int{1, 2, 3, 4}},
		{"unknown", Unknown(), 5, []int{1, 2, 3, 4, 5}},
		{"wildcard", Wildcard(), 3, []int{1, 2, 3}},
		{"half A", Half(HalfA), 4, []int{1, 2}},
		{"half B", Half(HalfB), 4, []int{3, 4}},
		{"half T", Half(HalfT), 4, []int{2, 3}},
		{"half B partially out of range", Half(HalfB), 3, []int{3}},
		{"half B out of range", Half(HalfB), 2, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.value.Candidates(tt.maxDepth))
		})
	}
}

func TestValueAccessors(t *testing.T) {
	d, ok := Depth(2).DepthValue()
	assert.True(t, ok)
	assert.Equal(t, 2, d)

	_, ok = Unknown().DepthValue()
	assert.False(t, ok)

	h, ok := Half(HalfT).HalfKind()
	assert.True(t, ok)
	assert.Equal(t, HalfT, h)

	assert.True(t, Depth(1).IsConcrete())
	assert.False(t, Half(HalfA).IsConcrete())
	assert.Equal(t, Blank(), Value{})
	assert.Equal(t, "_", Blank().String())
}
