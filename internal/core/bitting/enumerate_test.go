package bitting

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnumerate_BridgesUnknowns(t *testing.T) {
	values := []Value{Depth(2), Unknown(), Unknown(), Depth(3)}

	result, err := Enumerate(context.Background(), values, 4, 1)
	require.NoError(t, err)
	require.NotEmpty(t, result.Candidates)

	for _, c := range result.Candidates {
		require.Len(t, c, 4)
		assert.Equal(t, 2, c[0])
		assert.Equal(t, 3, c[3])
		assert.True(t, ValidCode(c, 1), "code %s violates MACS", c)
	}
	assert.Equal(t, bruteForce(values, 4, 1), result.Codes())
}

func TestEnumerate_CapsAtLimit(t *testing.T) {
	values := ParseCode("XXX", 3, 4)

	assert.Equal(t, uint64(64), TotalCombinations(values, 4))

	result, err := Enumerate(context.Background(), values, 4, 4)
	require.NoError(t, err)
	require.Len(t, result.Candidates, DefaultResultLimit)
	assert.True(t, result.Truncated)
	assert.False(t, result.TooMany)

	all := bruteForce(values, 4, 4)
	require.Len(t, all, 64)
	assert.Equal(t, all[:DefaultResultLimit], result.Codes())
	assert.Equal(t, "111", result.Codes()[0])
	assert.Equal(t, "112", result.Codes()[1])
}

func TestEnumerate_FullyConcrete(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		values := ParseCode("22", 2, 4)
		assert.Empty(t, Violations(values, 0))

		result, err := Enumerate(context.Background(), values, 4, 0)
		require.NoError(t, err)
		assert.Equal(t, uint64(1), result.Total)
		assert.Equal(t, []string{"22"}, result.Codes())
		assert.False(t, result.Truncated)
	})

	t.Run("violating", func(t *testing.T) {
		values := ParseCode("13", 2, 4)
		assert.Equal(t, []int{0, 1}, Violations(values, 0))

		result, err := Enumerate(context.Background(), values, 4, 0)
		require.NoError(t, err)
		assert.NotNil(t, result.Candidates)
		assert.Empty(t, result.Candidates)
		assert.False(t, result.TooMany)
	})
}

func TestEnumerate_EmptyCandidateSet(t *testing.T) {
	values := []Value{Depth(1), Half(HalfB)}

	assert.Equal(t, uint64(0), TotalCombinations(values, 2))

	result, err := Enumerate(context.Background(), values, 2, 4)
	require.NoError(t, err)
	assert.Empty(t, result.Candidates)
	assert.Equal(t, uint64(0), result.Total)
	assert.False(t, result.TooMany)
}

func TestEnumerate_TooMany(t *testing.T) {
	values := ParseCode("", 10, 5)

	result, err := Enumerate(context.Background(), values, 5, 4)
	require.NoError(t, err)
	assert.True(t, result.TooMany)
	assert.Equal(t, uint64(9_765_625), result.Total)
	assert.Empty(t, result.Candidates)
}

func TestEnumerate_CustomLimitAndCeiling(t *testing.T) {
	values := ParseCode("XX", 2, 4)

	result, err := Enumerate(context.Background(), values, 4, 4, WithLimit(3))
	require.NoError(t, err)
	assert.Equal(t, []string{"11", "12", "13"}, result.Codes())
	assert.True(t, result.Truncated)

	result, err = Enumerate(context.Background(), values, 4, 4, WithCeiling(10))
	require.NoError(t, err)
	assert.True(t, result.TooMany)
}

func TestEnumerate_CeilingBoundary(t *testing.T) {
	values := ParseCode("XX", 2, 4)

	result, err := Enumerate(context.Background(), values, 4, 4, WithCeiling(16))
	require.NoError(t, err)
	assert.False(t, result.TooMany, "a total equal to the ceiling is still enumerated")
	assert.Equal(t, uint64(16), result.Total)
	assert.Len(t, result.Candidates, 16)
	assert.False(t, result.Truncated)

	result, err = Enumerate(context.Background(), values, 4, 4, WithCeiling(15))
	require.NoError(t, err)
	assert.True(t, result.TooMany)
	assert.Equal(t, uint64(16), result.Total)
	assert.Empty(t, result.Candidates)
}

func TestEnumerate_CompleteUnderCap(t *testing.T) {
	cases := []struct {
		code     string
		maxDepth int
		macs     int
	}{
		{"1?T", 4, 1},
		{"A?B", 4, 2},
		{"?5?", 6, 2},
		{"X2X", 3, 0},
	}
	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			values := ParseCode(tc.code, len(tc.code), tc.maxDepth)
			require.LessOrEqual(t, TotalCombinations(values, tc.maxDepth), uint64(DefaultResultLimit))

			result, err := Enumerate(context.Background(), values, tc.maxDepth, tc.macs)
			require.NoError(t, err)
			assert.Equal(t, bruteForce(values, tc.maxDepth, tc.macs), result.Codes())
			assert.False(t, result.Truncated)
		})
	}
}

func TestEnumerate_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	values := ParseCode("", 6, 6)
	_, err := Enumerate(ctx, values, 6, 6, WithLimit(100_000))
	assert.ErrorIs(t, err, context.Canceled)
}

type noRepeat struct{}

func (noRepeat) AllowDepth(pos, depth int) bool { return !(pos == 0 && depth == 1) }

func (noRepeat) AllowPrefix(prefix Code) bool {
	n := len(prefix)
	return n < 2 || prefix[n-1] != prefix[n-2]
}

func TestEnumerate_WithConstraint(t *testing.T) {
	values := ParseCode("XX", 2, 3)

	result, err := Enumerate(context.Background(), values, 3, 3, WithConstraint(noRepeat{}))
	require.NoError(t, err)
	assert.Equal(t, uint64(6), result.Total)
	assert.Equal(t, []string{"21", "23", "31", "32"}, result.Codes())
}

func TestTotalCombinations(t *testing.T) {
	values := []Value{Depth(1), Half(HalfA), Unknown(), Wildcard(), Blank()}
	assert.Equal(t, uint64(1*2*5*5*5), TotalCombinations(values, 5))
	assert.Equal(t, uint64(0), TotalCombinations(nil, 5))

	huge := ParseCode("", 40, 10)
	assert.Equal(t, uint64(math.MaxUint64), TotalCombinations(huge, 10))
}

func TestCuttingOrder(t *testing.T) {
	values := ParseCode("3?14A1", 6, 4)

	steps := CuttingOrder(values)
	assert.Equal(t, []CutStep{
		{Index: 2, Depth: 1, Order: 1},
		{Index: 5, Depth: 1, Order: 2},
		{Index: 0, Depth: 3, Order: 3},
		{Index: 3, Depth: 4, Order: 4},
	}, steps)

	assert.Empty(t, CuttingOrder(ParseCode("??", 2, 4)))
}

// bruteForce walks the full Cartesian product in ascending order
func bruteForce(values []Value, maxDepth, macs int) []string {
	codes := []Code{{}}
	for _, v := range values {
		var grown []Code
		for _, prefix := range codes {
			for _, d := range v.Candidates(maxDepth) {
				c := append(append(Code{}, prefix...), d)
				grown = append(grown, c)
			}
		}
		codes = grown
	}
	var out []string
	for _, c := range codes {
		if ValidCode(c, macs) {
			out = append(out, c.String())
		}
	}
	return out
}
