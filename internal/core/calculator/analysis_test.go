package calculator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aki/keybit/internal/core/keyway"
)

func TestAnalyze(t *testing.T) {
	spec := keyway.NewSpec(4, keyway.DepthsMax(4), 1)
	spec.Keyway = "HU64"
	s := New(spec)
	s.ParseFullCode("14?2")

	a, err := s.Analyze(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, s.ID(), a.ID)
	assert.Equal(t, StatusPartial, a.Status)
	assert.Equal(t, "14?2", a.Code)
	assert.Equal(t, []int{1, 2}, a.ViolatingPositions)
	assert.Len(t, a.CuttingOrder, 3)
	assert.Contains(t, a.Hint, "Mercedes")
	assert.Nil(t, a.Matches)
	assert.Empty(t, a.MatchError)

	a, err = s.Analyze(context.Background(), true)
	require.NoError(t, err)
	require.NotNil(t, a.Matches)
	assert.Empty(t, a.Matches.Candidates, "MACS 1 cannot bridge 1 and 4")

	again, err := s.Analyze(context.Background(), false)
	require.NoError(t, err)
	assert.NotNil(t, again.Matches, "a current result is included without re-running")
}

func TestAnalyze_ReportsUnavailableSearch(t *testing.T) {
	s := New(keyway.Spec{})

	a, err := s.Analyze(context.Background(), true)
	require.NoError(t, err)
	assert.Nil(t, a.Matches)
	assert.Contains(t, a.MatchError, "key is empty")
	assert.Empty(t, a.ViolatingPositions)
}

func TestAnalyze_Cancelled(t *testing.T) {
	s := New(keyway.NewSpec(6, keyway.DepthsMax(9), 9), WithMaxUnknowns(0))
	s.ParseFullCode("1")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.Analyze(ctx, true)
	assert.ErrorIs(t, err, context.Canceled)

	_, ok := s.Matches()
	assert.False(t, ok)
}
