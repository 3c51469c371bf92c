package calculator

import (
	"context"
	"errors"

	"github.com/aki/keybit/internal/core/bitting"
	"github.com/aki/keybit/internal/core/keyway"
)

// Analysis is a read-only report of a session. Positions in
// ViolatingPositions are 1-based.
type Analysis struct {
	ID                 string               `json:"id"`
	Spec               keyway.Spec          `json:"spec"`
	Status             Status               `json:"status"`
	Code               string               `json:"code"`
	Positions          string               `json:"positions"`
	Stats              Stats                `json:"stats"`
	ViolatingPositions []int                `json:"violating_positions"`
	CuttingOrder       []bitting.CutStep    `json:"cutting_order"`
	Hint               string               `json:"hint,omitempty"`
	Advisories         []keyway.Advisory    `json:"advisories,omitempty"`
	RulesEnforced      bool                 `json:"rules_enforced"`
	Matches            *bitting.MatchResult `json:"matches,omitempty"`
	MatchError         string               `json:"match_error,omitempty"`
}

// Analyze builds a report of the session. With findMatches set it also runs
// FindMatchingCodes; a disallowed state is reported in MatchError rather than
// returned. Only cancellation is returned as an error.
func (s *Session) Analyze(ctx context.Context, findMatches bool) (Analysis, error) {
	violations := s.Violations()
	oneBased := make([]int, len(violations))
	for i, idx := range violations {
		oneBased[i] = idx + 1
	}

	a := Analysis{
		ID:                 s.id,
		Spec:               s.spec,
		Status:             s.status,
		Code:               s.Code(),
		Positions:          s.Positions(),
		Stats:              s.Stats(),
		ViolatingPositions: oneBased,
		CuttingOrder:       s.CuttingOrder(),
		Advisories:         s.Advisories(),
		RulesEnforced:      s.cfg.enforceRules,
	}
	if hint, ok := s.KeywayHint(); ok {
		a.Hint = hint
	}

	if !findMatches {
		if result, ok := s.Matches(); ok {
			a.Matches = &result
		}
		return a, nil
	}

	result, err := s.FindMatchingCodes(ctx)
	var unavailable ErrEnumerationUnavailable
	switch {
	case errors.As(err, &unavailable):
		a.MatchError = unavailable.Error()
	case err != nil:
		return Analysis{}, err
	default:
		a.Matches = &result
	}
	return a, nil
}
