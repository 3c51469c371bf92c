// Package calculator provides the bitting calculator session: the owned,
// mutable position state of one key being decoded.
package calculator

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/aki/keybit/internal/core/bitting"
	"github.com/aki/keybit/internal/core/keyway"
)

// Stats summarises the current positions
type Stats struct {
	TotalCombinations uint64 `json:"total_combinations"`
	KnownCount        int    `json:"known_count"`
	UnknownCount      int    `json:"unknown_count"`
	HalfCount         int    `json:"half_count"`
	BlankCount        int    `json:"blank_count"`
}

// Session is one calculator opened for a keyway.
// A Session is not safe for concurrent use.
type Session struct {
	id        string
	spec      keyway.Spec
	maxDepth  int
	macs      int
	values    []bitting.Value
	status    Status
	matches   *bitting.MatchResult
	rule      *keyway.Rule
	cfg       config
	createdAt time.Time
	updatedAt time.Time
}

// New opens a session with every position Blank
func New(spec keyway.Spec, opts ...Option) *Session {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	now := time.Now()
	s := &Session{
		id:        uuid.New().String(),
		cfg:       cfg,
		createdAt: now,
		updatedAt: now,
	}
	s.applySpec(spec)
	s.values = make([]bitting.Value, s.spec.Spaces)
	s.status = StatusEmpty

	s.cfg.logger.Debug("calculator opened",
		"session", s.id,
		"keyway", s.spec.Keyway,
		"spaces", s.spec.Spaces,
		"max_depth", s.maxDepth,
		"macs", s.macs)
	return s
}

func (s *Session) applySpec(spec keyway.Spec) {
	s.spec = spec.Normalize()
	s.maxDepth = s.spec.MaxDepth()
	s.macs = s.spec.MaxAdjacent()
	s.rule = nil
	if s.spec.Keyway != "" {
		if rule, ok := s.cfg.table.Lookup(s.spec.Keyway); ok {
			s.rule = &rule
		}
	}
}

// ID returns the session identifier
func (s *Session) ID() string { return s.id }

// Spec returns the normalized keyway spec
func (s *Session) Spec() keyway.Spec { return s.spec }

// MaxDepth returns the deepest cut of the keyway
func (s *Session) MaxDepth() int { return s.maxDepth }

// Status returns the current state
func (s *Session) Status() Status { return s.status }

// CreatedAt returns when the session was opened
func (s *Session) CreatedAt() time.Time { return s.createdAt }

// UpdatedAt returns when the positions last changed
func (s *Session) UpdatedAt() time.Time { return s.updatedAt }

// RulesEnforced reports whether enumeration honours the keyway rule
func (s *Session) RulesEnforced() bool { return s.cfg.enforceRules }

// Values returns a copy of the positions
func (s *Session) Values() []bitting.Value {
	out := make([]bitting.Value, len(s.values))
	copy(out, s.values)
	return out
}

// Code returns the typed code, Blank positions omitted
func (s *Session) Code() string {
	return bitting.FormatCode(s.values)
}

// Positions returns one character per position with Blank as "_"
func (s *Session) Positions() string {
	return bitting.FormatPositions(s.values)
}

// SetPosition updates one position from raw input. Unrecognised input
// becomes Blank and digits above the maximum depth are clamped.
func (s *Session) SetPosition(index int, raw string) error {
	if index < 0 || index >= len(s.values) {
		return ErrPositionOutOfRange{Index: index, Spaces: len(s.values)}
	}
	s.values[index] = bitting.ParseToken(raw, s.maxDepth)
	s.changed()
	return nil
}

// ParseFullCode replaces every position from a typed code
func (s *Session) ParseFullCode(code string) {
	s.values = bitting.ParseCode(code, s.spec.Spaces, s.maxDepth)
	s.changed()
}

// Reset clears every position to Blank
func (s *Session) Reset() {
	s.values = make([]bitting.Value, s.spec.Spaces)
	s.changed()
}

// Reopen switches the session to another spec. Positions are cleared when the
// keyway changes; otherwise they are re-read under the new spec.
func (s *Session) Reopen(spec keyway.Spec) {
	previous := s.spec.Keyway
	positions := s.Positions()
	s.applySpec(spec)
	if s.spec.Keyway != previous {
		s.values = make([]bitting.Value, s.spec.Spaces)
	} else {
		s.values = bitting.ParseCode(positions, s.spec.Spaces, s.maxDepth)
	}
	s.changed()
}

// changed re-derives status and drops results computed for earlier positions
func (s *Session) changed() {
	s.matches = nil
	s.updatedAt = time.Now()
	next := deriveStatus(s.values)
	if next != s.status {
		s.cfg.logger.Debug("calculator state changed",
			"session", s.id,
			"from", s.status,
			"to", next)
		s.status = next
	}
}

// Violations returns the indices of concrete positions breaking the MACS
func (s *Session) Violations() []int {
	return bitting.Violations(s.values, s.macs)
}

// Stats counts the positions and the combinations they allow
func (s *Session) Stats() Stats {
	st := Stats{TotalCombinations: bitting.TotalCombinations(s.values, s.maxDepth)}
	for _, v := range s.values {
		switch v.Kind() {
		case bitting.KindDepth:
			st.KnownCount++
			continue
		case bitting.KindHalf:
			st.HalfCount++
		case bitting.KindBlank:
			st.BlankCount++
		case bitting.KindUnknown, bitting.KindWildcard:
		}
		st.UnknownCount++
	}
	return st
}

// FindMatchingCodes enumerates candidate codes for the current positions and
// attaches the result to the session. A result with TooMany set is a normal
// outcome; errors are returned only for a disallowed state or cancellation.
func (s *Session) FindMatchingCodes(ctx context.Context) (bitting.MatchResult, error) {
	unknowns := s.Stats().UnknownCount
	if !s.status.CanFindMatches() ||
		(s.cfg.maxUnknowns > 0 && unknowns > s.cfg.maxUnknowns) {
		return bitting.MatchResult{}, ErrEnumerationUnavailable{
			Status:   s.status,
			Unknowns: unknowns,
			Limit:    s.cfg.maxUnknowns,
		}
	}

	opts := []bitting.Option{
		bitting.WithLimit(s.cfg.resultLimit),
		bitting.WithCeiling(s.cfg.ceiling),
	}
	if s.cfg.enforceRules && s.rule != nil {
		opts = append(opts, bitting.WithConstraint(s.rule.Constraint()))
	}

	start := time.Now()
	result, err := bitting.Enumerate(ctx, s.values, s.maxDepth, s.macs, opts...)
	if err != nil {
		return bitting.MatchResult{}, err
	}
	s.matches = &result

	s.cfg.logger.Debug("enumeration finished",
		"session", s.id,
		"code", s.Positions(),
		"total", result.Total,
		"found", len(result.Candidates),
		"too_many", result.TooMany,
		"truncated", result.Truncated,
		"elapsed", time.Since(start))
	return result, nil
}

// Matches returns the result of the last enumeration, if it is still current
func (s *Session) Matches() (bitting.MatchResult, bool) {
	if s.matches == nil {
		return bitting.MatchResult{}, false
	}
	return *s.matches, true
}

// CuttingOrder suggests a shallow-to-deep order for the concrete positions
func (s *Session) CuttingOrder() []bitting.CutStep {
	return bitting.CuttingOrder(s.values)
}

// Rule returns the keyway rule for the session's keyway
func (s *Session) Rule() (keyway.Rule, bool) {
	if s.rule == nil {
		return keyway.Rule{}, false
	}
	return *s.rule, true
}

// KeywayHint returns the tip for the session's keyway
func (s *Session) KeywayHint() (string, bool) {
	return s.cfg.table.Hint(s.spec.Keyway)
}

// Advisories checks the positions against the keyway rule
func (s *Session) Advisories() []keyway.Advisory {
	if s.rule == nil {
		return nil
	}
	return s.rule.Advise(s.values)
}
