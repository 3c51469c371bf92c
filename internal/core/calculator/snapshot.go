package calculator

import (
	"time"

	"github.com/aki/keybit/internal/core/keyway"
)

// Snapshot is the serialisable form of a session
type Snapshot struct {
	ID           string      `yaml:"id" json:"id"`
	Spec         keyway.Spec `yaml:"spec" json:"spec"`
	Positions    string      `yaml:"positions" json:"positions"`
	EnforceRules bool        `yaml:"enforceRules,omitempty" json:"enforce_rules,omitempty"`
	CreatedAt    time.Time   `yaml:"createdAt" json:"created_at"`
	UpdatedAt    time.Time   `yaml:"updatedAt" json:"updated_at"`
}

// Snapshot captures the session's spec and positions
func (s *Session) Snapshot() *Snapshot {
	return &Snapshot{
		ID:           s.id,
		Spec:         s.spec,
		Positions:    s.Positions(),
		EnforceRules: s.cfg.enforceRules,
		CreatedAt:    s.createdAt,
		UpdatedAt:    s.updatedAt,
	}
}

// Restore rebuilds a session from a snapshot. Options given here override the
// snapshot's rule enforcement flag.
func Restore(snap *Snapshot, opts ...Option) *Session {
	all := append([]Option{WithRuleEnforcement(snap.EnforceRules)}, opts...)
	s := New(snap.Spec, all...)
	if snap.ID != "" {
		s.id = snap.ID
	}
	s.ParseFullCode(snap.Positions)
	if !snap.CreatedAt.IsZero() {
		s.createdAt = snap.CreatedAt
	}
	if !snap.UpdatedAt.IsZero() {
		s.updatedAt = snap.UpdatedAt
	}
	return s
}
