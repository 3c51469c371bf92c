package calculator

import (
	"github.com/aki/keybit/internal/core/bitting"
	"github.com/aki/keybit/internal/core/keyway"
	"github.com/aki/keybit/internal/core/logger"
)

// DefaultMaxUnknowns is the largest number of non-concrete positions for which
// FindMatchingCodes runs
const DefaultMaxUnknowns = 4

// config holds the session configuration
type config struct {
	maxUnknowns  int
	resultLimit  int
	ceiling      uint64
	enforceRules bool
	table        *keyway.Table
	logger       logger.Logger
}

func defaultConfig() config {
	return config{
		maxUnknowns: DefaultMaxUnknowns,
		resultLimit: bitting.DefaultResultLimit,
		ceiling:     bitting.DefaultCombinationCeiling,
		table:       keyway.Builtin(),
		logger:      logger.Nop(),
	}
}

// Option is a function that configures a session
type Option func(*config)

// WithMaxUnknowns sets how many non-concrete positions enumeration accepts.
// Zero removes the limit; the combination ceiling still applies.
func WithMaxUnknowns(n int) Option {
	return func(c *config) {
		if n >= 0 {
			c.maxUnknowns = n
		}
	}
}

// WithResultLimit caps the number of candidate codes
func WithResultLimit(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.resultLimit = n
		}
	}
}

// WithCombinationCeiling sets the search-space size above which enumeration is skipped
func WithCombinationCeiling(n uint64) Option {
	return func(c *config) {
		if n > 0 {
			c.ceiling = n
		}
	}
}

// WithRuleEnforcement makes enumeration honour the keyway rule's fixed
// positions and consecutive-depth cap. Off by default: rules are advisory.
func WithRuleEnforcement(enabled bool) Option {
	return func(c *config) {
		c.enforceRules = enabled
	}
}

// WithTable sets the keyway table used for hints and advisories
func WithTable(t *keyway.Table) Option {
	return func(c *config) {
		if t != nil {
			c.table = t
		}
	}
}

// WithLogger sets the session logger
func WithLogger(l logger.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
