package bitting

import (
	"context"
	"math"
	"math/bits"
)

const (
	// DefaultResultLimit is the maximum number of candidate codes returned
	DefaultResultLimit = 50
	// DefaultCombinationCeiling is the largest search space that is enumerated
	DefaultCombinationCeiling = 100_000

	// ctxCheckInterval is how many search steps run between context polls
	ctxCheckInterval = 1024
)

// MatchResult is the outcome of an enumeration run.
// When TooMany is set the search was skipped and Candidates is empty.
type MatchResult struct {
	Candidates []Code `json:"candidates"`
	Total      uint64 `json:"total_combinations"`
	TooMany    bool   `json:"too_many"`
	Truncated  bool   `json:"truncated"`
}

// Codes returns the candidates as digit strings
func (r MatchResult) Codes() []string {
	out := make([]string, len(r.Candidates))
	for i, c := range r.Candidates {
		out[i] = c.String()
	}
	return out
}

// Constraint restricts the search beyond the candidate sets and MACS.
// Positions are 0-based.
type Constraint interface {
	// AllowDepth reports whether depth may be cut at pos
	AllowDepth(pos, depth int) bool
	// AllowPrefix is called with every MACS-valid partial code
	AllowPrefix(prefix Code) bool
}

type enumConfig struct {
	limit      int
	ceiling    uint64
	constraint Constraint
}

// Option configures Enumerate
type Option func(*enumConfig)

// WithLimit caps the number of returned candidates; non-positive values keep the default
func WithLimit(n int) Option {
	return func(c *enumConfig) {
		if n > 0 {
			c.limit = n
		}
	}
}

// WithCeiling sets the combination count above which enumeration is skipped
func WithCeiling(n uint64) Option {
	return func(c *enumConfig) {
		if n > 0 {
			c.ceiling = n
		}
	}
}

// WithConstraint adds an extra search constraint such as an enforced keyway rule
func WithConstraint(con Constraint) Option {
	return func(c *enumConfig) {
		c.constraint = con
	}
}

// TotalCombinations returns the product of every position's candidate count.
// The product saturates at math.MaxUint64.
func TotalCombinations(values []Value, maxDepth int) uint64 {
	if len(values) == 0 {
		return 0
	}
	total := uint64(1)
	for _, v := range values {
		total = mulSaturating(total, uint64(len(v.Candidates(maxDepth))))
	}
	return total
}

// Enumerate lists every code consistent with values whose adjacent depths
// differ by at most macs. Positions are searched depth-first in ascending
// depth order, so the result is deterministic. The only error returned is the
// context's error when ctx is cancelled mid-search.
func Enumerate(ctx context.Context, values []Value, maxDepth, macs int, opts ...Option) (MatchResult, error) {
	cfg := enumConfig{
		limit:   DefaultResultLimit,
		ceiling: DefaultCombinationCeiling,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	n := len(values)
	cands := make([][]int, n)
	total := uint64(0)
	if n > 0 {
		total = 1
	}
	for i, v := range values {
		set := v.Candidates(maxDepth)
		if cfg.constraint != nil {
			filtered := set[:0:0]
			for _, d := range set {
				if cfg.constraint.AllowDepth(i, d) {
					filtered = append(filtered, d)
				}
			}
			set = filtered
		}
		cands[i] = set
		total = mulSaturating(total, uint64(len(set)))
	}

	result := MatchResult{Candidates: []Code{}, Total: total}
	if total == 0 {
		return result, nil
	}
	if total > cfg.ceiling {
		result.TooMany = true
		return result, nil
	}

	next := make([]int, n)
	code := make(Code, n)
	steps := 0
	level := 0
	for level >= 0 {
		steps++
		if steps%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return MatchResult{}, err
			}
		}

		if next[level] == len(cands[level]) {
			next[level] = 0
			level--
			continue
		}
		d := cands[level][next[level]]
		next[level]++

		if level > 0 && abs(d-code[level-1]) > macs {
			continue
		}
		code[level] = d
		if cfg.constraint != nil && !cfg.constraint.AllowPrefix(code[:level+1]) {
			continue
		}
		if level < n-1 {
			level++
			continue
		}

		if len(result.Candidates) == cfg.limit {
			result.Truncated = true
			break
		}
		found := make(Code, n)
		copy(found, code)
		result.Candidates = append(result.Candidates, found)
	}
	return result, nil
}

func mulSaturating(a, b uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return math.MaxUint64
	}
	return lo
}
