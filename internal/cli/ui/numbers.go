package ui

import (
	"math"
	"math/big"

	"github.com/dustin/go-humanize"
)

// compactThreshold is the count from which FormatCountShort switches to SI units
const compactThreshold = 10_000

// FormatCount renders an exact count with thousands separators, e.g. "65,536"
func FormatCount(n uint64) string {
	return humanize.BigComma(new(big.Int).SetUint64(n))
}

// FormatCountShort renders large counts compactly, e.g. "1.7M"; smaller
// counts are exact
func FormatCountShort(n uint64) string {
	if n < compactThreshold {
		return FormatCount(n)
	}
	value, prefix := humanize.ComputeSI(float64(n))
	// FtoaWithDigits truncates
	return humanize.FtoaWithDigits(math.Round(value*10)/10, 1) + prefix
}
