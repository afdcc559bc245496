package goy4m

import (
	"fmt"
	"strconv"
	"strings"
)

// RatioSeparator separates numerator and denominator in the text form.
const RatioSeparator = ":"

// Ratio is an exact rational number used for frame rates and pixel aspect
// ratios. The zero value 0:0 means "unknown" and is only valid as the default
// aspect ratio.
type Ratio struct {
	Num uint // Numerator.
	Den uint // Denominator.
}

// NewRatio returns num:den as given, without reduction.
func NewRatio(num, den uint) Ratio {
	return Ratio{Num: num, Den: den}
}

// ParseRatio parses the "num:den" form. Both parts must be positive decimal
// integers.
func ParseRatio(s string) (r Ratio, err error) {
	parts := strings.Split(s, RatioSeparator)
	if len(parts) != 2 { //nolint:mnd // num and den
		err = fmt.Errorf("%w: %q", ErrRatioFormat, s)
		return
	}
	num, ok := parseUint(parts[0])
	if !ok {
		err = fmt.Errorf("%w: %q", ErrRatioValue, s)
		return
	}
	den, ok := parseUint(parts[1])
	if !ok {
		err = fmt.Errorf("%w: %q", ErrRatioValue, s)
		return
	}
	return Ratio{Num: num, Den: den}, nil
}

// IsZero reports whether either component is zero, which is the case for the
// unknown sentinel and for values that were never set.
func (r Ratio) IsZero() bool {
	return r.Num == 0 || r.Den == 0
}

// Float64 returns num/den, or 0 when the ratio is zero.
func (r Ratio) Float64() float64 {
	if r.IsZero() {
		return 0
	}
	return float64(r.Num) / float64(r.Den)
}

func (r Ratio) String() string {
	return strconv.FormatUint(uint64(r.Num), 10) + RatioSeparator + strconv.FormatUint(uint64(r.Den), 10)
}

// parseUint accepts strictly positive decimal integers that fit in 32 bits.
func parseUint(s string) (uint, bool) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil || v == 0 {
		return 0, false
	}
	return uint(v), true
}
