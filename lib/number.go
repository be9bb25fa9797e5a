package lib

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// magnitude suffixes from -15 to 15 (femto..peta), used for compact
// link-capacity and frequency values ("1.8G" bps, "60G" Hz, "10M" bps).
const mags = "fpnum kMGTP"

// ParseNumber parses a number with an optional magnitude suffix.
func ParseNumber(s string) (float64, error) {
	rs := []rune(strings.TrimSpace(s))
	lr := len(rs)
	if lr == 0 {
		return 0, errors.New("empty number string")
	}
	f := 1.
	if i := strings.IndexRune(mags, rs[lr-1]); i != -1 {
		f = math.Pow10(-15 + 3*i)
		rs = rs[:lr-1]
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(string(rs)), 64)
	if err != nil {
		return 0, err
	}
	return f * v, nil
}

// FormatNumber formats a value with a magnitude suffix, n significant digits.
func FormatNumber(v float64, n int) string {
	sign := ' '
	if v < 0 {
		sign = '-'
	}
	v = math.Abs(v)
	for i, mag := range mags {
		f := v / math.Pow10(-15+3*i)
		if f < 1000 || i == len(mags)-1 {
			k := (n - 1) - int(math.Log10(max(f, 1e-9)))
			return strings.TrimSpace(fmt.Sprintf("%c%*.*f %c", sign, n, k, f, mag))
		}
	}
	return ""
}
