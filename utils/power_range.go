package utils

import (
	"strconv"
	"strings"
)

// ParseRange reads a value such as "3.0 - 12.0" or "2.5".
// A single value is returned as both bounds.
func ParseRange(s string) (lo, hi float64, ok bool) {
	s = strings.TrimSpace(s)
	if a, b, found := strings.Cut(s, " - "); found {
		lo, err1 := strconv.ParseFloat(strings.TrimSpace(a), 64)
		hi, err2 := strconv.ParseFloat(strings.TrimSpace(b), 64)
		if err1 != nil || err2 != nil {
			return 0, 0, false
		}
		return lo, hi, true
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, 0, false
	}
	return v, v, true
}
