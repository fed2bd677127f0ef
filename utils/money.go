package utils

import (
	"regexp"
	"strconv"
	"strings"
)

// pricePattern matches an optional currency symbol followed by an amount, e.g. "$1,299.00"
var pricePattern = regexp.MustCompile(`[\$€£¥]?[\d,]+\.?\d*`)

// ExtractPrice returns the first price-looking token in text.
// If none is found the trimmed text is returned.
func ExtractPrice(text string) string {
	if m := pricePattern.FindString(text); m != "" {
		return m
	}
	return strings.TrimSpace(text)
}

// ParseCents converts a price like "$1,299.50" into cents.
// ok is false when no amount can be read.
func ParseCents(price string) (int64, bool) {
	s := strings.TrimSpace(price)
	s = strings.TrimLeft(s, "$€£¥")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, false
	}

	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" {
		whole = "0"
	}
	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, false
	}

	// Only the first two fractional digits count
	frac = (frac + "00")[:2]
	cents, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, false
	}

	return units*100 + cents, true
}

// FormatUSD formats an amount in cents as a string like "$1,299.50".
// Uses comma as thousands separator.
func FormatUSD(cents int64) string {
	neg := cents < 0
	if neg {
		cents = -cents
	}

	s := strconv.FormatInt(cents/100, 10)
	var b strings.Builder
	// Pre-allocate: digits + separators + $ + cents
	b.Grow(len(s) + len(s)/3 + 5)
	if neg {
		b.WriteString("-$")
	} else {
		b.WriteString("$")
	}

	// Insert separators from the left.
	rem := len(s) % 3
	if rem == 0 {
		rem = 3
	}
	b.WriteString(s[:rem])
	for i := rem; i < len(s); i += 3 {
		b.WriteByte(',')
		b.WriteString(s[i : i+3])
	}

	b.WriteByte('.')
	c := cents % 100
	if c < 10 {
		b.WriteByte('0')
	}
	b.WriteString(strconv.FormatInt(c, 10))

	return b.String()
}
