package prompt

import (
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"
)

var decimalRe = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

var radixDigits = map[string]*regexp.Regexp{
	"0x": regexp.MustCompile(`^[0-9a-fA-F]+$`),
	"0o": regexp.MustCompile(`^[0-7]+$`),
	"0b": regexp.MustCompile(`^[01]+$`),
}

var radixBase = map[string]int{"0x": 16, "0o": 8, "0b": 2}

// ParseNumber coerces s to a number the way unary plus does for strings:
// surrounding whitespace is ignored, empty input is 0, decimal and exponent
// forms, 0x/0o/0b integers and [+-]Infinity are accepted, and anything else
// is NaN.
func ParseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	switch s {
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}

	if len(s) > 2 {
		prefix := strings.ToLower(s[:2])
		if digits, ok := radixDigits[prefix]; ok {
			// Signs, underscores and stray characters after the prefix are NaN.
			if !digits.MatchString(s[2:]) {
				return math.NaN()
			}
			n, _ := new(big.Int).SetString(s[2:], radixBase[prefix])
			f, _ := new(big.Float).SetInt(n).Float64()
			return f
		}
	}

	if !decimalRe.MatchString(s) {
		return math.NaN()
	}
	// Out-of-range values come back as ±Inf with ErrRange, which is the
	// wanted result.
	f, _ := strconv.ParseFloat(s, 64)
	return f
}
