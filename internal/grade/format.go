package grade

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// ResultDigits is the number of fraction digits used when a result crosses
// the page boundary.
const ResultDigits = 2

// exactDigits covers the full decimal expansion of any finite float64.
const exactDigits = 1100

// FormatResult encodes a result with two fraction digits.
//
// Rounding works on the exact binary value and resolves ties away from zero,
// so 0.125 becomes "0.13" while 1.005 (stored just below the tie) becomes
// "1.00". Non-finite values encode as "NaN", "Infinity" or "-Infinity" and
// magnitudes of 1e21 or more use exponent notation.
func FormatResult(value float64) string {
	switch {
	case math.IsNaN(value):
		return "NaN"
	case math.IsInf(value, 1):
		return "Infinity"
	case math.IsInf(value, -1):
		return "-Infinity"
	case math.Abs(value) >= 1e21:
		return strconv.FormatFloat(value, 'g', -1, 64)
	}

	exact := strconv.FormatFloat(math.Abs(value), 'f', exactDigits, 64)
	whole, fraction, _ := strings.Cut(exact, ".")
	kept := new(big.Int)
	kept.SetString(whole+fraction[:ResultDigits], 10)
	if fraction[ResultDigits] >= '5' {
		kept.Add(kept, big.NewInt(1))
	}

	digits := kept.String()
	for len(digits) <= ResultDigits {
		digits = "0" + digits
	}
	split := len(digits) - ResultDigits
	out := digits[:split] + "." + digits[split:]
	if value < 0 {
		out = "-" + out
	}
	return out
}

// ParseResult decodes a transported result. Blank or malformed text reports
// false.
func ParseResult(text string) (float64, bool) {
	text = strings.TrimSpace(text)
	switch text {
	case "":
		return 0, false
	case "NaN":
		return math.NaN(), true
	case "Infinity":
		return math.Inf(1), true
	case "-Infinity":
		return math.Inf(-1), true
	}
	if !isDecimalText(text) {
		return 0, false
	}
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}
