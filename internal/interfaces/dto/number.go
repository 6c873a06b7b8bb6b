package dto

import (
	"bytes"
	"encoding/json"
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Number is a numeric field exchanged with the editing surface.
//
// Decoding is lenient the way the surface's own Number() coercion is: JSON
// numbers pass through, strings are parsed (empty or blank is 0, garbage is
// NaN), booleans become 1 or 0, null or an absent field is 0, and objects or
// arrays are NaN. Decoding never fails, so one malformed field cannot reject a
// whole document; the NaN flows into the pricing result instead.
//
// Encoding writes NaN and infinities as null, which JSON cannot otherwise carry.
type Number float64

var decimalLiteral = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?$`)

// Float64 returns the value as a float64
func (n Number) Float64() float64 {
	return float64(n)
}

// UnmarshalJSON implements json.Unmarshaler
func (n *Number) UnmarshalJSON(data []byte) error {
	*n = Number(coerceJSON(data))
	return nil
}

// MarshalJSON implements json.Marshaler
func (n Number) MarshalJSON() ([]byte, error) {
	v := float64(n)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(v)
}

// coerceJSON converts one raw JSON value to a float64
func coerceJSON(data []byte) float64 {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return 0
	}

	switch data[0] {
	case 'n':
		return 0
	case 't':
		return 1
	case 'f':
		return 0
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return math.NaN()
		}
		return ParseNumber(s)
	case '{', '[':
		return math.NaN()
	}

	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		// Out of range literals still carry a sign
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return v
		}
		return math.NaN()
	}
	return v
}

// ParseNumber converts a string the way the editing surface coerces form
// input: surrounding whitespace is ignored, an empty string is 0, decimal and
// exponent literals, 0x/0o/0b integers and signed Infinity are accepted, and
// anything else is NaN.
func ParseNumber(s string) float64 {
	s = strings.TrimFunc(s, unicode.IsSpace)
	if s == "" {
		return 0
	}

	switch s {
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}

	if len(s) > 2 && s[0] == '0' {
		if base := radixOf(s[1]); base != 0 {
			return parseRadix(s[2:], base)
		}
	}

	if !decimalLiteral.MatchString(s) {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return v
		}
		return math.NaN()
	}
	return v
}

func radixOf(c byte) int {
	switch c {
	case 'x', 'X':
		return 16
	case 'o', 'O':
		return 8
	case 'b', 'B':
		return 2
	}
	return 0
}

// parseRadix parses an unsigned integer of any length in the given base
func parseRadix(digits string, base int) float64 {
	if strings.ContainsAny(digits, "+-_") {
		return math.NaN()
	}
	n, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return math.NaN()
	}
	f, _ := new(big.Float).SetInt(n).Float64()
	return f
}
