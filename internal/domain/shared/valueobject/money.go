package valueobject

import (
	"math"
	"math/big"

	"github.com/shopspring/decimal"
)

// CentPlaces is the number of fractional digits monetary amounts are rounded to
const CentPlaces int32 = 2

// ExactDecimal converts a float64 to the decimal holding its exact binary value.
//
// decimal.NewFromFloat picks the shortest string that round-trips, so 1.005 becomes
// "1.005" even though the stored double is 1.00499999999999989... Rounding has to
// see the stored value, otherwise results drift from fixed-point formatting.
// NaN and infinities have no decimal form and yield zero; callers check first.
func ExactDecimal(x float64) decimal.Decimal {
	if x == 0 || math.IsNaN(x) || math.IsInf(x, 0) {
		return decimal.Zero
	}

	frac, exp := math.Frexp(x)
	mant := big.NewInt(int64(frac * (1 << 53)))
	shift := exp - 53
	if shift >= 0 {
		return decimal.NewFromBigInt(mant.Lsh(mant, uint(shift)), 0)
	}

	// mant * 2^shift == mant * 5^-shift * 10^shift
	pow := new(big.Int).Exp(big.NewInt(5), big.NewInt(int64(-shift)), nil)
	return decimal.NewFromBigInt(mant.Mul(mant, pow), int32(shift))
}

// RoundTo rounds x to the given number of fractional digits, half away from zero,
// and returns the nearest float64. NaN and infinities pass through unchanged.
func RoundTo(x float64, places int32) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	return ExactDecimal(x).Round(places).InexactFloat64()
}

// Round2 rounds a monetary amount to cents
func Round2(x float64) float64 {
	return RoundTo(x, CentPlaces)
}

// FormatFixed renders x with exactly places fractional digits.
// NaN renders as "NaN" and infinities as "Infinity"/"-Infinity".
func FormatFixed(x float64, places int32) string {
	switch {
	case math.IsNaN(x):
		return "NaN"
	case math.IsInf(x, 1):
		return "Infinity"
	case math.IsInf(x, -1):
		return "-Infinity"
	}
	return ExactDecimal(x).StringFixed(places)
}

// FormatCents renders a monetary amount with two fractional digits
func FormatCents(x float64) string {
	return FormatFixed(x, CentPlaces)
}

// RoundWhole rounds to the nearest integer with halves going towards +Inf,
// so 292.5 becomes 293 and -292.5 becomes -292.
func RoundWhole(x float64) float64 {
	f := math.Floor(x)
	if x-f >= 0.5 {
		return f + 1
	}
	return f
}

// IsWhole reports whether x is a finite integer value
func IsWhole(x float64) bool {
	return !math.IsInf(x, 0) && x == math.Trunc(x)
}
