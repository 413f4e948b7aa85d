// Package numeric implements fixed-point decimal string conversions on
// arbitrary-precision integers. Chain amounts use 18 fractional digits and
// routinely exceed 2^53, so nothing in here ever touches a float.
package numeric

import (
	"errors"
	"fmt"
	"strings"

	sdkmath "cosmossdk.io/math"
)

// RateDecimals is the fixed scale of commission/ratio fields on chain.
const RateDecimals = 18

// TokenDecimals is the base-unit scale of the native token (1 token = 10^18).
const TokenDecimals = 18

// ErrInvalidFormat reports input that is not a plain decimal number
// (characters outside [0-9.], more than one decimal point, or empty input).
var ErrInvalidFormat = errors.New("invalid numeric format")

// ParseScaled parses a decimal string into an integer scaled by 10^scale.
// The fractional part is truncated (never rounded up) when longer than
// scale and zero-padded when shorter. A single leading '-' is accepted.
func ParseScaled(s string, scale int) (sdkmath.Int, error) {
	s = strings.TrimSpace(s)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	if s == "" {
		return sdkmath.Int{}, fmt.Errorf("%w: empty input", ErrInvalidFormat)
	}

	intPart := s
	fracPart := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i+1:]
		if strings.IndexByte(fracPart, '.') >= 0 {
			return sdkmath.Int{}, fmt.Errorf("%w: multiple decimal points in %q", ErrInvalidFormat, s)
		}
	}
	if intPart == "" && fracPart == "" {
		return sdkmath.Int{}, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
	if !digitsOnly(intPart) || !digitsOnly(fracPart) {
		return sdkmath.Int{}, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}

	// Truncate or right-pad the fraction to exactly scale digits.
	if len(fracPart) > scale {
		fracPart = fracPart[:scale]
	} else {
		fracPart += strings.Repeat("0", scale-len(fracPart))
	}
	if intPart == "" {
		intPart = "0"
	}

	combined := strings.TrimLeft(intPart+fracPart, "0")
	if combined == "" {
		combined = "0"
	}
	v, ok := sdkmath.NewIntFromString(combined)
	if !ok {
		return sdkmath.Int{}, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
	if neg {
		v = v.Neg()
	}
	return v, nil
}

// FormatScaled renders an integer scaled by 10^scale as a decimal string
// with exactly scale fractional digits, preserving sign.
func FormatScaled(v sdkmath.Int, scale int) string {
	sign := ""
	if v.IsNegative() {
		sign = "-"
		v = v.Neg()
	}
	digits := v.String()
	if len(digits) <= scale {
		digits = strings.Repeat("0", scale-len(digits)+1) + digits
	}
	cut := len(digits) - scale
	if scale == 0 {
		return sign + digits
	}
	return sign + digits[:cut] + "." + digits[cut:]
}

// PercentToRatio converts a human percentage string ("10.5") to an
// 18-decimal ratio string ("0.105000000000000000") using integer division
// by 100.
func PercentToRatio(percent string) (string, error) {
	v, err := ParseScaled(percent, RateDecimals)
	if err != nil {
		return "", err
	}
	return FormatScaled(v.Quo(sdkmath.NewInt(100)), RateDecimals), nil
}

// RatioToPercent converts an 18-decimal ratio string back to a percentage,
// trimming trailing fractional zeros ("0.105000000000000000" -> "10.5").
func RatioToPercent(ratio string) (string, error) {
	v, err := ParseScaled(ratio, RateDecimals)
	if err != nil {
		return "", err
	}
	return TrimZeros(FormatScaled(v.Mul(sdkmath.NewInt(100)), RateDecimals)), nil
}

// ToBaseUnits converts a display-unit amount ("1.5") to an integer
// base-unit string ("1500000000000000000"). Excess fractional digits are
// truncated, never rounded up.
func ToBaseUnits(display string, decimals int) (string, error) {
	v, err := ParseScaled(display, decimals)
	if err != nil {
		return "", err
	}
	return v.String(), nil
}

// RatioToWire converts an 18-decimal ratio string to the chain's wire
// representation of a Dec: the bare scaled integer string
// ("0.105000000000000000" -> "105000000000000000").
func RatioToWire(ratio string) (string, error) {
	v, err := ParseScaled(ratio, RateDecimals)
	if err != nil {
		return "", err
	}
	return v.String(), nil
}

// FormatTokenAmount renders a base-unit integer string in display units,
// showing up to displayDecimals significant fractional digits counted from
// the first non-zero fractional digit. Reward-accrual dust like
// 123 base units still renders as "0.000000000000000123" instead of "0".
func FormatTokenAmount(baseUnits string, decimals, displayDecimals int) (string, error) {
	if !validInteger(baseUnits) {
		return "", fmt.Errorf("%w: %q", ErrInvalidFormat, baseUnits)
	}
	v, ok := sdkmath.NewIntFromString(baseUnits)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidFormat, baseUnits)
	}
	full := FormatScaled(v, decimals)
	dot := strings.IndexByte(full, '.')
	if dot < 0 {
		return full, nil
	}
	intPart, frac := full[:dot], full[dot+1:]

	firstSig := strings.IndexFunc(frac, func(r rune) bool { return r != '0' })
	if firstSig < 0 {
		// No significant fractional digits at all.
		return intPart, nil
	}
	end := firstSig + displayDecimals
	if end > len(frac) {
		end = len(frac)
	}
	frac = strings.TrimRight(frac[:end], "0")
	if frac == "" {
		return intPart, nil
	}
	return intPart + "." + frac, nil
}

// TrimZeros drops trailing fractional zeros and a dangling decimal point.
func TrimZeros(s string) string {
	if !strings.ContainsRune(s, '.') {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

func digitsOnly(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func validInteger(s string) bool {
	if strings.HasPrefix(s, "-") {
		s = s[1:]
	}
	return s != "" && digitsOnly(s)
}
