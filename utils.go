package xctid

import (
	"math"
	"strings"
)

// jsRound rounds half away from zero, like JavaScript's Math.round for the
// values seen here.
func jsRound(num float64) float64 {
	x := math.Floor(num)
	if num-x >= 0.5 {
		x = math.Ceil(num)
	}
	return math.Copysign(x, num)
}

// isOdd returns the easing minimum for curve slot i: odd slots may dip to -1.
func isOdd(num int) float64 {
	if num%2 != 0 {
		return -1.0
	}
	return 0.0
}

// solve maps a frame byte (0..255) into [minVal, maxVal], flooring for
// discrete values and keeping two decimals otherwise.
func solve(value, minVal, maxVal float64, rounding bool) float64 {
	result := value*(maxVal-minVal)/255 + minVal
	if rounding {
		return math.Floor(result)
	}
	return math.Round(result*100) / 100
}

// floatToHex renders x in uppercase hex including a fractional part, the way
// the obfuscated animation code stringifies matrix values.
func floatToHex(x float64) string {
	var intPart []byte
	quotient := int(x)
	fraction := x - float64(quotient)

	for quotient > 0 {
		quotient = int(x / 16)
		remainder := int(x - float64(quotient)*16)

		if remainder > 9 {
			intPart = append([]byte{byte(remainder + 55)}, intPart...)
		} else {
			intPart = append([]byte{byte('0' + remainder)}, intPart...)
		}
		x = float64(quotient)
	}

	if fraction == 0 {
		return string(intPart)
	}

	var b strings.Builder
	b.Write(intPart)
	b.WriteByte('.')

	for fraction > 0 {
		fraction *= 16
		integer := int(fraction)
		fraction -= float64(integer)

		if integer > 9 {
			b.WriteByte(byte(integer + 55))
		} else {
			b.WriteByte(byte('0' + integer))
		}
	}

	return b.String()
}
