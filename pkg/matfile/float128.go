package matfile

import (
	"math"
	"math/bits"
)

// IEEE 754 binary128: 1 sign bit, 15 exponent bits (bias 16383), 112 fraction bits.
// hi holds sign, exponent and the top 48 fraction bits; lo the remaining 64.
const (
	f128ExpBias  = 16383
	f128ExpMask  = 0x7FFF
	f128HiFrac   = 1<<48 - 1
	f64ExpBias   = 1023
	f64FracBits  = 52
	f64FracMask  = 1<<f64FracBits - 1
	f64QuietNaN  = 1 << 51
	f128FracGrow = 112 - f64FracBits
)

// float128FromFloat64 widens v to binary128. Every float64 is exactly representable.
func float128FromFloat64(v float64) (lo, hi uint64) {
	b := math.Float64bits(v)
	sign := b >> 63
	exp := int((b >> f64FracBits) & 0x7FF)
	frac := b & f64FracMask

	var exp128 uint64
	switch {
	case exp == 0x7FF:
		exp128 = f128ExpMask
	case exp == 0 && frac == 0:
		exp128 = 0
	case exp == 0:
		// float64 subnormal: normalise into the wider exponent range.
		shift := bits.LeadingZeros64(frac) - (63 - f64FracBits)
		frac = (frac << uint(shift)) & f64FracMask
		exp128 = uint64(1 - f64ExpBias - shift + f128ExpBias)
	default:
		exp128 = uint64(exp - f64ExpBias + f128ExpBias)
	}

	// 52 fraction bits become the top of the 112-bit fraction.
	hi = sign<<63 | exp128<<48 | frac>>(64-f128FracGrow)
	lo = frac << f128FracGrow
	return lo, hi
}

// float64FromFloat128 narrows a binary128 value to float64, rounding to nearest even.
func float64FromFloat128(lo, hi uint64) float64 {
	sign := hi >> 63
	exp := int((hi >> 48) & f128ExpMask)
	// Top 52 fraction bits and the 60 that get rounded away (left-aligned in rest).
	frac := (hi&f128HiFrac)<<4 | lo>>60
	rest := lo << 4

	if exp == f128ExpMask {
		if frac == 0 && rest == 0 {
			return math.Float64frombits(sign<<63 | 0x7FF<<f64FracBits)
		}
		return math.Float64frombits(sign<<63 | 0x7FF<<f64FracBits | f64QuietNaN | frac)
	}
	if exp == 0 {
		// binary128 subnormals are far below the float64 range.
		return math.Float64frombits(sign << 63)
	}

	e := exp - f128ExpBias
	if e > f64ExpBias {
		return math.Float64frombits(sign<<63 | 0x7FF<<f64FracBits)
	}

	if e >= 1-f64ExpBias {
		if rest > 1<<63 || (rest == 1<<63 && frac&1 == 1) {
			frac++
			if frac == 1<<f64FracBits {
				frac = 0
				e++
				if e > f64ExpBias {
					return math.Float64frombits(sign<<63 | 0x7FF<<f64FracBits)
				}
			}
		}
		return math.Float64frombits(sign<<63 | uint64(e+f64ExpBias)<<f64FracBits | frac)
	}

	// Result is a float64 subnormal (or zero). Shift the full significand right.
	shift := (1 - f64ExpBias) - e
	if shift > f64FracBits+1 {
		return math.Float64frombits(sign << 63)
	}
	sig := frac | 1<<f64FracBits
	out := sig >> uint(shift)
	roundBit := (sig >> uint(shift-1)) & 1
	sticky := sig&(1<<uint(shift-1)-1) != 0 || rest != 0
	if roundBit == 1 && (sticky || out&1 == 1) {
		out++
	}
	// A carry into bit 52 yields the smallest normal, which the encoding handles.
	return math.Float64frombits(sign<<63 | out)
}
