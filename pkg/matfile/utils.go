package matfile

import (
	"fmt"
	"math"
	"math/bits"
)

func mulU64(a, b uint64) (uint64, bool) {
	hi, lo := bits.Mul64(a, b)
	return lo, hi == 0
}

// strided describes how an m x n logical matrix sits in a flat buffer.
type strided struct {
	m, n      uint64
	ld        uint64
	transpose bool
}

// index returns the buffer offset of logical element (i, j).
func (s strided) index(i, j uint64) uint64 {
	if s.transpose {
		return j + i*s.ld
	}
	return i + j*s.ld
}

// span validates the layout against a buffer of length bufLen and returns the
// number of elements it touches.
func (s strided) span(bufLen int) (uint64, error) {
	if s.m == 0 || s.n == 0 {
		return 0, nil
	}
	inner, outer := s.m, s.n
	if s.transpose {
		inner, outer = s.n, s.m
	}
	if s.ld < inner {
		return 0, fmt.Errorf("%w: ld=%d, need >= %d", ErrInvalidLeadingDimension, s.ld, inner)
	}
	last, ok := mulU64(outer-1, s.ld)
	if !ok || last > math.MaxUint64-inner {
		return 0, ErrTooLarge
	}
	need := last + inner
	if need > uint64(bufLen) {
		return 0, fmt.Errorf("%w: need %d elements, have %d", ErrBufferTooSmall, need, bufLen)
	}
	return need, nil
}
