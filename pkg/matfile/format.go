package matfile

import (
	"bufio"
	"io"
	"math"
	"strconv"
)

// DefaultPrecision is the number of fraction digits Format prints.
const DefaultPrecision = 3

// Format writes an m x n column-major matrix to w, one row per line, each
// element in signed scientific notation (eg "+1.250e+00"). A negative
// precision selects DefaultPrecision.
func Format[T Number](w io.Writer, m, n uint64, data []T, ld uint64, precision int) error {
	layout := strided{m: m, n: n, ld: ld}
	if _, err := layout.span(len(data)); err != nil {
		return err
	}
	if precision < 0 {
		precision = DefaultPrecision
	}

	bw := bufio.NewWriter(w)
	class := classOf[T]()
	buf := make([]byte, 0, 32)
	for i := uint64(0); i < m; i++ {
		for j := uint64(0); j < n; j++ {
			v := toScalar(data[layout.index(i, j)], class).asFloat()
			buf = buf[:0]
			if !math.Signbit(v) && !math.IsNaN(v) && !math.IsInf(v, 1) {
				buf = append(buf, '+')
			}
			buf = strconv.AppendFloat(buf, v, 'e', precision, 64)
			buf = append(buf, ' ')
			if _, err := bw.Write(buf); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
