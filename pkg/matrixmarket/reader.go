package matrixmarket

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/bits"
	"os"
	"strconv"
	"strings"

	"github.com/samcharles93/matfile/pkg/matfile"
)

const readerBufSize = 1 << 16

// readLine returns the next line without its terminator. A final line without
// a newline is returned with a nil error.
func readLine(br *bufio.Reader) (string, error) {
	line, err := br.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// readSize skips comment and blank lines and parses "m n nnz".
func readSize(br *bufio.Reader) (m, n, nnz uint64, err error) {
	for {
		line, err := readLine(br)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return 0, 0, 0, fmt.Errorf("%w: missing size line: %w", ErrMalformed, io.ErrUnexpectedEOF)
			}
			return 0, 0, 0, err
		}
		fields := strings.Fields(line)
		if len(fields) == 0 || strings.HasPrefix(fields[0], "%") {
			continue
		}
		if len(fields) < 3 {
			return 0, 0, 0, fmt.Errorf("%w: size line %q", ErrMalformed, line)
		}
		var dims [3]uint64
		for k := range dims {
			v, perr := strconv.ParseUint(fields[k], 10, 64)
			if perr != nil {
				return 0, 0, 0, fmt.Errorf("%w: size line %q: %w", ErrMalformed, line, perr)
			}
			dims[k] = v
		}
		return dims[0], dims[1], dims[2], nil
	}
}

// ReadMatrixSize reads the banner and size line from r and returns the shape.
func ReadMatrixSize(r io.Reader) (m, n uint64, err error) {
	br := bufio.NewReader(r)
	if _, err := readLine(br); err != nil {
		if errors.Is(err, io.EOF) {
			return 0, 0, fmt.Errorf("%w: empty file: %w", ErrMalformed, io.ErrUnexpectedEOF)
		}
		return 0, 0, err
	}
	m, n, _, err = readSize(br)
	return m, n, err
}

// LoadMatrixSize returns the shape declared by the .mtx file at path.
func LoadMatrixSize(path string) (m, n uint64, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("matrixmarket: %w", err)
	}
	defer func() { _ = f.Close() }()

	m, n, err = ReadMatrixSize(f)
	if err != nil {
		return 0, 0, fmt.Errorf("matrixmarket: %s: %w", path, err)
	}
	return m, n, nil
}

// checkDst validates a column-major destination of shape m x n with stride ld.
func checkDst(m, n, ld uint64, dstLen int) error {
	if m == 0 || n == 0 {
		return nil
	}
	if ld < m {
		return fmt.Errorf("%w: ld=%d, need >= %d", ErrInvalidLeadingDimension, ld, m)
	}
	hi, last := bits.Mul64(n-1, ld)
	if hi != 0 || last+m < last {
		return matfile.ErrTooLarge
	}
	if need := last + m; need > uint64(dstLen) {
		return fmt.Errorf("%w: need %d elements, have %d", ErrBufferTooSmall, need, dstLen)
	}
	return nil
}

// ReadMatrix parses a Matrix Market stream into dst with leading dimension
// ld. The declared entry count is trusted: fewer entries than declared is an
// error, extra trailing data is ignored.
func ReadMatrix[T matfile.Number](r io.Reader, dst []T, ld uint64, opts ...Option) error {
	var cfg loadConfig
	for _, o := range opts {
		if o != nil {
			o(&cfg)
		}
	}

	br := bufio.NewReaderSize(r, readerBufSize)
	first, err := readLine(br)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty file: %w", ErrMalformed, io.ErrUnexpectedEOF)
		}
		return err
	}
	banner, err := ParseBanner(first)
	if err != nil {
		return err
	}
	m, n, nnz, err := readSize(br)
	if err != nil {
		return err
	}
	if err := checkDst(m, n, ld, len(dst)); err != nil {
		return err
	}

	if !cfg.keepContents {
		for j := uint64(0); j < n; j++ {
			clear(dst[j*ld : j*ld+m])
		}
	}

	sc := bufio.NewScanner(br)
	sc.Split(bufio.ScanWords)
	next := func(entry uint64) (string, error) {
		if sc.Scan() {
			return sc.Text(), nil
		}
		if err := sc.Err(); err != nil {
			return "", err
		}
		return "", fmt.Errorf("matrixmarket: entry %d of %d: %w", entry+1, nnz, io.ErrUnexpectedEOF)
	}
	index := func(entry uint64, limit uint64) (uint64, error) {
		tok, err := next(entry)
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseUint(tok, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: entry %d: index %q", ErrMalformed, entry+1, tok)
		}
		if v == 0 || v > limit {
			return 0, fmt.Errorf("%w: entry %d: index %d outside [1, %d]", ErrIndexOutOfRange, entry+1, v, limit)
		}
		return v - 1, nil
	}

	for l := uint64(0); l < nnz; l++ {
		i, err := index(l, m)
		if err != nil {
			return err
		}
		j, err := index(l, n)
		if err != nil {
			return err
		}

		v := T(1)
		if banner.Field == Real {
			tok, err := next(l)
			if err != nil {
				return err
			}
			f, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return fmt.Errorf("%w: entry %d: value %q", ErrMalformed, l+1, tok)
			}
			v = T(f)
		}

		if banner.Symmetry == Symmetric && (j >= m || i >= n) {
			return fmt.Errorf("%w: entry %d: mirror of (%d, %d) outside %dx%d", ErrIndexOutOfRange, l+1, i+1, j+1, m, n)
		}
		dst[i+j*ld] = v
		if banner.Symmetry == Symmetric {
			dst[j+i*ld] = v
		}
	}
	return nil
}

// LoadMatrix loads the .mtx file at path into dst with leading dimension ld.
// Use LoadMatrixSize to size dst.
func LoadMatrix[T matfile.Number](dst []T, ld uint64, path string, opts ...Option) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("matrixmarket: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := ReadMatrix(f, dst, ld, opts...); err != nil {
		return fmt.Errorf("matrixmarket: load %s: %w", path, err)
	}
	return nil
}
