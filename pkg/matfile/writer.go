package matfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

const writerBufSize = 1 << 16

// EncodeDense writes the header and column-major payload of an m x n matrix
// read from src with leading dimension ld.
//
// Each element is converted from T to the write kind (WithElementType, or the
// kind matching T by default) before being encoded at that kind's width.
func EncodeDense[T Number](w io.Writer, m, n uint64, src []T, ld uint64, opts ...Option) error {
	dt, layout, err := prepareEncode(m, n, src, ld, applyOptions(opts))
	if err != nil {
		return err
	}
	codec, _ := dt.codec()

	var hdr [HeaderSize]byte
	if err := EncodeHeader(hdr[:], newHeader(dt, m, n)); err != nil {
		return err
	}
	if _, err := w.Write(hdr[:]); err != nil {
		return err
	}

	class := classOf[T]()
	var elem [16]byte
	buf := elem[:codec.size]
	for j := uint64(0); j < n; j++ {
		for i := uint64(0); i < m; i++ {
			codec.put(buf, toScalar(src[layout.index(i, j)], class))
			if _, err := w.Write(buf); err != nil {
				return err
			}
		}
	}
	return nil
}

func prepareEncode[T Number](m, n uint64, src []T, ld uint64, cfg denseConfig) (DataType, strided, error) {
	dt := DataTypeOf[T]()
	if cfg.dtypeSet {
		dt = cfg.dtype
	}
	if !dt.Valid() {
		return 0, strided{}, fmt.Errorf("%w: %d", ErrUnknownDataType, uint32(dt))
	}
	layout := strided{m: m, n: n, ld: ld, transpose: cfg.transpose}
	if _, err := layout.span(len(src)); err != nil {
		return 0, strided{}, err
	}
	return dt, layout, nil
}

// SaveDense writes an m x n matrix to path, replacing any existing file.
//
// On error the file at path may be partially written and must be treated as
// invalid.
func SaveDense[T Number](m, n uint64, src []T, ld uint64, path string, opts ...Option) (err error) {
	// Reject bad arguments before truncating anything on disk.
	if _, _, err := prepareEncode(m, n, src, ld, applyOptions(opts)); err != nil {
		return fmt.Errorf("matfile: save %s: %w", path, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("matfile: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("matfile: close %s: %w", path, cerr)
		}
	}()

	bw := bufio.NewWriterSize(f, writerBufSize)
	if err := EncodeDense(bw, m, n, src, ld, opts...); err != nil {
		return fmt.Errorf("matfile: save %s: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("matfile: save %s: %w", path, err)
	}
	return nil
}
