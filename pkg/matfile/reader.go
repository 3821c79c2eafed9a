package matfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
)

const readerBufSize = 1 << 16

// checkLoadable rejects headers whose payload cannot be decoded.
func checkLoadable(h Header) error {
	if h.MatrixType != Dense {
		return fmt.Errorf("%w: %d", ErrUnsupportedMatrixType, uint32(h.MatrixType))
	}
	if !h.DataType.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownDataType, uint32(h.DataType))
	}
	return nil
}

// DecodeDense reads a header and its payload from r into dst using leading
// dimension ld. Elements are decoded according to the stored kind and
// converted to T, so a fp32 file can be loaded into a []float64 and so on.
//
// If the payload ends early, the elements read so far are already stored in
// dst and the error wraps ErrTruncated.
func DecodeDense[T Number](r io.Reader, dst []T, ld uint64, opts ...Option) (Header, error) {
	h, err := ReadHeader(r)
	if err != nil {
		return Header{}, err
	}
	if err := checkLoadable(h); err != nil {
		return h, err
	}
	cfg := applyOptions(opts)
	layout := strided{m: h.M, n: h.N, ld: ld, transpose: cfg.transpose}
	if _, err := layout.span(len(dst)); err != nil {
		return h, err
	}

	codec, _ := h.DataType.codec()
	var elem [16]byte
	buf := elem[:codec.size]
	for j := uint64(0); j < h.N; j++ {
		for i := uint64(0); i < h.M; i++ {
			if _, err := io.ReadFull(r, buf); err != nil {
				if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
					return h, fmt.Errorf("%w: payload ends at element (%d, %d): %w", ErrTruncated, i, j, io.ErrUnexpectedEOF)
				}
				return h, err
			}
			dst[layout.index(i, j)] = fromScalar[T](codec.get(buf))
		}
	}
	return h, nil
}

// LoadDense loads the matfile at path into dst with leading dimension ld.
// dst must hold at least the span implied by the stored shape; use
// LoadMatrixSize to size it.
func LoadDense[T Number](dst []T, ld uint64, path string, opts ...Option) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("matfile: %w", err)
	}
	defer func() { _ = f.Close() }()

	if _, err := DecodeDense(bufio.NewReaderSize(f, readerBufSize), dst, ld, opts...); err != nil {
		return fmt.Errorf("matfile: load %s: %w", path, err)
	}
	return nil
}

// decodePayload converts an in-memory payload (as returned by File.Payload)
// into dst. The caller has validated the header and payload length.
func decodePayload[T Number](h Header, payload []byte, dst []T, layout strided) {
	codec, _ := h.DataType.codec()
	size := uint64(codec.size)
	var off uint64
	for j := uint64(0); j < h.N; j++ {
		for i := uint64(0); i < h.M; i++ {
			dst[layout.index(i, j)] = fromScalar[T](codec.get(payload[off : off+size]))
			off += size
		}
	}
}
