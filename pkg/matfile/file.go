package matfile

import (
	"fmt"
	"io"
	"os"
)

// File is a read-only view of a whole matfile.
type File struct {
	Data    []byte
	Header  Header
	mmapped bool
}

// Open maps a matfile read-only and validates its header and payload length.
// If mmap is unavailable, it falls back to ReadAt-based loading.
// The returned file must be closed to release any mapping.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("matfile: %w", err)
	}
	defer func() { _ = f.Close() }()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("matfile: %w", err)
	}

	size64 := stat.Size()
	if size64 > int64(int(^uint(0)>>1)) {
		// cannot index this file safely as []byte on this architecture.
		return nil, fmt.Errorf("matfile: open %s: %w", path, ErrTooLarge)
	}
	size := int(size64)
	if size < HeaderSize {
		return nil, fmt.Errorf("matfile: open %s: %w: %d bytes", path, ErrTruncated, size)
	}

	// Prefer mmap where available for zero-copy payload access.
	if data, err := mmapFile(f, size); err == nil {
		mf, parseErr := parseFileData(data, true)
		if parseErr != nil {
			_ = munmap(data)
			return nil, fmt.Errorf("matfile: open %s: %w", path, parseErr)
		}
		return mf, nil
	}

	data, err := readAllAt(f, size)
	if err != nil {
		return nil, fmt.Errorf("matfile: open %s: %w", path, err)
	}
	mf, err := parseFileData(data, false)
	if err != nil {
		return nil, fmt.Errorf("matfile: open %s: %w", path, err)
	}
	return mf, nil
}

// OpenReaderAt loads and validates a matfile from a random-access reader without mmap.
func OpenReaderAt(r io.ReaderAt, size int64) (*File, error) {
	if size < 0 || size > int64(int(^uint(0)>>1)) {
		return nil, ErrTooLarge
	}
	data, err := readAllAt(r, int(size))
	if err != nil {
		return nil, err
	}
	return parseFileData(data, false)
}

func readAllAt(r io.ReaderAt, size int) ([]byte, error) {
	if size == 0 {
		return []byte{}, nil
	}
	out := make([]byte, size)
	var off int64
	for off < int64(size) {
		n, err := r.ReadAt(out[off:], off)
		off += int64(n)
		if err == nil {
			continue
		}
		if err == io.EOF && off == int64(size) {
			break
		}
		if err == io.EOF {
			return nil, fmt.Errorf("%w: %w", ErrTruncated, io.ErrUnexpectedEOF)
		}
		return nil, err
	}
	return out, nil
}

func parseFileData(data []byte, mmapped bool) (*File, error) {
	hdr, err := DecodeHeader(data)
	if err != nil {
		return nil, err
	}
	if err := checkLoadable(hdr); err != nil {
		return nil, err
	}
	payload, err := hdr.PayloadSize()
	if err != nil {
		return nil, err
	}
	if avail := uint64(len(data) - HeaderSize); payload > avail {
		return nil, fmt.Errorf("%w: payload needs %d bytes, have %d", ErrTruncated, payload, avail)
	}
	return &File{
		Data:    data,
		Header:  hdr,
		mmapped: mmapped,
	}, nil
}

// Close releases file resources and any mmap backing.
func (f *File) Close() error {
	if f == nil || f.Data == nil {
		return nil
	}
	var err error
	if f.mmapped {
		err = munmap(f.Data)
	}
	f.Data = nil
	f.mmapped = false
	return err
}

// Payload returns a zero-copy slice of the encoded elements.
// The caller must not retain this slice after Close.
func (f *File) Payload() []byte {
	if f == nil || f.Data == nil {
		return nil
	}
	size, err := f.Header.PayloadSize()
	if err != nil {
		return nil
	}
	return f.Data[HeaderSize : HeaderSize+int(size)]
}

// ReadFile decodes the payload of f into dst with leading dimension ld.
func ReadFile[T Number](f *File, dst []T, ld uint64, opts ...Option) error {
	payload := f.Payload()
	if payload == nil {
		return fmt.Errorf("matfile: file is closed")
	}
	cfg := applyOptions(opts)
	layout := strided{m: f.Header.M, n: f.Header.N, ld: ld, transpose: cfg.transpose}
	if _, err := layout.span(len(dst)); err != nil {
		return err
	}
	decodePayload(f.Header, payload, dst, layout)
	return nil
}

// Float64s returns the matrix as a tightly packed column-major []float64.
// Integer kinds wider than 53 bits may lose precision.
func (f *File) Float64s() ([]float64, error) {
	count, ok := mulU64(f.Header.M, f.Header.N)
	if !ok || count > uint64(int(^uint(0)>>1)) {
		return nil, ErrTooLarge
	}
	out := make([]float64, count)
	if err := ReadFile(f, out, f.Header.M); err != nil {
		return nil, err
	}
	return out, nil
}
