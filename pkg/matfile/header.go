package matfile

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

// Header is the fixed-size record at the start of every matfile.
//
// The encoded layout mirrors the C struct
// {uint32 version, data_type, matrix_type; uint64 m, n, a0..a3}, including the
// 4 bytes of alignment padding after MatrixType.
type Header struct {
	Version    uint32
	DataType   DataType
	MatrixType MatrixType
	M          uint64
	N          uint64

	// Reserved for future use. Writers emit zero; readers ignore them.
	A0, A1, A2, A3 uint64
}

// MakeVersion packs a major/minor pair the way the version field stores it.
func MakeVersion(major, minor uint32) uint32 {
	return major*1000 + minor
}

// CurrentVersion is the version written by this package.
func CurrentVersion() uint32 {
	return MakeVersion(CurrentMajor, CurrentMinor)
}

func (h Header) Major() uint32 { return h.Version / 1000 }
func (h Header) Minor() uint32 { return h.Version % 1000 }

// Compatible reports whether the header was written by a format revision this
// package can decode.
func (h Header) Compatible() bool {
	return h.Major() == CurrentMajor && h.Minor() <= CurrentMinor
}

// Dims returns the row and column counts.
func (h Header) Dims() (m, n uint64) {
	return h.M, h.N
}

// PayloadSize returns the number of payload bytes the header declares.
func (h Header) PayloadSize() (uint64, error) {
	size := uint64(h.DataType.Size())
	if size == 0 {
		return 0, fmt.Errorf("%w: %d", ErrUnknownDataType, uint32(h.DataType))
	}
	count, ok := mulU64(h.M, h.N)
	if !ok {
		return 0, ErrTooLarge
	}
	total, ok := mulU64(count, size)
	if !ok {
		return 0, ErrTooLarge
	}
	return total, nil
}

func newHeader(dt DataType, m, n uint64) Header {
	return Header{
		Version:    CurrentVersion(),
		DataType:   dt,
		MatrixType: Dense,
		M:          m,
		N:          n,
	}
}

// EncodeHeader writes h into the first HeaderSize bytes of dst.
func EncodeHeader(dst []byte, h Header) error {
	if len(dst) < HeaderSize {
		return fmt.Errorf("matfile: header encode: buffer too small (%d < %d)", len(dst), HeaderSize)
	}
	binary.LittleEndian.PutUint32(dst[0:4], h.Version)
	binary.LittleEndian.PutUint32(dst[4:8], uint32(h.DataType))
	binary.LittleEndian.PutUint32(dst[8:12], uint32(h.MatrixType))
	binary.LittleEndian.PutUint32(dst[12:16], 0)
	binary.LittleEndian.PutUint64(dst[16:24], h.M)
	binary.LittleEndian.PutUint64(dst[24:32], h.N)
	binary.LittleEndian.PutUint64(dst[32:40], h.A0)
	binary.LittleEndian.PutUint64(dst[40:48], h.A1)
	binary.LittleEndian.PutUint64(dst[48:56], h.A2)
	binary.LittleEndian.PutUint64(dst[56:64], h.A3)
	return nil
}

// DecodeHeader reads a Header from the first HeaderSize bytes of src.
// No field is validated.
func DecodeHeader(src []byte) (Header, error) {
	if len(src) < HeaderSize {
		return Header{}, fmt.Errorf("%w: header needs %d bytes, have %d", ErrTruncated, HeaderSize, len(src))
	}
	return Header{
		Version:    binary.LittleEndian.Uint32(src[0:4]),
		DataType:   DataType(binary.LittleEndian.Uint32(src[4:8])),
		MatrixType: MatrixType(binary.LittleEndian.Uint32(src[8:12])),
		M:          binary.LittleEndian.Uint64(src[16:24]),
		N:          binary.LittleEndian.Uint64(src[24:32]),
		A0:         binary.LittleEndian.Uint64(src[32:40]),
		A1:         binary.LittleEndian.Uint64(src[40:48]),
		A2:         binary.LittleEndian.Uint64(src[48:56]),
		A3:         binary.LittleEndian.Uint64(src[56:64]),
	}, nil
}

// ReadHeader reads exactly one header record from r.
func ReadHeader(r io.Reader) (Header, error) {
	var buf [HeaderSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return Header{}, fmt.Errorf("%w: %w", ErrTruncated, io.ErrUnexpectedEOF)
		}
		return Header{}, err
	}
	return DecodeHeader(buf[:])
}

// LoadHeader reads the header of the matfile at path without touching the payload.
func LoadHeader(path string) (Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return Header{}, fmt.Errorf("matfile: %w", err)
	}
	defer func() { _ = f.Close() }()

	h, err := ReadHeader(f)
	if err != nil {
		return Header{}, fmt.Errorf("matfile: read header %s: %w", path, err)
	}
	return h, nil
}

// LoadMatrixSize returns the row and column counts stored at path.
func LoadMatrixSize(path string) (m, n uint64, err error) {
	h, err := LoadHeader(path)
	if err != nil {
		return 0, 0, err
	}
	m, n = h.Dims()
	return m, n, nil
}

// LoadDType returns the element kind stored at path.
func LoadDType(path string) (DataType, error) {
	h, err := LoadHeader(path)
	if err != nil {
		return 0, err
	}
	return h.DataType, nil
}
