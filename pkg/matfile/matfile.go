// Package matfile implements the matfile dense matrix container.
//
// A matfile is a fixed 64-byte header followed by m*n elements stored in
// column-major order with no padding. The header records the format version,
// the element kind and the matrix shape. All multi-byte values are little-endian.
//
// Only the v0.7 layout is understood. Files written by earlier revisions
// (without a version field) are not readable.
package matfile

// Format constants must never change.
const (
	// CurrentMajor changes only on breaking layout changes.
	CurrentMajor uint32 = 0

	// CurrentMinor is bumped for additive changes (eg new element kinds).
	CurrentMinor uint32 = 7

	// HeaderSize is the encoded size of Header in bytes.
	HeaderSize = 64
)

// MatrixType identifies the payload storage scheme.
type MatrixType uint32

const (
	Dense MatrixType = 0
)

func (t MatrixType) String() string {
	switch t {
	case Dense:
		return "dense"
	default:
		return "unknown"
	}
}
