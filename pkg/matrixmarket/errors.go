package matrixmarket

import (
	"errors"

	"github.com/samcharles93/matfile/pkg/matfile"
)

var (
	ErrUnsupportedFormat = errors.New("matrixmarket: unsupported format")
	ErrMalformed         = errors.New("matrixmarket: malformed file")
	ErrIndexOutOfRange   = errors.New("matrixmarket: index out of range")

	// Destination layout errors are shared with the matfile codec so callers
	// can check either package's sentinel.
	ErrBufferTooSmall          = matfile.ErrBufferTooSmall
	ErrInvalidLeadingDimension = matfile.ErrInvalidLeadingDimension
)
