package matfile

import "errors"

var (
	ErrUnknownDataType         = errors.New("matfile: unknown data type")
	ErrUnsupportedMatrixType   = errors.New("matfile: unsupported matrix type")
	ErrTruncated               = errors.New("matfile: truncated file")
	ErrBufferTooSmall          = errors.New("matfile: buffer too small")
	ErrInvalidLeadingDimension = errors.New("matfile: leading dimension smaller than row count")
	ErrTooLarge                = errors.New("matfile: matrix too large")
)
