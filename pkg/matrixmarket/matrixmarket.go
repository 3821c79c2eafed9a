// Package matrixmarket reads coordinate-format Matrix Market (.mtx) files into
// dense column-major buffers.
//
// Only real and pattern fields with general or symmetric symmetry are
// understood. Entries are 1-indexed; symmetric files store one triangle and
// are mirrored on load.
package matrixmarket

import (
	"fmt"
	"strings"
)

// Symmetry is the structure qualifier from the banner.
type Symmetry uint8

const (
	General Symmetry = iota + 1
	Symmetric
)

func (s Symmetry) String() string {
	switch s {
	case General:
		return "general"
	case Symmetric:
		return "symmetric"
	default:
		return "unsupported"
	}
}

// Field is the value kind from the banner.
type Field uint8

const (
	Real Field = iota + 1
	Pattern
)

func (f Field) String() string {
	switch f {
	case Real:
		return "real"
	case Pattern:
		return "pattern"
	default:
		return "unsupported"
	}
}

// Banner is the parsed first line of a Matrix Market file.
type Banner struct {
	Symmetry Symmetry
	Field    Field
}

// ParseBanner classifies a banner line by keyword. "general" takes precedence
// over "symmetric" and "real" over "pattern"; the rest of the line is not
// checked.
func ParseBanner(line string) (Banner, error) {
	line = strings.TrimRight(line, "\r\n")

	var b Banner
	switch {
	case strings.Contains(line, "general"):
		b.Symmetry = General
	case strings.Contains(line, "symmetric"):
		b.Symmetry = Symmetric
	default:
		return Banner{}, fmt.Errorf("%w: matrix type: banner = %q", ErrUnsupportedFormat, line)
	}
	switch {
	case strings.Contains(line, "real"):
		b.Field = Real
	case strings.Contains(line, "pattern"):
		b.Field = Pattern
	default:
		return Banner{}, fmt.Errorf("%w: element type: banner = %q", ErrUnsupportedFormat, line)
	}
	return b, nil
}

func (b Banner) String() string {
	return "%%MatrixMarket matrix coordinate " + b.Field.String() + " " + b.Symmetry.String()
}

// Option configures a load.
type Option func(*loadConfig)

type loadConfig struct {
	keepContents bool
}

// WithoutZeroFill leaves destination elements not named by an entry untouched
// instead of clearing them first.
func WithoutZeroFill() Option {
	return func(c *loadConfig) {
		c.keepContents = true
	}
}
