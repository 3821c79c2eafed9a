package matfile

import (
	"reflect"
	"strconv"
)

// Number is the set of in-memory element types accepted by the dense codecs.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

type numClass uint8

const (
	classSigned numClass = iota
	classUnsigned
	classFloat
)

// scalar carries one element between an in-memory type and an on-disk kind.
// Only the field matching class is meaningful.
type scalar struct {
	class numClass
	i     int64
	u     uint64
	f     float64
}

func (s scalar) asInt() int64 {
	switch s.class {
	case classUnsigned:
		return int64(s.u)
	case classFloat:
		return int64(s.f)
	default:
		return s.i
	}
}

func (s scalar) asUint() uint64 {
	switch s.class {
	case classSigned:
		return uint64(s.i)
	case classFloat:
		return uint64(s.f)
	default:
		return s.u
	}
}

func (s scalar) asFloat() float64 {
	switch s.class {
	case classSigned:
		return float64(s.i)
	case classUnsigned:
		return float64(s.u)
	default:
		return s.f
	}
}

func classOf[T Number]() numClass {
	switch reflect.TypeFor[T]().Kind() {
	case reflect.Float32, reflect.Float64:
		return classFloat
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return classUnsigned
	default:
		return classSigned
	}
}

func toScalar[T Number](v T, c numClass) scalar {
	switch c {
	case classFloat:
		return scalar{class: c, f: float64(v)}
	case classUnsigned:
		return scalar{class: c, u: uint64(v)}
	default:
		return scalar{class: c, i: int64(v)}
	}
}

func fromScalar[T Number](s scalar) T {
	switch s.class {
	case classFloat:
		return T(s.f)
	case classUnsigned:
		return T(s.u)
	default:
		return T(s.i)
	}
}

// DataTypeOf returns the on-disk kind matching the in-memory type T.
// int and uint map to the 64- or 32-bit kind depending on the platform.
func DataTypeOf[T Number]() DataType {
	switch reflect.TypeFor[T]().Kind() {
	case reflect.Int8:
		return Int8
	case reflect.Int16:
		return Int16
	case reflect.Int32:
		return Int32
	case reflect.Int64:
		return Int64
	case reflect.Int:
		if strconv.IntSize == 32 {
			return Int32
		}
		return Int64
	case reflect.Uint8:
		return Uint8
	case reflect.Uint16:
		return Uint16
	case reflect.Uint32:
		return Uint32
	case reflect.Uint64:
		return Uint64
	case reflect.Uint:
		if strconv.IntSize == 32 {
			return Uint32
		}
		return Uint64
	case reflect.Float32:
		return FP32
	default:
		return FP64
	}
}
