package matfile

import (
	"encoding/binary"
	"fmt"
	"math"
	"strings"
)

// DataType identifies the on-disk element encoding.
// Keep these stable forever; add new values only.
type DataType uint32

const (
	FP32 DataType = iota
	FP64
	FP128
	Int8
	Int16
	Int32
	Int64
	Uint8
	Uint16
	Uint32
	Uint64
)

// elemCodec encodes and decodes one element of a DataType.
type elemCodec struct {
	name  string
	size  int
	class numClass
	put   func(dst []byte, s scalar)
	get   func(src []byte) scalar
}

var codecs = [...]elemCodec{
	FP32: {
		name: "fp32", size: 4, class: classFloat,
		put: func(dst []byte, s scalar) {
			binary.LittleEndian.PutUint32(dst, math.Float32bits(float32(s.asFloat())))
		},
		get: func(src []byte) scalar {
			return scalar{class: classFloat, f: float64(math.Float32frombits(binary.LittleEndian.Uint32(src)))}
		},
	},
	FP64: {
		name: "fp64", size: 8, class: classFloat,
		put: func(dst []byte, s scalar) {
			binary.LittleEndian.PutUint64(dst, math.Float64bits(s.asFloat()))
		},
		get: func(src []byte) scalar {
			return scalar{class: classFloat, f: math.Float64frombits(binary.LittleEndian.Uint64(src))}
		},
	},
	FP128: {
		name: "fp128", size: 16, class: classFloat,
		put: func(dst []byte, s scalar) {
			lo, hi := float128FromFloat64(s.asFloat())
			binary.LittleEndian.PutUint64(dst[0:8], lo)
			binary.LittleEndian.PutUint64(dst[8:16], hi)
		},
		get: func(src []byte) scalar {
			lo := binary.LittleEndian.Uint64(src[0:8])
			hi := binary.LittleEndian.Uint64(src[8:16])
			return scalar{class: classFloat, f: float64FromFloat128(lo, hi)}
		},
	},
	Int8: {
		name: "int8", size: 1, class: classSigned,
		put: func(dst []byte, s scalar) { dst[0] = byte(int8(s.asInt())) },
		get: func(src []byte) scalar { return scalar{class: classSigned, i: int64(int8(src[0]))} },
	},
	Int16: {
		name: "int16", size: 2, class: classSigned,
		put: func(dst []byte, s scalar) { binary.LittleEndian.PutUint16(dst, uint16(int16(s.asInt()))) },
		get: func(src []byte) scalar {
			return scalar{class: classSigned, i: int64(int16(binary.LittleEndian.Uint16(src)))}
		},
	},
	Int32: {
		name: "int32", size: 4, class: classSigned,
		put: func(dst []byte, s scalar) { binary.LittleEndian.PutUint32(dst, uint32(int32(s.asInt()))) },
		get: func(src []byte) scalar {
			return scalar{class: classSigned, i: int64(int32(binary.LittleEndian.Uint32(src)))}
		},
	},
	Int64: {
		name: "int64", size: 8, class: classSigned,
		put: func(dst []byte, s scalar) { binary.LittleEndian.PutUint64(dst, uint64(s.asInt())) },
		get: func(src []byte) scalar {
			return scalar{class: classSigned, i: int64(binary.LittleEndian.Uint64(src))}
		},
	},
	Uint8: {
		name: "uint8", size: 1, class: classUnsigned,
		put: func(dst []byte, s scalar) { dst[0] = byte(s.asUint()) },
		get: func(src []byte) scalar { return scalar{class: classUnsigned, u: uint64(src[0])} },
	},
	Uint16: {
		name: "uint16", size: 2, class: classUnsigned,
		put: func(dst []byte, s scalar) { binary.LittleEndian.PutUint16(dst, uint16(s.asUint())) },
		get: func(src []byte) scalar {
			return scalar{class: classUnsigned, u: uint64(binary.LittleEndian.Uint16(src))}
		},
	},
	Uint32: {
		name: "uint32", size: 4, class: classUnsigned,
		put: func(dst []byte, s scalar) { binary.LittleEndian.PutUint32(dst, uint32(s.asUint())) },
		get: func(src []byte) scalar {
			return scalar{class: classUnsigned, u: uint64(binary.LittleEndian.Uint32(src))}
		},
	},
	Uint64: {
		name: "uint64", size: 8, class: classUnsigned,
		put: func(dst []byte, s scalar) { binary.LittleEndian.PutUint64(dst, s.asUint()) },
		get: func(src []byte) scalar {
			return scalar{class: classUnsigned, u: binary.LittleEndian.Uint64(src)}
		},
	},
}

// DataTypes lists every known element kind in ordinal order.
func DataTypes() []DataType {
	out := make([]DataType, len(codecs))
	for i := range codecs {
		out[i] = DataType(i)
	}
	return out
}

func (dt DataType) codec() (*elemCodec, bool) {
	if uint64(dt) >= uint64(len(codecs)) {
		return nil, false
	}
	return &codecs[dt], true
}

// Valid reports whether dt is a known element kind.
func (dt DataType) Valid() bool {
	_, ok := dt.codec()
	return ok
}

// Size returns the encoded width of one element in bytes, or 0 if dt is unknown.
func (dt DataType) Size() int {
	c, ok := dt.codec()
	if !ok {
		return 0
	}
	return c.size
}

// IsFloat reports whether dt is a floating point kind.
func (dt DataType) IsFloat() bool {
	c, ok := dt.codec()
	return ok && c.class == classFloat
}

func (dt DataType) String() string {
	c, ok := dt.codec()
	if !ok {
		return fmt.Sprintf("unknown(%d)", uint32(dt))
	}
	return c.name
}

// DTypeSize returns the byte width of dt; unknown kinds yield 0.
func DTypeSize(dt DataType) int {
	return dt.Size()
}

var dataTypeAliases = map[string]DataType{
	"float":       FP32,
	"float32":     FP32,
	"f32":         FP32,
	"double":      FP64,
	"float64":     FP64,
	"f64":         FP64,
	"long double": FP128,
	"float128":    FP128,
	"f128":        FP128,
	"int8_t":      Int8,
	"i8":          Int8,
	"int16_t":     Int16,
	"i16":         Int16,
	"int32_t":     Int32,
	"i32":         Int32,
	"int64_t":     Int64,
	"i64":         Int64,
	"uint8_t":     Uint8,
	"u8":          Uint8,
	"uint16_t":    Uint16,
	"u16":         Uint16,
	"uint32_t":    Uint32,
	"u32":         Uint32,
	"uint64_t":    Uint64,
	"u64":         Uint64,
}

// ParseDataType resolves a kind name such as "fp32", "double" or "uint8_t".
func ParseDataType(s string) (DataType, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for i := range codecs {
		if codecs[i].name == key {
			return DataType(i), nil
		}
	}
	if dt, ok := dataTypeAliases[key]; ok {
		return dt, nil
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownDataType, s)
}
