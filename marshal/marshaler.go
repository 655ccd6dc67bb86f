package marshal

import (
	"github.com/rawview/rawview/errors"
)

// Marshaler converts between a fixed-size byte window and one typed value.
// Implementations are stateless and safe for concurrent use.
type Marshaler interface {
	// Width is the exact window size in bytes, fixed at construction.
	Width() uint32

	// Decode reads the window and returns the typed value. Total over any
	// byte content.
	Decode(window []byte) any

	// Encode writes exactly Width bytes of value into the window.
	Encode(value any, window []byte)
}

// For returns the marshaler for a field of the given kind. size is the
// field's declared byte size: required for string and bytes fields, and
// validated against the wire width for every other kind when non-zero.
func For(kind Kind, size uint32) (Marshaler, error) {
	if w, ok := kind.FixedWidth(); ok {
		if size != 0 && size != w {
			return nil, errors.New(errors.PhaseCompile, errors.KindSizeMismatch).
				Detail("%s fields are %d bytes, declared %d", kind, w, size).
				Build()
		}
		return fixedMarshalers[kind], nil
	}

	switch kind {
	case KindString:
		if size == 0 {
			return nil, errors.New(errors.PhaseCompile, errors.KindSizeMismatch).
				Detail("string fields require an explicit byte size").
				Build()
		}
		return stringMarshaler{width: size}, nil
	case KindBytes:
		if size == 0 {
			return nil, errors.New(errors.PhaseCompile, errors.KindSizeMismatch).
				Detail("bytes fields require an explicit byte size").
				Build()
		}
		return bytesMarshaler{width: size}, nil
	default:
		return nil, errors.Unsupported(errors.PhaseCompile, "no marshaler for kind "+kind.String())
	}
}

var fixedMarshalers = map[Kind]Marshaler{
	KindBool: boolMarshaler{},
	KindU8:   u8Marshaler{},
	KindS8:   s8Marshaler{},
	KindU16:  u16Marshaler{},
	KindS16:  s16Marshaler{},
	KindU32:  u32Marshaler{},
	KindS32:  s32Marshaler{},
	KindU64:  u64Marshaler{},
	KindS64:  s64Marshaler{},
	KindF32:  f32Marshaler{},
	KindF64:  f64Marshaler{},
	KindEnum: enumMarshaler{},
	KindRGB:  rgbMarshaler{},
	KindVec2: vec2Marshaler{},
	KindVec3: vec3Marshaler{},
	KindVec4: vec4Marshaler{},
	KindQuat: quatMarshaler{},
}
