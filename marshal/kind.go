package marshal

import "reflect"

// Kind identifies the wire shape of one raw field.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindBool
	KindU8
	KindS8
	KindU16
	KindS16
	KindU32
	KindS32
	KindU64
	KindS64
	KindF32
	KindF64
	KindEnum
	KindString
	KindBytes
	KindRGB
	KindVec2
	KindVec3
	KindVec4
	KindQuat
)

var kindNames = [...]string{
	KindInvalid: "invalid",
	KindBool:    "bool",
	KindU8:      "u8",
	KindS8:      "s8",
	KindU16:     "u16",
	KindS16:     "s16",
	KindU32:     "u32",
	KindS32:     "s32",
	KindU64:     "u64",
	KindS64:     "s64",
	KindF32:     "f32",
	KindF64:     "f64",
	KindEnum:    "enum",
	KindString:  "string",
	KindBytes:   "bytes",
	KindRGB:     "rgb",
	KindVec2:    "vec2",
	KindVec3:    "vec3",
	KindVec4:    "vec4",
	KindQuat:    "quat",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// ParseKind maps a declaration tag name to a Kind.
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if Kind(k) != KindInvalid && name == s {
			return Kind(k), true
		}
	}
	return KindInvalid, false
}

// FixedWidth returns the wire width for kinds whose width does not depend on
// the declaration. String and bytes fields declare their width explicitly.
func (k Kind) FixedWidth() (uint32, bool) {
	switch k {
	case KindBool, KindU8, KindS8:
		return 1, true
	case KindU16, KindS16:
		return 2, true
	case KindU32, KindS32, KindF32, KindEnum:
		return 4, true
	case KindU64, KindS64, KindF64:
		return 8, true
	case KindVec2:
		return 8, true
	case KindRGB, KindVec3:
		return 12, true
	case KindVec4, KindQuat:
		return 16, true
	default:
		return 0, false
	}
}

// Enum is the value type for enum-tagged fields: a u32 discriminant.
type Enum uint32

var kindGoTypes = map[Kind]reflect.Type{
	KindBool:   reflect.TypeOf(false),
	KindU8:     reflect.TypeOf(uint8(0)),
	KindS8:     reflect.TypeOf(int8(0)),
	KindU16:    reflect.TypeOf(uint16(0)),
	KindS16:    reflect.TypeOf(int16(0)),
	KindU32:    reflect.TypeOf(uint32(0)),
	KindS32:    reflect.TypeOf(int32(0)),
	KindU64:    reflect.TypeOf(uint64(0)),
	KindS64:    reflect.TypeOf(int64(0)),
	KindF32:    reflect.TypeOf(float32(0)),
	KindF64:    reflect.TypeOf(float64(0)),
	KindEnum:   reflect.TypeOf(Enum(0)),
	KindString: reflect.TypeOf(""),
	KindBytes:  reflect.TypeOf([]byte(nil)),
	KindRGB:    reflect.TypeOf(RGB{}),
	KindVec2:   reflect.TypeOf(Vec2{}),
	KindVec3:   reflect.TypeOf(Vec3{}),
	KindVec4:   reflect.TypeOf(Vec4{}),
	KindQuat:   reflect.TypeOf(Quat{}),
}

// GoType returns the Go value type a marshaler of this kind produces.
func (k Kind) GoType() reflect.Type {
	return kindGoTypes[k]
}
