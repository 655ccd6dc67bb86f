package bind

import (
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/rawview/rawview/errors"
	"github.com/rawview/rawview/marshal"
	"github.com/rawview/rawview/resolve"
)

// TagKey is the struct tag consulted on raw descriptor structs.
const TagKey = "raw"

// pointerSlotSize is the region reserved for a pointer field reached
// through indirection when computing a layout's extent.
const pointerSlotSize = 8

var layoutCache sync.Map // reflect.Type -> *Layout

// LayoutOf parses a layout from a descriptor struct's raw tags. The result
// is cached by type identity; descriptor types are parsed exactly once.
//
// The layout's total size is the maximum extent of its declared fields.
func LayoutOf(t reflect.Type) (*Layout, error) {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, errors.New(errors.PhaseCompile, errors.KindInvalidData).
			GoType(t.String()).
			Detail("raw descriptors must be struct types").
			Build()
	}

	if cached, ok := layoutCache.Load(t); ok {
		return cached.(*Layout), nil
	}

	l, err := parseLayout(t)
	if err != nil {
		return nil, err
	}

	layoutCache.Store(t, l)
	return l, nil
}

// MustLayoutOf is LayoutOf for package-level layout variables; it panics on
// declaration mistakes.
func MustLayoutOf(v any) *Layout {
	l, err := LayoutOf(reflect.TypeOf(v))
	if err != nil {
		panic(err)
	}
	return l
}

func parseLayout(t reflect.Type) (*Layout, error) {
	var fields []Field
	var extent uint32

	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}

		tag, ok := sf.Tag.Lookup(TagKey)
		if !ok {
			// Every exported descriptor field is a declaration; an
			// offset is never implied.
			return nil, errors.MissingOffset(errors.PhaseCompile, []string{t.Name(), sf.Name}, sf.Name)
		}
		if tag == "-" {
			continue
		}

		f, err := parseField(t, sf, tag)
		if err != nil {
			return nil, err
		}

		end := f.Offset + fieldExtent(&f)
		if end > extent {
			extent = end
		}
		fields = append(fields, f)
	}

	if len(fields) == 0 {
		return nil, errors.New(errors.PhaseCompile, errors.KindInvalidData).
			Path(t.Name()).
			Detail("descriptor declares no fields").
			Build()
	}

	return NewLayout(t.Name(), extent, fields...)
}

func fieldExtent(f *Field) uint32 {
	if len(f.Steps) > 0 {
		return pointerSlotSize
	}
	if f.Nested != nil {
		return f.Nested.Size
	}
	if f.Size != 0 {
		return f.Size
	}
	w, _ := f.Kind.FixedWidth()
	return w
}

func parseField(owner reflect.Type, sf reflect.StructField, tag string) (Field, error) {
	path := []string{owner.Name(), sf.Name}
	f := Field{Name: sf.Name}

	segs := strings.Split(tag, ",")
	if len(segs) == 0 || !strings.HasPrefix(segs[0], "@") {
		return Field{}, errors.InvalidTag(path, tag, "first segment must be an explicit @offset")
	}

	off, err := strconv.ParseUint(segs[0][1:], 0, 32)
	if err != nil {
		return Field{}, errors.InvalidTag(path, tag, "bad offset: "+err.Error())
	}
	f.Offset = uint32(off)

	explicitKind := marshal.KindInvalid
	for _, seg := range segs[1:] {
		key, val, found := strings.Cut(seg, "=")
		if !found {
			return Field{}, errors.InvalidTag(path, tag, "segment "+seg+" is not key=value")
		}
		switch key {
		case "type":
			k, ok := marshal.ParseKind(val)
			if !ok {
				return Field{}, errors.InvalidTag(path, tag, "unknown type "+val)
			}
			explicitKind = k
		case "size":
			n, err := strconv.ParseUint(val, 0, 32)
			if err != nil {
				return Field{}, errors.InvalidTag(path, tag, "bad size: "+err.Error())
			}
			f.Size = uint32(n)
		case "deref":
			n, err := strconv.ParseUint(val, 0, 64)
			if err != nil {
				return Field{}, errors.InvalidTag(path, tag, "bad deref: "+err.Error())
			}
			f.Steps = append(f.Steps, resolve.Deref(n))
		case "add":
			n, err := strconv.ParseUint(val, 0, 64)
			if err != nil {
				return Field{}, errors.InvalidTag(path, tag, "bad add: "+err.Error())
			}
			f.Steps = append(f.Steps, resolve.Add(n))
		default:
			return Field{}, errors.InvalidTag(path, tag, "unknown key "+key)
		}
	}

	if explicitKind != marshal.KindInvalid {
		f.Kind = explicitKind
		return f, nil
	}

	if k, ok := kindOfGoType(sf.Type); ok {
		f.Kind = k
		return f, nil
	}

	// A struct field with no recognized value type is a nested
	// sub-structure with its own tagged layout.
	if sf.Type.Kind() == reflect.Struct {
		nested, err := LayoutOf(sf.Type)
		if err != nil {
			return Field{}, err
		}
		f.Nested = nested
		return f, nil
	}

	return Field{}, errors.New(errors.PhaseCompile, errors.KindUnsupported).
		Path(path...).
		GoType(sf.Type.String()).
		Detail("no marshaler kind for this Go type; declare type= explicitly").
		Build()
}

var goTypeKinds = map[reflect.Type]marshal.Kind{
	reflect.TypeOf(false):           marshal.KindBool,
	reflect.TypeOf(uint8(0)):        marshal.KindU8,
	reflect.TypeOf(int8(0)):         marshal.KindS8,
	reflect.TypeOf(uint16(0)):       marshal.KindU16,
	reflect.TypeOf(int16(0)):        marshal.KindS16,
	reflect.TypeOf(uint32(0)):       marshal.KindU32,
	reflect.TypeOf(int32(0)):        marshal.KindS32,
	reflect.TypeOf(uint64(0)):       marshal.KindU64,
	reflect.TypeOf(int64(0)):        marshal.KindS64,
	reflect.TypeOf(float32(0)):      marshal.KindF32,
	reflect.TypeOf(float64(0)):      marshal.KindF64,
	reflect.TypeOf(""):              marshal.KindString,
	reflect.TypeOf([]byte(nil)):     marshal.KindBytes,
	reflect.TypeOf(marshal.Enum(0)): marshal.KindEnum,
	reflect.TypeOf(marshal.RGB{}):   marshal.KindRGB,
	reflect.TypeOf(marshal.Vec2{}):  marshal.KindVec2,
	reflect.TypeOf(marshal.Vec3{}):  marshal.KindVec3,
	reflect.TypeOf(marshal.Vec4{}):  marshal.KindVec4,
	reflect.TypeOf(marshal.Quat{}):  marshal.KindQuat,
}

func kindOfGoType(t reflect.Type) (marshal.Kind, bool) {
	k, ok := goTypeKinds[t]
	return k, ok
}
