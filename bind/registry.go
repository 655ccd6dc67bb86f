package bind

import (
	"reflect"
	"sync"

	"go.uber.org/zap"

	"github.com/rawview/rawview/errors"
	"github.com/rawview/rawview/marshal"
)

// BindTagKey is the struct tag consulted on view structs.
const BindTagKey = "bind"

// Viewer is the capability that marks a type as a view node. The view
// package's Node satisfies the rest of the node contract; this package only
// needs the layout accessor to classify bindings.
type Viewer interface {
	RawLayout() *Layout
}

var viewerType = reflect.TypeOf((*Viewer)(nil)).Elem()

// Entry pairs one view property with one raw field. Entries are immutable
// after the registry is built.
type Entry struct {
	// Property is the Go field name on the view struct.
	Property string

	// Field is the paired raw field descriptor.
	Field *Field

	// Index is the property's field index on the view struct.
	Index int

	// Nested is true when the property's type is itself a view node.
	Nested bool

	// Optional is true for pointer-typed terminal properties, whose
	// value may be absent.
	Optional bool

	// NewChild constructs the property's concrete child node type.
	// Resolved at registry build time; nil for terminal entries.
	NewChild func() Viewer
}

// Marshaler returns the converter for a terminal entry's field window.
func (e *Entry) Marshaler() marshal.Marshaler {
	return e.Field.Marshaler
}

// Registry is the fixed property<->field mapping for one view type. Built
// once per type and shared by every node of that type.
type Registry struct {
	// ViewType is the view struct type (not the pointer type).
	ViewType reflect.Type

	// Layout is the raw structure the view mirrors.
	Layout *Layout

	// Terminal and Nested hold entries in declaration order. Terminal
	// entries are always synchronized before nested ones.
	Terminal []*Entry
	Nested   []*Entry

	byProp map[string]*Entry
}

// Entry looks up a binding by property name.
func (r *Registry) Entry(prop string) (*Entry, bool) {
	e, ok := r.byProp[prop]
	return e, ok
}

// Entries returns all bindings, terminal first.
func (r *Registry) Entries() []*Entry {
	out := make([]*Entry, 0, len(r.Terminal)+len(r.Nested))
	out = append(out, r.Terminal...)
	out = append(out, r.Nested...)
	return out
}

var registryCache sync.Map // reflect.Type -> *Registry

// RegistryFor builds (or returns the cached) registry for a view type.
// v must be a pointer to a struct embedding the node type and implementing
// Viewer. Reflection over the struct runs at most once per type.
func RegistryFor(v Viewer) (*Registry, error) {
	t := reflect.TypeOf(v)
	if t.Kind() != reflect.Ptr || t.Elem().Kind() != reflect.Struct {
		return nil, errors.New(errors.PhaseCompile, errors.KindInvalidData).
			GoType(t.String()).
			Detail("view nodes must be pointers to structs").
			Build()
	}
	structType := t.Elem()

	if cached, ok := registryCache.Load(structType); ok {
		return cached.(*Registry), nil
	}

	layout := v.RawLayout()
	if layout == nil {
		return nil, errors.New(errors.PhaseCompile, errors.KindNotInitialized).
			GoType(structType.Name()).
			Detail("RawLayout returned nil").
			Build()
	}

	reg, err := buildRegistry(structType, layout)
	if err != nil {
		return nil, err
	}

	registryCache.Store(structType, reg)
	return reg, nil
}

func buildRegistry(structType reflect.Type, layout *Layout) (*Registry, error) {
	reg := &Registry{
		ViewType: structType,
		Layout:   layout,
		byProp:   make(map[string]*Entry),
	}

	for i := 0; i < structType.NumField(); i++ {
		sf := structType.Field(i)
		if sf.Anonymous || !sf.IsExported() {
			continue
		}

		tag, bound := sf.Tag.Lookup(BindTagKey)
		if !bound {
			continue
		}
		fieldName := tag
		if fieldName == "" {
			fieldName = sf.Name
		}

		field, ok := layout.Field(fieldName)
		if !ok {
			// Tolerated: the property is excluded from
			// synchronization, the declaration may be ahead of the
			// layout. Recorded for the diagnostics sink.
			Logger().Warn("unmatched binding",
				zap.String("view", structType.Name()),
				zap.String("property", sf.Name),
				zap.String("field", fieldName),
				zap.String("layout", layout.Name))
			continue
		}

		entry, err := buildEntry(structType, sf, i, field)
		if err != nil {
			return nil, err
		}

		reg.byProp[sf.Name] = entry
		if entry.Nested {
			reg.Nested = append(reg.Nested, entry)
		} else {
			reg.Terminal = append(reg.Terminal, entry)
		}
	}

	return reg, nil
}

func buildEntry(structType reflect.Type, sf reflect.StructField, index int, field *Field) (*Entry, error) {
	path := []string{structType.Name(), sf.Name}

	if sf.Type.Implements(viewerType) {
		if field.Nested == nil {
			return nil, errors.TypeMismatch(errors.PhaseCompile, path, sf.Type.String(), field.Kind.String())
		}
		if sf.Type.Kind() != reflect.Ptr || sf.Type.Elem().Kind() != reflect.Struct {
			return nil, errors.New(errors.PhaseCompile, errors.KindUnsupported).
				Path(path...).
				GoType(sf.Type.String()).
				Detail("nested view properties must be struct pointers").
				Build()
		}

		childStruct := sf.Type.Elem()
		return &Entry{
			Property: sf.Name,
			Field:    field,
			Index:    index,
			Nested:   true,
			NewChild: func() Viewer {
				return reflect.New(childStruct).Interface().(Viewer)
			},
		}, nil
	}

	if field.Nested != nil {
		return nil, errors.TypeMismatch(errors.PhaseCompile, path, sf.Type.String(), "nested "+field.Nested.Name)
	}

	propType := sf.Type
	optional := false
	if propType.Kind() == reflect.Ptr {
		propType = propType.Elem()
		optional = true
	}

	// The property type must exactly match the marshaler's value type.
	// A mismatch is a declaration mistake, not a runtime condition.
	if propType != field.Kind.GoType() {
		return nil, errors.TypeMismatch(errors.PhaseCompile, path, sf.Type.String(), field.Kind.String())
	}

	return &Entry{
		Property: sf.Name,
		Field:    field,
		Index:    index,
		Optional: optional,
	}, nil
}
