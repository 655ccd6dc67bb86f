package bind

import (
	"strings"

	"github.com/rawview/rawview/errors"
	"github.com/rawview/rawview/marshal"
	"github.com/rawview/rawview/resolve"
)

// Field is the static metadata for one field of a raw structure.
type Field struct {
	// Name identifies the field within its layout. Matching against view
	// properties is case-insensitive.
	Name string

	// Offset is the field's explicit byte offset within the structure.
	Offset uint32

	// Size is the field's byte size on the wire. Zero means "use the
	// kind's fixed width"; string and bytes fields must declare it.
	Size uint32

	// Kind is the declared type tag. Nested fields leave it invalid and
	// set Nested instead.
	Kind marshal.Kind

	// Steps is an optional indirection chain. Fields with steps live
	// outside the structure's own bytes and are reached through the
	// node's memory source.
	Steps []resolve.Step

	// Nested is the layout of a sub-structure embedded at Offset.
	Nested *Layout

	// Marshaler converts the field's window, resolved once at layout
	// construction. Nil for nested fields.
	Marshaler marshal.Marshaler
}

// WireSize returns the number of bytes the field occupies.
func (f *Field) WireSize() uint32 {
	if f.Nested != nil {
		return f.Nested.Size
	}
	return f.Marshaler.Width()
}

// Layout describes one fixed-size raw structure type.
type Layout struct {
	// Name is the structure's diagnostic name.
	Name string

	// Size is the structure's total byte size.
	Size uint32

	byName map[string]*Field
	order  []*Field
}

// NewLayout builds a layout from an explicit field table. Field order is
// preserved for diagnostics; lookup is by case-insensitive name.
func NewLayout(name string, size uint32, fields ...Field) (*Layout, error) {
	if size == 0 {
		return nil, errors.New(errors.PhaseCompile, errors.KindSizeMismatch).
			Path(name).
			Detail("layout size must be non-zero").
			Build()
	}

	l := &Layout{
		Name:   name,
		Size:   size,
		byName: make(map[string]*Field, len(fields)),
	}

	for i := range fields {
		f := fields[i]
		if f.Name == "" {
			return nil, errors.New(errors.PhaseCompile, errors.KindInvalidData).
				Path(name).
				Detail("field %d has no name", i).
				Build()
		}
		key := strings.ToLower(f.Name)
		if _, dup := l.byName[key]; dup {
			return nil, errors.New(errors.PhaseCompile, errors.KindInvalidData).
				Path(name, f.Name).
				Detail("duplicate field name").
				Build()
		}

		if f.Nested == nil {
			m, err := marshal.For(f.Kind, f.Size)
			if err != nil {
				return nil, errors.Wrap(errors.PhaseCompile, errors.KindInvalidData, err,
					name+"."+f.Name)
			}
			f.Marshaler = m
		}

		// Fields reached through indirection live outside this
		// structure's bytes; only direct fields must fit the region.
		if len(f.Steps) == 0 {
			end := uint64(f.Offset) + uint64(f.WireSize())
			if end > uint64(size) {
				return nil, errors.OutOfBounds(errors.PhaseCompile, int(f.Offset), int(f.WireSize()), int(size))
			}
		}

		stored := new(Field)
		*stored = f
		l.byName[key] = stored
		l.order = append(l.order, stored)
	}

	return l, nil
}

// Field looks up a field by name, case-insensitively.
func (l *Layout) Field(name string) (*Field, bool) {
	f, ok := l.byName[strings.ToLower(name)]
	return f, ok
}

// Fields returns the fields in declaration order. The slice is shared;
// callers must not mutate it.
func (l *Layout) Fields() []*Field {
	return l.order
}
