package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseCompile Phase = "compile" // layout parsing and binding registry build
	PhaseResolve Phase = "resolve" // byte address resolution
	PhaseDecode  Phase = "decode"  // raw bytes to typed value
	PhaseEncode  Phase = "encode"  // typed value to raw bytes
	PhaseSync    Phase = "sync"    // model<->view propagation
	PhaseImport  Phase = "import"  // one-shot property copy
	PhaseSource  Phase = "source"  // target memory access
)

// Kind categorizes the error
type Kind string

const (
	KindMissingOffset  Kind = "missing_offset"
	KindTypeMismatch   Kind = "type_mismatch"
	KindFieldUnknown   Kind = "field_unknown"
	KindPropUnknown    Kind = "property_unknown"
	KindNilPointer     Kind = "nil_pointer"
	KindDeadSource     Kind = "dead_source"
	KindUnboundRoot    Kind = "unbound_root"
	KindSizeMismatch   Kind = "size_mismatch"
	KindOutOfBounds    Kind = "out_of_bounds"
	KindNotInitialized Kind = "not_initialized"
	KindUnsupported    Kind = "unsupported"
	KindInvalidTag     Kind = "invalid_tag"
	KindInvalidData    Kind = "invalid_data"
)

// Error is the structured error type used throughout the library
type Error struct {
	Cause  error
	Phase  Phase
	Kind   Kind
	GoType string
	Field  string
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.GoType != "" || e.Field != "" {
		b.WriteString(": ")
		if e.GoType != "" && e.Field != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
			b.WriteString(", field ")
			b.WriteString(e.Field)
		} else if e.GoType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
		} else {
			b.WriteString("field ")
			b.WriteString(e.Field)
		}
	}

	if e.Detail != "" {
		if e.GoType != "" || e.Field != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the property path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// GoType sets the Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// Field sets the raw field name
func (b *Builder) Field(name string) *Builder {
	b.err.Field = name
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// MissingOffset creates an error for a field declared without an explicit
// byte offset. Offsets are never defaulted.
func MissingOffset(phase Phase, path []string, field string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindMissingOffset,
		Path:   path,
		Field:  field,
		Detail: "field has no explicit byte offset",
	}
}

// TypeMismatch creates a property/field type mismatch error
func TypeMismatch(phase Phase, path []string, goType, fieldType string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTypeMismatch,
		Path:   path,
		GoType: goType,
		Detail: fmt.Sprintf("does not match field type %s", fieldType),
	}
}

// FieldUnknown creates an error for a binding that names no declared field
func FieldUnknown(phase Phase, path []string, field string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindFieldUnknown,
		Path:   path,
		Field:  field,
		Detail: fmt.Sprintf("layout declares no field %q", field),
	}
}

// PropertyUnknown creates an error for an operation on an unbound property
func PropertyUnknown(phase Phase, prop string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindPropUnknown,
		Detail: fmt.Sprintf("no binding for property %q", prop),
	}
}

// NilPointer creates an error for a dereference of a zero pointer at the
// given step of an indirection chain
func NilPointer(phase Phase, path []string, step int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNilPointer,
		Path:   path,
		Detail: fmt.Sprintf("zero pointer at indirection step %d", step),
	}
}

// DeadSource creates an error for an operation against an unavailable target
func DeadSource(detail string) *Error {
	return &Error{
		Phase:  PhaseSource,
		Kind:   KindDeadSource,
		Detail: detail,
	}
}

// UnboundRoot creates an error for pulling changes on a node with no parent
func UnboundRoot(typeName string) *Error {
	return &Error{
		Phase:  PhaseSync,
		Kind:   KindUnboundRoot,
		GoType: typeName,
		Detail: "root node has no raw source to pull from; drive it via SetModel",
	}
}

// SizeMismatch creates an error for a snapshot whose length disagrees with
// the declared layout size
func SizeMismatch(phase Phase, want, got int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindSizeMismatch,
		Detail: fmt.Sprintf("expected %d bytes, got %d", want, got),
	}
}

// OutOfBounds creates an error for a window that exceeds the raw region
func OutOfBounds(phase Phase, offset, length, size int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Detail: fmt.Sprintf("window [%d, %d) exceeds region of %d bytes", offset, offset+length, size),
	}
}

// NotInitialized creates an error for use of a node before Attach
func NotInitialized(component string) *Error {
	return &Error{
		Phase:  PhaseSync,
		Kind:   KindNotInitialized,
		Detail: fmt.Sprintf("%s not initialized", component),
	}
}

// Unsupported creates an unsupported declaration error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// InvalidTag creates an error for a malformed raw struct tag
func InvalidTag(path []string, tag, detail string) *Error {
	return &Error{
		Phase:  PhaseCompile,
		Kind:   KindInvalidTag,
		Path:   path,
		Detail: fmt.Sprintf("tag %q: %s", tag, detail),
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
