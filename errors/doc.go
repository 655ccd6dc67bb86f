// Package errors provides structured error types for the rawview library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Error type includes rich context: property path, Go type
// name, raw field name, and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseCompile, errors.KindTypeMismatch).
//		Path("Player", "Health").
//		GoType("string").
//		Field("health").
//		Detail("property type does not match field type f32").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.MissingOffset(errors.PhaseCompile, path, "health")
//	err := errors.NilPointer(errors.PhaseResolve, path, 2)
//
// All errors implement the standard error interface and support errors.Is/As.
//
// Three broad families matter to callers: compile-phase errors signal a
// declaration mistake and are never recovered; dead_source and unbound_root
// are preconditions the caller may retry later; nil_pointer at PhaseResolve
// degrades the affected field to absent for one cycle without aborting its
// siblings.
package errors
