// Package resolve computes absolute byte addresses from a field's declared
// offset plus a chain of indirection steps. Resolution reads pointers from
// the target but never writes.
package resolve

import (
	"fmt"

	"github.com/rawview/rawview/errors"
)

// StepKind discriminates indirection steps.
type StepKind uint8

const (
	// StepAdd adds a constant to the current address.
	StepAdd StepKind = iota
	// StepDeref reads a pointer-sized value at the current address, then
	// adds a constant to the result.
	StepDeref
)

func (k StepKind) String() string {
	switch k {
	case StepAdd:
		return "add"
	case StepDeref:
		return "deref"
	default:
		return "unknown"
	}
}

// Step is one indirection applied while resolving an address.
type Step struct {
	Kind  StepKind
	Delta uint64
}

// Add returns a constant-offset step.
func Add(delta uint64) Step { return Step{Kind: StepAdd, Delta: delta} }

// Deref returns a pointer-dereference step: the pointer at the current
// address is read and delta is added to its value.
func Deref(delta uint64) Step { return Step{Kind: StepDeref, Delta: delta} }

func (s Step) String() string {
	if s.Kind == StepDeref {
		return fmt.Sprintf("[deref]+0x%X", s.Delta)
	}
	return fmt.Sprintf("+0x%X", s.Delta)
}

// PointerReader reads a pointer-sized value from the target address space.
type PointerReader interface {
	ReadPointer(addr uint64) (uint64, error)
}

// Chain folds steps left to right starting from base and returns the final
// byte address. A zero pointer mid-chain is a nil_pointer error; the caller
// treats the field as absent for the cycle. r may be nil when the chain
// contains no dereference steps.
func Chain(r PointerReader, base uint64, steps []Step) (uint64, error) {
	addr := base
	for i, s := range steps {
		switch s.Kind {
		case StepAdd:
			addr += s.Delta
		case StepDeref:
			if r == nil {
				return 0, errors.New(errors.PhaseResolve, errors.KindNotInitialized).
					Detail("dereference step %d requires a pointer reader", i).
					Build()
			}
			ptr, err := r.ReadPointer(addr)
			if err != nil {
				return 0, errors.Wrap(errors.PhaseResolve, errors.KindInvalidData, err,
					fmt.Sprintf("read pointer at step %d", i))
			}
			if ptr == 0 {
				return 0, errors.NilPointer(errors.PhaseResolve, nil, i)
			}
			addr = ptr + s.Delta
		default:
			return 0, errors.Unsupported(errors.PhaseResolve, "unknown step kind")
		}
	}
	return addr, nil
}

// IsAbsent reports whether err marks a value that should be treated as
// absent for the current cycle rather than a hard failure.
func IsAbsent(err error) bool {
	if err == nil {
		return false
	}
	e, ok := err.(*errors.Error)
	return ok && e.Kind == errors.KindNilPointer
}
