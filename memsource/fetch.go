package memsource

import (
	"github.com/rawview/rawview"
	"github.com/rawview/rawview/errors"
	"github.com/rawview/rawview/resolve"
)

// Fetch materializes a structure snapshot: the address is resolved from
// base through steps, then size bytes are read from the source. The result
// is ready to hand to SetModel.
func Fetch(src rawview.Source, base uint64, steps []resolve.Step, size uint32) ([]byte, error) {
	if src == nil {
		return nil, errors.NotInitialized("memory source")
	}
	if !src.IsAlive() {
		return nil, errors.DeadSource("external data source unavailable")
	}
	addr, err := resolveChain(src, base, steps)
	if err != nil {
		return nil, err
	}
	return src.ReadAt(addr, size)
}

// Commit writes a modified snapshot back to the target at the address
// resolved from base through steps.
func Commit(src rawview.Source, base uint64, steps []resolve.Step, snapshot []byte) error {
	if src == nil {
		return errors.NotInitialized("memory source")
	}
	if !src.IsAlive() {
		return errors.DeadSource("external data source unavailable")
	}
	addr, err := resolveChain(src, base, steps)
	if err != nil {
		return err
	}
	return src.WriteAt(addr, snapshot)
}

func resolveChain(src rawview.Source, base uint64, steps []resolve.Step) (uint64, error) {
	pr, _ := src.(rawview.PointerReader)
	return resolve.Chain(pr, base, steps)
}
