package memsource

import (
	"github.com/tetratelabs/wazero/api"

	"github.com/rawview/rawview/errors"
)

// WasmSource adapts a WASM instance's linear memory as a Source. Addresses
// are offsets into the linear memory; pointers in the target layout are
// 32-bit little-endian, matching the wasm32 ABI.
type WasmSource struct {
	mem api.Memory
}

// NewWasmSource wraps an exported memory. The source reports dead once mem
// is nil or the owning module has been closed.
func NewWasmSource(mem api.Memory) *WasmSource {
	return &WasmSource{mem: mem}
}

// IsAlive reports whether the linear memory is still reachable.
func (s *WasmSource) IsAlive() bool {
	if s.mem == nil {
		return false
	}
	// A closed module's memory reports zero size.
	return s.mem.Size() > 0
}

// ReadAt copies length bytes of linear memory starting at addr.
func (s *WasmSource) ReadAt(addr uint64, length uint32) ([]byte, error) {
	if !s.IsAlive() {
		return nil, errors.DeadSource("wasm memory unavailable")
	}
	window, ok := s.mem.Read(uint32(addr), length)
	if !ok {
		return nil, errors.OutOfBounds(errors.PhaseSource, int(addr), int(length), int(s.mem.Size()))
	}
	out := make([]byte, length)
	copy(out, window)
	return out, nil
}

// WriteAt commits data to linear memory starting at addr.
func (s *WasmSource) WriteAt(addr uint64, data []byte) error {
	if !s.IsAlive() {
		return errors.DeadSource("wasm memory unavailable")
	}
	if !s.mem.Write(uint32(addr), data) {
		return errors.OutOfBounds(errors.PhaseSource, int(addr), len(data), int(s.mem.Size()))
	}
	return nil
}

// ReadPointer reads a wasm32 pointer at addr.
func (s *WasmSource) ReadPointer(addr uint64) (uint64, error) {
	if !s.IsAlive() {
		return 0, errors.DeadSource("wasm memory unavailable")
	}
	val, ok := s.mem.ReadUint32Le(uint32(addr))
	if !ok {
		return 0, errors.OutOfBounds(errors.PhaseSource, int(addr), 4, int(s.mem.Size()))
	}
	return uint64(val), nil
}
