package memsource

import (
	"encoding/binary"
	"sync"

	"github.com/rawview/rawview/errors"
)

// BufferSource serves a contiguous byte region as a window of a target
// address space. Reads and writes use absolute addresses; the region covers
// [Base, Base+len). Safe for concurrent use.
type BufferSource struct {
	mu    sync.RWMutex
	data  []byte
	base  uint64
	alive bool

	// ptrWidth is the pointer size of the target layout: 4 or 8 bytes,
	// little-endian.
	ptrWidth int
}

// NewBufferSource wraps data as a live source based at base with 8-byte
// pointers. The slice is retained, not copied.
func NewBufferSource(base uint64, data []byte) *BufferSource {
	return &BufferSource{data: data, base: base, alive: true, ptrWidth: 8}
}

// SetPointerWidth sets the target's pointer size in bytes (4 or 8).
func (s *BufferSource) SetPointerWidth(w int) {
	if w != 4 && w != 8 {
		return
	}
	s.mu.Lock()
	s.ptrWidth = w
	s.mu.Unlock()
}

// SetAlive flips the liveness flag. The engine skips synchronization while
// the source is down.
func (s *BufferSource) SetAlive(alive bool) {
	s.mu.Lock()
	s.alive = alive
	s.mu.Unlock()
}

// IsAlive reports whether the region accepts reads and writes.
func (s *BufferSource) IsAlive() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.alive
}

// Base returns the region's base address.
func (s *BufferSource) Base() uint64 { return s.base }

// Size returns the region's length in bytes.
func (s *BufferSource) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// Bytes returns a copy of the whole region.
func (s *BufferSource) Bytes() []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]byte, len(s.data))
	copy(out, s.data)
	return out
}

func (s *BufferSource) sliceLocked(addr uint64, length uint32) ([]byte, error) {
	if addr < s.base {
		return nil, errors.OutOfBounds(errors.PhaseSource, int(addr), int(length), len(s.data))
	}
	off := addr - s.base
	end := off + uint64(length)
	if end > uint64(len(s.data)) {
		return nil, errors.OutOfBounds(errors.PhaseSource, int(off), int(length), len(s.data))
	}
	return s.data[off:end], nil
}

// ReadAt copies length bytes starting at the absolute address addr.
func (s *BufferSource) ReadAt(addr uint64, length uint32) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.alive {
		return nil, errors.DeadSource("buffer source is down")
	}
	window, err := s.sliceLocked(addr, length)
	if err != nil {
		return nil, err
	}
	out := make([]byte, length)
	copy(out, window)
	return out, nil
}

// WriteAt commits data to the region starting at the absolute address addr.
func (s *BufferSource) WriteAt(addr uint64, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.alive {
		return errors.DeadSource("buffer source is down")
	}
	window, err := s.sliceLocked(addr, uint32(len(data)))
	if err != nil {
		return err
	}
	copy(window, data)
	return nil
}

// ReadPointer reads a little-endian pointer-sized value at addr.
func (s *BufferSource) ReadPointer(addr uint64) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.alive {
		return 0, errors.DeadSource("buffer source is down")
	}
	window, err := s.sliceLocked(addr, uint32(s.ptrWidth))
	if err != nil {
		return 0, err
	}
	if s.ptrWidth == 4 {
		return uint64(binary.LittleEndian.Uint32(window)), nil
	}
	return binary.LittleEndian.Uint64(window), nil
}
