package rawview

// Source provides access to the target memory region that backs a view
// tree. Implementations may wrap an in-process buffer, a memory-mapped
// file, or a live runtime's linear memory.
type Source interface {
	// IsAlive reports whether the target is still available for reads
	// and writes. Synchronization is skipped while the target is down.
	IsAlive() bool

	// ReadAt copies length bytes starting at addr. The returned slice is
	// owned by the caller.
	ReadAt(addr uint64, length uint32) ([]byte, error)

	// WriteAt commits data back to the target starting at addr.
	WriteAt(addr uint64, data []byte) error
}

// PointerReader reads a pointer-sized value from the target. Sources whose
// layouts use pointer indirection implement this in addition to Source.
type PointerReader interface {
	ReadPointer(addr uint64) (uint64, error)
}

// PointerSource combines plain access with pointer dereferencing.
type PointerSource interface {
	Source
	PointerReader
}
