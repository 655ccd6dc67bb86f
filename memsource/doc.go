// Package memsource provides Source implementations for the view engine.
//
// BufferSource serves an in-process byte region that models a window of a
// target address space, with an explicit base address, a liveness flag and
// little-endian pointer reads. WasmSource adapts a wazero api.Memory so a
// view tree can mirror structures living in a WASM instance's linear
// memory.
//
// Fetch and Commit combine address resolution with source access to
// materialize a structure snapshot for SetModel and to write a modified
// snapshot back.
package memsource
