// Package marshal converts between fixed-size byte windows and typed values.
//
// A Marshaler is a stateless strategy with a fixed byte width established at
// construction. Decode is total over any byte content: raw memory is always
// valid bits, garbage in produces a garbage value, never an error. Encode
// writes exactly Width bytes and never reads or writes outside the window.
//
// Byte order is little-endian and sub-offsets within a window are fixed per
// marshaler. Callers must slice windows to exactly Width bytes and must pass
// Encode the marshaler's value type; the binding registry enforces both at
// build time, so neither is re-checked per call.
//
// Contract note: the RGB marshaler occupies 12 bytes (three f32 channels at
// offsets 0, 4 and 8). Some source layouts carry a fourth alpha slot after
// the window; it is deliberately ignored padding and does not round-trip.
package marshal
