package marshal

import (
	"encoding/binary"
	"math"
)

type boolMarshaler struct{}

func (boolMarshaler) Width() uint32 { return 1 }

func (boolMarshaler) Decode(window []byte) any { return window[0] != 0 }

func (boolMarshaler) Encode(value any, window []byte) {
	window[0] = 0
	if value.(bool) {
		window[0] = 1
	}
}

type u8Marshaler struct{}

func (u8Marshaler) Width() uint32            { return 1 }
func (u8Marshaler) Decode(window []byte) any { return window[0] }
func (u8Marshaler) Encode(value any, window []byte) {
	window[0] = value.(uint8)
}

type s8Marshaler struct{}

func (s8Marshaler) Width() uint32            { return 1 }
func (s8Marshaler) Decode(window []byte) any { return int8(window[0]) }
func (s8Marshaler) Encode(value any, window []byte) {
	window[0] = byte(value.(int8))
}

type u16Marshaler struct{}

func (u16Marshaler) Width() uint32            { return 2 }
func (u16Marshaler) Decode(window []byte) any { return binary.LittleEndian.Uint16(window) }
func (u16Marshaler) Encode(value any, window []byte) {
	binary.LittleEndian.PutUint16(window, value.(uint16))
}

type s16Marshaler struct{}

func (s16Marshaler) Width() uint32            { return 2 }
func (s16Marshaler) Decode(window []byte) any { return int16(binary.LittleEndian.Uint16(window)) }
func (s16Marshaler) Encode(value any, window []byte) {
	binary.LittleEndian.PutUint16(window, uint16(value.(int16)))
}

type u32Marshaler struct{}

func (u32Marshaler) Width() uint32            { return 4 }
func (u32Marshaler) Decode(window []byte) any { return binary.LittleEndian.Uint32(window) }
func (u32Marshaler) Encode(value any, window []byte) {
	binary.LittleEndian.PutUint32(window, value.(uint32))
}

type s32Marshaler struct{}

func (s32Marshaler) Width() uint32            { return 4 }
func (s32Marshaler) Decode(window []byte) any { return int32(binary.LittleEndian.Uint32(window)) }
func (s32Marshaler) Encode(value any, window []byte) {
	binary.LittleEndian.PutUint32(window, uint32(value.(int32)))
}

type u64Marshaler struct{}

func (u64Marshaler) Width() uint32            { return 8 }
func (u64Marshaler) Decode(window []byte) any { return binary.LittleEndian.Uint64(window) }
func (u64Marshaler) Encode(value any, window []byte) {
	binary.LittleEndian.PutUint64(window, value.(uint64))
}

type s64Marshaler struct{}

func (s64Marshaler) Width() uint32            { return 8 }
func (s64Marshaler) Decode(window []byte) any { return int64(binary.LittleEndian.Uint64(window)) }
func (s64Marshaler) Encode(value any, window []byte) {
	binary.LittleEndian.PutUint64(window, uint64(value.(int64)))
}

type f32Marshaler struct{}

func (f32Marshaler) Width() uint32 { return 4 }
func (f32Marshaler) Decode(window []byte) any {
	return math.Float32frombits(binary.LittleEndian.Uint32(window))
}
func (f32Marshaler) Encode(value any, window []byte) {
	binary.LittleEndian.PutUint32(window, math.Float32bits(value.(float32)))
}

type f64Marshaler struct{}

func (f64Marshaler) Width() uint32 { return 8 }
func (f64Marshaler) Decode(window []byte) any {
	return math.Float64frombits(binary.LittleEndian.Uint64(window))
}
func (f64Marshaler) Encode(value any, window []byte) {
	binary.LittleEndian.PutUint64(window, math.Float64bits(value.(float64)))
}

type enumMarshaler struct{}

func (enumMarshaler) Width() uint32            { return 4 }
func (enumMarshaler) Decode(window []byte) any { return Enum(binary.LittleEndian.Uint32(window)) }
func (enumMarshaler) Encode(value any, window []byte) {
	binary.LittleEndian.PutUint32(window, uint32(value.(Enum)))
}
