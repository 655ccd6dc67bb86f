package marshal

import (
	"encoding/binary"
	"math"
)

func getF32(window []byte, off int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(window[off:]))
}

func putF32(window []byte, off int, v float32) {
	binary.LittleEndian.PutUint32(window[off:], math.Float32bits(v))
}

type rgbMarshaler struct{}

func (rgbMarshaler) Width() uint32 { return 12 }

func (rgbMarshaler) Decode(window []byte) any {
	return RGB{R: getF32(window, 0), G: getF32(window, 4), B: getF32(window, 8)}
}

func (rgbMarshaler) Encode(value any, window []byte) {
	c := value.(RGB)
	putF32(window, 0, c.R)
	putF32(window, 4, c.G)
	putF32(window, 8, c.B)
}

type vec2Marshaler struct{}

func (vec2Marshaler) Width() uint32 { return 8 }

func (vec2Marshaler) Decode(window []byte) any {
	return Vec2{X: getF32(window, 0), Y: getF32(window, 4)}
}

func (vec2Marshaler) Encode(value any, window []byte) {
	v := value.(Vec2)
	putF32(window, 0, v.X)
	putF32(window, 4, v.Y)
}

type vec3Marshaler struct{}

func (vec3Marshaler) Width() uint32 { return 12 }

func (vec3Marshaler) Decode(window []byte) any {
	return Vec3{X: getF32(window, 0), Y: getF32(window, 4), Z: getF32(window, 8)}
}

func (vec3Marshaler) Encode(value any, window []byte) {
	v := value.(Vec3)
	putF32(window, 0, v.X)
	putF32(window, 4, v.Y)
	putF32(window, 8, v.Z)
}

type vec4Marshaler struct{}

func (vec4Marshaler) Width() uint32 { return 16 }

func (vec4Marshaler) Decode(window []byte) any {
	return Vec4{X: getF32(window, 0), Y: getF32(window, 4), Z: getF32(window, 8), W: getF32(window, 12)}
}

func (vec4Marshaler) Encode(value any, window []byte) {
	v := value.(Vec4)
	putF32(window, 0, v.X)
	putF32(window, 4, v.Y)
	putF32(window, 8, v.Z)
	putF32(window, 12, v.W)
}

type quatMarshaler struct{}

func (quatMarshaler) Width() uint32 { return 16 }

func (quatMarshaler) Decode(window []byte) any {
	return Quat{X: getF32(window, 0), Y: getF32(window, 4), Z: getF32(window, 8), W: getF32(window, 12)}
}

func (quatMarshaler) Encode(value any, window []byte) {
	q := value.(Quat)
	putF32(window, 0, q.X)
	putF32(window, 4, q.Y)
	putF32(window, 8, q.Z)
	putF32(window, 12, q.W)
}
