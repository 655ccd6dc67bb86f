package marshal

// RGB is a three-channel float color. Raw layouts that carry an alpha slot
// store it outside the 12-byte window; it is not mirrored.
type RGB struct {
	R, G, B float32
}

// Vec2 is a two-component float vector.
type Vec2 struct {
	X, Y float32
}

// Vec3 is a three-component float vector.
type Vec3 struct {
	X, Y, Z float32
}

// Vec4 is a four-component float vector.
type Vec4 struct {
	X, Y, Z, W float32
}

// Quat is a rotation quaternion stored x, y, z, w.
type Quat struct {
	X, Y, Z, W float32
}
