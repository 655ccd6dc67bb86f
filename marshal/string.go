package marshal

import "bytes"

// stringMarshaler handles fixed-width NUL-padded character fields. Decode
// stops at the first NUL; content past it is ignored. Encode truncates
// values longer than the window.
type stringMarshaler struct {
	width uint32
}

func (m stringMarshaler) Width() uint32 { return m.width }

func (m stringMarshaler) Decode(window []byte) any {
	if i := bytes.IndexByte(window, 0); i >= 0 {
		return string(window[:i])
	}
	return string(window)
}

func (m stringMarshaler) Encode(value any, window []byte) {
	s := value.(string)
	n := copy(window, s)
	for i := n; i < len(window); i++ {
		window[i] = 0
	}
}

// bytesMarshaler mirrors an opaque fixed-width byte region verbatim.
type bytesMarshaler struct {
	width uint32
}

func (m bytesMarshaler) Width() uint32 { return m.width }

func (m bytesMarshaler) Decode(window []byte) any {
	out := make([]byte, len(window))
	copy(out, window)
	return out
}

func (m bytesMarshaler) Encode(value any, window []byte) {
	b := value.([]byte)
	n := copy(window, b)
	for i := n; i < len(window); i++ {
		window[i] = 0
	}
}
