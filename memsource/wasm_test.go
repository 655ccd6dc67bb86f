package memsource

import (
	"bytes"
	"context"
	"encoding/binary"
	"testing"

	"github.com/tetratelabs/wazero"
)

// memoryWASM is a minimal WASM module with 1 page of memory exported as "memory"
var memoryWASM = []byte{
	0x00, 0x61, 0x73, 0x6d, // magic
	0x01, 0x00, 0x00, 0x00, // version
	0x05, 0x03, 0x01, 0x00, 0x01, // memory section: 1 page, no max
	0x07, 0x0a, 0x01, // export section: 10 bytes, 1 export
	0x06, 0x6d, 0x65, 0x6d, 0x6f, 0x72, 0x79, // name: "memory" (6 bytes + string)
	0x02, 0x00, // kind: memory, index 0
}

func instantiateMemory(t *testing.T) (*WasmSource, func()) {
	t.Helper()
	ctx := context.Background()
	rt := wazero.NewRuntime(ctx)

	mod, err := rt.Instantiate(ctx, memoryWASM)
	if err != nil {
		rt.Close(ctx)
		t.Fatalf("failed to instantiate: %v", err)
	}

	return NewWasmSource(mod.ExportedMemory("memory")), func() { rt.Close(ctx) }
}

func TestWasmSource_ReadWrite(t *testing.T) {
	src, done := instantiateMemory(t)
	defer done()

	if !src.IsAlive() {
		t.Fatal("instantiated memory should be alive")
	}

	if err := src.WriteAt(0x100, []byte{0xDE, 0xAD, 0xBE, 0xEF}); err != nil {
		t.Fatalf("WriteAt failed: %v", err)
	}
	got, err := src.ReadAt(0x100, 4)
	if err != nil {
		t.Fatalf("ReadAt failed: %v", err)
	}
	if !bytes.Equal(got, []byte{0xDE, 0xAD, 0xBE, 0xEF}) {
		t.Errorf("ReadAt = %x", got)
	}
}

func TestWasmSource_ReadPointer(t *testing.T) {
	src, done := instantiateMemory(t)
	defer done()

	var ptr [4]byte
	binary.LittleEndian.PutUint32(ptr[:], 0x1234)
	if err := src.WriteAt(0x40, ptr[:]); err != nil {
		t.Fatalf("WriteAt failed: %v", err)
	}

	got, err := src.ReadPointer(0x40)
	if err != nil {
		t.Fatalf("ReadPointer failed: %v", err)
	}
	if got != 0x1234 {
		t.Errorf("ReadPointer = %#x, want 0x1234", got)
	}
}

func TestWasmSource_OutOfBounds(t *testing.T) {
	src, done := instantiateMemory(t)
	defer done()

	// One page is 64 KiB.
	if _, err := src.ReadAt(65536, 1); err == nil {
		t.Error("expected out-of-bounds read to fail")
	}
	if err := src.WriteAt(65534, []byte{1, 2, 3, 4}); err == nil {
		t.Error("expected out-of-bounds write to fail")
	}
}

func TestWasmSource_NilMemory(t *testing.T) {
	src := NewWasmSource(nil)
	if src.IsAlive() {
		t.Error("nil memory should report dead")
	}
	if _, err := src.ReadAt(0, 1); err == nil {
		t.Error("ReadAt on nil memory should fail")
	}
}
