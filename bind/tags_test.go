package bind_test

import (
	stderrors "errors"
	"reflect"
	"testing"

	"github.com/rawview/rawview/bind"
	"github.com/rawview/rawview/errors"
	"github.com/rawview/rawview/marshal"
	"github.com/rawview/rawview/resolve"
)

type playerRaw struct {
	Health float32     `raw:"@0x00"`
	Ammo   uint32      `raw:"@0x04"`
	Tint   marshal.RGB `raw:"@0x08"`
	Name   string      `raw:"@0x14,size=16"`
	Mode   uint32      `raw:"@0x24,type=enum"`
}

func TestLayoutOf(t *testing.T) {
	l, err := bind.LayoutOf(reflect.TypeOf(playerRaw{}))
	if err != nil {
		t.Fatalf("LayoutOf failed: %v", err)
	}
	if l.Name != "playerRaw" {
		t.Errorf("Name = %q", l.Name)
	}
	if l.Size != 0x28 {
		t.Errorf("Size = %#x, want 0x28", l.Size)
	}

	tests := []struct {
		field  string
		offset uint32
		kind   marshal.Kind
		width  uint32
	}{
		{"health", 0x00, marshal.KindF32, 4},
		{"ammo", 0x04, marshal.KindU32, 4},
		{"tint", 0x08, marshal.KindRGB, 12},
		{"name", 0x14, marshal.KindString, 16},
		{"mode", 0x24, marshal.KindEnum, 4},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			f, ok := l.Field(tt.field)
			if !ok {
				t.Fatalf("field %s not found", tt.field)
			}
			if f.Offset != tt.offset {
				t.Errorf("Offset = %#x, want %#x", f.Offset, tt.offset)
			}
			if f.Kind != tt.kind {
				t.Errorf("Kind = %s, want %s", f.Kind, tt.kind)
			}
			if f.WireSize() != tt.width {
				t.Errorf("WireSize = %d, want %d", f.WireSize(), tt.width)
			}
		})
	}
}

func TestLayoutOf_Cached(t *testing.T) {
	a, err := bind.LayoutOf(reflect.TypeOf(playerRaw{}))
	if err != nil {
		t.Fatal(err)
	}
	b, err := bind.LayoutOf(reflect.TypeOf(&playerRaw{}))
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Error("layout not cached by type identity")
	}
}

type nestedRaw struct {
	ID    uint32   `raw:"@0"`
	Inner innerRaw `raw:"@4"`
}

type innerRaw struct {
	X float32 `raw:"@0"`
	Y float32 `raw:"@4"`
}

func TestLayoutOf_NestedStruct(t *testing.T) {
	l, err := bind.LayoutOf(reflect.TypeOf(nestedRaw{}))
	if err != nil {
		t.Fatalf("LayoutOf failed: %v", err)
	}
	f, ok := l.Field("inner")
	if !ok {
		t.Fatal("field inner not found")
	}
	if f.Nested == nil {
		t.Fatal("inner is not a nested layout")
	}
	if f.Nested.Size != 8 || f.WireSize() != 8 {
		t.Errorf("nested size = %d, wire = %d, want 8/8", f.Nested.Size, f.WireSize())
	}
	if l.Size != 12 {
		t.Errorf("Size = %d, want 12", l.Size)
	}
}

type indirectRaw struct {
	World uint64  `raw:"@0x00"`
	Fuel  float32 `raw:"@0x00,deref=0x30"`
}

func TestLayoutOf_IndirectionSteps(t *testing.T) {
	l, err := bind.LayoutOf(reflect.TypeOf(indirectRaw{}))
	if err != nil {
		t.Fatalf("LayoutOf failed: %v", err)
	}
	f, _ := l.Field("fuel")
	want := []resolve.Step{resolve.Deref(0x30)}
	if !reflect.DeepEqual(f.Steps, want) {
		t.Errorf("Steps = %v, want %v", f.Steps, want)
	}
}

func TestLayoutOf_Errors(t *testing.T) {
	type noTag struct {
		X uint32
	}
	type badOffset struct {
		X uint32 `raw:"4"`
	}
	type badType struct {
		X uint32 `raw:"@0,type=nope"`
	}
	type noKind struct {
		X chan int `raw:"@0"`
	}
	type empty struct{}

	tests := []struct {
		name string
		typ  reflect.Type
		kind errors.Kind
	}{
		{"untagged field", reflect.TypeOf(noTag{}), errors.KindMissingOffset},
		{"offset without @", reflect.TypeOf(badOffset{}), errors.KindInvalidTag},
		{"unknown type tag", reflect.TypeOf(badType{}), errors.KindInvalidTag},
		{"unmappable Go type", reflect.TypeOf(noKind{}), errors.KindUnsupported},
		{"no fields", reflect.TypeOf(empty{}), errors.KindInvalidData},
		{"not a struct", reflect.TypeOf(0), errors.KindInvalidData},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := bind.LayoutOf(tt.typ)
			if err == nil {
				t.Fatal("expected error")
			}
			var e *errors.Error
			if !stderrors.As(err, &e) || e.Kind != tt.kind {
				t.Errorf("error = %v, want kind %s", err, tt.kind)
			}
		})
	}
}
