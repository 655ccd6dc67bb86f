package bind_test

import (
	stderrors "errors"
	"testing"

	"github.com/rawview/rawview/bind"
	"github.com/rawview/rawview/errors"
	"github.com/rawview/rawview/marshal"
)

var statsLayout = mustLayout("StatsRaw", 8,
	bind.Field{Name: "health", Offset: 0, Kind: marshal.KindF32},
	bind.Field{Name: "ammo", Offset: 4, Kind: marshal.KindU32},
)

var unitLayout = mustLayout("UnitRaw", 20,
	bind.Field{Name: "name", Offset: 0, Kind: marshal.KindString, Size: 8},
	bind.Field{Name: "stats", Offset: 8, Nested: statsLayout},
	bind.Field{Name: "level", Offset: 16, Kind: marshal.KindU32},
)

func mustLayout(name string, size uint32, fields ...bind.Field) *bind.Layout {
	l, err := bind.NewLayout(name, size, fields...)
	if err != nil {
		panic(err)
	}
	return l
}

type statsView struct {
	Health float32 `bind:"health"`
	Ammo   uint32  `bind:"ammo"`
}

func (*statsView) RawLayout() *bind.Layout { return statsLayout }

type unitView struct {
	Name  string     `bind:"name"`
	Stats *statsView `bind:"stats"`
	Level *uint32    `bind:"level"`

	// Unbound: no tag, excluded from synchronization.
	Score int
}

func (*unitView) RawLayout() *bind.Layout { return unitLayout }

func TestRegistryFor(t *testing.T) {
	reg, err := bind.RegistryFor(&unitView{})
	if err != nil {
		t.Fatalf("RegistryFor failed: %v", err)
	}

	if len(reg.Terminal) != 2 {
		t.Fatalf("Terminal = %d entries, want 2", len(reg.Terminal))
	}
	if len(reg.Nested) != 1 {
		t.Fatalf("Nested = %d entries, want 1", len(reg.Nested))
	}

	name, ok := reg.Entry("Name")
	if !ok || name.Nested || name.Optional {
		t.Errorf("Name entry = %+v", name)
	}

	level, ok := reg.Entry("Level")
	if !ok || !level.Optional {
		t.Error("pointer-typed Level should be optional")
	}

	stats, ok := reg.Entry("Stats")
	if !ok || !stats.Nested {
		t.Fatal("Stats should be a nested entry")
	}
	if stats.NewChild == nil {
		t.Fatal("nested entry has no child factory")
	}
	if _, isView := stats.NewChild().(*statsView); !isView {
		t.Error("child factory builds the wrong type")
	}

	if _, ok := reg.Entry("Score"); ok {
		t.Error("untagged property should not be bound")
	}

	// Entries returns terminal first.
	all := reg.Entries()
	if len(all) != 3 || all[2] != stats {
		t.Errorf("Entries ordering wrong: %v", all)
	}
}

func TestRegistryFor_Cached(t *testing.T) {
	a, err := bind.RegistryFor(&unitView{})
	if err != nil {
		t.Fatal(err)
	}
	b, err := bind.RegistryFor(&unitView{})
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Error("registry not cached by view type")
	}
}

type mismatchView struct {
	Health int `bind:"health"` // layout declares f32
}

func (*mismatchView) RawLayout() *bind.Layout { return statsLayout }

func TestRegistryFor_TypeMismatchFatal(t *testing.T) {
	_, err := bind.RegistryFor(&mismatchView{})
	if err == nil {
		t.Fatal("expected type mismatch error")
	}
	var e *errors.Error
	if !stderrors.As(err, &e) || e.Kind != errors.KindTypeMismatch {
		t.Errorf("error = %v, want kind type_mismatch", err)
	}
}

type unmatchedView struct {
	Health float32 `bind:"health"`
	Ghost  uint32  `bind:"no_such_field"`
}

func (*unmatchedView) RawLayout() *bind.Layout { return statsLayout }

func TestRegistryFor_UnmatchedBindingTolerated(t *testing.T) {
	reg, err := bind.RegistryFor(&unmatchedView{})
	if err != nil {
		t.Fatalf("unmatched binding should not be fatal: %v", err)
	}
	if _, ok := reg.Entry("Ghost"); ok {
		t.Error("unmatched binding should be excluded")
	}
	if _, ok := reg.Entry("Health"); !ok {
		t.Error("sibling binding should survive")
	}
}

type nestedOnTerminalView struct {
	Level *statsView `bind:"level"` // layout declares u32
}

func (*nestedOnTerminalView) RawLayout() *bind.Layout { return unitLayout }

func TestRegistryFor_NestedOnTerminalField(t *testing.T) {
	_, err := bind.RegistryFor(&nestedOnTerminalView{})
	if err == nil {
		t.Fatal("expected type mismatch error")
	}
	var e *errors.Error
	if !stderrors.As(err, &e) || e.Kind != errors.KindTypeMismatch {
		t.Errorf("error = %v, want kind type_mismatch", err)
	}
}
