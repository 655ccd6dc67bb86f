package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseCompile,
				Kind:   KindTypeMismatch,
				Path:   []string{"Player", "Health"},
				GoType: "string",
				Field:  "health",
				Detail: "cannot bind",
			},
			contains: []string{"[compile]", "type_mismatch", "Player.Health", "string", "health", "cannot bind"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseResolve,
				Kind:  KindNilPointer,
			},
			contains: []string{"[resolve]", "nil_pointer"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseSource,
				Kind:   KindOutOfBounds,
				Detail: "read past end",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[source]", "out_of_bounds", "read past end", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseDecode,
		Kind:  KindInvalidData,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}
	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase: PhaseCompile,
		Kind:  KindMissingOffset,
		Path:  []string{"foo"},
	}

	if !err.Is(&Error{Phase: PhaseCompile, Kind: KindMissingOffset}) {
		t.Error("Is should match same phase and kind")
	}
	if err.Is(&Error{Phase: PhaseResolve, Kind: KindMissingOffset}) {
		t.Error("Is should not match different phase")
	}
	if err.Is(&Error{Phase: PhaseCompile, Kind: KindTypeMismatch}) {
		t.Error("Is should not match different kind")
	}

	target := &Error{Phase: PhaseCompile, Kind: KindMissingOffset}
	if !errors.Is(err, target) {
		t.Error("errors.Is should match")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseEncode, KindTypeMismatch).
		Path("Player", "Tint").
		GoType("float64").
		Field("tint").
		Cause(cause).
		Detail("expected %s, got %s", "rgb", "float64").
		Build()

	if err.Phase != PhaseEncode {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseEncode)
	}
	if err.Kind != KindTypeMismatch {
		t.Errorf("Kind = %v, want %v", err.Kind, KindTypeMismatch)
	}
	if len(err.Path) != 2 || err.Path[0] != "Player" || err.Path[1] != "Tint" {
		t.Errorf("Path = %v, want [Player Tint]", err.Path)
	}
	if err.GoType != "float64" {
		t.Errorf("GoType = %v, want 'float64'", err.GoType)
	}
	if err.Field != "tint" {
		t.Errorf("Field = %v, want 'tint'", err.Field)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "expected rgb, got float64" {
		t.Errorf("Detail = %v", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("MissingOffset", func(t *testing.T) {
		err := MissingOffset(PhaseCompile, []string{"Player"}, "health")
		if err.Kind != KindMissingOffset {
			t.Errorf("Kind = %v, want %v", err.Kind, KindMissingOffset)
		}
		if err.Field != "health" {
			t.Errorf("Field = %v, want health", err.Field)
		}
	})

	t.Run("TypeMismatch", func(t *testing.T) {
		err := TypeMismatch(PhaseCompile, []string{"Player", "Ammo"}, "int", "u32")
		if err.Kind != KindTypeMismatch {
			t.Errorf("Kind = %v, want %v", err.Kind, KindTypeMismatch)
		}
		if !strings.Contains(err.Detail, "u32") {
			t.Errorf("Detail = %v, should name field type", err.Detail)
		}
	})

	t.Run("FieldUnknown", func(t *testing.T) {
		err := FieldUnknown(PhaseCompile, []string{"Player"}, "mana")
		if err.Kind != KindFieldUnknown {
			t.Errorf("Kind = %v, want %v", err.Kind, KindFieldUnknown)
		}
	})

	t.Run("NilPointer", func(t *testing.T) {
		err := NilPointer(PhaseResolve, []string{"Weapon"}, 1)
		if err.Kind != KindNilPointer {
			t.Errorf("Kind = %v, want %v", err.Kind, KindNilPointer)
		}
		if !strings.Contains(err.Detail, "step 1") {
			t.Errorf("Detail = %v, should name step", err.Detail)
		}
	})

	t.Run("DeadSource", func(t *testing.T) {
		err := DeadSource("target process exited")
		if err.Kind != KindDeadSource || err.Phase != PhaseSource {
			t.Errorf("got %v/%v", err.Phase, err.Kind)
		}
	})

	t.Run("UnboundRoot", func(t *testing.T) {
		err := UnboundRoot("Player")
		if err.Kind != KindUnboundRoot {
			t.Errorf("Kind = %v, want %v", err.Kind, KindUnboundRoot)
		}
	})

	t.Run("SizeMismatch", func(t *testing.T) {
		err := SizeMismatch(PhaseSync, 16, 8)
		if err.Kind != KindSizeMismatch {
			t.Errorf("Kind = %v, want %v", err.Kind, KindSizeMismatch)
		}
		if !strings.Contains(err.Detail, "16") || !strings.Contains(err.Detail, "8") {
			t.Errorf("Detail = %v, should contain sizes", err.Detail)
		}
	})

	t.Run("OutOfBounds", func(t *testing.T) {
		err := OutOfBounds(PhaseDecode, 12, 8, 16)
		if err.Kind != KindOutOfBounds {
			t.Errorf("Kind = %v, want %v", err.Kind, KindOutOfBounds)
		}
	})

	t.Run("InvalidTag", func(t *testing.T) {
		err := InvalidTag([]string{"PlayerRaw", "Health"}, "type=rgb", "missing @offset")
		if err.Kind != KindInvalidTag {
			t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidTag)
		}
	})
}
