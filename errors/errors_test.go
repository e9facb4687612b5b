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
				Phase:  PhaseResolve,
				Kind:   KindUnsupported,
				Path:   []string{"player", "inventory", "items"},
				GoType: "chan int",
				Detail: "channels cannot be serialized",
			},
			contains: []string{"[resolve]", "unsupported", "player.inventory.items", "chan int", "channels cannot be serialized"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseDecode,
				Kind:  KindOutOfBounds,
			},
			contains: []string{"[decode]", "out_of_bounds"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseDecode,
				Kind:   KindInvalidData,
				Detail: "truncated payload",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[decode]", "invalid_data", "truncated payload", "caused by", "underlying error"},
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
		Phase: PhaseEncode,
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
		Phase: PhaseDecode,
		Kind:  KindOutOfBounds,
		Path:  []string{"foo"},
	}

	if !errors.Is(err, &Error{Phase: PhaseDecode, Kind: KindOutOfBounds}) {
		t.Error("errors.Is should match on Phase+Kind")
	}
	if errors.Is(err, &Error{Phase: PhaseEncode, Kind: KindOutOfBounds}) {
		t.Error("errors.Is should not match a different Phase")
	}
	if errors.Is(err, &Error{Phase: PhaseDecode, Kind: KindOverflow}) {
		t.Error("errors.Is should not match a different Kind")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("boom")
	err := New(PhaseEncode, KindFormat).
		Path("msg", "name").
		GoType("string").
		Value("x").
		Cause(cause).
		Detail("string exceeds %d bytes", 65535).
		Build()

	if err.Phase != PhaseEncode || err.Kind != KindFormat {
		t.Errorf("unexpected phase/kind: %s/%s", err.Phase, err.Kind)
	}
	if err.Detail != "string exceeds 65535 bytes" {
		t.Errorf("unexpected detail: %q", err.Detail)
	}
	if !errors.Is(err, &Error{Phase: PhaseEncode, Kind: KindFormat}) {
		t.Error("built error does not match itself")
	}
	if err.Unwrap() != cause {
		t.Error("cause not preserved")
	}
}

func TestConvenienceConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		phase    Phase
		kind     Kind
		contains string
	}{
		{"out of bounds", OutOfBounds(PhaseDecode, 8, 3), PhaseDecode, KindOutOfBounds, "need 8 bytes, 3 remaining"},
		{"unsupported", Unsupported(PhaseResolve, nil, "main.Node", "direct self-reference"), PhaseResolve, KindUnsupported, "direct self-reference"},
		{"overflow", Overflow(PhaseDecode, 11, "uint64 varint"), PhaseDecode, KindOverflow, "overflows uint64 varint"},
		{"format", Format(PhaseEncode, "string length %d exceeds limit", 70000), PhaseEncode, KindFormat, "70000"},
		{"type mismatch", TypeMismatch(PhaseDecode, nil, "int", "string"), PhaseDecode, KindTypeMismatch, "expected string"},
		{"nil pointer", NilPointer(PhaseEncode, nil, "*main.T"), PhaseEncode, KindNilPointer, "nil pointer"},
		{"invalid config", InvalidConfig("bits per component %d out of range", 40), PhaseResolve, KindInvalidConfig, "40"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Phase != tt.phase {
				t.Errorf("phase = %s, want %s", tt.err.Phase, tt.phase)
			}
			if tt.err.Kind != tt.kind {
				t.Errorf("kind = %s, want %s", tt.err.Kind, tt.kind)
			}
			if !strings.Contains(tt.err.Error(), tt.contains) {
				t.Errorf("message %q does not contain %q", tt.err.Error(), tt.contains)
			}
		})
	}
}
