package command_test

import (
	"errors"
	"testing"

	"lumen/internal/command"
)

func TestNewCopiesParams(t *testing.T) {
	params := map[string]any{command.ParamMode: "CLOCK"}
	cmd, err := command.New(command.KindSetMode, params)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	params[command.ParamMode] = "TIMER"
	if got, _ := cmd.StringParam(command.ParamMode); got != "CLOCK" {
		t.Fatalf("command should not observe caller mutation, got %q", got)
	}

	copied := cmd.Params()
	copied[command.ParamMode] = "STATIC"
	if got, _ := cmd.StringParam(command.ParamMode); got != "CLOCK" {
		t.Fatalf("Params must return a copy, got %q", got)
	}
}

func TestNewAssignsIdentity(t *testing.T) {
	a, err := command.New("anything", nil)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	b := command.SetMode("STATIC")

	if a.ID() == "" || b.ID() == "" || a.ID() == b.ID() {
		t.Fatalf("expected distinct non-empty ids, got %q and %q", a.ID(), b.ID())
	}
	if a.Kind() != "anything" {
		t.Fatalf("unknown kinds should be preserved, got %q", a.Kind())
	}
	if a.Submitted().IsZero() {
		t.Fatal("expected submission time")
	}
	if a.IsZero() {
		t.Fatal("constructed command should not be zero")
	}
	if !(command.Command{}).IsZero() {
		t.Fatal("zero command should report IsZero")
	}
}

func TestNewRejectsEmptyKind(t *testing.T) {
	for _, kind := range []command.Kind{"", "   "} {
		if _, err := command.New(kind, nil); !errors.Is(err, command.ErrEmptyKind) {
			t.Fatalf("kind %q: expected ErrEmptyKind, got %v", kind, err)
		}
	}
}

func TestStringParamTypeMismatch(t *testing.T) {
	cmd, err := command.New(command.KindSetMode, map[string]any{command.ParamMode: 3.0})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, ok := cmd.StringParam(command.ParamMode); ok {
		t.Fatal("expected non-string param to be reported as missing")
	}
	if value, ok := cmd.Param(command.ParamMode); !ok || value != 3.0 {
		t.Fatalf("Param should expose raw value, got %v %v", value, ok)
	}
	if _, ok := cmd.StringParam("absent"); ok {
		t.Fatal("absent param should not be found")
	}
}

func TestNewDeepCopiesNestedParams(t *testing.T) {
	nested := map[string]any{"color": "red"}
	list := []any{"a"}
	cmd, err := command.New("render", map[string]any{"style": nested, "frames": list})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	nested["color"] = "blue"
	list[0] = "b"

	style, _ := cmd.Param("style")
	if style.(map[string]any)["color"] != "red" {
		t.Fatalf("nested map leaked mutation: %v", style)
	}
	frames, _ := cmd.Param("frames")
	if frames.([]any)[0] != "a" {
		t.Fatalf("nested slice leaked mutation: %v", frames)
	}
}
