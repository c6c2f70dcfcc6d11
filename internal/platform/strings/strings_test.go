package strings

import (
	"testing"

	"rakugaki/internal/platform/testkit"
)

func TestIfEmpty(t *testing.T) {
	def := []string{"fallback"}
	if got := IfEmpty(nil, def); len(got) != 1 || got[0] != "fallback" {
		t.Fatalf("nil input: %v", got)
	}
	in := []string{"a"}
	if got := IfEmpty(in, def); len(got) != 1 || got[0] != "a" {
		t.Fatalf("non-empty input: %v", got)
	}
}

func TestMustString(t *testing.T) {
	if got := MustString("value", "field"); got != "value" {
		t.Fatalf("got %q", got)
	}
	testkit.MustPanic(t, func() { MustString("   ", "field") })
}

func TestMustPrefix(t *testing.T) {
	cases := map[string]string{
		"/works":    "/works",
		"works":     "/works",
		" /works/ ": "/works",
		"//works//": "/works",
	}
	for in, want := range cases {
		if got := MustPrefix(in); got != want {
			t.Errorf("MustPrefix(%q) = %q, want %q", in, got, want)
		}
	}
	testkit.MustPanic(t, func() { MustPrefix("  ") })
	testkit.MustPanic(t, func() { MustPrefix("/") })
}

func TestDerefAndPtr(t *testing.T) {
	if Deref(nil) != "" {
		t.Fatal("nil deref must be empty")
	}
	s := "x"
	if Deref(&s) != "x" {
		t.Fatal("deref lost value")
	}
	if Ptr("") != nil {
		t.Fatal("empty string must map to nil")
	}
	if p := Ptr("x"); p == nil || *p != "x" {
		t.Fatal("pointer lost value")
	}
}
