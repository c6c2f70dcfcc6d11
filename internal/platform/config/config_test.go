package config

import (
	"testing"
	"time"

	"rakugaki/internal/platform/testkit"
)

func TestPrefixComposes(t *testing.T) {
	t.Setenv("RAKUGAKI_GENAI_MODEL", "gemini-2.0-flash")

	cfg := New().Prefix("RAKUGAKI_").Prefix("GENAI_")
	if got := cfg.MayString("MODEL", ""); got != "gemini-2.0-flash" {
		t.Fatalf("got %q", got)
	}
}

func TestMayDefaults(t *testing.T) {
	cfg := New().Prefix("RAKUGAKI_TEST_UNSET_")

	if got := cfg.MayString("S", "fallback"); got != "fallback" {
		t.Fatalf("MayString: %q", got)
	}
	if got := cfg.MayInt("I", 7); got != 7 {
		t.Fatalf("MayInt: %d", got)
	}
	if got := cfg.MayInt64("I64", 9); got != 9 {
		t.Fatalf("MayInt64: %d", got)
	}
	if got := cfg.MayBool("B", true); !got {
		t.Fatal("MayBool default lost")
	}
	if got := cfg.MayDuration("D", 3*time.Second); got != 3*time.Second {
		t.Fatalf("MayDuration: %v", got)
	}
}

func TestMayParses(t *testing.T) {
	t.Setenv("RAKUGAKI_TEST_I", "42")
	t.Setenv("RAKUGAKI_TEST_B", "true")
	t.Setenv("RAKUGAKI_TEST_D", "250ms")
	t.Setenv("RAKUGAKI_TEST_F", "0.95")

	cfg := New().Prefix("RAKUGAKI_TEST_")
	if got := cfg.MayInt("I", 0); got != 42 {
		t.Fatalf("MayInt: %d", got)
	}
	if !cfg.MayBool("B", false) {
		t.Fatal("MayBool: want true")
	}
	if got := cfg.MayDuration("D", 0); got != 250*time.Millisecond {
		t.Fatalf("MayDuration: %v", got)
	}
	if got := cfg.MayFloat64("F", 0); got != 0.95 {
		t.Fatalf("MayFloat64: %v", got)
	}
}

func TestMayInvalidFallsBack(t *testing.T) {
	t.Setenv("RAKUGAKI_TEST_I", "not-a-number")
	t.Setenv("RAKUGAKI_TEST_D", "soon")

	cfg := New().Prefix("RAKUGAKI_TEST_")
	if got := cfg.MayInt("I", 5); got != 5 {
		t.Fatalf("MayInt: %d", got)
	}
	if got := cfg.MayDuration("D", time.Minute); got != time.Minute {
		t.Fatalf("MayDuration: %v", got)
	}
}

func TestMayCSV(t *testing.T) {
	t.Setenv("RAKUGAKI_TEST_CSV", "a, b, ,c")

	cfg := New().Prefix("RAKUGAKI_TEST_")
	got := cfg.MayCSV("CSV", nil)
	if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Fatalf("MayCSV: %v", got)
	}
	if def := cfg.MayCSV("CSV_UNSET", []string{"x"}); len(def) != 1 || def[0] != "x" {
		t.Fatalf("MayCSV default: %v", def)
	}
}

func TestMustStringPanicsWhenMissing(t *testing.T) {
	cfg := New().Prefix("RAKUGAKI_TEST_UNSET_")
	testkit.MustPanic(t, func() { cfg.MustString("API_KEY") })
}

func TestMustIntPanicsOnGarbage(t *testing.T) {
	t.Setenv("RAKUGAKI_TEST_I", "forty-two")
	cfg := New().Prefix("RAKUGAKI_TEST_")
	testkit.MustPanic(t, func() { cfg.MustInt("I") })
}
