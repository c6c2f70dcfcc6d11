package pg

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestTracerLogsQuery(t *testing.T) {
	var buf bytes.Buffer
	root := zerolog.New(&buf)

	tr := Tracer(root)
	tr.OnQuery(context.Background(), QueryEvent{
		SQL:       "select\n\t*  from artworks",
		Args:      []any{"abc"},
		ElapsedUS: 1200,
		Err:       nil,
		Slow:      false,
	})

	out := buf.String()
	if !strings.Contains(out, `"sql":"select * from artworks"`) {
		t.Fatalf("sql not compacted: %s", out)
	}
	if !strings.Contains(out, `"component":"pg"`) {
		t.Fatalf("missing component field: %s", out)
	}
	if !strings.Contains(out, `"level":"info"`) {
		t.Fatalf("normal query should log at info: %s", out)
	}
}

func TestTracerWarnsOnSlow(t *testing.T) {
	var buf bytes.Buffer
	root := zerolog.New(&buf)

	tr := Tracer(root)
	tr.OnQuery(context.Background(), QueryEvent{
		SQL:       "select pg_sleep(1)",
		ElapsedUS: 900000,
		Err:       errors.New("timeout"),
		Slow:      true,
	})

	out := buf.String()
	if !strings.Contains(out, `"level":"warn"`) {
		t.Fatalf("slow query should log at warn: %s", out)
	}
	if !strings.Contains(out, `"slow":true`) {
		t.Fatalf("missing slow flag: %s", out)
	}
}

func TestCompact(t *testing.T) {
	got := compact("  a\n\tb   c\r\n")
	if got != " a b c " {
		t.Fatalf("unexpected compact output %q", got)
	}
}
