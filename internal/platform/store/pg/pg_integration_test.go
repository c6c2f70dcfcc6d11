//go:build integration_pg
// +build integration_pg

package pg

import (
	"context"
	"fmt"
	"testing"
	"time"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startPostgres(t *testing.T) (dsn string, stop func()) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)

	req := tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
			"POSTGRES_DB":       "postgres",
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("5432/tcp"),
			wait.ForLog("database system is ready to accept connections"),
		).WithDeadline(2 * time.Minute),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		cancel()
		t.Fatalf("failed to start postgres container: %v", err)
	}

	host, err := c.Host(ctx)
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("failed to get container host: %v", err)
	}
	mapped, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("failed to get mapped port: %v", err)
	}

	dsn = fmt.Sprintf("postgres://postgres:postgres@%s:%s/postgres?sslmode=disable", host, mapped.Port())
	stop = func() {
		_ = c.Terminate(context.Background())
		cancel()
	}
	return dsn, stop
}

func TestOpenAndArchiveRoundtrip(t *testing.T) {
	dsn, stop := startPostgres(t)
	defer stop()

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	p, err := Open(ctx, Config{URL: dsn, MaxConns: 2}, nil, nil)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer p.Close()

	if err := p.Pool.Ping(ctx); err != nil {
		t.Fatalf("ping failed: %v", err)
	}

	ddl := `
		create table if not exists artworks (
			id         text primary key,
			payload    jsonb not null,
			created_at timestamptz not null default now(),
			expires_at timestamptz not null
		)`
	if _, err := p.Pool.Exec(ctx, ddl); err != nil {
		t.Fatalf("ddl failed: %v", err)
	}

	const id = "abcd1234"
	if _, err := p.Pool.Exec(ctx,
		`insert into artworks (id, payload, expires_at) values ($1, $2, now() + interval '1 day')`,
		id, `{"title":"untitled masterpiece"}`,
	); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	var title string
	if err := p.Pool.QueryRow(ctx,
		`select payload->>'title' from artworks where id = $1 and expires_at > now()`, id,
	).Scan(&title); err != nil {
		t.Fatalf("select failed: %v", err)
	}
	if title != "untitled masterpiece" {
		t.Fatalf("unexpected title %q", title)
	}

	tag, err := p.Pool.Exec(ctx, `delete from artworks where id = $1`, id)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if tag.RowsAffected() != 1 {
		t.Fatalf("unexpected rows affected %d", tag.RowsAffected())
	}
}
