// Package repo provides the optional Postgres archive for gallery works
package repo

import (
	"context"
	"encoding/json"
	"time"

	"rakugaki/internal/modkit/repokit"
	perr "rakugaki/internal/platform/errors"
	cdom "rakugaki/internal/services/critique/domain"
)

type (
	pg     struct{ q repokit.Queryer }
	binder struct{}
)

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &pg{q: q} }

// Storage defines the gallery archive repository
type Storage interface {
	Ensure(ctx context.Context) error
	Save(ctx context.Context, a cdom.Artwork, expiresAt time.Time) error
	Get(ctx context.Context, id string, now time.Time) (cdom.Artwork, time.Time, error)
	Delete(ctx context.Context, id string) (bool, error)
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

// Ensure creates the archive table when missing
func (s *pg) Ensure(ctx context.Context) error {
	_, err := s.q.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS artworks (
			id         text PRIMARY KEY,
			payload    jsonb NOT NULL,
			created_at timestamptz NOT NULL,
			expires_at timestamptz NOT NULL
		)`)
	if err != nil {
		return err
	}
	_, err = s.q.Exec(ctx,
		`CREATE INDEX IF NOT EXISTS artworks_expires_at_idx ON artworks (expires_at)`)
	return err
}

// Save upserts an artwork, refreshing the expiry on conflict
func (s *pg) Save(ctx context.Context, a cdom.Artwork, expiresAt time.Time) error {
	payload, err := json.Marshal(a)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeAPI, "marshal artwork for archive")
	}
	_, err = s.q.Exec(ctx, `
		INSERT INTO artworks (id, payload, created_at, expires_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET payload = EXCLUDED.payload, expires_at = EXCLUDED.expires_at`,
		a.ID, payload, a.CreatedAt, expiresAt)
	return err
}

// Get returns a non-expired archived artwork by id along with its expiry,
// so callers can rehydrate caches without extending the lifetime
func (s *pg) Get(ctx context.Context, id string, now time.Time) (cdom.Artwork, time.Time, error) {
	rows, err := s.q.Query(ctx,
		`SELECT payload, expires_at FROM artworks WHERE id = $1 AND expires_at > $2`, id, now)
	if err != nil {
		return cdom.Artwork{}, time.Time{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return cdom.Artwork{}, time.Time{}, err
		}
		return cdom.Artwork{}, time.Time{}, perr.NotFoundf("artwork %q not found", id)
	}
	var (
		payload   []byte
		expiresAt time.Time
	)
	if err := rows.Scan(&payload, &expiresAt); err != nil {
		return cdom.Artwork{}, time.Time{}, err
	}
	var a cdom.Artwork
	if err := json.Unmarshal(payload, &a); err != nil {
		return cdom.Artwork{}, time.Time{}, perr.Wrap(err, perr.ErrorCodeAPI, "unmarshal archived artwork")
	}
	return a, expiresAt, rows.Err()
}

// Delete removes an archived artwork and reports whether it existed
func (s *pg) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := s.q.Exec(ctx, `DELETE FROM artworks WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// PurgeExpired drops rows past their expiry and reports how many
func (s *pg) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := s.q.Exec(ctx, `DELETE FROM artworks WHERE expires_at <= $1`, now)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
