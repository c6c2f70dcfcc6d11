// Package service holds gallery works in memory with an optional
// Postgres archive so share links survive process restarts
package service

import (
	"context"
	"sync"
	"time"

	"rakugaki/internal/modkit/repokit"
	perr "rakugaki/internal/platform/errors"
	"rakugaki/internal/platform/logger"
	cdom "rakugaki/internal/services/critique/domain"
	"rakugaki/internal/services/gallery/domain"
	"rakugaki/internal/services/gallery/repo"
)

// Config controls the gallery service
type Config struct {
	// TTL is how long a stored artwork stays retrievable
	TTL time.Duration
	// Capacity caps the in-memory cache
	Capacity int
	// SweepInterval is how often expired entries are purged
	SweepInterval time.Duration
}

// Service implements artwork storage and lookup.
// It satisfies the critique generator's gallery port and the query port.
type Service struct {
	mem *Memory
	cfg Config
	log logger.Logger

	// archive is nil when Postgres is disabled
	db     repokit.TxRunner
	binder repokit.Binder[repo.Storage]

	now  func() time.Time // seam for tests
	done chan struct{}
	wg   sync.WaitGroup
}

// New constructs the gallery service
// db may be nil, works then live only in process memory
func New(db repokit.TxRunner, binder repokit.Binder[repo.Storage], cfg Config, log logger.Logger) *Service {
	if cfg.TTL <= 0 {
		cfg.TTL = 24 * time.Hour
	}
	if cfg.Capacity <= 0 {
		cfg.Capacity = 1000
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = cfg.TTL / 10
	}
	s := &Service{
		mem:  NewMemory(MemoryConfig{TTL: cfg.TTL, Capacity: cfg.Capacity, SweepInterval: cfg.SweepInterval}, log),
		cfg:  cfg,
		log:  log,
		db:   db,
		now:  time.Now,
		done: make(chan struct{}),
	}
	if db != nil {
		s.binder = binder
		if err := binder.Bind(db).Ensure(context.Background()); err != nil {
			log.Warn().Err(err).Msg("gallery archive unavailable, falling back to memory only")
			s.db = nil
		} else {
			// the cache sweeps itself, archived rows need their own reaper
			// or the table grows without bound
			s.wg.Add(1)
			go s.sweepArchive()
		}
	}
	return s
}

// Close stops the background sweeps
func (s *Service) Close() {
	close(s.done)
	s.wg.Wait()
	s.mem.Close()
}

// SaveArtwork stores a finished artwork for later lookup
func (s *Service) SaveArtwork(ctx context.Context, a cdom.Artwork) error {
	s.mem.Put(a)

	if s.db != nil {
		expiresAt := a.CreatedAt.Add(s.cfg.TTL)
		if err := s.binder.Bind(s.db).Save(ctx, a, expiresAt); err != nil {
			// archive writes are best effort, the cache already holds the work
			s.log.Warn().Err(err).Str("artwork_id", a.ID).Msg("archive write failed")
		}
	}
	return nil
}

// GetWork returns a stored artwork by id
func (s *Service) GetWork(ctx context.Context, id string) (cdom.Artwork, error) {
	if a, ok := s.mem.Get(id); ok {
		return a, nil
	}
	if s.db != nil {
		a, expiresAt, err := s.binder.Bind(s.db).Get(ctx, id, s.now().UTC())
		if err == nil {
			// rehydrate the cache with the remaining lifetime, a lookup
			// must not extend it
			s.mem.PutUntil(a, expiresAt)
			return a, nil
		}
		if !perr.IsCode(err, perr.ErrorCodeNotFound) {
			s.log.Warn().Err(err).Str("artwork_id", id).Msg("archive read failed")
		}
	}
	return cdom.Artwork{}, perr.NotFoundf("artwork %q not found", id)
}

// DeleteWork removes a stored artwork by id
func (s *Service) DeleteWork(ctx context.Context, id string) error {
	found := s.mem.Delete(id)

	if s.db != nil {
		archived, err := s.binder.Bind(s.db).Delete(ctx, id)
		if err != nil {
			s.log.Warn().Err(err).Str("artwork_id", id).Msg("archive delete failed")
		}
		found = found || archived
	}
	if !found {
		return perr.NotFoundf("artwork %q not found", id)
	}
	return nil
}

// Stats reports current gallery occupancy
func (s *Service) Stats(_ context.Context) domain.Stats {
	return domain.Stats{Works: s.mem.Len(), Capacity: s.mem.Capacity()}
}

// sweepArchive deletes expired archive rows on the sweep interval
func (s *Service) sweepArchive() {
	defer s.wg.Done()
	t := time.NewTicker(s.cfg.SweepInterval)
	defer t.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-t.C:
			s.purgeArchive(context.Background())
		}
	}
}

func (s *Service) purgeArchive(ctx context.Context) {
	purged, err := s.binder.Bind(s.db).PurgeExpired(ctx, s.now().UTC())
	if err != nil {
		s.log.Warn().Err(err).Msg("archive purge failed")
		return
	}
	if purged > 0 {
		s.log.Debug().Int64("purged", purged).Msg("expired archive rows purged")
	}
}
