package service

import (
	"sync"
	"time"

	"rakugaki/internal/platform/logger"
	cdom "rakugaki/internal/services/critique/domain"
)

// MemoryConfig bounds the in-process artwork cache
type MemoryConfig struct {
	// TTL is how long a stored artwork stays retrievable
	TTL time.Duration
	// Capacity caps the number of live entries, the oldest insertion is
	// evicted when a new work arrives at capacity
	Capacity int
	// SweepInterval is how often expired entries are purged in the
	// background, zero means TTL/10
	SweepInterval time.Duration
}

type memEntry struct {
	art       cdom.Artwork
	expiresAt time.Time
}

// Memory is a mutex-guarded TTL cache for finished artworks.
// Construct with NewMemory and release with Close so the sweep stops.
type Memory struct {
	mu    sync.Mutex
	items map[string]memEntry
	// order tracks insertion order for capacity eviction
	order []string
	cfg   MemoryConfig
	log   logger.Logger

	now  func() time.Time // seam for tests
	done chan struct{}
	wg   sync.WaitGroup
}

// NewMemory creates the cache and starts its background sweep
func NewMemory(cfg MemoryConfig, log logger.Logger) *Memory {
	if cfg.TTL <= 0 {
		cfg.TTL = 24 * time.Hour
	}
	if cfg.Capacity <= 0 {
		cfg.Capacity = 1000
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = cfg.TTL / 10
	}
	m := &Memory{
		items: make(map[string]memEntry),
		cfg:   cfg,
		log:   log,
		now:   time.Now,
		done:  make(chan struct{}),
	}
	m.wg.Add(1)
	go m.sweep()
	return m
}

// Put stores an artwork under its id with a fresh TTL, evicting the oldest
// insertion when full. Re-putting an existing id refreshes the entry in place.
func (m *Memory) Put(a cdom.Artwork) {
	m.PutUntil(a, m.now().Add(m.cfg.TTL))
}

// PutUntil stores an artwork with an explicit expiry. Used when an entry is
// rehydrated from the archive and must keep its remaining lifetime.
func (m *Memory) PutUntil(a cdom.Artwork, expiresAt time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.purgeExpiredLocked(m.now())

	if _, exists := m.items[a.ID]; !exists {
		if len(m.items) >= m.cfg.Capacity {
			m.evictOldestLocked()
		}
		m.order = append(m.order, a.ID)
	}
	m.items[a.ID] = memEntry{art: a, expiresAt: expiresAt}
}

// Get returns the artwork for id when present and not expired
func (m *Memory) Get(id string) (cdom.Artwork, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.items[id]
	if !ok {
		return cdom.Artwork{}, false
	}
	if !m.now().Before(e.expiresAt) {
		m.removeLocked(id)
		return cdom.Artwork{}, false
	}
	return e.art, true
}

// Delete removes id and reports whether it was present
func (m *Memory) Delete(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.items[id]; !ok {
		return false
	}
	m.removeLocked(id)
	return true
}

// Len reports the number of live entries, expired ones included until swept
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// Capacity reports the configured entry ceiling
func (m *Memory) Capacity() int { return m.cfg.Capacity }

// Close stops the background sweep. Safe to call once.
func (m *Memory) Close() {
	close(m.done)
	m.wg.Wait()
}

func (m *Memory) removeLocked(id string) {
	delete(m.items, id)
	for i, v := range m.order {
		if v == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

func (m *Memory) evictOldestLocked() {
	if len(m.order) == 0 {
		return
	}
	oldest := m.order[0]
	m.order = m.order[1:]
	delete(m.items, oldest)
	m.log.Debug().Str("artwork_id", oldest).Msg("gallery full, oldest work evicted")
}

func (m *Memory) purgeExpiredLocked(now time.Time) {
	purged := 0
	kept := m.order[:0]
	for _, id := range m.order {
		e, ok := m.items[id]
		if ok && !now.Before(e.expiresAt) {
			delete(m.items, id)
			purged++
			continue
		}
		kept = append(kept, id)
	}
	m.order = kept
	if purged > 0 {
		m.log.Debug().Int("purged", purged).Msg("expired works purged")
	}
}

func (m *Memory) sweep() {
	defer m.wg.Done()
	t := time.NewTicker(m.cfg.SweepInterval)
	defer t.Stop()
	for {
		select {
		case <-m.done:
			return
		case <-t.C:
			m.mu.Lock()
			m.purgeExpiredLocked(m.now())
			m.mu.Unlock()
		}
	}
}
