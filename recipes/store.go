// Package recipes holds the authoritative in-memory recipe collection and
// mirrors it to a single blob in a storage.KV.
//
// Mutations update memory immediately and hand a snapshot to a background
// writer. The writer coalesces snapshots so only the latest one is written
// when it falls behind; persistence failures are logged and never surface to
// the caller.
package recipes

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"recipebox/models"
	"recipebox/storage"
)

// StorageKey is the single key the whole collection is stored under.
const StorageKey = "recipes"

var ErrNotFound = errors.New("recipe not found")

type Store struct {
	kv  storage.KV
	log zerolog.Logger

	mu      sync.RWMutex
	recipes []models.Recipe

	// background writer state, guarded by wmu
	wmu        sync.Mutex
	pending    []models.Recipe
	pendingGen uint64
	queued     uint64
	written    uint64
	notify     chan struct{}
	closed     bool
	wake       chan struct{}
	done       chan struct{}
}

// New returns an empty store backed by kv and starts its writer. Call Load
// to populate it and Close to stop the writer.
func New(kv storage.KV, log zerolog.Logger) *Store {
	s := &Store{
		kv:      kv,
		log:     log.With().Str("component", "recipes").Logger(),
		recipes: []models.Recipe{},
		notify:  make(chan struct{}),
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
	}

	go s.run()

	return s
}

// Load reads the persisted collection and makes it the in-memory state. A
// missing key, a failing read and an undecodable blob all yield an empty
// collection.
func (s *Store) Load(ctx context.Context) []models.Recipe {
	loaded := s.read(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.recipes = loaded

	return cloneAll(s.recipes)
}

func (s *Store) read(ctx context.Context) []models.Recipe {
	raw, ok, err := s.kv.Get(ctx, StorageKey)
	if err != nil {
		s.log.Debug().Err(err).Msg("No recipes found yet")
		return []models.Recipe{}
	}
	if !ok {
		s.log.Debug().Msg("No recipes found yet")
		return []models.Recipe{}
	}

	var list []models.Recipe
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		s.log.Warn().Err(err).Msg("Stored recipes are malformed, starting empty")
		return []models.Recipe{}
	}

	if list == nil {
		return []models.Recipe{}
	}
	for i := range list {
		list[i].Normalize()
	}

	return list
}

// Save writes the full collection synchronously. Errors are logged, not
// returned.
func (s *Store) Save(ctx context.Context, list []models.Recipe) {
	if list == nil {
		list = []models.Recipe{}
	}

	data, err := json.Marshal(list)
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to encode recipes")
		return
	}

	if err := s.kv.Set(ctx, StorageKey, string(data)); err != nil {
		s.log.Error().Err(err).Int("count", len(list)).Msg("Failed to save recipes")
		return
	}

	s.log.Debug().Int("count", len(list)).Msg("Saved recipes")
}

// Upsert replaces the recipe with the same id in place, or appends it.
func (s *Store) Upsert(r models.Recipe) []models.Recipe {
	r = r.Clone()
	r.Normalize()

	s.mu.Lock()
	defer s.mu.Unlock()

	replaced := false
	for i := range s.recipes {
		if s.recipes[i].ID == r.ID {
			s.recipes[i] = r
			replaced = true
			break
		}
	}
	if !replaced {
		s.recipes = append(s.recipes, r)
	}

	out := cloneAll(s.recipes)
	// scheduled under mu so snapshots reach the writer in mutation order
	s.schedule(cloneAll(s.recipes))

	return out
}

// Remove drops the recipe with id. Unknown ids leave the collection as is.
func (s *Store) Remove(id int64) []models.Recipe {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]models.Recipe, 0, len(s.recipes))
	for _, r := range s.recipes {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	s.recipes = kept

	out := cloneAll(s.recipes)
	s.schedule(cloneAll(s.recipes))

	return out
}

// List returns a copy of the collection in order.
func (s *Store) List() []models.Recipe {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return cloneAll(s.recipes)
}

func (s *Store) Get(id int64) (models.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.recipes {
		if r.ID == id {
			return r.Clone(), nil
		}
	}

	return models.Recipe{}, ErrNotFound
}

func (s *Store) schedule(snapshot []models.Recipe) {
	s.wmu.Lock()
	defer s.wmu.Unlock()

	if s.closed {
		s.Save(context.Background(), snapshot)
		return
	}

	s.queued++
	s.pending = snapshot
	s.pendingGen = s.queued

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *Store) run() {
	defer close(s.done)

	for range s.wake {
		s.drain()
	}
	s.drain()
}

func (s *Store) drain() {
	for {
		s.wmu.Lock()
		if s.pendingGen == 0 {
			s.wmu.Unlock()
			return
		}
		snapshot, gen := s.pending, s.pendingGen
		s.pending, s.pendingGen = nil, 0
		s.wmu.Unlock()

		s.Save(context.Background(), snapshot)

		s.wmu.Lock()
		s.written = gen
		close(s.notify)
		s.notify = make(chan struct{})
		s.wmu.Unlock()
	}
}

// Flush blocks until every mutation made before the call has been handed to
// the backend, or ctx is done.
func (s *Store) Flush(ctx context.Context) error {
	s.wmu.Lock()
	target := s.queued
	s.wmu.Unlock()

	for {
		s.wmu.Lock()
		if s.written >= target {
			s.wmu.Unlock()
			return nil
		}
		ch := s.notify
		s.wmu.Unlock()

		select {
		case <-ch:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Close flushes pending writes and stops the writer. Later mutations are
// saved synchronously. The KV is not closed.
func (s *Store) Close(ctx context.Context) error {
	s.wmu.Lock()
	if !s.closed {
		s.closed = true
		close(s.wake)
	}
	s.wmu.Unlock()

	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func cloneAll(list []models.Recipe) []models.Recipe {
	out := make([]models.Recipe, len(list))
	for i, r := range list {
		out[i] = r.Clone()
	}
	return out
}
