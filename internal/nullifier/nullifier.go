// Package nullifier implements the append-only set of spent note tags that
// gates every withdrawal (spec §3 NullifierSet, §4.3), adapted from the
// teacher's cache+store NullifierSet onto an atomic check-then-insert
// contract (spec §5: the host guarantees exclusive, all-or-nothing access
// per instruction, so a single CheckAndMark call is sufficient here — no
// separate lock is needed beyond the store's own).
package nullifier

import (
	"context"
	"errors"
	"sync"

	"github.com/ccoin/shieldpool/pkg/types"
)

// ErrAlreadySpent is returned by CheckAndMark (and InMemoryStore.Add) when
// the nullifier is already present in the set.
var ErrAlreadySpent = errors.New("nullifier: already spent")

// Store persists the nullifier set. Implementation-free per spec §4.3; must
// be durable across restarts and support at least 2^L entries.
type Store interface {
	Has(ctx context.Context, n types.Hash) (bool, error)
	Add(ctx context.Context, n types.Hash) error
}

// Set wraps a Store with an in-memory read cache, mirroring the teacher's
// NullifierSet cache-then-store lookup order.
type Set struct {
	mu    sync.RWMutex
	cache map[types.Hash]struct{}
	store Store
}

// NewSet constructs a nullifier set backed by store.
func NewSet(store Store) *Set {
	return &Set{
		cache: make(map[types.Hash]struct{}),
		store: store,
	}
}

// Contains reports whether n has already been spent (spec §4.3 contains).
func (s *Set) Contains(ctx context.Context, n types.Hash) (bool, error) {
	s.mu.RLock()
	_, hit := s.cache[n]
	s.mu.RUnlock()
	if hit {
		return true, nil
	}
	return s.store.Has(ctx, n)
}

// CheckAndMark atomically checks and inserts n, returning ErrAlreadySpent if
// it was already present. The host's per-instruction exclusive access (spec
// §5) makes this check-then-write race-free without an additional lock
// spanning the store round-trip.
func (s *Set) CheckAndMark(ctx context.Context, n types.Hash) error {
	spent, err := s.Contains(ctx, n)
	if err != nil {
		return err
	}
	if spent {
		return ErrAlreadySpent
	}

	if err := s.store.Add(ctx, n); err != nil {
		return err
	}

	s.mu.Lock()
	s.cache[n] = struct{}{}
	s.mu.Unlock()
	return nil
}

// InMemoryStore is a Store backed by a plain map, used by tests and as a
// reference implementation (teacher's InMemoryNullifierStore pattern).
type InMemoryStore struct {
	mu         sync.RWMutex
	nullifiers map[types.Hash]struct{}
}

// NewInMemoryStore constructs an empty in-memory nullifier store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{nullifiers: make(map[types.Hash]struct{})}
}

func (s *InMemoryStore) Has(ctx context.Context, n types.Hash) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.nullifiers[n]
	return ok, nil
}

func (s *InMemoryStore) Add(ctx context.Context, n types.Hash) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.nullifiers[n]; ok {
		return ErrAlreadySpent
	}
	s.nullifiers[n] = struct{}{}
	return nil
}

// Size returns the number of spent nullifiers, used by tests.
func (s *InMemoryStore) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.nullifiers)
}
