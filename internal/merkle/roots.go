package merkle

import (
	"sync"

	"github.com/ccoin/shieldpool/pkg/types"
)

// RootsRing is a circular buffer of the last R roots root_current has taken
// (spec §3 RootsRing, §4.2, §9). Sized so a prover's witness, built against
// an older root, remains accepted for a bounded grace window.
type RootsRing struct {
	mu     sync.RWMutex
	slots  []types.Hash
	cursor int
}

// NewRootsRing constructs a ring of size R, seeded with the genesis root in
// every slot so is_historical(genesis root) holds immediately after
// initialise.
func NewRootsRing(size int, genesisRoot types.Hash) *RootsRing {
	if size < 1 {
		size = 1
	}
	slots := make([]types.Hash, size)
	for i := range slots {
		slots[i] = genesisRoot
	}
	return &RootsRing{slots: slots}
}

// Size returns R.
func (r *RootsRing) Size() int {
	return len(r.slots)
}

// Push advances the cursor and overwrites that slot with the new root
// (spec §4.2: "advance the roots ring cursor, overwrite the cursor slot").
func (r *RootsRing) Push(root types.Hash) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cursor = (r.cursor + 1) % len(r.slots)
	r.slots[r.cursor] = root
}

// IsHistorical scans all R slots for an exact match, constant time in R
// (spec §4.2 is_historical).
func (r *RootsRing) IsHistorical(root types.Hash) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	found := false
	for _, s := range r.slots {
		if s == root {
			found = true
		}
	}
	return found
}
