package engine

import (
	"context"

	"github.com/ccoin/shieldpool/internal/curve"
	"github.com/ccoin/shieldpool/internal/merkle"
	"github.com/ccoin/shieldpool/internal/nullifier"
	"github.com/ccoin/shieldpool/pkg/types"
)

// Vault is the external custody bucket holding pooled native value (spec §3
// Vault, §6). The engine shares it with the host ledger's system transfer
// facility; it never owns the balance directly.
type Vault interface {
	// Balance returns the Vault's current native-asset balance.
	Balance(ctx context.Context) (uint64, error)
	// ShieldIn moves amount from the caller into the Vault.
	ShieldIn(ctx context.Context, caller types.Address, amount uint64) error
	// PayOut moves amount from the Vault to recipient.
	PayOut(ctx context.Context, recipient types.Address, amount uint64) error
}

// Config holds the deployment knobs fixed at genesis (spec §6 Configuration
// knobs).
type Config struct {
	Levels        uint8 // L, 1 <= L <= 32
	RootsRingSize int   // R, >= 1
	MinShield     uint64

	VKWithdraw       []byte // raw bytes, decodeVerifyingKey layout
	VKUnshieldChange []byte
	VKPrivateTransfer []byte

	// PinnedDigests, when non-nil, must match VerifyingKeyChecksum(VK...)
	// for the corresponding statement at Initialise (SPEC_FULL.md §12).
	PinnedDigests map[Statement][32]byte
}

// Receipt describes the state change produced by a successful instruction,
// returned to the host ledger for logging/gossip (SPEC_FULL.md §10/§12).
type Receipt struct {
	NewRoot        types.Hash
	InsertedLeaves []types.Hash
	LeafPositions  []uint64
	NullifiersUsed []types.Hash
}

// Engine is the instruction dispatcher: it owns PoolState, MerkleTree,
// RootsRing and NullifierSet, and shares Vault with the host (spec §3
// Ownership, §4.6).
type Engine struct {
	cfg Config

	initialised bool
	tree        *merkle.CommitmentTree
	ring        *merkle.RootsRing
	nullifiers  *nullifier.Set
	vault       Vault

	vks map[Statement]*curve.VerifyingKey
}

// New constructs an uninitialised Engine. Initialise must be called exactly
// once before any other operation.
func New(nullifierStore nullifier.Store, vault Vault) *Engine {
	return &Engine{
		nullifiers: nullifier.NewSet(nullifierStore),
		vault:      vault,
		vks:        make(map[Statement]*curve.VerifyingKey),
	}
}

// Initialise allocates PoolState, MerkleTree, RootsRing and NullifierSet with
// tree depth cfg.Levels, and loads the three statement VKs (spec §4.6
// initialise). Fails with AlreadyInitialised if called twice.
func (e *Engine) Initialise(ctx context.Context, store merkle.TreeStore, cfg Config) (*Receipt, error) {
	if e.initialised {
		return nil, newErr(KindAlreadyInitialised, nil)
	}
	if cfg.Levels < 1 || cfg.Levels > merkle.MaxDepth {
		return nil, newErr(KindMalformedInstruction, merkle.ErrInvalidDepth)
	}
	if cfg.RootsRingSize < 1 {
		return nil, newErr(KindMalformedInstruction, nil)
	}

	if err := e.loadVK(StatementWithdrawMerkle, cfg.VKWithdraw, cfg); err != nil {
		return nil, err
	}
	if err := e.loadVK(StatementUnshieldWithChange, cfg.VKUnshieldChange, cfg); err != nil {
		return nil, err
	}
	if err := e.loadVK(StatementPrivateTransfer, cfg.VKPrivateTransfer, cfg); err != nil {
		return nil, err
	}

	tree, err := merkle.NewCommitmentTree(store, int(cfg.Levels))
	if err != nil {
		return nil, newErr(KindMalformedInstruction, err)
	}

	e.cfg = cfg
	e.tree = tree
	e.ring = merkle.NewRootsRing(cfg.RootsRingSize, tree.Root())
	e.initialised = true

	return &Receipt{NewRoot: tree.Root()}, nil
}

func (e *Engine) loadVK(stmt Statement, raw []byte, cfg Config) error {
	if cfg.PinnedDigests != nil {
		if want, ok := cfg.PinnedDigests[stmt]; ok {
			if VerifyingKeyChecksum(raw) != want {
				return newErr(KindMalformedInstruction, ErrBadVerifyingKey)
			}
		}
	}
	vk, err := decodeVerifyingKey(raw)
	if err != nil {
		return newErr(KindMalformedInstruction, err)
	}
	e.vks[stmt] = vk
	return nil
}

func (e *Engine) requireInitialised() error {
	if !e.initialised {
		return newErr(KindNotInitialised, nil)
	}
	return nil
}

// RootCurrent returns the tree's current root (PoolState.root_current).
func (e *Engine) RootCurrent() types.Hash {
	return e.tree.Root()
}

// NextIndex returns PoolState.next_index.
func (e *Engine) NextIndex() uint64 {
	return e.tree.NextIndex()
}
