package engine

import (
	"context"

	"github.com/ccoin/shieldpool/internal/curve"
	"github.com/ccoin/shieldpool/pkg/types"
)

// Shield inserts a commitment with no proof (spec §4.6 shield). The
// depositor's privacy derives purely from the anonymity set at withdraw
// time.
func (e *Engine) Shield(ctx context.Context, caller types.Address, commitment types.Hash, amount uint64) (*Receipt, error) {
	if err := e.requireInitialised(); err != nil {
		return nil, err
	}
	if amount < e.cfg.MinShield {
		return nil, newErr(KindBelowMinimum, nil)
	}
	if !curve.InRange(commitment) {
		return nil, newErr(KindMalformedInstruction, curve.ErrNotAnElement)
	}
	if e.tree.NextIndex() >= e.tree.Capacity() {
		return nil, newErr(KindTreeFull, nil)
	}

	if err := e.vault.ShieldIn(ctx, caller, amount); err != nil {
		return nil, newErr(KindInsufficientVault, err)
	}

	position, newRoot, err := e.tree.Insert(ctx, commitment)
	if err != nil {
		return nil, newErr(KindTreeFull, err)
	}
	e.ring.Push(newRoot)

	return &Receipt{
		NewRoot:        newRoot,
		InsertedLeaves: []types.Hash{commitment},
		LeafPositions:  []uint64{position},
	}, nil
}

// checkedSum returns a+b and false if the u64 addition overflows (spec
// §4.6/§7/§8: "amount + fee = 2^64 overflows ... AmountOutOfRange").
func checkedSum(a, b uint64) (uint64, bool) {
	s := a + b
	return s, s >= a
}

// Unshield verifies an S1 proof against a historical root and pays amount to
// recipient and fee to relayer (spec §4.6 unshield).
func (e *Engine) Unshield(
	ctx context.Context,
	proofA [64]byte, proofB [128]byte, proofC [64]byte,
	n, recipient types.Hash, amount, fee uint64,
	claimedRoot types.Hash,
	relayer types.Address,
) (*Receipt, error) {
	if err := e.requireInitialised(); err != nil {
		return nil, err
	}

	if _, ok := checkedSum(amount, fee); !ok {
		return nil, newErr(KindAmountOutOfRange, nil)
	}

	spent, err := e.nullifiers.Contains(ctx, n)
	if err != nil {
		return nil, newErr(KindDuplicateNullifier, err)
	}
	if spent {
		return nil, newErr(KindDuplicateNullifier, nil)
	}

	if !e.ring.IsHistorical(claimedRoot) {
		return nil, newErr(KindStaleRoot, nil)
	}

	recipientF := RecipientField(recipient)
	publicHashes := [][32]byte{claimedRoot, n, recipientF, u64Hash(amount), u64Hash(fee)}
	publicInputs, err := curve.PublicInputsFromHashes(publicHashes)
	if err != nil {
		return nil, newErr(KindAmountOutOfRange, err)
	}

	proof, err := decodeProof(proofA, proofB, proofC)
	if err != nil {
		return nil, newErr(KindInvalidProof, err)
	}

	vk := e.vks[StatementWithdrawMerkle]
	if err := curve.Verify(vk, proof, publicInputs); err != nil {
		return nil, newErr(KindInvalidProof, err)
	}

	if err := e.nullifiers.CheckAndMark(ctx, n); err != nil {
		return nil, newErr(KindDuplicateNullifier, err)
	}
	if err := e.vault.PayOut(ctx, hashToAddress(recipient), amount); err != nil {
		return nil, newErr(KindInsufficientVault, err)
	}
	if fee > 0 {
		if err := e.vault.PayOut(ctx, relayer, fee); err != nil {
			return nil, newErr(KindInsufficientVault, err)
		}
	}

	return &Receipt{
		NewRoot:        e.tree.Root(),
		NullifiersUsed: []types.Hash{n},
	}, nil
}

// UnshieldWithChange verifies an S2 proof and additionally inserts a change
// commitment when non-zero (spec §4.6 unshield_with_change).
func (e *Engine) UnshieldWithChange(
	ctx context.Context,
	proofA [64]byte, proofB [128]byte, proofC [64]byte,
	n, recipient types.Hash, withdraw, fee uint64,
	changeCommitment, claimedRoot types.Hash,
) (*Receipt, error) {
	if err := e.requireInitialised(); err != nil {
		return nil, err
	}

	if _, ok := checkedSum(withdraw, fee); !ok {
		return nil, newErr(KindAmountOutOfRange, nil)
	}

	spent, err := e.nullifiers.Contains(ctx, n)
	if err != nil {
		return nil, newErr(KindDuplicateNullifier, err)
	}
	if spent {
		return nil, newErr(KindDuplicateNullifier, nil)
	}

	if !e.ring.IsHistorical(claimedRoot) {
		return nil, newErr(KindStaleRoot, nil)
	}

	hasChange := changeCommitment != types.Hash{}
	if hasChange && e.tree.NextIndex() >= e.tree.Capacity() {
		return nil, newErr(KindTreeFull, nil)
	}

	recipientF := RecipientField(recipient)
	publicHashes := [][32]byte{claimedRoot, n, recipientF, u64Hash(withdraw), u64Hash(fee), changeCommitment}
	publicInputs, err := curve.PublicInputsFromHashes(publicHashes)
	if err != nil {
		return nil, newErr(KindAmountOutOfRange, err)
	}

	proof, err := decodeProof(proofA, proofB, proofC)
	if err != nil {
		return nil, newErr(KindInvalidProof, err)
	}

	vk := e.vks[StatementUnshieldWithChange]
	if err := curve.Verify(vk, proof, publicInputs); err != nil {
		return nil, newErr(KindInvalidProof, err)
	}

	if err := e.nullifiers.CheckAndMark(ctx, n); err != nil {
		return nil, newErr(KindDuplicateNullifier, err)
	}

	receipt := &Receipt{NullifiersUsed: []types.Hash{n}}
	if hasChange {
		pos, newRoot, err := e.tree.Insert(ctx, changeCommitment)
		if err != nil {
			return nil, newErr(KindTreeFull, err)
		}
		e.ring.Push(newRoot)
		receipt.InsertedLeaves = []types.Hash{changeCommitment}
		receipt.LeafPositions = []uint64{pos}
	}
	receipt.NewRoot = e.tree.Root()

	if err := e.vault.PayOut(ctx, hashToAddress(recipient), withdraw); err != nil {
		return nil, newErr(KindInsufficientVault, err)
	}

	return receipt, nil
}

// PrivateTransfer verifies an S3 two-in-two-out proof and inserts active
// nullifiers/outputs; it never touches Vault (spec §4.6 private_transfer).
func (e *Engine) PrivateTransfer(
	ctx context.Context,
	proofA [64]byte, proofB [128]byte, proofC [64]byte,
	n1, n2, cOut1, cOut2, claimedRoot types.Hash,
) (*Receipt, error) {
	if err := e.requireInitialised(); err != nil {
		return nil, err
	}

	if !e.ring.IsHistorical(claimedRoot) {
		return nil, newErr(KindStaleRoot, nil)
	}

	inputs := []types.Hash{n1, n2}
	for _, n := range inputs {
		if n == (types.Hash{}) {
			continue // inactive slot
		}
		spent, err := e.nullifiers.Contains(ctx, n)
		if err != nil {
			return nil, newErr(KindDuplicateNullifier, err)
		}
		if spent {
			return nil, newErr(KindDuplicateNullifier, nil)
		}
	}

	outputs := []types.Hash{cOut1, cOut2}
	activeOutputs := 0
	for _, c := range outputs {
		if c != (types.Hash{}) {
			activeOutputs++
		}
	}
	if uint64(activeOutputs) > e.tree.Capacity()-e.tree.NextIndex() {
		return nil, newErr(KindTreeFull, nil)
	}

	publicHashes := [][32]byte{claimedRoot, n1, n2, cOut1, cOut2}
	publicInputs, err := curve.PublicInputsFromHashes(publicHashes)
	if err != nil {
		return nil, newErr(KindAmountOutOfRange, err)
	}

	proof, err := decodeProof(proofA, proofB, proofC)
	if err != nil {
		return nil, newErr(KindInvalidProof, err)
	}

	vk := e.vks[StatementPrivateTransfer]
	if err := curve.Verify(vk, proof, publicInputs); err != nil {
		return nil, newErr(KindInvalidProof, err)
	}

	receipt := &Receipt{}
	for _, n := range inputs {
		if n == (types.Hash{}) {
			continue
		}
		if err := e.nullifiers.CheckAndMark(ctx, n); err != nil {
			return nil, newErr(KindDuplicateNullifier, err)
		}
		receipt.NullifiersUsed = append(receipt.NullifiersUsed, n)
	}

	for _, c := range outputs {
		if c == (types.Hash{}) {
			continue
		}
		pos, newRoot, err := e.tree.Insert(ctx, c)
		if err != nil {
			return nil, newErr(KindTreeFull, err)
		}
		e.ring.Push(newRoot)
		receipt.InsertedLeaves = append(receipt.InsertedLeaves, c)
		receipt.LeafPositions = append(receipt.LeafPositions, pos)
	}
	receipt.NewRoot = e.tree.Root()

	return receipt, nil
}

func decodeProof(a [64]byte, b [128]byte, c [64]byte) (*curve.Proof, error) {
	ga, err := curve.DecodeG1(a[:])
	if err != nil {
		return nil, err
	}
	gb, err := curve.DecodeG2(b[:])
	if err != nil {
		return nil, err
	}
	gc, err := curve.DecodeG1(c[:])
	if err != nil {
		return nil, err
	}
	return &curve.Proof{A: ga, B: gb, C: gc}, nil
}

// u64Hash encodes a u64 amount as a 32-byte big-endian Fr element, matching
// note.amountToHash's convention for public-input assembly.
func u64Hash(v uint64) [32]byte {
	var out [32]byte
	for i := 0; i < 8; i++ {
		out[31-i] = byte(v >> (8 * uint(i)))
	}
	return out
}

// hashToAddress projects a 32-byte Hash-shaped recipient identifier onto an
// Address; both are 32-byte ledger identifiers in this engine (pkg/types).
func hashToAddress(h types.Hash) types.Address {
	return types.Address(h)
}
