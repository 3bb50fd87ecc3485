// Package poseidon implements the 2-to-1 Poseidon compression used for note
// commitments, nullifier hashes, and Merkle nodes. It wraps
// github.com/iden3/go-iden3-crypto/poseidon (the circomlib/snarkjs parameter
// set) so the tree's hash bit-matches the reference circuit suite (spec §4.1,
// §9 Open Questions — the engine is bound exclusively to Poseidon).
package poseidon

import (
	"errors"
	"math/big"

	iden3poseidon "github.com/iden3/go-iden3-crypto/poseidon"

	"github.com/ccoin/shieldpool/internal/curve"
	"github.com/ccoin/shieldpool/pkg/types"
)

// ErrNotAnElement is returned when an input buffer does not encode a valid
// Fr element; every call site constructs inputs from 32-byte buffers, and
// the engine must reject out-of-range values before hashing (spec §4.1).
var ErrNotAnElement = errors.New("poseidon: input is not a valid Fr element")

// Hash2 computes poseidon2(x, y) -> z over Fr, matching the reference
// circuit's width-3 parameter set (MDS matrix, round constants, x^5 S-box).
func Hash2(x, y types.Hash) (types.Hash, error) {
	if !curve.InRange(x) || !curve.InRange(y) {
		return types.Hash{}, ErrNotAnElement
	}

	xi := new(big.Int).SetBytes(x[:])
	yi := new(big.Int).SetBytes(y[:])

	result, err := iden3poseidon.Hash([]*big.Int{xi, yi})
	if err != nil {
		return types.Hash{}, err
	}
	return fieldToHash(result), nil
}

// HashN hashes an arbitrary number of Fr-valued big.Int limbs in one
// absorption, for binding more than two values at once. Unlike Hash2 it does
// not range-check its inputs; nothing in the engine calls it.
func HashN(xs []*big.Int) (types.Hash, error) {
	result, err := iden3poseidon.Hash(xs)
	if err != nil {
		return types.Hash{}, err
	}
	return fieldToHash(result), nil
}

func fieldToHash(v *big.Int) types.Hash {
	buf := make([]byte, 32)
	b := v.Bytes()
	copy(buf[32-len(b):], b)
	return types.HashFromBytes(buf)
}
