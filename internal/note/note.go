// Package note implements the off-ledger note commitment and nullifier-hash
// formulas bound by the statements in spec.md §4.5. The engine never holds
// note secrets; this package exists so tests and the CLI can construct and
// check the same Poseidon formulas a prover would use off-ledger.
package note

import (
	"math/big"

	"github.com/ccoin/shieldpool/internal/poseidon"
	"github.com/ccoin/shieldpool/pkg/types"
)

// Note is the off-ledger tuple (secret, nullifier, amount); only its
// commitment ever appears on-ledger (spec §3).
type Note struct {
	Secret    types.Hash
	Nullifier types.Hash
	Amount    uint64
}

// Commitment computes C = H(secret, H(nullifier, amount)), the value
// inserted into the commitment tree on mint (spec §3, §4.5 clause 1).
func Commitment(n Note) (types.Hash, error) {
	amountHash := amountToHash(n.Amount)
	inner, err := poseidon.Hash2(n.Nullifier, amountHash)
	if err != nil {
		return types.Hash{}, err
	}
	return poseidon.Hash2(n.Secret, inner)
}

// NullifierHash computes N = H(nullifier, 0), revealed on spend to prevent
// double-spend (spec §3, §4.5 clause 2).
func NullifierHash(nullifier types.Hash) (types.Hash, error) {
	return poseidon.Hash2(nullifier, types.Hash{})
}

// amountToHash encodes a u64 amount as a 32-byte big-endian Fr element.
func amountToHash(amount uint64) types.Hash {
	b := new(big.Int).SetUint64(amount).Bytes()
	buf := make([]byte, 32)
	copy(buf[32-len(b):], b)
	return types.HashFromBytes(buf)
}
