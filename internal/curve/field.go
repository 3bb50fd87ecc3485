// Package curve implements BN254 field and curve-point bindings used by the
// Merkle tree, nullifier derivation, and Groth16 verifier. All hashing in
// this engine operates on Fr; curve-point coordinates live in Fq.
package curve

import (
	"errors"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/ccoin/shieldpool/pkg/types"
)

// ErrNotAnElement is returned when a 32-byte buffer does not encode a value
// strictly less than the Fr modulus.
var ErrNotAnElement = errors.New("curve: value is not a valid Fr element")

// FrModulus returns the BN254 scalar field modulus r.
func FrModulus() *big.Int {
	return fr.Modulus()
}

// FrFromHash parses a 32-byte big-endian buffer as an Fr element, rejecting
// any value that is not strictly less than the modulus. Call sites that hash
// externally supplied bytes check them with this or InRange first (spec §4.1).
func FrFromHash(h types.Hash) (fr.Element, error) {
	var e fr.Element
	v := new(big.Int).SetBytes(h[:])
	if v.Cmp(fr.Modulus()) >= 0 {
		return e, ErrNotAnElement
	}
	e.SetBigInt(v)
	return e, nil
}

// HashFromFr serialises an Fr element back into its 32-byte big-endian form.
func HashFromFr(e *fr.Element) types.Hash {
	b := e.Bytes()
	return types.Hash(b)
}

// InRange reports whether a 32-byte buffer encodes a value strictly less
// than the Fr modulus, without constructing an Element.
func InRange(h types.Hash) bool {
	v := new(big.Int).SetBytes(h[:])
	return v.Cmp(fr.Modulus()) < 0
}
