package curve

import (
	"errors"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// VerifyingKey is a single statement's Groth16 verification key, held as an
// opaque deployment constant by the engine (spec §4.4, §6).
type VerifyingKey struct {
	Alpha bn254.G1Affine
	Beta  bn254.G2Affine
	Gamma bn254.G2Affine
	Delta bn254.G2Affine
	IC    []bn254.G1Affine // ic[0]..ic[k], k = len(public inputs)
}

// Proof is a Groth16 proof in the engine's wire convention: A carries an
// already-negated y-coordinate (spec §4.4, §9).
type Proof struct {
	A bn254.G1Affine
	B bn254.G2Affine
	C bn254.G1Affine
}

// ErrPublicInputOutOfRange is returned when a public input does not encode a
// valid Fr element.
var ErrPublicInputOutOfRange = errors.New("curve: public input out of range")

// ErrPairingCheckFailed is returned when the pairing equation does not hold.
var ErrPairingCheckFailed = errors.New("curve: pairing check failed")

// ErrICLength is returned when the VK's IC length does not match len(public)+1.
var ErrICLength = errors.New("curve: verifying key IC length mismatch")

// Verify checks e(A,B) = e(alpha,beta)·e(vk_x,gamma)·e(C,delta), reformulated
// as the single product e(A,B)·e(alpha,beta)·e(vk_x,gamma)·e(C,delta) = 1
// given that A already carries the negated y-coordinate (spec §4.4).
func Verify(vk *VerifyingKey, proof *Proof, publicInputs []fr.Element) error {
	if len(vk.IC) != len(publicInputs)+1 {
		return ErrICLength
	}

	// vk_x = ic[0] + sum(p_i * ic[i])
	vkX := vk.IC[0]
	for i, pi := range publicInputs {
		var scaled bn254.G1Affine
		var piBig big.Int
		pi.BigInt(&piBig)
		scaled.ScalarMultiplication(&vk.IC[i+1], &piBig)
		vkX.Add(&vkX, &scaled)
	}

	ok, err := bn254.PairingCheck(
		[]bn254.G1Affine{proof.A, vk.Alpha, vkX, proof.C},
		[]bn254.G2Affine{proof.B, vk.Beta, vk.Gamma, vk.Delta},
	)
	if err != nil {
		return err
	}
	if !ok {
		return ErrPairingCheckFailed
	}
	return nil
}

// PublicInputsFromHashes validates and converts a slice of 32-byte buffers
// into Fr elements, rejecting any value at or above the modulus (spec §4.4
// edge cases).
func PublicInputsFromHashes(hs [][32]byte) ([]fr.Element, error) {
	out := make([]fr.Element, len(hs))
	for i, h := range hs {
		v := new(big.Int).SetBytes(h[:])
		if v.Cmp(fr.Modulus()) >= 0 {
			return nil, ErrPublicInputOutOfRange
		}
		out[i].SetBigInt(v)
	}
	return out, nil
}
