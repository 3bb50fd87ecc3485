package curve

import (
	"errors"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fp"
)

// G2Size is the wire size of a G2 point: four 32-byte coefficients, big-endian.
const G2Size = 128

// DecodeG2 parses a 128-byte coefficient-swapped buffer `x1‖x0‖y1‖y0` into an
// affine G2 point (spec §4.4, §6, §9). This ordering matches snarkjs'
// Solidity-verifier convention rather than gnark-crypto's native A0‖A1
// marshalling, so the swap is done explicitly rather than delegated to
// (G2Affine).Unmarshal. Unlike G1, BN254 G2 has a non-trivial cofactor, so
// the subgroup check below is load-bearing: proof_b is attacker-controlled
// and PairingCheck itself does not subgroup-check its inputs (spec §4.4
// edge cases, §7 InvalidProof).
func DecodeG2(buf []byte) (bn254.G2Affine, error) {
	var p bn254.G2Affine
	if len(buf) != G2Size {
		return p, errors.New("curve: G2 buffer must be 128 bytes")
	}

	var x1, x0, y1, y0 fp.Element
	x1.SetBytes(buf[0:32])
	x0.SetBytes(buf[32:64])
	y1.SetBytes(buf[64:96])
	y0.SetBytes(buf[96:128])

	p.X.A0, p.X.A1 = x0, x1
	p.Y.A0, p.Y.A1 = y0, y1

	if p.X.IsZero() && p.Y.IsZero() {
		return p, nil // point at infinity
	}
	if !p.IsOnCurve() {
		return p, ErrInvalidPoint
	}
	if !p.IsInSubGroup() {
		return p, ErrInvalidPoint
	}
	return p, nil
}

// EncodeG2 serialises an affine G2 point into the coefficient-swapped
// 128-byte wire form.
func EncodeG2(p *bn254.G2Affine) []byte {
	out := make([]byte, G2Size)
	x1 := p.X.A1.Bytes()
	x0 := p.X.A0.Bytes()
	y1 := p.Y.A1.Bytes()
	y0 := p.Y.A0.Bytes()
	copy(out[0:32], x1[:])
	copy(out[32:64], x0[:])
	copy(out[64:96], y1[:])
	copy(out[96:128], y0[:])
	return out
}
