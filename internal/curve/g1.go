package curve

import (
	"errors"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fp"
)

// ErrInvalidPoint is returned when a G1/G2 buffer decodes to a coordinate
// pair that is off-curve.
var ErrInvalidPoint = errors.New("curve: point is not on curve")

// G1Size is the wire size of a G1 point: 32-byte X, 32-byte Y, big-endian.
const G1Size = 64

// DecodeG1 parses a 64-byte big-endian x‖y buffer into an affine G1 point,
// per spec §4.4/§6. The point at infinity is encoded as all-zero bytes.
// BN254 G1 has cofactor 1, so the subgroup check is redundant with
// IsOnCurve in practice; it is kept for defense in depth and to match
// spec §4.4's literal "on-curve and in the correct subgroup" requirement.
func DecodeG1(buf []byte) (bn254.G1Affine, error) {
	var p bn254.G1Affine
	if len(buf) != G1Size {
		return p, errors.New("curve: G1 buffer must be 64 bytes")
	}

	var x, y fp.Element
	x.SetBytes(buf[:32])
	y.SetBytes(buf[32:64])
	p.X, p.Y = x, y

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

// EncodeG1 serialises an affine G1 point into the 64-byte big-endian x‖y
// wire form.
func EncodeG1(p *bn254.G1Affine) []byte {
	out := make([]byte, G1Size)
	xb := p.X.Bytes()
	yb := p.Y.Bytes()
	copy(out[0:32], xb[:])
	copy(out[32:64], yb[:])
	return out
}

// NegateG1Y returns p with its y-coordinate negated in Fq, matching the
// caller-side convention required for proof_a (spec §4.4, §9).
func NegateG1Y(p bn254.G1Affine) bn254.G1Affine {
	if p.X.IsZero() && p.Y.IsZero() {
		return p
	}
	p.Y.Neg(&p.Y)
	return p
}
