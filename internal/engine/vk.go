package engine

import (
	"encoding/binary"
	"errors"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"golang.org/x/crypto/sha3"

	"github.com/ccoin/shieldpool/internal/curve"
)

// ErrBadVerifyingKey is returned when a loaded VK's length does not fit its
// layout, or when its checksum does not match a pinned digest; a VK point
// that fails to decode yields the curve package's error instead
// (supplemental to spec §4.4/§6; see SPEC_FULL.md §12).
var ErrBadVerifyingKey = errors.New("engine: malformed verifying key")

// Statement identifies which of the three Groth16 statements a verification
// key is bound to (spec §4.4 "three independent verification keys").
type Statement int

const (
	StatementWithdrawMerkle Statement = iota
	StatementUnshieldWithChange
	StatementPrivateTransfer
)

// decodeVerifyingKey parses the deployment byte layout for a verifying key:
// alpha(64) || beta(128) || gamma(128) || delta(128) || icCount u32 BE ||
// ic[icCount] (64 bytes each), matching proof-component framing (spec §6).
func decodeVerifyingKey(raw []byte) (*curve.VerifyingKey, error) {
	const head = curve.G1Size + curve.G2Size*3 + 4
	if len(raw) < head {
		return nil, ErrBadVerifyingKey
	}

	off := 0
	alpha, err := curve.DecodeG1(raw[off : off+curve.G1Size])
	if err != nil {
		return nil, err
	}
	off += curve.G1Size

	beta, err := curve.DecodeG2(raw[off : off+curve.G2Size])
	if err != nil {
		return nil, err
	}
	off += curve.G2Size

	gamma, err := curve.DecodeG2(raw[off : off+curve.G2Size])
	if err != nil {
		return nil, err
	}
	off += curve.G2Size

	delta, err := curve.DecodeG2(raw[off : off+curve.G2Size])
	if err != nil {
		return nil, err
	}
	off += curve.G2Size

	icCount := binary.BigEndian.Uint32(raw[off : off+4])
	off += 4

	if len(raw) != head+int(icCount)*curve.G1Size {
		return nil, ErrBadVerifyingKey
	}

	ic := make([]bn254.G1Affine, icCount)
	for i := 0; i < int(icCount); i++ {
		p, err := curve.DecodeG1(raw[off : off+curve.G1Size])
		if err != nil {
			return nil, err
		}
		ic[i] = p
		off += curve.G1Size
	}

	return &curve.VerifyingKey{
		Alpha: alpha,
		Beta:  beta,
		Gamma: gamma,
		Delta: delta,
		IC:    ic,
	}, nil
}

// VerifyingKeyChecksum returns the deployment-pinned digest of a VK's raw
// bytes, checked at initialise time so an operator cannot wire the wrong
// statement's VK into a slot (supplemental feature, SPEC_FULL.md §12).
func VerifyingKeyChecksum(raw []byte) [32]byte {
	return sha3.Sum256(raw)
}
