package engine

import (
	"encoding/binary"

	"github.com/ccoin/shieldpool/internal/curve"
	"github.com/ccoin/shieldpool/pkg/types"
)

// Wire sizes (spec §6).
const (
	sizeU64    = 8
	sizeHash   = 32
	proofASize = curve.G1Size  // 64
	proofBSize = curve.G2Size  // 128
	proofCSize = curve.G1Size  // 64
	proofSize  = proofASize + proofBSize + proofCSize
)

// ShieldPayload is the decoded body of a shield instruction.
type ShieldPayload struct {
	Commitment types.Hash
	Amount     uint64
}

// DecodeShieldPayload parses the payload following the shield instruction
// tag: commitment[32], amount u64 LE (spec §6).
func DecodeShieldPayload(b []byte) (*ShieldPayload, error) {
	if len(b) != sizeHash+sizeU64 {
		return nil, newErr(KindMalformedInstruction, nil)
	}
	return &ShieldPayload{
		Commitment: types.HashFromBytes(b[0:32]),
		Amount:     binary.LittleEndian.Uint64(b[32:40]),
	}, nil
}

// UnshieldPayload is the decoded body of an unshield instruction.
type UnshieldPayload struct {
	ProofA    [64]byte
	ProofB    [128]byte
	ProofC    [64]byte
	N         types.Hash
	Recipient types.Hash
	Amount    uint64
	Fee       uint64
	Root      types.Hash
}

// DecodeUnshieldPayload parses: proof_a[64], proof_b[128], proof_c[64],
// N[32], recipient[32], amount u64 LE, fee u64 LE, root[32] (spec §6).
func DecodeUnshieldPayload(b []byte) (*UnshieldPayload, error) {
	want := proofSize + sizeHash + sizeHash + sizeU64 + sizeU64 + sizeHash
	if len(b) != want {
		return nil, newErr(KindMalformedInstruction, nil)
	}

	p := &UnshieldPayload{}
	off := 0
	copy(p.ProofA[:], b[off:off+proofASize])
	off += proofASize
	copy(p.ProofB[:], b[off:off+proofBSize])
	off += proofBSize
	copy(p.ProofC[:], b[off:off+proofCSize])
	off += proofCSize
	p.N = types.HashFromBytes(b[off : off+sizeHash])
	off += sizeHash
	p.Recipient = types.HashFromBytes(b[off : off+sizeHash])
	off += sizeHash
	p.Amount = binary.LittleEndian.Uint64(b[off : off+sizeU64])
	off += sizeU64
	p.Fee = binary.LittleEndian.Uint64(b[off : off+sizeU64])
	off += sizeU64
	p.Root = types.HashFromBytes(b[off : off+sizeHash])

	return p, nil
}

// UnshieldWithChangePayload is the decoded body of an unshield_with_change
// instruction: an UnshieldPayload followed by change_commitment[32].
type UnshieldWithChangePayload struct {
	UnshieldPayload
	ChangeCommitment types.Hash
}

// DecodeUnshieldWithChangePayload parses unshield's payload plus the
// trailing change_commitment (spec §6).
func DecodeUnshieldWithChangePayload(b []byte) (*UnshieldWithChangePayload, error) {
	base := proofSize + sizeHash + sizeHash + sizeU64 + sizeU64 + sizeHash
	if len(b) != base+sizeHash {
		return nil, newErr(KindMalformedInstruction, nil)
	}
	inner, err := DecodeUnshieldPayload(b[:base])
	if err != nil {
		return nil, err
	}
	return &UnshieldWithChangePayload{
		UnshieldPayload:  *inner,
		ChangeCommitment: types.HashFromBytes(b[base : base+sizeHash]),
	}, nil
}

// PrivateTransferPayload is the decoded body of a private_transfer
// instruction.
type PrivateTransferPayload struct {
	ProofA [64]byte
	ProofB [128]byte
	ProofC [64]byte
	N1     types.Hash
	N2     types.Hash
	COut1  types.Hash
	COut2  types.Hash
	Root   types.Hash
}

// DecodePrivateTransferPayload parses: proof(256), N1, N2, C_out1, C_out2
// (32 each), root[32] (spec §6).
func DecodePrivateTransferPayload(b []byte) (*PrivateTransferPayload, error) {
	want := proofSize + 4*sizeHash + sizeHash
	if len(b) != want {
		return nil, newErr(KindMalformedInstruction, nil)
	}

	p := &PrivateTransferPayload{}
	off := 0
	copy(p.ProofA[:], b[off:off+proofASize])
	off += proofASize
	copy(p.ProofB[:], b[off:off+proofBSize])
	off += proofBSize
	copy(p.ProofC[:], b[off:off+proofCSize])
	off += proofCSize
	p.N1 = types.HashFromBytes(b[off : off+sizeHash])
	off += sizeHash
	p.N2 = types.HashFromBytes(b[off : off+sizeHash])
	off += sizeHash
	p.COut1 = types.HashFromBytes(b[off : off+sizeHash])
	off += sizeHash
	p.COut2 = types.HashFromBytes(b[off : off+sizeHash])
	off += sizeHash
	p.Root = types.HashFromBytes(b[off : off+sizeHash])

	return p, nil
}

// RecipientField derives recipient_f from a 32-byte recipient identifier by
// forcing the high byte to zero and interpreting the remainder big-endian
// (spec §4.6, §9 Field-vs-address width).
func RecipientField(recipient types.Hash) types.Hash {
	f := recipient
	f[0] = 0
	return f
}
