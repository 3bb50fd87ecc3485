package engine

import (
	"encoding/binary"
	"testing"

	"github.com/ccoin/shieldpool/pkg/types"
)

func TestDecodeShieldPayloadRoundTrip(t *testing.T) {
	var commitment types.Hash
	commitment[31] = 7
	amount := uint64(42)

	buf := make([]byte, sizeHash+sizeU64)
	copy(buf[0:32], commitment[:])
	binary.LittleEndian.PutUint64(buf[32:40], amount)

	p, err := DecodeShieldPayload(buf)
	if err != nil {
		t.Fatalf("DecodeShieldPayload: %v", err)
	}
	if p.Commitment != commitment || p.Amount != amount {
		t.Fatalf("decoded payload mismatch: %+v", p)
	}
}

func TestDecodeShieldPayloadRejectsWrongLength(t *testing.T) {
	if _, err := DecodeShieldPayload(make([]byte, 10)); err == nil {
		t.Fatalf("expected error for malformed payload")
	}
}

func TestDecodeUnshieldPayloadRoundTrip(t *testing.T) {
	buf := make([]byte, proofSize+sizeHash+sizeHash+sizeU64+sizeU64+sizeHash)
	off := proofSize
	var n, recipient, root types.Hash
	n[31] = 1
	recipient[31] = 2
	root[31] = 3
	copy(buf[off:off+32], n[:])
	off += 32
	copy(buf[off:off+32], recipient[:])
	off += 32
	binary.LittleEndian.PutUint64(buf[off:off+8], 100)
	off += 8
	binary.LittleEndian.PutUint64(buf[off:off+8], 5)
	off += 8
	copy(buf[off:off+32], root[:])

	p, err := DecodeUnshieldPayload(buf)
	if err != nil {
		t.Fatalf("DecodeUnshieldPayload: %v", err)
	}
	if p.N != n || p.Recipient != recipient || p.Amount != 100 || p.Fee != 5 || p.Root != root {
		t.Fatalf("decoded payload mismatch: %+v", p)
	}
}

func TestDecodeUnshieldWithChangePayloadRoundTrip(t *testing.T) {
	base := proofSize + sizeHash + sizeHash + sizeU64 + sizeU64 + sizeHash
	buf := make([]byte, base+sizeHash)
	var change types.Hash
	change[31] = 9
	copy(buf[base:base+32], change[:])

	p, err := DecodeUnshieldWithChangePayload(buf)
	if err != nil {
		t.Fatalf("DecodeUnshieldWithChangePayload: %v", err)
	}
	if p.ChangeCommitment != change {
		t.Fatalf("expected change commitment %x, got %x", change, p.ChangeCommitment)
	}
}

func TestDecodePrivateTransferPayloadRoundTrip(t *testing.T) {
	buf := make([]byte, proofSize+4*sizeHash+sizeHash)
	off := proofSize
	var n1, n2, c1, c2, root types.Hash
	n1[31], n2[31], c1[31], c2[31], root[31] = 1, 2, 3, 4, 5
	for _, h := range []types.Hash{n1, n2, c1, c2, root} {
		copy(buf[off:off+32], h[:])
		off += 32
	}

	p, err := DecodePrivateTransferPayload(buf)
	if err != nil {
		t.Fatalf("DecodePrivateTransferPayload: %v", err)
	}
	if p.N1 != n1 || p.N2 != n2 || p.COut1 != c1 || p.COut2 != c2 || p.Root != root {
		t.Fatalf("decoded payload mismatch: %+v", p)
	}
}

func TestRecipientFieldZeroesHighByte(t *testing.T) {
	var recipient types.Hash
	for i := range recipient {
		recipient[i] = 0xFF
	}
	f := RecipientField(recipient)
	if f[0] != 0 {
		t.Fatalf("expected high byte zeroed, got %x", f[0])
	}
	for i := 1; i < 32; i++ {
		if f[i] != 0xFF {
			t.Fatalf("expected remaining bytes unchanged at index %d", i)
		}
	}
}
