package engine

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254"

	"github.com/ccoin/shieldpool/internal/curve"
)

// fakeVKBytes assembles a syntactically valid (but cryptographically
// meaningless) verifying key in the engine's wire layout, for exercising
// decodeVerifyingKey and the dispatcher's pre-pairing checks without a real
// trusted-setup output.
func fakeVKBytes(icCount int) []byte {
	_, _, g1, g2 := bn254.Generators()

	buf := append([]byte{}, curve.EncodeG1(&g1)...)
	buf = append(buf, curve.EncodeG2(&g2)...)
	buf = append(buf, curve.EncodeG2(&g2)...)
	buf = append(buf, curve.EncodeG2(&g2)...)

	count := make([]byte, 4)
	for i := 0; i < 4; i++ {
		count[3-i] = byte(icCount >> (8 * uint(i)))
	}
	buf = append(buf, count...)
	for i := 0; i < icCount; i++ {
		buf = append(buf, curve.EncodeG1(&g1)...)
	}
	return buf
}

func TestDecodeVerifyingKeyRoundTrip(t *testing.T) {
	raw := fakeVKBytes(5)
	vk, err := decodeVerifyingKey(raw)
	if err != nil {
		t.Fatalf("decodeVerifyingKey: %v", err)
	}
	if len(vk.IC) != 5 {
		t.Fatalf("expected 5 IC points, got %d", len(vk.IC))
	}
}

func TestDecodeVerifyingKeyRejectsTruncatedBuffer(t *testing.T) {
	raw := fakeVKBytes(5)
	if _, err := decodeVerifyingKey(raw[:len(raw)-1]); err != ErrBadVerifyingKey {
		t.Fatalf("expected ErrBadVerifyingKey, got %v", err)
	}
}

func TestVerifyingKeyChecksumDeterministicAndSensitive(t *testing.T) {
	raw1 := fakeVKBytes(5)
	raw2 := fakeVKBytes(5)
	if VerifyingKeyChecksum(raw1) != VerifyingKeyChecksum(raw2) {
		t.Fatalf("checksum must be deterministic for identical bytes")
	}

	raw3 := fakeVKBytes(6)
	if VerifyingKeyChecksum(raw1) == VerifyingKeyChecksum(raw3) {
		t.Fatalf("checksum must differ for different VK bytes")
	}
}
