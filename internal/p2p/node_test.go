package p2p

import (
	"testing"
	"time"

	"github.com/ccoin/shieldpool/pkg/types"
)

func TestEncodeDecodeRootAdvanceRoundTrip(t *testing.T) {
	var root types.Hash
	root[31] = 0x42
	adv := RootAdvance{Root: root, NextIndex: 12345, At: time.Unix(0, 0)}

	encoded := encodeRootAdvance(adv)
	if len(encoded) != 40 {
		t.Fatalf("expected 40-byte wire encoding, got %d", len(encoded))
	}

	decoded, ok := decodeRootAdvance(encoded)
	if !ok {
		t.Fatalf("decodeRootAdvance failed on a well-formed buffer")
	}
	if decoded.Root != root || decoded.NextIndex != 12345 {
		t.Fatalf("round trip mismatch: got %+v", decoded)
	}
}

func TestDecodeRootAdvanceRejectsWrongLength(t *testing.T) {
	if _, ok := decodeRootAdvance(make([]byte, 39)); ok {
		t.Fatalf("expected decode failure for a 39-byte buffer")
	}
}
