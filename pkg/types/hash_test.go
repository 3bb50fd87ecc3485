package types

import "testing"

func TestHashFromBytesTruncatesFromLeft(t *testing.T) {
	b := make([]byte, 34)
	b[32] = 0xAA
	b[33] = 0xBB
	h := HashFromBytes(b)
	if h[30] != 0xAA || h[31] != 0xBB {
		t.Fatalf("expected the last 32 bytes to be kept, got %x", h)
	}
}

func TestHashFromBytesLeftPadsShortInput(t *testing.T) {
	h := HashFromBytes([]byte{0x01, 0x02})
	if h[30] != 0x01 || h[31] != 0x02 {
		t.Fatalf("expected left-padded short input, got %x", h)
	}
	for i := 0; i < 30; i++ {
		if h[i] != 0 {
			t.Fatalf("expected leading zero padding at index %d, got %x", i, h[i])
		}
	}
}

func TestIsEmpty(t *testing.T) {
	if !EmptyHash.IsEmpty() {
		t.Fatalf("EmptyHash must report IsEmpty")
	}
	h := HashFromBytes([]byte{1})
	if h.IsEmpty() {
		t.Fatalf("non-zero hash must not report IsEmpty")
	}
}

func TestHashStringIsLowercaseHex(t *testing.T) {
	h := HashFromBytes([]byte{0xDE, 0xAD, 0xBE, 0xEF})
	got := h.String()
	want := "00000000000000000000000000000000000000000000000000000000deadbeef"
	if got != want {
		t.Fatalf("got %s want %s", got, want)
	}
}

func TestAddressFromBytesRoundTrip(t *testing.T) {
	raw := make([]byte, AddressSize)
	for i := range raw {
		raw[i] = byte(i)
	}
	a := AddressFromBytes(raw)
	for i := range raw {
		if a[i] != raw[i] {
			t.Fatalf("mismatch at index %d: got %x want %x", i, a[i], raw[i])
		}
	}
}
