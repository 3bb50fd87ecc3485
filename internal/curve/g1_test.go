package curve

import "testing"

func TestDecodeG1Infinity(t *testing.T) {
	buf := make([]byte, G1Size)
	p, err := DecodeG1(buf)
	if err != nil {
		t.Fatalf("DecodeG1(zero): %v", err)
	}
	if !p.X.IsZero() || !p.Y.IsZero() {
		t.Fatalf("expected point at infinity")
	}
}

func TestDecodeG1RejectsBadLength(t *testing.T) {
	if _, err := DecodeG1(make([]byte, 10)); err == nil {
		t.Fatalf("expected error for short buffer")
	}
}

func TestDecodeG1RejectsOffCurve(t *testing.T) {
	buf := make([]byte, G1Size)
	buf[31] = 1 // x = 1, y = 0 is not generally on the BN254 curve
	if _, err := DecodeG1(buf); err != ErrInvalidPoint {
		t.Fatalf("expected ErrInvalidPoint, got %v", err)
	}
}

func TestEncodeDecodeG1RoundTrip(t *testing.T) {
	g1, _ := generatorsForTest(t)
	encoded := EncodeG1(&g1)
	decoded, err := DecodeG1(encoded)
	if err != nil {
		t.Fatalf("DecodeG1: %v", err)
	}
	if decoded.X != g1.X || decoded.Y != g1.Y {
		t.Fatalf("round trip mismatch")
	}
}

func TestNegateG1Y(t *testing.T) {
	g1, _ := generatorsForTest(t)
	neg := NegateG1Y(g1)
	if neg.X != g1.X {
		t.Fatalf("x coordinate must be unchanged")
	}
	doubleNeg := NegateG1Y(neg)
	if doubleNeg.Y != g1.Y {
		t.Fatalf("negating twice must return the original y")
	}
}
