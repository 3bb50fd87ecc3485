package engine

import (
	"errors"
	"testing"
)

func TestKindStringCoversAllKinds(t *testing.T) {
	kinds := []Kind{
		KindAlreadyInitialised, KindNotInitialised, KindTreeFull, KindStaleRoot,
		KindDuplicateNullifier, KindInvalidProof, KindAmountOutOfRange,
		KindBelowMinimum, KindInsufficientVault, KindMalformedInstruction,
	}
	for _, k := range kinds {
		if k.String() == "Unknown" {
			t.Fatalf("Kind %d has no String() case", k)
		}
	}
}

func TestErrorIsMatchesOnKindOnly(t *testing.T) {
	e1 := newErr(KindStaleRoot, errors.New("root too old"))
	e2 := ErrKind(KindStaleRoot)
	if !errors.Is(e1, e2) {
		t.Fatalf("expected errors.Is to match on Kind")
	}

	e3 := ErrKind(KindTreeFull)
	if errors.Is(e1, e3) {
		t.Fatalf("expected errors.Is to reject a different Kind")
	}
}

func TestErrorUnwrapReturnsCause(t *testing.T) {
	cause := errors.New("boom")
	e := newErr(KindMalformedInstruction, cause)
	if errors.Unwrap(e) != cause {
		t.Fatalf("expected Unwrap to return the cause")
	}
}
