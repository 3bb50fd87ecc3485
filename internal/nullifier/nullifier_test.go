package nullifier

import (
	"context"
	"testing"

	"github.com/ccoin/shieldpool/pkg/types"
)

func nullifierAt(b byte) types.Hash {
	var h types.Hash
	h[31] = b
	return h
}

func TestContainsFalseForUnseenNullifier(t *testing.T) {
	ctx := context.Background()
	set := NewSet(NewInMemoryStore())

	ok, err := set.Contains(ctx, nullifierAt(1))
	if err != nil {
		t.Fatalf("Contains: %v", err)
	}
	if ok {
		t.Fatalf("expected false for an unseen nullifier")
	}
}

func TestCheckAndMarkThenContains(t *testing.T) {
	ctx := context.Background()
	set := NewSet(NewInMemoryStore())
	n := nullifierAt(2)

	if err := set.CheckAndMark(ctx, n); err != nil {
		t.Fatalf("CheckAndMark: %v", err)
	}
	ok, err := set.Contains(ctx, n)
	if err != nil {
		t.Fatalf("Contains: %v", err)
	}
	if !ok {
		t.Fatalf("expected nullifier to be marked spent")
	}
}

func TestCheckAndMarkRejectsDoubleSpend(t *testing.T) {
	ctx := context.Background()
	set := NewSet(NewInMemoryStore())
	n := nullifierAt(3)

	if err := set.CheckAndMark(ctx, n); err != nil {
		t.Fatalf("first CheckAndMark: %v", err)
	}
	if err := set.CheckAndMark(ctx, n); err != ErrAlreadySpent {
		t.Fatalf("expected ErrAlreadySpent on replay, got %v", err)
	}
}

func TestCheckAndMarkDistinctNullifiersIndependent(t *testing.T) {
	ctx := context.Background()
	set := NewSet(NewInMemoryStore())

	if err := set.CheckAndMark(ctx, nullifierAt(4)); err != nil {
		t.Fatalf("CheckAndMark(4): %v", err)
	}
	if err := set.CheckAndMark(ctx, nullifierAt(5)); err != nil {
		t.Fatalf("CheckAndMark(5): %v", err)
	}
}

func TestInMemoryStoreSize(t *testing.T) {
	store := NewInMemoryStore()
	set := NewSet(store)
	ctx := context.Background()

	for i := byte(0); i < 5; i++ {
		if err := set.CheckAndMark(ctx, nullifierAt(i)); err != nil {
			t.Fatalf("CheckAndMark(%d): %v", i, err)
		}
	}
	if store.Size() != 5 {
		t.Fatalf("expected store size 5, got %d", store.Size())
	}
}
