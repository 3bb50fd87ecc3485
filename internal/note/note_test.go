package note

import (
	"testing"

	"github.com/ccoin/shieldpool/pkg/types"
)

func testNote() Note {
	var secret, nullifier types.Hash
	secret[31] = 0xAA
	nullifier[31] = 0xBB
	return Note{Secret: secret, Nullifier: nullifier, Amount: 1_000_000}
}

func TestCommitmentDeterministic(t *testing.T) {
	n := testNote()
	c1, err := Commitment(n)
	if err != nil {
		t.Fatalf("Commitment: %v", err)
	}
	c2, err := Commitment(n)
	if err != nil {
		t.Fatalf("Commitment: %v", err)
	}
	if c1 != c2 {
		t.Fatalf("Commitment must be deterministic")
	}
}

func TestCommitmentSensitiveToAmount(t *testing.T) {
	n1 := testNote()
	n2 := testNote()
	n2.Amount = n1.Amount + 1

	c1, _ := Commitment(n1)
	c2, _ := Commitment(n2)
	if c1 == c2 {
		t.Fatalf("changing amount must change the commitment")
	}
}

func TestCommitmentSensitiveToSecret(t *testing.T) {
	n1 := testNote()
	n2 := testNote()
	n2.Secret[0] = 0x01

	c1, _ := Commitment(n1)
	c2, _ := Commitment(n2)
	if c1 == c2 {
		t.Fatalf("changing secret must change the commitment")
	}
}

func TestNullifierHashDeterministicAndDistinctFromCommitment(t *testing.T) {
	n := testNote()
	nh1, err := NullifierHash(n.Nullifier)
	if err != nil {
		t.Fatalf("NullifierHash: %v", err)
	}
	nh2, err := NullifierHash(n.Nullifier)
	if err != nil {
		t.Fatalf("NullifierHash: %v", err)
	}
	if nh1 != nh2 {
		t.Fatalf("NullifierHash must be deterministic")
	}

	c, err := Commitment(n)
	if err != nil {
		t.Fatalf("Commitment: %v", err)
	}
	if nh1 == c {
		t.Fatalf("nullifier hash must not collide with commitment for this note")
	}
}
