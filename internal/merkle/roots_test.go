package merkle

import "testing"

func TestNewRootsRingSeedsGenesisEverywhere(t *testing.T) {
	genesis := leafAt(0xAB)
	ring := NewRootsRing(5, genesis)
	if ring.Size() != 5 {
		t.Fatalf("expected size 5, got %d", ring.Size())
	}
	if !ring.IsHistorical(genesis) {
		t.Fatalf("genesis root must be historical immediately after construction")
	}
}

func TestPushMakesNewRootHistorical(t *testing.T) {
	genesis := leafAt(0x01)
	ring := NewRootsRing(3, genesis)

	r1 := leafAt(0x02)
	ring.Push(r1)
	if !ring.IsHistorical(r1) {
		t.Fatalf("pushed root must be historical")
	}
}

func TestStaleRootFallsOffAfterRPushes(t *testing.T) {
	genesis := leafAt(0x00)
	ring := NewRootsRing(3, genesis)

	if !ring.IsHistorical(genesis) {
		t.Fatalf("genesis should start historical")
	}
	for i := byte(1); i <= 3; i++ {
		ring.Push(leafAt(i))
	}
	if ring.IsHistorical(genesis) {
		t.Fatalf("genesis must fall out of the ring after R pushes overwrite every slot")
	}
}

func TestRingOfSizeOneOnlyKeepsLatest(t *testing.T) {
	genesis := leafAt(0x10)
	ring := NewRootsRing(1, genesis)

	next := leafAt(0x11)
	ring.Push(next)
	if ring.IsHistorical(genesis) {
		t.Fatalf("size-1 ring must not remember the prior root")
	}
	if !ring.IsHistorical(next) {
		t.Fatalf("size-1 ring must remember the latest root")
	}
}
