package main

import (
	"context"
	"fmt"
	"sync"

	"github.com/ccoin/shieldpool/pkg/types"
)

// localVault is a standalone-mode stand-in for the host ledger's Vault
// account (spec §3 Vault, §6). In production this daemon would not own
// Vault directly; it would sign transfer instructions against the ledger's
// system transfer facility using a program-derived authority. This
// implementation exists so the daemon can run end-to-end without a host
// ledger attached.
type localVault struct {
	mu      sync.Mutex
	balance uint64
}

func newPlaceholderVault() *localVault {
	return &localVault{}
}

func (v *localVault) Balance(ctx context.Context) (uint64, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.balance, nil
}

func (v *localVault) ShieldIn(ctx context.Context, caller types.Address, amount uint64) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.balance += amount
	fmt.Printf("vault: +%d from %s (balance=%d)\n", amount, caller, v.balance)
	return nil
}

func (v *localVault) PayOut(ctx context.Context, recipient types.Address, amount uint64) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if amount > v.balance {
		return fmt.Errorf("vault: balance %d insufficient for payout %d", v.balance, amount)
	}
	v.balance -= amount
	fmt.Printf("vault: -%d to %s (balance=%d)\n", amount, recipient, v.balance)
	return nil
}
