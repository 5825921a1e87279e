// Package store provides Loader implementations.
package store

import (
	"context"
	"sync"

	"github.com/haven/finance-engine/ledger"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

// Memory holds per-owner ledgers in memory and serves copies of them as
// snapshots. Safe for concurrent use.
type Memory struct {
	mu      sync.RWMutex
	ledgers map[string]*ledger.Snapshot
}

func NewMemory() *Memory {
	return &Memory{ledgers: make(map[string]*ledger.Snapshot)}
}

// Seed replaces the ledger for snap.OwnerID.
func (m *Memory) Seed(snap *ledger.Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ledgers[snap.OwnerID] = snap
}

// LoadSnapshot returns a copy of the owner's ledger so that callers can
// never observe later Seed calls through a snapshot they already hold.
func (m *Memory) LoadSnapshot(_ context.Context, ownerID string) (*ledger.Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	src, ok := m.ledgers[ownerID]
	if !ok {
		return nil, ledger.ErrOwnerNotFound
	}

	snap := &ledger.Snapshot{
		OwnerID:             src.OwnerID,
		RentPayments:        append([]ledger.RentPayment(nil), src.RentPayments...),
		Expenses:            append([]ledger.Expense(nil), src.Expenses...),
		Leases:              append([]ledger.Lease(nil), src.Leases...),
		MaintenanceRequests: append([]ledger.MaintenanceRequest(nil), src.MaintenanceRequests...),
		Units:               append([]ledger.Unit(nil), src.Units...),
		Properties:          append([]ledger.Property(nil), src.Properties...),
	}
	return snap, nil
}

var _ ledger.Loader = (*Memory)(nil)
