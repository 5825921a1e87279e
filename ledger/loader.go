package ledger

import "context"

// =============================================================================
// LOADER - The engine's only asynchronous boundary
// =============================================================================

// Loader produces one immutable snapshot of an owner's ledger. It is
// the only I/O the engine depends on; once the snapshot is in hand all
// computation is pure and CPU-bound.
//
// Implementations must return rows already scoped to the owner; the
// engine performs no authorization or cross-tenant filtering.
type Loader interface {
	// LoadSnapshot returns every relevant row for one owner.
	// Returns ErrOwnerNotFound if the owner has no ledger.
	LoadSnapshot(ctx context.Context, ownerID string) (*Snapshot, error)
}
