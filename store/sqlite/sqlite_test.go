package sqlite_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haven/finance-engine/ledger"
	"github.com/haven/finance-engine/store/sqlite"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestStore(t *testing.T) *sqlite.Store {
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func amount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func amountPtr(s string) *decimal.Decimal {
	d := amount(s)
	return &d
}

// =============================================================================
// SNAPSHOT ROUND-TRIP TESTS
// =============================================================================

func TestLoadSnapshot_UnknownOwnerIsEmpty(t *testing.T) {
	// An owner with no rows gets an empty snapshot, not an error: the
	// statements should render as all-zero documents.
	store := newTestStore(t)

	snap, err := store.LoadSnapshot(context.Background(), "nobody")
	require.NoError(t, err)

	assert.Equal(t, "nobody", snap.OwnerID)
	assert.Empty(t, snap.Properties)
	assert.Empty(t, snap.RentPayments)
	assert.Empty(t, snap.Expenses)
}

func TestSeedSnapshot_RoundTrip(t *testing.T) {
	// GIVEN: A full ledger persisted through SeedSnapshot
	store := newTestStore(t)
	ctx := context.Background()

	seed := &ledger.Snapshot{
		OwnerID:    "owner-1",
		Properties: []ledger.Property{{ID: "prop-1", Name: "Maple", CreatedAt: "2020-03-01"}},
		Units:      []ledger.Unit{{ID: "unit-1", PropertyID: "prop-1"}},
		Leases:     []ledger.Lease{{ID: "lease-1", UnitID: "unit-1", SecurityDeposit: amount("1500.50")}},
		RentPayments: []ledger.RentPayment{
			{
				ID: "pay-1", LeaseID: "lease-1", Amount: amount("1800.25"),
				DueDate: "2025-06-01", PaidDate: "2025-06-03", Status: "succeeded",
				LateFeeAmount: amount("50"), ApplicationFeeAmount: amount("25"),
			},
		},
		Expenses: []ledger.Expense{
			{
				ID: "exp-1", PropertyID: "prop-1", Amount: amount("450.75"),
				Description: "Landscaping", ExpenseDate: "2025-06-10",
			},
		},
		MaintenanceRequests: []ledger.MaintenanceRequest{
			{
				ID: "mr-1", UnitID: "unit-1", Status: "completed",
				CompletedAt: "2025-06-15", CreatedAt: "2025-06-12",
				ActualCost: amountPtr("600"), EstimatedCost: amountPtr("500"),
			},
		},
	}
	require.NoError(t, store.SeedSnapshot(ctx, seed))

	// WHEN: Loading the owner's snapshot back
	snap, err := store.LoadSnapshot(ctx, "owner-1")
	require.NoError(t, err)

	// THEN: Every field survives, decimals with full precision
	require.Len(t, snap.Properties, 1)
	assert.Equal(t, "Maple", snap.Properties[0].Name)
	assert.Equal(t, "2020-03-01", snap.Properties[0].CreatedAt)

	require.Len(t, snap.Leases, 1)
	assert.True(t, snap.Leases[0].SecurityDeposit.Equal(amount("1500.50")))

	require.Len(t, snap.RentPayments, 1)
	p := snap.RentPayments[0]
	assert.True(t, p.Amount.Equal(amount("1800.25")))
	assert.Equal(t, "2025-06-01", p.DueDate)
	assert.Equal(t, "2025-06-03", p.PaidDate)
	assert.Equal(t, "succeeded", p.Status)
	assert.True(t, p.Fees().Equal(amount("75")))

	require.Len(t, snap.Expenses, 1)
	assert.Equal(t, "Landscaping", snap.Expenses[0].Description)
	assert.True(t, snap.Expenses[0].Amount.Equal(amount("450.75")))

	require.Len(t, snap.MaintenanceRequests, 1)
	m := snap.MaintenanceRequests[0]
	require.NotNil(t, m.ActualCost)
	assert.True(t, m.ActualCost.Equal(amount("600")))
	require.NotNil(t, m.EstimatedCost)
	assert.True(t, m.EstimatedCost.Equal(amount("500")))
}

func TestLoadSnapshot_ScopedToOwner(t *testing.T) {
	// Two owners in one database: each snapshot sees only its own rows.
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveProperty(ctx, "owner-a", ledger.Property{ID: "prop-a", Name: "A"}))
	require.NoError(t, store.SaveProperty(ctx, "owner-b", ledger.Property{ID: "prop-b", Name: "B"}))

	snapA, err := store.LoadSnapshot(ctx, "owner-a")
	require.NoError(t, err)
	require.Len(t, snapA.Properties, 1)
	assert.Equal(t, "prop-a", snapA.Properties[0].ID)
}

func TestSave_ReplacesExistingRecord(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveRentPayment(ctx, "owner-1", ledger.RentPayment{
		ID: "pay-1", LeaseID: "lease-1", Amount: amount("1500"), Status: "pending",
	}))
	require.NoError(t, store.SaveRentPayment(ctx, "owner-1", ledger.RentPayment{
		ID: "pay-1", LeaseID: "lease-1", Amount: amount("1500"), Status: "succeeded", PaidDate: "2025-06-03",
	}))

	snap, err := store.LoadSnapshot(ctx, "owner-1")
	require.NoError(t, err)
	require.Len(t, snap.RentPayments, 1)
	assert.Equal(t, "succeeded", snap.RentPayments[0].Status)
	assert.True(t, snap.RentPayments[0].Collected())
}

func TestMaintenanceCosts_NullSurvivesRoundTrip(t *testing.T) {
	// Missing costs must come back as nil pointers, not zeros: the cost
	// fallback chain distinguishes "not set" from "zero".
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveMaintenanceRequest(ctx, "owner-1", ledger.MaintenanceRequest{
		ID: "mr-1", UnitID: "unit-1", Status: "open", CreatedAt: "2025-06-01",
	}))

	snap, err := store.LoadSnapshot(ctx, "owner-1")
	require.NoError(t, err)
	require.Len(t, snap.MaintenanceRequests, 1)
	assert.Nil(t, snap.MaintenanceRequests[0].ActualCost)
	assert.Nil(t, snap.MaintenanceRequests[0].EstimatedCost)
	assert.True(t, snap.MaintenanceRequests[0].Cost().IsZero())
}

func TestReset_ClearsEveryTable(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SeedSnapshot(ctx, &ledger.Snapshot{
		OwnerID:    "owner-1",
		Properties: []ledger.Property{{ID: "prop-1", Name: "Maple"}},
		Units:      []ledger.Unit{{ID: "unit-1", PropertyID: "prop-1"}},
	}))

	require.NoError(t, store.Reset(ctx))

	snap, err := store.LoadSnapshot(ctx, "owner-1")
	require.NoError(t, err)
	assert.Empty(t, snap.Properties)
	assert.Empty(t, snap.Units)
}
