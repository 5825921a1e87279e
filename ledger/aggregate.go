/*
aggregate.go - Per-property revenue and expense totals

PURPOSE:
  The shared aggregation core behind every property-level NOI figure in
  the engine: balance-sheet property valuation, tax depreciation, and
  any per-property reporting. All four statements that need a
  property's NOI go through this one function, which is what keeps
  their numbers mutually consistent.

SCOPE NOTE:
  Revenue here is rent-only. Late fees and application fees belong to
  the income statement's "gross income" figure, NOT to property NOI.
  The two figures differ by design.

SEE ALSO:
  - resolver.go: The lookup maps consumed here
  - statement/balancesheet.go, statement/tax.go: Consumers
*/
package ledger

import "github.com/shopspring/decimal"

// =============================================================================
// PROPERTY FINANCIALS
// =============================================================================

// PropertyFinancials holds per-property revenue and expense totals for
// one date range. Deterministic given snapshot + range; no side effects.
type PropertyFinancials struct {
	Revenue  map[string]decimal.Decimal
	Expenses map[string]decimal.Decimal
}

// NOI returns revenue minus expenses for one property.
func (pf PropertyFinancials) NOI(propertyID string) decimal.Decimal {
	return pf.Revenue[propertyID].Sub(pf.Expenses[propertyID])
}

// TotalNOI returns the NOI summed across every property seen.
func (pf PropertyFinancials) TotalNOI() decimal.Decimal {
	total := decimal.Zero
	for _, id := range pf.PropertyIDs() {
		total = total.Add(pf.NOI(id))
	}
	return total
}

// PropertyIDs returns the union of properties with revenue or expenses,
// deduplicated. Order is not guaranteed; sort before rendering.
func (pf PropertyFinancials) PropertyIDs() []string {
	seen := make(map[string]bool, len(pf.Revenue)+len(pf.Expenses))
	var ids []string
	for id := range pf.Revenue {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	for id := range pf.Expenses {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids
}

// CalculatePropertyFinancials aggregates collected rent and recorded
// expenses per property over a range.
//
// Revenue: collected payments (rent amount only, no fees) inside the
// range, attributed through lease -> unit -> property. Payments on
// leases that don't resolve to a property are skipped silently.
//
// Expenses: in-range expenses attributed via the expense's own
// property_id, else via maintenance request -> unit -> property.
// Unresolvable expenses are skipped silently.
func CalculatePropertyFinancials(snap *Snapshot, rel Relationships, rng Range) PropertyFinancials {
	pf := PropertyFinancials{
		Revenue:  make(map[string]decimal.Decimal),
		Expenses: make(map[string]decimal.Decimal),
	}

	for _, p := range snap.RentPayments {
		if !p.Collected() || !WithinRange(p.EffectiveDate(), rng) {
			continue
		}
		propertyID, ok := rel.PropertyForLease(p.LeaseID)
		if !ok {
			continue
		}
		pf.Revenue[propertyID] = pf.Revenue[propertyID].Add(p.Amount)
	}

	for _, e := range snap.Expenses {
		if !WithinRange(e.EffectiveDate(), rng) {
			continue
		}
		propertyID, ok := rel.PropertyForExpense(e)
		if !ok {
			continue
		}
		pf.Expenses[propertyID] = pf.Expenses[propertyID].Add(e.Amount)
	}

	return pf
}

// =============================================================================
// SNAPSHOT-WIDE SUMS - Shared by the statement generators
// =============================================================================

// CollectedRent sums collected payments' rent amounts (no fees) in range.
func CollectedRent(snap *Snapshot, rng Range) decimal.Decimal {
	total := decimal.Zero
	for _, p := range snap.RentPayments {
		if p.Collected() && WithinRange(p.EffectiveDate(), rng) {
			total = total.Add(p.Amount)
		}
	}
	return total
}

// CollectedRentWithFees sums collected payments including late and
// application fees. This is the income statement's gross figure.
func CollectedRentWithFees(snap *Snapshot, rng Range) decimal.Decimal {
	total := decimal.Zero
	for _, p := range snap.RentPayments {
		if p.Collected() && WithinRange(p.EffectiveDate(), rng) {
			total = total.Add(p.Amount).Add(p.Fees())
		}
	}
	return total
}

// OutstandingRent sums non-collected payments due inside the range.
func OutstandingRent(snap *Snapshot, rng Range) decimal.Decimal {
	total := decimal.Zero
	for _, p := range snap.RentPayments {
		if !p.Collected() && WithinRange(p.DueDate, rng) {
			total = total.Add(p.Amount)
		}
	}
	return total
}

// PaymentFees sums late and application fees on in-range payments,
// collected or not. Feeds the tax documents' Fees bucket.
func PaymentFees(snap *Snapshot, rng Range) decimal.Decimal {
	total := decimal.Zero
	for _, p := range snap.RentPayments {
		if WithinRange(p.EffectiveDate(), rng) {
			total = total.Add(p.Fees())
		}
	}
	return total
}

// ExpenseTotal sums raw expense amounts in range.
func ExpenseTotal(snap *Snapshot, rng Range) decimal.Decimal {
	total := decimal.Zero
	for _, e := range snap.Expenses {
		if WithinRange(e.EffectiveDate(), rng) {
			total = total.Add(e.Amount)
		}
	}
	return total
}

// CompletedMaintenanceCost sums completed requests' cost in range.
func CompletedMaintenanceCost(snap *Snapshot, rng Range) decimal.Decimal {
	total := decimal.Zero
	for _, m := range snap.MaintenanceRequests {
		if m.Completed() && WithinRange(m.EffectiveDate(), rng) {
			total = total.Add(m.Cost())
		}
	}
	return total
}

// OpenMaintenanceEstimate sums the estimated cost of still-open
// requests. Feeds the balance sheet's accrued expenses line.
func OpenMaintenanceEstimate(snap *Snapshot) decimal.Decimal {
	total := decimal.Zero
	for _, m := range snap.MaintenanceRequests {
		if m.Open() && m.EstimatedCost != nil {
			total = total.Add(*m.EstimatedCost)
		}
	}
	return total
}

// SecurityDepositTotal sums security deposits across all leases.
func SecurityDepositTotal(snap *Snapshot) decimal.Decimal {
	total := decimal.Zero
	for _, l := range snap.Leases {
		total = total.Add(l.SecurityDeposit)
	}
	return total
}

// UnlinkedExpenseTotal sums in-range expenses not linked to a
// maintenance request. Capital-style spend for the cash flow
// statement's investing section.
func UnlinkedExpenseTotal(snap *Snapshot, rng Range) decimal.Decimal {
	total := decimal.Zero
	for _, e := range snap.Expenses {
		if e.MaintenanceRequestID == "" && WithinRange(e.EffectiveDate(), rng) {
			total = total.Add(e.Amount)
		}
	}
	return total
}
