/*
Package ledger provides the raw-record model for the financial statement engine.

PURPOSE:
  This package contains the snapshot types and pure algorithms that turn a
  flat ledger of rent payments, expenses, leases, maintenance requests,
  units and properties into per-property financial aggregates. It knows
  nothing about statements; the statement package builds the four report
  documents on top of these primitives.

KEY CONCEPTS IN THIS FILE (types.go):
  - Snapshot: One immutable set of ledger rows for a single owner
  - RentPayment/Expense/Lease/MaintenanceRequest/Unit/Property: the rows
  - Collected: the single definition of "this payment counted as cash"
  - Cost: the single definition of a maintenance request's cost

DESIGN PRINCIPLES:
  1. Immutability: The snapshot is never mutated after loading
  2. Precision: Uses decimal.Decimal to avoid floating-point errors
  3. Fail-closed: Records with missing dates or unresolvable relations are
     excluded from sums, never guessed at

SEE ALSO:
  - daterange.go: Inclusive date-range filtering
  - resolver.go: unit->property and lease->property lookup maps
  - aggregate.go: Per-property revenue/expense totals
*/
package ledger

import (
	"strings"

	"github.com/shopspring/decimal"
)

// =============================================================================
// LEDGER ROWS
// =============================================================================

// RentPayment is one scheduled rent charge, possibly paid.
// Dates are ISO strings exactly as the loader produced them; parsing
// happens at filter time so that a bad date fails closed instead of
// failing the whole report.
type RentPayment struct {
	ID                   string
	LeaseID              string
	Amount               decimal.Decimal
	DueDate              string // ISO date, may be empty
	PaidDate             string // empty = not paid
	Status               string // "succeeded", "PAID", "pending", "failed", ...
	LateFeeAmount        decimal.Decimal
	ApplicationFeeAmount decimal.Decimal
}

// Collected reports whether the payment counts as collected cash.
// A payment is collected iff its status indicates success OR a paid
// date is recorded. This is the one invariant every revenue figure in
// the engine is built on.
func (p RentPayment) Collected() bool {
	switch strings.ToLower(strings.TrimSpace(p.Status)) {
	case "succeeded", "paid":
		return true
	}
	return p.PaidDate != ""
}

// EffectiveDate is the date used for range filtering: due date first,
// paid date as fallback.
func (p RentPayment) EffectiveDate() string {
	if p.DueDate != "" {
		return p.DueDate
	}
	return p.PaidDate
}

// Fees returns late fee + application fee for the payment.
func (p RentPayment) Fees() decimal.Decimal {
	return p.LateFeeAmount.Add(p.ApplicationFeeAmount)
}

// Expense is a recorded property expense. PropertyID is present only on
// some call paths; when empty the expense is attributed through its
// maintenance request (see Relationships.PropertyForExpense).
type Expense struct {
	ID                   string
	PropertyID           string // may be empty
	MaintenanceRequestID string // may be empty
	Amount               decimal.Decimal
	Description          string
	ExpenseDate          string // preferred filter date
	CreatedAt            string // fallback filter date
}

// EffectiveDate is the date used for range filtering: expense date
// first, creation date as fallback.
func (e Expense) EffectiveDate() string {
	if e.ExpenseDate != "" {
		return e.ExpenseDate
	}
	return e.CreatedAt
}

// Lease links a unit to a tenant agreement and carries the deposit held.
type Lease struct {
	ID              string
	UnitID          string
	SecurityDeposit decimal.Decimal
}

// MaintenanceRequest is a work order against a unit.
// ActualCost/EstimatedCost are pointers because "not set" and "zero"
// mean different things when choosing which cost to report.
type MaintenanceRequest struct {
	ID            string
	UnitID        string
	Status        string // "open", "in_progress", "completed", "canceled", ...
	CompletedAt   string // empty = not completed
	CreatedAt     string
	ActualCost    *decimal.Decimal
	EstimatedCost *decimal.Decimal
}

// Cost returns the request's cost: actual if set, else estimated, else zero.
func (m MaintenanceRequest) Cost() decimal.Decimal {
	if m.ActualCost != nil {
		return *m.ActualCost
	}
	if m.EstimatedCost != nil {
		return *m.EstimatedCost
	}
	return decimal.Zero
}

// Completed reports whether the request is finished work.
func (m MaintenanceRequest) Completed() bool {
	return strings.EqualFold(strings.TrimSpace(m.Status), "completed")
}

// Open reports whether the request still represents an accrued obligation.
func (m MaintenanceRequest) Open() bool {
	switch strings.ToLower(strings.TrimSpace(m.Status)) {
	case "completed", "canceled", "cancelled":
		return false
	}
	return true
}

// EffectiveDate is the date used for range filtering: completion date
// first, creation date as fallback.
func (m MaintenanceRequest) EffectiveDate() string {
	if m.CompletedAt != "" {
		return m.CompletedAt
	}
	return m.CreatedAt
}

// Unit is a rentable unit inside a property.
type Unit struct {
	ID         string
	PropertyID string
}

// Property is an owned building. CreatedAt doubles as the acquisition
// date proxy for depreciation schedules.
type Property struct {
	ID        string
	Name      string
	CreatedAt string
}

// =============================================================================
// SNAPSHOT - One owner's ledger, frozen for one report request
// =============================================================================

// Snapshot is the immutable input to every statement generator. The
// loader scopes it to a single owner; the engine performs no tenant
// filtering of its own. The engine never mutates a snapshot, so one
// snapshot may back any number of concurrent report computations.
type Snapshot struct {
	OwnerID             string
	RentPayments        []RentPayment
	Expenses            []Expense
	Leases              []Lease
	MaintenanceRequests []MaintenanceRequest
	Units               []Unit
	Properties          []Property
}

// =============================================================================
// MONEY HELPERS
// =============================================================================

// MustParseDecimal parses a decimal string, returning zero on failure.
// Used by stores when reading persisted amounts.
func MustParseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Cents rounds a monetary amount to two decimal places.
func Cents(d decimal.Decimal) decimal.Decimal { return d.Round(2) }

// Float converts a monetary amount to a float64 rounded to cents.
// Only the document/DTO boundary uses floats; all arithmetic stays in
// decimal.
func Float(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}
