/*
Package fixture parses declarative JSON ledgers into snapshots.

PURPOSE:
  Demo scenarios and tests describe a full owner ledger as one JSON
  document using the upstream field names (lease_id, due_date,
  late_fee_amount, ...). Parse turns that document into a
  ledger.Snapshot ready for the engine or for seeding a store.

FIELD NAMING:
  The JSON layer uses snake_case to match the rows as the original
  property-management system stores them; the Go layer renames to the
  engine's types. Amounts accept JSON numbers or strings - decimal
  parses both.

SEE ALSO:
  - api/scenarios.go: The demo ledgers written in this format
  - ledger/types.go: The target model
*/
package fixture

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/haven/finance-engine/ledger"
)

// =============================================================================
// JSON SHAPE
// =============================================================================

// Document is one owner's ledger in JSON form.
type Document struct {
	Owner               string                   `json:"owner"`
	Properties          []PropertyJSON           `json:"properties,omitempty"`
	Units               []UnitJSON               `json:"units,omitempty"`
	Leases              []LeaseJSON              `json:"leases,omitempty"`
	RentPayments        []RentPaymentJSON        `json:"rent_payments,omitempty"`
	Expenses            []ExpenseJSON            `json:"expenses,omitempty"`
	MaintenanceRequests []MaintenanceRequestJSON `json:"maintenance_requests,omitempty"`
}

type PropertyJSON struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at,omitempty"`
}

type UnitJSON struct {
	ID         string `json:"id"`
	PropertyID string `json:"property_id"`
}

type LeaseJSON struct {
	ID              string          `json:"id"`
	UnitID          string          `json:"unit_id"`
	SecurityDeposit decimal.Decimal `json:"security_deposit"`
}

type RentPaymentJSON struct {
	ID                   string          `json:"id"`
	LeaseID              string          `json:"lease_id"`
	Amount               decimal.Decimal `json:"amount"`
	DueDate              string          `json:"due_date,omitempty"`
	PaidDate             string          `json:"paid_date,omitempty"`
	Status               string          `json:"status,omitempty"`
	LateFeeAmount        decimal.Decimal `json:"late_fee_amount"`
	ApplicationFeeAmount decimal.Decimal `json:"application_fee_amount"`
}

type ExpenseJSON struct {
	ID                   string          `json:"id"`
	PropertyID           string          `json:"property_id,omitempty"`
	MaintenanceRequestID string          `json:"maintenance_request_id,omitempty"`
	Amount               decimal.Decimal `json:"amount"`
	Description          string          `json:"description,omitempty"`
	ExpenseDate          string          `json:"expense_date,omitempty"`
	CreatedAt            string          `json:"created_at,omitempty"`
}

type MaintenanceRequestJSON struct {
	ID            string           `json:"id"`
	UnitID        string           `json:"unit_id"`
	Status        string           `json:"status,omitempty"`
	CompletedAt   string           `json:"completed_at,omitempty"`
	CreatedAt     string           `json:"created_at,omitempty"`
	ActualCost    *decimal.Decimal `json:"actual_cost,omitempty"`
	EstimatedCost *decimal.Decimal `json:"estimated_cost,omitempty"`
}

// =============================================================================
// PARSING
// =============================================================================

// Parse decodes a fixture document into a snapshot.
func Parse(data []byte) (*ledger.Snapshot, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	if doc.Owner == "" {
		return nil, fmt.Errorf("parse fixture: owner is required")
	}
	return doc.Snapshot(), nil
}

// MustParse is Parse for compiled-in fixtures; it panics on error.
func MustParse(data []byte) *ledger.Snapshot {
	snap, err := Parse(data)
	if err != nil {
		panic(err)
	}
	return snap
}

// Snapshot converts the JSON document into engine types.
func (doc Document) Snapshot() *ledger.Snapshot {
	snap := &ledger.Snapshot{OwnerID: doc.Owner}

	for _, p := range doc.Properties {
		snap.Properties = append(snap.Properties, ledger.Property{
			ID: p.ID, Name: p.Name, CreatedAt: p.CreatedAt,
		})
	}
	for _, u := range doc.Units {
		snap.Units = append(snap.Units, ledger.Unit{ID: u.ID, PropertyID: u.PropertyID})
	}
	for _, l := range doc.Leases {
		snap.Leases = append(snap.Leases, ledger.Lease{
			ID: l.ID, UnitID: l.UnitID, SecurityDeposit: l.SecurityDeposit,
		})
	}
	for _, p := range doc.RentPayments {
		snap.RentPayments = append(snap.RentPayments, ledger.RentPayment{
			ID:                   p.ID,
			LeaseID:              p.LeaseID,
			Amount:               p.Amount,
			DueDate:              p.DueDate,
			PaidDate:             p.PaidDate,
			Status:               p.Status,
			LateFeeAmount:        p.LateFeeAmount,
			ApplicationFeeAmount: p.ApplicationFeeAmount,
		})
	}
	for _, e := range doc.Expenses {
		snap.Expenses = append(snap.Expenses, ledger.Expense{
			ID:                   e.ID,
			PropertyID:           e.PropertyID,
			MaintenanceRequestID: e.MaintenanceRequestID,
			Amount:               e.Amount,
			Description:          e.Description,
			ExpenseDate:          e.ExpenseDate,
			CreatedAt:            e.CreatedAt,
		})
	}
	for _, m := range doc.MaintenanceRequests {
		snap.MaintenanceRequests = append(snap.MaintenanceRequests, ledger.MaintenanceRequest{
			ID:            m.ID,
			UnitID:        m.UnitID,
			Status:        m.Status,
			CompletedAt:   m.CompletedAt,
			CreatedAt:     m.CreatedAt,
			ActualCost:    m.ActualCost,
			EstimatedCost: m.EstimatedCost,
		})
	}

	return snap
}
