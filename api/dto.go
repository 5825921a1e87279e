/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  JSON structures for API communication. The statement documents
  already carry their own JSON shape (statement package), so this file
  holds only the record-creation requests, their conversions, and the
  standard error envelope.

NAMING CONVENTION:
  - Create*Request: request body types from clients (snake_case JSON,
    matching the upstream ledger field names)
  - ErrorResponse: standard error envelope

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data
  carriers. Missing IDs are minted as UUIDs at conversion time.
*/
package api

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/haven/finance-engine/ledger"
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

type CreatePropertyRequest struct {
	ID        string `json:"id,omitempty"`
	Owner     string `json:"owner"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at,omitempty"`
}

type CreateUnitRequest struct {
	ID         string `json:"id,omitempty"`
	Owner      string `json:"owner"`
	PropertyID string `json:"property_id"`
}

type CreateLeaseRequest struct {
	ID              string          `json:"id,omitempty"`
	Owner           string          `json:"owner"`
	UnitID          string          `json:"unit_id"`
	SecurityDeposit decimal.Decimal `json:"security_deposit"`
}

type CreateRentPaymentRequest struct {
	ID                   string          `json:"id,omitempty"`
	Owner                string          `json:"owner"`
	LeaseID              string          `json:"lease_id"`
	Amount               decimal.Decimal `json:"amount"`
	DueDate              string          `json:"due_date,omitempty"`
	PaidDate             string          `json:"paid_date,omitempty"`
	Status               string          `json:"status,omitempty"`
	LateFeeAmount        decimal.Decimal `json:"late_fee_amount"`
	ApplicationFeeAmount decimal.Decimal `json:"application_fee_amount"`
}

type CreateExpenseRequest struct {
	ID                   string          `json:"id,omitempty"`
	Owner                string          `json:"owner"`
	PropertyID           string          `json:"property_id,omitempty"`
	MaintenanceRequestID string          `json:"maintenance_request_id,omitempty"`
	Amount               decimal.Decimal `json:"amount"`
	Description          string          `json:"description,omitempty"`
	ExpenseDate          string          `json:"expense_date,omitempty"`
	CreatedAt            string          `json:"created_at,omitempty"`
}

type CreateMaintenanceRequestRequest struct {
	ID            string           `json:"id,omitempty"`
	Owner         string           `json:"owner"`
	UnitID        string           `json:"unit_id"`
	Status        string           `json:"status,omitempty"`
	CompletedAt   string           `json:"completed_at,omitempty"`
	CreatedAt     string           `json:"created_at,omitempty"`
	ActualCost    *decimal.Decimal `json:"actual_cost,omitempty"`
	EstimatedCost *decimal.Decimal `json:"estimated_cost,omitempty"`
}

// PropertyDTO represents a property in API responses.
type PropertyDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at,omitempty"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// ScenarioDTO represents a demo scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Owner       string `json:"owner"`
}

// LoadScenarioRequest selects a demo scenario to seed.
type LoadScenarioRequest struct {
	ID string `json:"id"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func orUUID(id string) string {
	if id != "" {
		return id
	}
	return uuid.NewString()
}

func (r CreatePropertyRequest) toRecord() ledger.Property {
	return ledger.Property{ID: orUUID(r.ID), Name: r.Name, CreatedAt: r.CreatedAt}
}

func (r CreateUnitRequest) toRecord() ledger.Unit {
	return ledger.Unit{ID: orUUID(r.ID), PropertyID: r.PropertyID}
}

func (r CreateLeaseRequest) toRecord() ledger.Lease {
	return ledger.Lease{ID: orUUID(r.ID), UnitID: r.UnitID, SecurityDeposit: r.SecurityDeposit}
}

func (r CreateRentPaymentRequest) toRecord() ledger.RentPayment {
	return ledger.RentPayment{
		ID:                   orUUID(r.ID),
		LeaseID:              r.LeaseID,
		Amount:               r.Amount,
		DueDate:              r.DueDate,
		PaidDate:             r.PaidDate,
		Status:               r.Status,
		LateFeeAmount:        r.LateFeeAmount,
		ApplicationFeeAmount: r.ApplicationFeeAmount,
	}
}

func (r CreateExpenseRequest) toRecord() ledger.Expense {
	return ledger.Expense{
		ID:                   orUUID(r.ID),
		PropertyID:           r.PropertyID,
		MaintenanceRequestID: r.MaintenanceRequestID,
		Amount:               r.Amount,
		Description:          r.Description,
		ExpenseDate:          r.ExpenseDate,
		CreatedAt:            r.CreatedAt,
	}
}

func (r CreateMaintenanceRequestRequest) toRecord() ledger.MaintenanceRequest {
	return ledger.MaintenanceRequest{
		ID:            orUUID(r.ID),
		UnitID:        r.UnitID,
		Status:        r.Status,
		CompletedAt:   r.CompletedAt,
		CreatedAt:     r.CreatedAt,
		ActualCost:    r.ActualCost,
		EstimatedCost: r.EstimatedCost,
	}
}
