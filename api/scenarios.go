/*
scenarios.go - Demo ledgers

PURPOSE:
  Ships a couple of complete owner ledgers, written in the fixture JSON
  format, that can be loaded into the store with one API call. Useful
  for demos and for exercising every report against known numbers.
*/
package api

import (
	"encoding/json"
	"net/http"

	"github.com/haven/finance-engine/fixture"
)

type scenario struct {
	ID          string
	Name        string
	Description string
	Fixture     string
}

var scenarios = []scenario{
	{
		ID:          "two-property-portfolio",
		Name:        "Two-Property Portfolio",
		Description: "Healthy portfolio: two properties, steady rent collection, one completed repair.",
		Fixture:     twoPropertyPortfolio,
	},
	{
		ID:          "struggling-single-unit",
		Name:        "Struggling Single Unit",
		Description: "One unit, missed payments, open maintenance, negative NOI.",
		Fixture:     strugglingSingleUnit,
	},
}

// ListScenarios returns the available demo scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	dtos := make([]ScenarioDTO, len(scenarios))
	for i, s := range scenarios {
		snap, err := fixture.Parse([]byte(s.Fixture))
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Broken scenario fixture", err)
			return
		}
		dtos[i] = ScenarioDTO{ID: s.ID, Name: s.Name, Description: s.Description, Owner: snap.OwnerID}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// LoadScenario resets the database and seeds the selected demo ledger.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req LoadScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	for _, s := range scenarios {
		if s.ID != req.ID {
			continue
		}
		snap, err := fixture.Parse([]byte(s.Fixture))
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Broken scenario fixture", err)
			return
		}
		if err := h.Store.Reset(r.Context()); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
			return
		}
		if err := h.Store.SeedSnapshot(r.Context(), snap); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to seed scenario", err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "loaded", "id": s.ID, "owner": snap.OwnerID})
		return
	}

	writeError(w, http.StatusNotFound, "Unknown scenario", nil)
}

const twoPropertyPortfolio = `{
  "owner": "demo-owner",
  "properties": [
    {"id": "prop-maple", "name": "Maple Street Duplex", "created_at": "2019-05-01"},
    {"id": "prop-oak", "name": "Oak Avenue Fourplex", "created_at": "2021-08-15"}
  ],
  "units": [
    {"id": "unit-m1", "property_id": "prop-maple"},
    {"id": "unit-m2", "property_id": "prop-maple"},
    {"id": "unit-o1", "property_id": "prop-oak"},
    {"id": "unit-o2", "property_id": "prop-oak"}
  ],
  "leases": [
    {"id": "lease-m1", "unit_id": "unit-m1", "security_deposit": 1800},
    {"id": "lease-m2", "unit_id": "unit-m2", "security_deposit": 1800},
    {"id": "lease-o1", "unit_id": "unit-o1", "security_deposit": 2200},
    {"id": "lease-o2", "unit_id": "unit-o2", "security_deposit": 2200}
  ],
  "rent_payments": [
    {"id": "pay-1", "lease_id": "lease-m1", "amount": 1800, "due_date": "2025-05-01", "status": "succeeded"},
    {"id": "pay-2", "lease_id": "lease-m2", "amount": 1800, "due_date": "2025-05-01", "status": "PAID"},
    {"id": "pay-3", "lease_id": "lease-o1", "amount": 2200, "due_date": "2025-05-01", "paid_date": "2025-05-03", "status": "pending", "late_fee_amount": 50},
    {"id": "pay-4", "lease_id": "lease-o2", "amount": 2200, "due_date": "2025-05-01", "status": "succeeded", "application_fee_amount": 75},
    {"id": "pay-5", "lease_id": "lease-m1", "amount": 1800, "due_date": "2025-06-01", "status": "succeeded"},
    {"id": "pay-6", "lease_id": "lease-m2", "amount": 1800, "due_date": "2025-06-01", "status": "pending"}
  ],
  "expenses": [
    {"id": "exp-1", "property_id": "prop-maple", "amount": 450, "description": "Landscaping", "expense_date": "2025-05-12"},
    {"id": "exp-2", "maintenance_request_id": "mr-1", "amount": 600, "description": "Plumber invoice", "expense_date": "2025-05-20"},
    {"id": "exp-3", "property_id": "prop-oak", "amount": 1200, "description": "Roof patch", "expense_date": "2025-06-02"}
  ],
  "maintenance_requests": [
    {"id": "mr-1", "unit_id": "unit-m1", "status": "completed", "completed_at": "2025-05-21", "created_at": "2025-05-18", "actual_cost": 600, "estimated_cost": 500},
    {"id": "mr-2", "unit_id": "unit-o2", "status": "open", "created_at": "2025-06-05", "estimated_cost": 350}
  ]
}`

const strugglingSingleUnit = `{
  "owner": "demo-owner",
  "properties": [
    {"id": "prop-elm", "name": "Elm Court Cottage", "created_at": "2024-02-10"}
  ],
  "units": [
    {"id": "unit-e1", "property_id": "prop-elm"}
  ],
  "leases": [
    {"id": "lease-e1", "unit_id": "unit-e1", "security_deposit": 1500}
  ],
  "rent_payments": [
    {"id": "pay-1", "lease_id": "lease-e1", "amount": 1500, "due_date": "2025-04-01", "status": "succeeded"},
    {"id": "pay-2", "lease_id": "lease-e1", "amount": 1500, "due_date": "2025-05-01", "status": "failed"},
    {"id": "pay-3", "lease_id": "lease-e1", "amount": 1500, "due_date": "2025-06-01", "status": "pending", "late_fee_amount": 75}
  ],
  "expenses": [
    {"id": "exp-1", "property_id": "prop-elm", "amount": 900, "description": "Water damage remediation", "expense_date": "2025-04-15"},
    {"id": "exp-2", "maintenance_request_id": "mr-1", "amount": 1400, "description": "HVAC replacement deposit", "expense_date": "2025-05-10"}
  ],
  "maintenance_requests": [
    {"id": "mr-1", "unit_id": "unit-e1", "status": "in_progress", "created_at": "2025-05-08", "estimated_cost": 2800}
  ]
}`
