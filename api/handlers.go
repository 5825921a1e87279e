/*
handlers.go - HTTP API handlers for the statement engine

PURPOSE:
  Exposes the statement engine via REST. Handles HTTP request/response,
  JSON serialization, and delegates to the engine and the store.

ENDPOINTS:
  Reports:
    GET /api/reports/income-statement?owner=&start=&end=&format=
    GET /api/reports/balance-sheet?owner=&as_of=&format=
    GET /api/reports/cash-flow?owner=&start=&end=&format=
    GET /api/reports/tax-documents?owner=&year=&format=

  Records (seeding):
    GET/POST /api/properties, POST /api/units, /api/leases,
    /api/payments, /api/expenses, /api/maintenance-requests

  Scenarios:
    GET /api/scenarios, POST /api/scenarios/load, POST /api/reset

DEFAULTS:
  Omitted report parameters fall back to the current calendar year
  (income, cash flow, tax) or today (balance sheet), computed from the
  handler clock so tests can pin "now".

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: invalid report input, invalid request body
  - 404: owner ledger not found
  - 500: internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo ledgers
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/haven/finance-engine/export"
	"github.com/haven/finance-engine/ledger"
	"github.com/haven/finance-engine/statement"
	"github.com/haven/finance-engine/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Loader ledger.Loader
	Store  *sqlite.Store
	Engine *statement.Engine

	// DefaultOwner is used when the owner query parameter is absent.
	DefaultOwner string

	// Now supplies the clock for default report ranges.
	Now func() time.Time
}

// NewHandler creates a handler backed by a sqlite store.
func NewHandler(store *sqlite.Store, defaultOwner string) *Handler {
	return &Handler{
		Loader:       store,
		Store:        store,
		Engine:       statement.NewEngine(),
		DefaultOwner: defaultOwner,
		Now:          time.Now,
	}
}

func (h *Handler) owner(r *http.Request) string {
	if owner := r.URL.Query().Get("owner"); owner != "" {
		return owner
	}
	return h.DefaultOwner
}

func (h *Handler) loadSnapshot(w http.ResponseWriter, r *http.Request) (*ledger.Snapshot, bool) {
	snap, err := h.Loader.LoadSnapshot(r.Context(), h.owner(r))
	if err != nil {
		if ledger.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "Owner ledger not found", err)
		} else {
			writeError(w, http.StatusInternalServerError, "Failed to load ledger", err)
		}
		return nil, false
	}
	return snap, true
}

// defaultYearRange returns Jan 1 and Dec 31 of the current year as ISO
// strings, for report routes called without explicit dates.
func (h *Handler) defaultYearRange() (string, string) {
	year := h.Now().UTC().Year()
	return strconv.Itoa(year) + "-01-01", strconv.Itoa(year) + "-12-31"
}

// =============================================================================
// REPORT HANDLERS
// =============================================================================

// GetIncomeStatement returns the income statement for a date range.
func (h *Handler) GetIncomeStatement(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.loadSnapshot(w, r)
	if !ok {
		return
	}

	start, end := r.URL.Query().Get("start"), r.URL.Query().Get("end")
	if start == "" && end == "" {
		start, end = h.defaultYearRange()
	}

	doc, err := h.Engine.IncomeStatement(snap, start, end)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	switch r.URL.Query().Get("format") {
	case "", "json":
		writeJSON(w, http.StatusOK, doc)
	case "pdf":
		writeAttachment(w, "income-statement.pdf", "application/pdf")(export.IncomeStatementPDF(doc))
	case "xlsx":
		writeAttachment(w, "income-statement.xlsx", xlsxContentType)(export.IncomeStatementXLSX(doc))
	default:
		writeError(w, http.StatusBadRequest, "Unknown format (use json, pdf, or xlsx)", nil)
	}
}

// GetBalanceSheet returns the balance sheet as of a date.
func (h *Handler) GetBalanceSheet(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.loadSnapshot(w, r)
	if !ok {
		return
	}

	asOf := r.URL.Query().Get("as_of")
	if asOf == "" {
		asOf = ledger.FormatDate(h.Now().UTC())
	}

	doc, err := h.Engine.BalanceSheet(snap, asOf)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	switch r.URL.Query().Get("format") {
	case "", "json":
		writeJSON(w, http.StatusOK, doc)
	case "pdf":
		writeAttachment(w, "balance-sheet.pdf", "application/pdf")(export.BalanceSheetPDF(doc))
	case "xlsx":
		writeAttachment(w, "balance-sheet.xlsx", xlsxContentType)(export.BalanceSheetXLSX(doc))
	default:
		writeError(w, http.StatusBadRequest, "Unknown format (use json, pdf, or xlsx)", nil)
	}
}

// GetCashFlow returns the cash flow statement for a date range.
func (h *Handler) GetCashFlow(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.loadSnapshot(w, r)
	if !ok {
		return
	}

	start, end := r.URL.Query().Get("start"), r.URL.Query().Get("end")
	if start == "" && end == "" {
		start, end = h.defaultYearRange()
	}

	doc, err := h.Engine.CashFlow(snap, start, end)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	switch r.URL.Query().Get("format") {
	case "", "json":
		writeJSON(w, http.StatusOK, doc)
	case "pdf":
		writeAttachment(w, "cash-flow.pdf", "application/pdf")(export.CashFlowPDF(doc))
	case "xlsx":
		writeAttachment(w, "cash-flow.xlsx", xlsxContentType)(export.CashFlowXLSX(doc))
	default:
		writeError(w, http.StatusBadRequest, "Unknown format (use json, pdf, or xlsx)", nil)
	}
}

// GetTaxDocuments returns the tax package for a tax year.
func (h *Handler) GetTaxDocuments(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.loadSnapshot(w, r)
	if !ok {
		return
	}

	year := h.Now().UTC().Year()
	if raw := r.URL.Query().Get("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid year", err)
			return
		}
		year = parsed
	}

	doc, err := h.Engine.TaxDocuments(snap, year)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	switch r.URL.Query().Get("format") {
	case "", "json":
		writeJSON(w, http.StatusOK, doc)
	case "pdf":
		writeAttachment(w, "tax-documents.pdf", "application/pdf")(export.TaxDocumentsPDF(doc))
	case "xlsx":
		writeAttachment(w, "tax-documents.xlsx", xlsxContentType)(export.TaxDocumentsXLSX(doc))
	default:
		writeError(w, http.StatusBadRequest, "Unknown format (use json, pdf, or xlsx)", nil)
	}
}

// =============================================================================
// RECORD HANDLERS (seeding)
// =============================================================================

// ListProperties returns all properties for an owner.
func (h *Handler) ListProperties(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.loadSnapshot(w, r)
	if !ok {
		return
	}

	dtos := make([]PropertyDTO, len(snap.Properties))
	for i, p := range snap.Properties {
		dtos[i] = PropertyDTO{ID: p.ID, Name: p.Name, CreatedAt: p.CreatedAt}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateProperty creates a property.
func (h *Handler) CreateProperty(w http.ResponseWriter, r *http.Request) {
	var req CreatePropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required", nil)
		return
	}

	record := req.toRecord()
	if err := h.Store.SaveProperty(r.Context(), h.ownerOf(req.Owner), record); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create property", err)
		return
	}
	writeJSON(w, http.StatusCreated, PropertyDTO{ID: record.ID, Name: record.Name, CreatedAt: record.CreatedAt})
}

// CreateUnit creates a unit.
func (h *Handler) CreateUnit(w http.ResponseWriter, r *http.Request) {
	var req CreateUnitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.PropertyID == "" {
		writeError(w, http.StatusBadRequest, "property_id is required", nil)
		return
	}

	record := req.toRecord()
	if err := h.Store.SaveUnit(r.Context(), h.ownerOf(req.Owner), record); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create unit", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": record.ID})
}

// CreateLease creates a lease.
func (h *Handler) CreateLease(w http.ResponseWriter, r *http.Request) {
	var req CreateLeaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.UnitID == "" {
		writeError(w, http.StatusBadRequest, "unit_id is required", nil)
		return
	}

	record := req.toRecord()
	if err := h.Store.SaveLease(r.Context(), h.ownerOf(req.Owner), record); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create lease", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": record.ID})
}

// CreateRentPayment creates a rent payment.
func (h *Handler) CreateRentPayment(w http.ResponseWriter, r *http.Request) {
	var req CreateRentPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.LeaseID == "" {
		writeError(w, http.StatusBadRequest, "lease_id is required", nil)
		return
	}

	record := req.toRecord()
	if err := h.Store.SaveRentPayment(r.Context(), h.ownerOf(req.Owner), record); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create payment", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": record.ID})
}

// CreateExpense creates an expense.
func (h *Handler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var req CreateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	record := req.toRecord()
	if err := h.Store.SaveExpense(r.Context(), h.ownerOf(req.Owner), record); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create expense", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": record.ID})
}

// CreateMaintenanceRequest creates a maintenance request.
func (h *Handler) CreateMaintenanceRequest(w http.ResponseWriter, r *http.Request) {
	var req CreateMaintenanceRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.UnitID == "" {
		writeError(w, http.StatusBadRequest, "unit_id is required", nil)
		return
	}

	record := req.toRecord()
	if err := h.Store.SaveMaintenanceRequest(r.Context(), h.ownerOf(req.Owner), record); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create maintenance request", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": record.ID})
}

// ResetDatabase wipes every table. Dev/demo only.
func (h *Handler) ResetDatabase(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

func (h *Handler) ownerOf(owner string) string {
	if owner != "" {
		return owner
	}
	return h.DefaultOwner
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeEngineError maps engine errors onto HTTP statuses.
func writeEngineError(w http.ResponseWriter, err error) {
	if ledger.IsClientError(err) {
		writeError(w, http.StatusBadRequest, "Invalid report input", err)
		return
	}
	writeError(w, http.StatusInternalServerError, "Failed to generate report", err)
}

// writeAttachment returns a writer for rendered export bytes.
func writeAttachment(w http.ResponseWriter, filename, contentType string) func([]byte, error) {
	return func(data []byte, err error) {
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to render export", err)
			return
		}
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
		w.WriteHeader(http.StatusOK)
		w.Write(data)
	}
}
