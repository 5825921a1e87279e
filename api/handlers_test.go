/*
handlers_test.go - HTTP-level tests for the report and record endpoints

Tests for:
- Report generation with explicit and defaulted parameters
- Export format negotiation (json / pdf / xlsx)
- Record seeding and scenario loading through the full router
*/
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/haven/finance-engine/fixture"
	"github.com/haven/finance-engine/ledger"
	"github.com/haven/finance-engine/statement"
	"github.com/haven/finance-engine/store/sqlite"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestServer(t *testing.T) (*Handler, *httptest.Server) {
	t.Helper()
	store, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	h := NewHandler(store, "demo-owner")
	h.Engine = statement.NewEngineWithLogger(nil)
	// Pin the clock so default ranges are deterministic.
	h.Now = func() time.Time { return time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC) }

	srv := httptest.NewServer(NewRouter(h, []string{"*"}))
	t.Cleanup(srv.Close)
	return h, srv
}

func seedDemoLedger(t *testing.T, h *Handler) {
	t.Helper()
	snap := fixture.MustParse([]byte(twoPropertyPortfolio))
	if err := h.Store.SeedSnapshot(context.Background(), snap); err != nil {
		t.Fatalf("Failed to seed: %v", err)
	}
}

func getJSON(t *testing.T, url string, out any) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s failed: %v", url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("Failed to decode response from %s: %v", url, err)
		}
	}
	return resp
}

func postJSON(t *testing.T, url, body string, out any) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s failed: %v", url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("Failed to decode response from %s: %v", url, err)
		}
	}
	return resp
}

// =============================================================================
// REPORT ENDPOINT TESTS
// =============================================================================

func TestGetIncomeStatement_ExplicitRange(t *testing.T) {
	// GIVEN: The demo portfolio seeded for demo-owner
	h, srv := newTestServer(t)
	seedDemoLedger(t, h)

	// WHEN: Requesting May 2025
	var doc statement.IncomeStatement
	resp := getJSON(t, srv.URL+"/api/reports/income-statement?start=2025-05-01&end=2025-05-31", &doc)

	// THEN: Collected May payments with fees: 1800+1800+2250+2275
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if doc.Revenue.TotalRevenue != 8125.0 {
		t.Errorf("total revenue = %v, want 8125", doc.Revenue.TotalRevenue)
	}
	if doc.PeriodStart != "2025-05-01" || doc.PeriodEnd != "2025-05-31" {
		t.Errorf("period = %s..%s", doc.PeriodStart, doc.PeriodEnd)
	}
}

func TestGetIncomeStatement_DefaultsToCurrentYear(t *testing.T) {
	h, srv := newTestServer(t)
	seedDemoLedger(t, h)

	var doc statement.IncomeStatement
	resp := getJSON(t, srv.URL+"/api/reports/income-statement", &doc)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	// Pinned clock says 2025.
	if doc.PeriodStart != "2025-01-01" || doc.PeriodEnd != "2025-12-31" {
		t.Errorf("default period = %s..%s, want calendar 2025", doc.PeriodStart, doc.PeriodEnd)
	}
}

func TestGetIncomeStatement_InvalidDatesAre400(t *testing.T) {
	_, srv := newTestServer(t)

	resp := getJSON(t, srv.URL+"/api/reports/income-statement?start=bogus&end=2025-12-31", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestGetBalanceSheet_DefaultsToToday(t *testing.T) {
	h, srv := newTestServer(t)
	seedDemoLedger(t, h)

	var doc statement.BalanceSheet
	resp := getJSON(t, srv.URL+"/api/reports/balance-sheet", &doc)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if doc.AsOfDate != "2025-06-15" {
		t.Errorf("as-of date = %s, want the pinned today", doc.AsOfDate)
	}
	// Deposits from the demo leases: 1800+1800+2200+2200.
	if doc.Assets.CurrentAssets.SecurityDeposits != 8000.0 {
		t.Errorf("deposits = %v, want 8000", doc.Assets.CurrentAssets.SecurityDeposits)
	}
}

func TestGetCashFlow_EmptyOwnerIsAllZero(t *testing.T) {
	// An unknown owner has an empty ledger, not a 404: the statements
	// render with zeroes.
	_, srv := newTestServer(t)

	var doc statement.CashFlowStatement
	resp := getJSON(t, srv.URL+"/api/reports/cash-flow?owner=stranger&start=2025-01-01&end=2025-12-31", &doc)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if doc.NetCashFlow != 0 || doc.EndingCash != 0 {
		t.Errorf("empty owner should produce zero cash flow, got net=%v ending=%v", doc.NetCashFlow, doc.EndingCash)
	}
}

func TestGetTaxDocuments_YearParameter(t *testing.T) {
	h, srv := newTestServer(t)
	seedDemoLedger(t, h)

	var doc statement.TaxDocuments
	resp := getJSON(t, srv.URL+"/api/reports/tax-documents?year=2025", &doc)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if doc.TaxYear != 2025 {
		t.Errorf("tax year = %d, want 2025", doc.TaxYear)
	}
	if len(doc.ExpenseCategories) != 3 {
		t.Errorf("expected 3 expense categories, got %d", len(doc.ExpenseCategories))
	}

	// Garbage year is a client error.
	resp = getJSON(t, srv.URL+"/api/reports/tax-documents?year=banana", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}

	// Out-of-range year is rejected by the engine with the same status.
	resp = getJSON(t, srv.URL+"/api/reports/tax-documents?year=10000", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

// =============================================================================
// EXPORT FORMAT TESTS
// =============================================================================

func TestReportFormats(t *testing.T) {
	h, srv := newTestServer(t)
	seedDemoLedger(t, h)

	resp := getJSON(t, srv.URL+"/api/reports/income-statement?format=pdf", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("pdf status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("pdf content type = %q", ct)
	}
	if cd := resp.Header.Get("Content-Disposition"); !strings.Contains(cd, "income-statement.pdf") {
		t.Errorf("content disposition = %q", cd)
	}

	resp = getJSON(t, srv.URL+"/api/reports/balance-sheet?format=xlsx", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("xlsx status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "spreadsheetml") {
		t.Errorf("xlsx content type = %q", ct)
	}

	resp = getJSON(t, srv.URL+"/api/reports/cash-flow?format=csv", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("unknown format status = %d, want 400", resp.StatusCode)
	}
}

// =============================================================================
// RECORD SEEDING TESTS
// =============================================================================

func TestCreateProperty_ThenListAndReport(t *testing.T) {
	// GIVEN: A property, unit, lease and payment created over HTTP
	_, srv := newTestServer(t)

	var created PropertyDTO
	resp := postJSON(t, srv.URL+"/api/properties",
		`{"name": "Maple Street Duplex", "created_at": "2020-03-01"}`, &created)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create property status = %d, want 201", resp.StatusCode)
	}
	if created.ID == "" {
		t.Fatal("property should receive a minted ID")
	}

	var unit map[string]string
	postJSON(t, srv.URL+"/api/units", `{"property_id": "`+created.ID+`", "id": "unit-1"}`, &unit)
	postJSON(t, srv.URL+"/api/leases", `{"unit_id": "unit-1", "id": "lease-1", "security_deposit": 1500}`, nil)
	resp = postJSON(t, srv.URL+"/api/payments",
		`{"lease_id": "lease-1", "amount": 2000, "due_date": "2025-03-01", "status": "succeeded"}`, nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create payment status = %d, want 201", resp.StatusCode)
	}

	// WHEN: Listing and reporting
	var properties []PropertyDTO
	getJSON(t, srv.URL+"/api/properties", &properties)
	if len(properties) != 1 {
		t.Fatalf("property count = %d, want 1", len(properties))
	}

	var doc statement.IncomeStatement
	getJSON(t, srv.URL+"/api/reports/income-statement?start=2025-01-01&end=2025-12-31", &doc)

	// THEN: The seeded payment shows up in the statement
	if doc.Revenue.TotalRevenue != 2000.0 {
		t.Errorf("total revenue = %v, want 2000", doc.Revenue.TotalRevenue)
	}
}

func TestCreateRecords_Validation(t *testing.T) {
	_, srv := newTestServer(t)

	cases := []struct {
		path string
		body string
	}{
		{"/api/properties", `{}`},
		{"/api/units", `{}`},
		{"/api/leases", `{}`},
		{"/api/payments", `{}`},
		{"/api/maintenance-requests", `{}`},
		{"/api/properties", `{not json`},
	}
	for _, tc := range cases {
		resp := postJSON(t, srv.URL+tc.path, tc.body, nil)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("POST %s with %q: status = %d, want 400", tc.path, tc.body, resp.StatusCode)
		}
	}
}

// =============================================================================
// SCENARIO AND RESET TESTS
// =============================================================================

func TestScenarios_ListAndLoad(t *testing.T) {
	_, srv := newTestServer(t)

	var list []ScenarioDTO
	resp := getJSON(t, srv.URL+"/api/scenarios", &list)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list status = %d, want 200", resp.StatusCode)
	}
	if len(list) < 2 {
		t.Fatalf("expected at least 2 scenarios, got %d", len(list))
	}

	resp = postJSON(t, srv.URL+"/api/scenarios/load", `{"id": "two-property-portfolio"}`, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("load status = %d, want 200", resp.StatusCode)
	}

	// The loaded ledger feeds the reports straight away.
	var doc statement.IncomeStatement
	getJSON(t, srv.URL+"/api/reports/income-statement?start=2025-05-01&end=2025-05-31", &doc)
	if doc.Revenue.TotalRevenue == 0 {
		t.Error("loaded scenario should produce revenue")
	}

	resp = postJSON(t, srv.URL+"/api/scenarios/load", `{"id": "no-such"}`, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown scenario status = %d, want 404", resp.StatusCode)
	}
}

func TestReset_WipesLedger(t *testing.T) {
	h, srv := newTestServer(t)
	seedDemoLedger(t, h)

	resp := postJSON(t, srv.URL+"/api/reset", ``, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("reset status = %d, want 200", resp.StatusCode)
	}

	var doc statement.IncomeStatement
	getJSON(t, srv.URL+"/api/reports/income-statement?start=2025-01-01&end=2025-12-31", &doc)
	if doc.Revenue.TotalRevenue != 0 {
		t.Errorf("revenue after reset = %v, want 0", doc.Revenue.TotalRevenue)
	}
}

// =============================================================================
// NOT-FOUND LOADER TESTS
// =============================================================================

// notFoundLoader simulates a loader that reports missing owners as errors,
// the way the in-memory loader does.
type notFoundLoader struct{}

func (notFoundLoader) LoadSnapshot(_ context.Context, _ string) (*ledger.Snapshot, error) {
	return nil, ledger.ErrOwnerNotFound
}

func TestReports_MissingOwnerIs404(t *testing.T) {
	h, srv := newTestServer(t)
	h.Loader = notFoundLoader{}

	resp := getJSON(t, srv.URL+"/api/reports/income-statement", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}
