/*
income.go - Income statement generator

PURPOSE:
  Gross collected revenue (including late and application fees) against
  operating expenses and completed maintenance cost for a reporting
  range, with a previous-period comparison block.

PRESENTATION SPLITS:
  The revenue sub-lines (rental 95%, late fees 3%, other 2%) and the
  operating expense sub-lines (management 10%, utilities 15%, insurance
  10%, property tax 20%, mortgage 30%, remainder other) are display
  estimates derived from the totals. They are never summed back up;
  only TotalRevenue and TotalExpenses are authoritative. Maintenance is
  the exception: it is reported at its true summed value.
*/
package statement

import (
	"github.com/shopspring/decimal"

	"github.com/haven/finance-engine/ledger"
)

// =============================================================================
// DOCUMENT
// =============================================================================

// RevenueBreakdown presents gross revenue. The sub-lines are fixed-split
// estimates of TotalRevenue, for display only.
type RevenueBreakdown struct {
	RentalIncome float64 `json:"rentalIncome"`
	LateFees     float64 `json:"lateFees"`
	OtherIncome  float64 `json:"otherIncome"`
	TotalRevenue float64 `json:"totalRevenue"`
}

// ExpenseBreakdown presents total expenses. All sub-lines except
// Maintenance are fixed-split estimates of the operating expense total.
type ExpenseBreakdown struct {
	PropertyManagement float64 `json:"propertyManagement"`
	Utilities          float64 `json:"utilities"`
	Insurance          float64 `json:"insurance"`
	PropertyTax        float64 `json:"propertyTax"`
	Mortgage           float64 `json:"mortgage"`
	Maintenance        float64 `json:"maintenance"`
	Other              float64 `json:"other"`
	TotalExpenses      float64 `json:"totalExpenses"`
}

// IncomeStatement is the full document for one reporting range.
type IncomeStatement struct {
	PeriodStart     string            `json:"periodStart"`
	PeriodEnd       string            `json:"periodEnd"`
	Revenue         RevenueBreakdown  `json:"revenue"`
	Expenses        ExpenseBreakdown  `json:"expenses"`
	GrossProfit     float64           `json:"grossProfit"`
	OperatingIncome float64           `json:"operatingIncome"`
	NetIncome       float64           `json:"netIncome"`
	ProfitMargin    float64           `json:"profitMargin"`
	PreviousPeriod  *PeriodComparison `json:"previousPeriod,omitempty"`
}

// =============================================================================
// GENERATOR
// =============================================================================

// IncomeStatement generates the income statement for [startDate, endDate].
func (e *Engine) IncomeStatement(snap *ledger.Snapshot, startDate, endDate string) (*IncomeStatement, error) {
	if snap == nil {
		return nil, ledger.ErrSnapshotRequired
	}
	rng, err := parseReportRange(startDate, endDate)
	if err != nil {
		return nil, err
	}
	doc, _ := e.incomeStatement(snap, rng, true)
	return doc, nil
}

// incomeStatement is the core pass. includePrevious is forced false on
// the previous-period re-run so the comparison is depth-1 by
// construction. The decimal net income is returned alongside the
// document for comparison arithmetic.
func (e *Engine) incomeStatement(snap *ledger.Snapshot, rng ledger.Range, includePrevious bool) (*IncomeStatement, decimal.Decimal) {
	grossRevenue := ledger.CollectedRentWithFees(snap, rng)
	operatingExpenses := ledger.ExpenseTotal(snap, rng)
	maintenanceCost := ledger.CompletedMaintenanceCost(snap, rng)
	totalExpenses := operatingExpenses.Add(maintenanceCost)

	netIncome := grossRevenue.Sub(totalExpenses)

	// Operating expense split; "other" is the remainder so the
	// sub-lines always re-sum to the operating total.
	management := operatingExpenses.Mul(managementShare)
	utilities := operatingExpenses.Mul(utilitiesShare)
	insurance := operatingExpenses.Mul(insuranceShare)
	propertyTax := operatingExpenses.Mul(propertyTaxShare)
	mortgage := operatingExpenses.Mul(mortgageShare)
	otherExpenses := operatingExpenses.
		Sub(management).Sub(utilities).Sub(insurance).Sub(propertyTax).Sub(mortgage)

	doc := &IncomeStatement{
		PeriodStart: ledger.FormatDate(*rng.Start),
		PeriodEnd:   ledger.FormatDate(*rng.End),
		Revenue: RevenueBreakdown{
			RentalIncome: ledger.Float(grossRevenue.Mul(rentalShare)),
			LateFees:     ledger.Float(grossRevenue.Mul(lateFeeShare)),
			OtherIncome:  ledger.Float(grossRevenue.Mul(otherShare)),
			TotalRevenue: ledger.Float(grossRevenue),
		},
		Expenses: ExpenseBreakdown{
			PropertyManagement: ledger.Float(management),
			Utilities:          ledger.Float(utilities),
			Insurance:          ledger.Float(insurance),
			PropertyTax:        ledger.Float(propertyTax),
			Mortgage:           ledger.Float(mortgage),
			Maintenance:        ledger.Float(maintenanceCost),
			Other:              ledger.Float(otherExpenses),
			TotalExpenses:      ledger.Float(totalExpenses),
		},
		GrossProfit:     ledger.Float(netIncome),
		OperatingIncome: ledger.Float(netIncome),
		NetIncome:       ledger.Float(netIncome),
		ProfitMargin:    ledger.Float(pctOf(netIncome, grossRevenue)),
	}

	if includePrevious {
		block := comparePrevious(netIncome, rng, func(prev ledger.Range) (decimal.Decimal, error) {
			_, prevNet := e.incomeStatement(snap, prev, false)
			return prevNet, nil
		})
		doc.PreviousPeriod = &block
	}

	return doc, netIncome
}
