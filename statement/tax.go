/*
tax.go - Tax document generator

PURPOSE:
  The annual tax package: expense buckets with advisory notes, a
  per-property straight-line depreciation schedule, and a Schedule E
  mirror. Property values come from the same trailing-12-month NOI
  aggregation the balance sheet uses, but with a fixed $100,000
  fallback when NOI is non-positive where the balance sheet reports
  zero. The two fallbacks are distinct on purpose.

DEPRECIATION CONVENTION:
  IRS residential straight line: propertyValue / 27.5 per year. Years
  owned count from the property's created_at year (the acquisition
  proxy); the current-year taxable income deducts ANNUAL depreciation,
  not the accumulated figure.
*/
package statement

import (
	"sort"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/haven/finance-engine/ledger"
)

// =============================================================================
// DOCUMENT
// =============================================================================

// TaxExpenseCategory is one tracked deduction bucket.
type TaxExpenseCategory struct {
	Category   string  `json:"category"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
	Notes      string  `json:"notes"`
}

// PropertyDepreciation is one property's straight-line schedule.
type PropertyDepreciation struct {
	PropertyID              string  `json:"propertyId"`
	PropertyName            string  `json:"propertyName"`
	PropertyValue           float64 `json:"propertyValue"`
	AnnualDepreciation      float64 `json:"annualDepreciation"`
	YearsOwned              int     `json:"yearsOwned"`
	AccumulatedDepreciation float64 `json:"accumulatedDepreciation"`
	RemainingBasis          float64 `json:"remainingBasis"`
}

type TaxTotals struct {
	TotalDeductions float64 `json:"totalDeductions"`
}

// ScheduleE mirrors the headline figures in Schedule E layout.
type ScheduleE struct {
	GrossRentalIncome float64 `json:"grossRentalIncome"`
	TotalExpenses     float64 `json:"totalExpenses"`
	Depreciation      float64 `json:"depreciation"`
	NetIncome         float64 `json:"netIncome"`
}

// TaxDocuments is the full package for one tax year.
type TaxDocuments struct {
	TaxYear              int                    `json:"taxYear"`
	GrossRentalIncome    float64                `json:"grossRentalIncome"`
	TotalExpenses        float64                `json:"totalExpenses"`
	NetOperatingIncome   float64                `json:"netOperatingIncome"`
	TotalDepreciation    float64                `json:"totalDepreciation"`
	MortgageInterest     float64                `json:"mortgageInterest"`
	TaxableIncome        float64                `json:"taxableIncome"`
	ExpenseCategories    []TaxExpenseCategory   `json:"expenseCategories"`
	PropertyDepreciation []PropertyDepreciation `json:"propertyDepreciation"`
	Totals               TaxTotals              `json:"totals"`
	ScheduleE            ScheduleE              `json:"scheduleE"`
}

// categoryNotes are static advisory strings keyed by bucket name.
var categoryNotes = map[string]string{
	"Maintenance": "Repairs and maintenance are generally deductible in the year paid.",
	"Operations":  "Ordinary and necessary operating expenses are deductible against rental income.",
	"Fees":        "Late fees and application fees collected are reportable as rental income.",
}

// =============================================================================
// GENERATOR
// =============================================================================

// TaxDocuments generates the tax package for one calendar tax year.
func (e *Engine) TaxDocuments(snap *ledger.Snapshot, taxYear int) (*TaxDocuments, error) {
	if snap == nil {
		return nil, ledger.ErrSnapshotRequired
	}
	if taxYear < 1900 || taxYear > 9999 {
		return nil, &ledger.InvalidReportInputError{Field: "taxYear", Value: strconv.Itoa(taxYear), Reason: "out of range"}
	}

	rng := ledger.YearRange(taxYear)
	rel := ledger.Resolve(snap)

	maintenanceCost := ledger.CompletedMaintenanceCost(snap, rng)
	totalExpenses := ledger.ExpenseTotal(snap, rng).Add(maintenanceCost)
	operations := maxZero(totalExpenses.Sub(maintenanceCost))
	fees := ledger.PaymentFees(snap, rng)

	// Percentages are of the combined tracked total, with a denominator
	// floor of 1 so an all-empty ledger yields zeros, not NaN.
	tracked := maintenanceCost.Add(operations).Add(fees)
	denominator := tracked
	if denominator.LessThan(decimal.NewFromInt(1)) {
		denominator = decimal.NewFromInt(1)
	}

	categories := []TaxExpenseCategory{
		taxCategory("Maintenance", maintenanceCost, denominator),
		taxCategory("Operations", operations, denominator),
		taxCategory("Fees", fees, denominator),
	}

	// Per-property depreciation over the trailing 12 months ending at
	// the tax year's close.
	financials := ledger.CalculatePropertyFinancials(snap, rel, ledger.TrailingYear(*rng.End))
	propertyIDs := financials.PropertyIDs()
	sort.Strings(propertyIDs)

	properties := make(map[string]ledger.Property, len(snap.Properties))
	for _, p := range snap.Properties {
		properties[p.ID] = p
	}

	schedule := make([]PropertyDepreciation, 0, len(propertyIDs))
	totalAnnualDepreciation := decimal.Zero
	for _, id := range propertyIDs {
		noi := financials.NOI(id)
		value := fallbackPropertyValue
		if noi.IsPositive() {
			value = noi.Div(capRate)
		}
		annual := value.Div(depreciationYears)
		totalAnnualDepreciation = totalAnnualDepreciation.Add(annual)

		yearsOwned := taxYear - acquisitionYear(properties[id], taxYear)
		if yearsOwned < 0 {
			yearsOwned = 0
		}
		accumulated := annual.Mul(decimal.NewFromInt(int64(yearsOwned)))

		schedule = append(schedule, PropertyDepreciation{
			PropertyID:              id,
			PropertyName:            properties[id].Name,
			PropertyValue:           ledger.Float(value),
			AnnualDepreciation:      ledger.Float(annual),
			YearsOwned:              yearsOwned,
			AccumulatedDepreciation: ledger.Float(accumulated),
			RemainingBasis:          ledger.Float(value.Sub(accumulated)),
		})
	}

	grossRentalIncome := ledger.CollectedRent(snap, rng)
	netOperatingIncome := grossRentalIncome.Sub(totalExpenses)
	mortgageInterest := totalExpenses.Mul(mortgageShare)
	taxableIncome := netOperatingIncome.Sub(totalAnnualDepreciation).Sub(mortgageInterest)

	return &TaxDocuments{
		TaxYear:              taxYear,
		GrossRentalIncome:    ledger.Float(grossRentalIncome),
		TotalExpenses:        ledger.Float(totalExpenses),
		NetOperatingIncome:   ledger.Float(netOperatingIncome),
		TotalDepreciation:    ledger.Float(totalAnnualDepreciation),
		MortgageInterest:     ledger.Float(mortgageInterest),
		TaxableIncome:        ledger.Float(taxableIncome),
		ExpenseCategories:    categories,
		PropertyDepreciation: schedule,
		Totals: TaxTotals{
			TotalDeductions: ledger.Float(totalExpenses.Add(totalAnnualDepreciation)),
		},
		ScheduleE: ScheduleE{
			GrossRentalIncome: ledger.Float(grossRentalIncome),
			TotalExpenses:     ledger.Float(totalExpenses),
			Depreciation:      ledger.Float(totalAnnualDepreciation),
			NetIncome:         ledger.Float(taxableIncome),
		},
	}, nil
}

func taxCategory(name string, amount, denominator decimal.Decimal) TaxExpenseCategory {
	return TaxExpenseCategory{
		Category:   name,
		Amount:     ledger.Float(amount),
		Percentage: ledger.Float(amount.Div(denominator).Mul(decimal.NewFromInt(100))),
		Notes:      categoryNotes[name],
	}
}

// acquisitionYear reads the property's created_at year, falling back to
// the tax year itself when the date is missing or unparsable (which
// yields zero years owned).
func acquisitionYear(p ledger.Property, taxYear int) int {
	t, ok := ledger.ParseDate(p.CreatedAt)
	if !ok {
		return taxYear
	}
	return t.Year()
}
