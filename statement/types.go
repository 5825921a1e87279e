/*
Package statement derives the four financial statement documents from a
ledger snapshot.

PURPOSE:
  Turns one owner's raw ledger rows into an income statement, balance
  sheet, cash flow statement, or tax document package with mutually
  consistent numbers: every property-level NOI figure flows through the
  same ledger.CalculatePropertyFinancials core.

KEY CONCEPTS IN THIS FILE (types.go):
  - Engine: Holder for the one impure dependency (a warning logger)
  - PeriodComparison: The previous-period delta block
  - Estimation constants: fixed presentation splits preserved verbatim

DESIGN PRINCIPLES:
  1. Purity: Generators are synchronous functions over an immutable
     snapshot; two calls with the same inputs produce identical output
  2. Depth-1 comparison: The previous-period pass re-runs a generator
     exactly once, enforced by parameter, not by convention
  3. Fail-soft documents: A failing balance check or a failing
     previous-period computation degrades the document, never drops it

SEE ALSO:
  - income.go, balancesheet.go, cashflow.go, tax.go: The generators
  - comparison.go: Previous-period computation
*/
package statement

import (
	"log"
	"time"

	"github.com/shopspring/decimal"

	"github.com/haven/finance-engine/ledger"
)

// =============================================================================
// ESTIMATION CONSTANTS
// =============================================================================
// These splits are presentation estimates inherited from the reporting
// conventions this engine replaces. They are constants on purpose:
// changing them changes reported figures.

var (
	// Revenue presentation split of gross income.
	rentalShare  = decimal.NewFromFloat(0.95)
	lateFeeShare = decimal.NewFromFloat(0.03)
	otherShare   = decimal.NewFromFloat(0.02)

	// Operating expense presentation split. The remainder after these
	// five buckets is reported as "other".
	managementShare  = decimal.NewFromFloat(0.10)
	utilitiesShare   = decimal.NewFromFloat(0.15)
	insuranceShare   = decimal.NewFromFloat(0.10)
	propertyTaxShare = decimal.NewFromFloat(0.20)
	mortgageShare    = decimal.NewFromFloat(0.30)

	// CapRate infers property value from trailing-12-month NOI.
	capRate = decimal.NewFromFloat(0.06)

	// Balance sheet depreciation: flat snapshot estimate, deliberately
	// simpler than the tax documents' time-weighted schedule.
	balanceSheetDepreciationShare = decimal.NewFromFloat(0.15)

	// Tax depreciation: IRS residential straight line over 27.5 years,
	// with a fixed fallback valuation when NOI is non-positive. The
	// balance sheet falls back to zero instead; the two statements
	// intentionally disagree here.
	depreciationYears     = decimal.NewFromFloat(27.5)
	fallbackPropertyValue = decimal.NewFromInt(100000)
)

// balanceEpsilon is the tolerance for the accounting identity check.
var balanceEpsilon = decimal.NewFromFloat(0.01)

// =============================================================================
// ENGINE
// =============================================================================

// Engine generates statement documents. It is stateless apart from the
// logger used for balance-check warnings, so one Engine may serve any
// number of concurrent requests.
type Engine struct {
	logger *log.Logger
}

// NewEngine returns an engine that logs warnings to the default logger.
func NewEngine() *Engine { return &Engine{logger: log.Default()} }

// NewEngineWithLogger returns an engine with a custom warning logger.
// A nil logger silences warnings.
func NewEngineWithLogger(l *log.Logger) *Engine { return &Engine{logger: l} }

func (e *Engine) warnf(format string, args ...any) {
	if e.logger != nil {
		e.logger.Printf("WARN "+format, args...)
	}
}

// =============================================================================
// PERIOD COMPARISON
// =============================================================================

// PeriodComparison reports the immediately preceding, equal-length
// period's headline amount and the change against it.
type PeriodComparison struct {
	PeriodStart      string  `json:"periodStart"`
	PeriodEnd        string  `json:"periodEnd"`
	Amount           float64 `json:"amount"`
	Change           float64 `json:"change"`
	PercentageChange float64 `json:"percentageChange"`
}

// =============================================================================
// INPUT PARSING
// =============================================================================

// parseReportRange validates and parses a [startDate, endDate] pair.
// A date-only end bound is extended to the end of that day so that the
// range stays inclusive for records carrying full timestamps.
func parseReportRange(startDate, endDate string) (ledger.Range, error) {
	start, ok := ledger.ParseDate(startDate)
	if !ok {
		return ledger.Range{}, &ledger.InvalidReportInputError{Field: "startDate", Value: startDate, Reason: "unparsable date"}
	}
	end, ok := ledger.ParseDate(endDate)
	if !ok {
		return ledger.Range{}, &ledger.InvalidReportInputError{Field: "endDate", Value: endDate, Reason: "unparsable date"}
	}
	rng := ledger.NewRange(start, endOfDay(end))
	if !rng.Valid() {
		return ledger.Range{}, &ledger.InvalidReportInputError{Field: "startDate", Value: startDate, Reason: "start after end"}
	}
	return rng, nil
}

// endOfDay extends a midnight timestamp to the last millisecond of the
// day; timestamps with a clock component are left alone.
func endOfDay(t time.Time) time.Time {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.AddDate(0, 0, 1).Add(-time.Millisecond)
	}
	return t
}

// =============================================================================
// SHARED ARITHMETIC
// =============================================================================

// pctOf returns part/total*100, or zero when total is zero.
func pctOf(part, total decimal.Decimal) decimal.Decimal {
	if total.IsZero() {
		return decimal.Zero
	}
	return part.Div(total).Mul(decimal.NewFromInt(100))
}

// maxZero clamps negative amounts to zero.
func maxZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// netIncomeFor computes the income statement's bottom line for a range:
// fee-inclusive collected revenue minus expenses and completed
// maintenance. Shared by the income statement and the balance sheet's
// current-period income line.
func netIncomeFor(snap *ledger.Snapshot, rng ledger.Range) decimal.Decimal {
	revenue := ledger.CollectedRentWithFees(snap, rng)
	expenses := ledger.ExpenseTotal(snap, rng).Add(ledger.CompletedMaintenanceCost(snap, rng))
	return revenue.Sub(expenses)
}
