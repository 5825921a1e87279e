/*
balancesheet.go - Balance sheet generator

PURPOSE:
  Point-in-time statement of assets, liabilities and equity as of one
  date. Property value is inferred from trailing-12-month NOI at a 6%
  cap rate, with a flat 15% depreciation estimate; both are snapshot
  figures, deliberately simpler than the tax documents' time-weighted
  depreciation schedule.

DEPOSIT DUPLICATION:
  Security deposits appear on both sides: an asset held and a liability
  owed back. The duplication is intentional and nets out of the
  accounting identity.

BALANCE CHECK:
  totalAssets must equal totalLiabilities + totalEquity within a cent.
  A failing check is logged as a warning and surfaced via BalanceCheck;
  the document is always returned.
*/
package statement

import (
	"github.com/shopspring/decimal"

	"github.com/haven/finance-engine/ledger"
)

// =============================================================================
// DOCUMENT
// =============================================================================

type CurrentAssets struct {
	Cash               float64 `json:"cash"`
	AccountsReceivable float64 `json:"accountsReceivable"`
	SecurityDeposits   float64 `json:"securityDeposits"`
	TotalCurrentAssets float64 `json:"totalCurrentAssets"`
}

type FixedAssets struct {
	PropertyValues          float64 `json:"propertyValues"`
	AccumulatedDepreciation float64 `json:"accumulatedDepreciation"`
	NetPropertyValue        float64 `json:"netPropertyValue"`
	TotalFixedAssets        float64 `json:"totalFixedAssets"`
}

type Assets struct {
	CurrentAssets CurrentAssets `json:"currentAssets"`
	FixedAssets   FixedAssets   `json:"fixedAssets"`
	TotalAssets   float64       `json:"totalAssets"`
}

type CurrentLiabilities struct {
	AccountsPayable          float64 `json:"accountsPayable"`
	SecurityDepositLiability float64 `json:"securityDepositLiability"`
	AccruedExpenses          float64 `json:"accruedExpenses"`
	TotalCurrentLiabilities  float64 `json:"totalCurrentLiabilities"`
}

type LongTermLiabilities struct {
	// MortgagesPayable is always zero: no mortgage ledger exists. The
	// field is reported anyway so the document shape is stable.
	MortgagesPayable         float64 `json:"mortgagesPayable"`
	TotalLongTermLiabilities float64 `json:"totalLongTermLiabilities"`
}

type Liabilities struct {
	CurrentLiabilities  CurrentLiabilities  `json:"currentLiabilities"`
	LongTermLiabilities LongTermLiabilities `json:"longTermLiabilities"`
	TotalLiabilities    float64             `json:"totalLiabilities"`
}

type Equity struct {
	OwnerCapital        float64 `json:"ownerCapital"`
	RetainedEarnings    float64 `json:"retainedEarnings"`
	CurrentPeriodIncome float64 `json:"currentPeriodIncome"`
	TotalEquity         float64 `json:"totalEquity"`
}

// BalanceSheet is the full document as of one date.
type BalanceSheet struct {
	AsOfDate     string      `json:"asOfDate"`
	Assets       Assets      `json:"assets"`
	Liabilities  Liabilities `json:"liabilities"`
	Equity       Equity      `json:"equity"`
	BalanceCheck bool        `json:"balanceCheck"`
}

// =============================================================================
// GENERATOR
// =============================================================================

// BalanceSheet generates the balance sheet as of asOfDate.
func (e *Engine) BalanceSheet(snap *ledger.Snapshot, asOfDate string) (*BalanceSheet, error) {
	if snap == nil {
		return nil, ledger.ErrSnapshotRequired
	}
	asOf, ok := ledger.ParseDate(asOfDate)
	if !ok {
		return nil, &ledger.InvalidReportInputError{Field: "asOfDate", Value: asOfDate, Reason: "unparsable date"}
	}
	asOf = endOfDay(asOf)
	rel := ledger.Resolve(snap)

	// Current assets: cumulative cash position up to the date, floored
	// at zero, plus receivables and deposits held.
	cumulative := ledger.UpTo(asOf)
	cash := maxZero(ledger.CollectedRent(snap, cumulative).Sub(ledger.ExpenseTotal(snap, cumulative)))
	receivable := ledger.OutstandingRent(snap, cumulative)
	deposits := ledger.SecurityDepositTotal(snap)
	totalCurrent := cash.Add(receivable).Add(deposits)

	// Fixed assets: trailing-12-month NOI capitalized at 6%. A
	// non-positive aggregate NOI values the portfolio at zero here
	// (the tax documents use a different fallback on purpose).
	financials := ledger.CalculatePropertyFinancials(snap, rel, ledger.TrailingYear(asOf))
	noi := financials.TotalNOI()
	propertyValues := decimal.Zero
	if noi.IsPositive() {
		propertyValues = noi.Div(capRate)
	}
	accumulatedDepreciation := propertyValues.Mul(balanceSheetDepreciationShare)
	netPropertyValue := propertyValues.Sub(accumulatedDepreciation)

	totalAssets := totalCurrent.Add(netPropertyValue)

	// Liabilities.
	payable := receivable // outstanding rent due on or before the date
	accrued := ledger.OpenMaintenanceEstimate(snap)
	totalCurrentLiabilities := payable.Add(deposits).Add(accrued)
	totalLiabilities := totalCurrentLiabilities // long-term is always zero

	// Equity: deposits as the capital-base proxy, cash position net of
	// it as retained earnings, plus the current month's net income.
	ownerCapital := deposits
	retainedEarnings := cash.Sub(ownerCapital)
	currentPeriodIncome := netIncomeFor(snap, ledger.MonthRange(asOf))
	totalEquity := ownerCapital.Add(retainedEarnings).Add(currentPeriodIncome)

	diff := totalAssets.Sub(totalLiabilities.Add(totalEquity)).Abs()
	balanced := diff.LessThanOrEqual(balanceEpsilon)
	if !balanced {
		e.warnf("balance sheet does not balance for owner %s as of %s: assets=%s liabilities+equity=%s",
			snap.OwnerID, ledger.FormatDate(asOf), ledger.Cents(totalAssets), ledger.Cents(totalLiabilities.Add(totalEquity)))
	}

	return &BalanceSheet{
		AsOfDate: ledger.FormatDate(asOf),
		Assets: Assets{
			CurrentAssets: CurrentAssets{
				Cash:               ledger.Float(cash),
				AccountsReceivable: ledger.Float(receivable),
				SecurityDeposits:   ledger.Float(deposits),
				TotalCurrentAssets: ledger.Float(totalCurrent),
			},
			FixedAssets: FixedAssets{
				PropertyValues:          ledger.Float(propertyValues),
				AccumulatedDepreciation: ledger.Float(accumulatedDepreciation),
				NetPropertyValue:        ledger.Float(netPropertyValue),
				TotalFixedAssets:        ledger.Float(netPropertyValue),
			},
			TotalAssets: ledger.Float(totalAssets),
		},
		Liabilities: Liabilities{
			CurrentLiabilities: CurrentLiabilities{
				AccountsPayable:          ledger.Float(payable),
				SecurityDepositLiability: ledger.Float(deposits),
				AccruedExpenses:          ledger.Float(accrued),
				TotalCurrentLiabilities:  ledger.Float(totalCurrentLiabilities),
			},
			LongTermLiabilities: LongTermLiabilities{
				MortgagesPayable:         0,
				TotalLongTermLiabilities: 0,
			},
			TotalLiabilities: ledger.Float(totalLiabilities),
		},
		Equity: Equity{
			OwnerCapital:        ledger.Float(ownerCapital),
			RetainedEarnings:    ledger.Float(retainedEarnings),
			CurrentPeriodIncome: ledger.Float(currentPeriodIncome),
			TotalEquity:         ledger.Float(totalEquity),
		},
		BalanceCheck: balanced,
	}, nil
}
