/*
cashflow.go - Cash flow statement generator

PURPOSE:
  Operating, investing and financing cash movements for a reporting
  range. Rental receipts here are rent-only (fees belong to the income
  statement's gross figure). Beginning cash is the cumulative position
  over the entire snapshot strictly before the range start, not just
  the reporting range.

FINANCING SECTION:
  No financing ledger exists, so every financing line is zero. The
  fields are still populated so the document shape is stable.
*/
package statement

import (
	"github.com/shopspring/decimal"

	"github.com/haven/finance-engine/ledger"
)

// =============================================================================
// DOCUMENT
// =============================================================================

type OperatingActivities struct {
	RentalPaymentsReceived float64 `json:"rentalPaymentsReceived"`
	OperatingExpensesPaid  float64 `json:"operatingExpensesPaid"`
	MaintenancePaid        float64 `json:"maintenancePaid"`
	NetOperatingCash       float64 `json:"netOperatingCash"`
}

type InvestingActivities struct {
	PropertyAcquisitions float64 `json:"propertyAcquisitions"`
	PropertyImprovements float64 `json:"propertyImprovements"`
	NetInvestingCash     float64 `json:"netInvestingCash"`
}

type FinancingActivities struct {
	MortgagePayments   float64 `json:"mortgagePayments"`
	LoanProceeds       float64 `json:"loanProceeds"`
	OwnerContributions float64 `json:"ownerContributions"`
	OwnerDistributions float64 `json:"ownerDistributions"`
	NetFinancingCash   float64 `json:"netFinancingCash"`
}

// CashFlowStatement is the full document for one reporting range.
type CashFlowStatement struct {
	PeriodStart         string              `json:"periodStart"`
	PeriodEnd           string              `json:"periodEnd"`
	OperatingActivities OperatingActivities `json:"operatingActivities"`
	InvestingActivities InvestingActivities `json:"investingActivities"`
	FinancingActivities FinancingActivities `json:"financingActivities"`
	NetCashFlow         float64             `json:"netCashFlow"`
	BeginningCash       float64             `json:"beginningCash"`
	EndingCash          float64             `json:"endingCash"`
	PreviousPeriod      *PeriodComparison   `json:"previousPeriod,omitempty"`
}

// =============================================================================
// GENERATOR
// =============================================================================

// CashFlow generates the cash flow statement for [startDate, endDate].
func (e *Engine) CashFlow(snap *ledger.Snapshot, startDate, endDate string) (*CashFlowStatement, error) {
	if snap == nil {
		return nil, ledger.ErrSnapshotRequired
	}
	rng, err := parseReportRange(startDate, endDate)
	if err != nil {
		return nil, err
	}
	doc, _ := e.cashFlow(snap, rng, true)
	return doc, nil
}

// cashFlow is the core pass. includePrevious is forced false on the
// previous-period re-run, which bounds the comparison to depth 1 by
// construction rather than by convention.
func (e *Engine) cashFlow(snap *ledger.Snapshot, rng ledger.Range, includePrevious bool) (*CashFlowStatement, decimal.Decimal) {
	received := ledger.CollectedRent(snap, rng)
	expensesPaid := ledger.ExpenseTotal(snap, rng)
	maintenancePaid := ledger.CompletedMaintenanceCost(snap, rng)
	netOperating := received.Sub(expensesPaid).Sub(maintenancePaid)

	// Expenses not tied to a maintenance request are treated as
	// capital-style improvements: a negative investing flow. There is
	// no acquisition ledger, so acquisitions stay zero.
	improvements := ledger.UnlinkedExpenseTotal(snap, rng).Neg()
	netInvesting := improvements

	netFinancing := decimal.Zero

	netCashFlow := netOperating.Add(netInvesting).Add(netFinancing)

	// Cumulative position before the range, over the whole snapshot.
	before := ledger.Before(*rng.Start)
	beginningCash := maxZero(ledger.CollectedRent(snap, before).Sub(ledger.ExpenseTotal(snap, before)))
	endingCash := beginningCash.Add(netCashFlow)

	doc := &CashFlowStatement{
		PeriodStart: ledger.FormatDate(*rng.Start),
		PeriodEnd:   ledger.FormatDate(*rng.End),
		OperatingActivities: OperatingActivities{
			RentalPaymentsReceived: ledger.Float(received),
			OperatingExpensesPaid:  ledger.Float(expensesPaid),
			MaintenancePaid:        ledger.Float(maintenancePaid),
			NetOperatingCash:       ledger.Float(netOperating),
		},
		InvestingActivities: InvestingActivities{
			PropertyAcquisitions: 0,
			PropertyImprovements: ledger.Float(improvements),
			NetInvestingCash:     ledger.Float(netInvesting),
		},
		FinancingActivities: FinancingActivities{},
		NetCashFlow:         ledger.Float(netCashFlow),
		BeginningCash:       ledger.Float(beginningCash),
		EndingCash:          ledger.Float(endingCash),
	}

	if includePrevious {
		block := comparePrevious(netCashFlow, rng, func(prev ledger.Range) (decimal.Decimal, error) {
			_, prevNet := e.cashFlow(snap, prev, false)
			return prevNet, nil
		})
		doc.PreviousPeriod = &block
	}

	return doc, netCashFlow
}
