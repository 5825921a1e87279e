/*
comparison.go - Previous-period comparison

PURPOSE:
  Computes the immediately preceding, equal-length period and re-runs a
  generator's core once against it to produce a delta block. The depth-1
  guarantee is structural: the re-run receives includePrevious=false as
  a parameter, so no chain of periods can ever form.

FAILURE POLICY:
  A failure inside the previous-period computation is swallowed and a
  zeroed block is returned. The primary statement must never fail
  because its comparison did.
*/
package statement

import (
	"github.com/shopspring/decimal"

	"github.com/haven/finance-engine/ledger"
)

// headlineFunc computes one period's headline amount (net income, net
// cash flow, ...) for the range it is given. Implementations must not
// trigger further comparisons.
type headlineFunc func(rng ledger.Range) (decimal.Decimal, error)

// comparePrevious builds the previous-period block for a bounded range.
// Returns a zeroed block when the range has no previous period or the
// re-run fails.
func comparePrevious(current decimal.Decimal, rng ledger.Range, headline headlineFunc) PeriodComparison {
	prev, ok := rng.Previous()
	if !ok {
		return PeriodComparison{}
	}

	block := PeriodComparison{
		PeriodStart: ledger.FormatDate(*prev.Start),
		PeriodEnd:   ledger.FormatDate(*prev.End),
	}

	amount, err := headline(prev)
	if err != nil {
		return block
	}

	change := current.Sub(amount)
	block.Amount = ledger.Float(amount)
	block.Change = ledger.Float(change)
	block.PercentageChange = percentageChange(current, amount)
	return block
}

// percentageChange returns (current-previous)/previous*100, guarding
// division by zero with 0 rather than NaN or Inf.
func percentageChange(current, previous decimal.Decimal) float64 {
	if previous.IsZero() {
		return 0
	}
	return ledger.Float(current.Sub(previous).Div(previous).Mul(decimal.NewFromInt(100)))
}
