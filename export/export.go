/*
Package export renders statement documents as PDF and XLSX downloads.

PURPOSE:
  Each statement flattens into titled sections of label/amount rows,
  which one PDF renderer (gofpdf) and one XLSX renderer (excelize)
  turn into bytes. Rendering never changes a number: the documents are
  already rounded to cents by the engine.

SEE ALSO:
  - statement: The document types rendered here
  - api/handlers.go: The format=pdf|xlsx query parameter
*/
package export

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"github.com/haven/finance-engine/statement"
)

// =============================================================================
// FLATTENED LAYOUT
// =============================================================================

type row struct {
	Label string
	Value string
}

type section struct {
	Title string
	Rows  []row
}

func money(v float64) string { return fmt.Sprintf("%.2f", v) }

func moneyRow(label string, v float64) row { return row{Label: label, Value: money(v)} }

func comparisonSection(block *statement.PeriodComparison) []section {
	if block == nil {
		return nil
	}
	return []section{{
		Title: "Previous Period (" + block.PeriodStart + " to " + block.PeriodEnd + ")",
		Rows: []row{
			moneyRow("Amount", block.Amount),
			moneyRow("Change", block.Change),
			{Label: "Percentage Change", Value: money(block.PercentageChange) + "%"},
		},
	}}
}

// =============================================================================
// PDF RENDERER
// =============================================================================

func renderPDF(title, subtitle string, sections []section) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 9, title)
	pdf.Ln(9)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, subtitle)
	pdf.Ln(10)

	for _, sec := range sections {
		pdf.SetFont("Arial", "B", 11)
		pdf.Cell(0, 7, sec.Title)
		pdf.Ln(7)
		pdf.SetFont("Arial", "", 10)
		for _, r := range sec.Rows {
			pdf.CellFormat(110, 6, r.Label, "1", 0, "L", false, 0, "")
			pdf.CellFormat(60, 6, r.Value, "1", 0, "R", false, 0, "")
			pdf.Ln(-1)
		}
		pdf.Ln(4)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// =============================================================================
// XLSX RENDERER
// =============================================================================

func renderXLSX(sheet, title, subtitle string, sections []section) ([]byte, error) {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", sheet)

	_ = f.SetCellValue(sheet, "A1", title)
	_ = f.SetCellValue(sheet, "A2", subtitle)

	line := 4
	for _, sec := range sections {
		_ = f.SetCellValue(sheet, cell("A", line), sec.Title)
		line++
		for _, r := range sec.Rows {
			_ = f.SetCellValue(sheet, cell("A", line), r.Label)
			_ = f.SetCellValue(sheet, cell("B", line), r.Value)
			line++
		}
		line++
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func cell(col string, line int) string { return col + strconv.Itoa(line) }

// =============================================================================
// INCOME STATEMENT
// =============================================================================

func incomeSections(doc *statement.IncomeStatement) []section {
	sections := []section{
		{
			Title: "Revenue",
			Rows: []row{
				moneyRow("Rental Income (est.)", doc.Revenue.RentalIncome),
				moneyRow("Late Fees (est.)", doc.Revenue.LateFees),
				moneyRow("Other Income (est.)", doc.Revenue.OtherIncome),
				moneyRow("Total Revenue", doc.Revenue.TotalRevenue),
			},
		},
		{
			Title: "Expenses",
			Rows: []row{
				moneyRow("Property Management (est.)", doc.Expenses.PropertyManagement),
				moneyRow("Utilities (est.)", doc.Expenses.Utilities),
				moneyRow("Insurance (est.)", doc.Expenses.Insurance),
				moneyRow("Property Tax (est.)", doc.Expenses.PropertyTax),
				moneyRow("Mortgage (est.)", doc.Expenses.Mortgage),
				moneyRow("Maintenance", doc.Expenses.Maintenance),
				moneyRow("Other (est.)", doc.Expenses.Other),
				moneyRow("Total Expenses", doc.Expenses.TotalExpenses),
			},
		},
		{
			Title: "Result",
			Rows: []row{
				moneyRow("Gross Profit", doc.GrossProfit),
				moneyRow("Operating Income", doc.OperatingIncome),
				moneyRow("Net Income", doc.NetIncome),
				{Label: "Profit Margin", Value: money(doc.ProfitMargin) + "%"},
			},
		},
	}
	return append(sections, comparisonSection(doc.PreviousPeriod)...)
}

func IncomeStatementPDF(doc *statement.IncomeStatement) ([]byte, error) {
	return renderPDF("Income Statement",
		doc.PeriodStart+" to "+doc.PeriodEnd, incomeSections(doc))
}

func IncomeStatementXLSX(doc *statement.IncomeStatement) ([]byte, error) {
	return renderXLSX("income_statement", "Income Statement",
		doc.PeriodStart+" to "+doc.PeriodEnd, incomeSections(doc))
}

// =============================================================================
// BALANCE SHEET
// =============================================================================

func balanceSheetSections(doc *statement.BalanceSheet) []section {
	return []section{
		{
			Title: "Current Assets",
			Rows: []row{
				moneyRow("Cash", doc.Assets.CurrentAssets.Cash),
				moneyRow("Accounts Receivable", doc.Assets.CurrentAssets.AccountsReceivable),
				moneyRow("Security Deposits Held", doc.Assets.CurrentAssets.SecurityDeposits),
				moneyRow("Total Current Assets", doc.Assets.CurrentAssets.TotalCurrentAssets),
			},
		},
		{
			Title: "Fixed Assets",
			Rows: []row{
				moneyRow("Property Values", doc.Assets.FixedAssets.PropertyValues),
				moneyRow("Accumulated Depreciation", doc.Assets.FixedAssets.AccumulatedDepreciation),
				moneyRow("Net Property Value", doc.Assets.FixedAssets.NetPropertyValue),
				moneyRow("Total Assets", doc.Assets.TotalAssets),
			},
		},
		{
			Title: "Liabilities",
			Rows: []row{
				moneyRow("Accounts Payable", doc.Liabilities.CurrentLiabilities.AccountsPayable),
				moneyRow("Security Deposit Liability", doc.Liabilities.CurrentLiabilities.SecurityDepositLiability),
				moneyRow("Accrued Expenses", doc.Liabilities.CurrentLiabilities.AccruedExpenses),
				moneyRow("Mortgages Payable", doc.Liabilities.LongTermLiabilities.MortgagesPayable),
				moneyRow("Total Liabilities", doc.Liabilities.TotalLiabilities),
			},
		},
		{
			Title: "Equity",
			Rows: []row{
				moneyRow("Owner Capital", doc.Equity.OwnerCapital),
				moneyRow("Retained Earnings", doc.Equity.RetainedEarnings),
				moneyRow("Current Period Income", doc.Equity.CurrentPeriodIncome),
				moneyRow("Total Equity", doc.Equity.TotalEquity),
				{Label: "Balance Check", Value: strconv.FormatBool(doc.BalanceCheck)},
			},
		},
	}
}

func BalanceSheetPDF(doc *statement.BalanceSheet) ([]byte, error) {
	return renderPDF("Balance Sheet", "As of "+doc.AsOfDate, balanceSheetSections(doc))
}

func BalanceSheetXLSX(doc *statement.BalanceSheet) ([]byte, error) {
	return renderXLSX("balance_sheet", "Balance Sheet", "As of "+doc.AsOfDate, balanceSheetSections(doc))
}

// =============================================================================
// CASH FLOW STATEMENT
// =============================================================================

func cashFlowSections(doc *statement.CashFlowStatement) []section {
	sections := []section{
		{
			Title: "Operating Activities",
			Rows: []row{
				moneyRow("Rental Payments Received", doc.OperatingActivities.RentalPaymentsReceived),
				moneyRow("Operating Expenses Paid", doc.OperatingActivities.OperatingExpensesPaid),
				moneyRow("Maintenance Paid", doc.OperatingActivities.MaintenancePaid),
				moneyRow("Net Operating Cash", doc.OperatingActivities.NetOperatingCash),
			},
		},
		{
			Title: "Investing Activities",
			Rows: []row{
				moneyRow("Property Acquisitions", doc.InvestingActivities.PropertyAcquisitions),
				moneyRow("Property Improvements", doc.InvestingActivities.PropertyImprovements),
				moneyRow("Net Investing Cash", doc.InvestingActivities.NetInvestingCash),
			},
		},
		{
			Title: "Financing Activities",
			Rows: []row{
				moneyRow("Mortgage Payments", doc.FinancingActivities.MortgagePayments),
				moneyRow("Loan Proceeds", doc.FinancingActivities.LoanProceeds),
				moneyRow("Owner Contributions", doc.FinancingActivities.OwnerContributions),
				moneyRow("Owner Distributions", doc.FinancingActivities.OwnerDistributions),
				moneyRow("Net Financing Cash", doc.FinancingActivities.NetFinancingCash),
			},
		},
		{
			Title: "Cash Position",
			Rows: []row{
				moneyRow("Net Cash Flow", doc.NetCashFlow),
				moneyRow("Beginning Cash", doc.BeginningCash),
				moneyRow("Ending Cash", doc.EndingCash),
			},
		},
	}
	return append(sections, comparisonSection(doc.PreviousPeriod)...)
}

func CashFlowPDF(doc *statement.CashFlowStatement) ([]byte, error) {
	return renderPDF("Cash Flow Statement",
		doc.PeriodStart+" to "+doc.PeriodEnd, cashFlowSections(doc))
}

func CashFlowXLSX(doc *statement.CashFlowStatement) ([]byte, error) {
	return renderXLSX("cash_flow", "Cash Flow Statement",
		doc.PeriodStart+" to "+doc.PeriodEnd, cashFlowSections(doc))
}

// =============================================================================
// TAX DOCUMENTS
// =============================================================================

func taxSections(doc *statement.TaxDocuments) []section {
	categories := section{Title: "Expense Categories"}
	for _, c := range doc.ExpenseCategories {
		categories.Rows = append(categories.Rows,
			moneyRow(c.Category, c.Amount),
			row{Label: c.Category + " Share", Value: money(c.Percentage) + "%"},
		)
	}

	depreciation := section{Title: "Depreciation Schedule"}
	for _, p := range doc.PropertyDepreciation {
		name := p.PropertyName
		if name == "" {
			name = p.PropertyID
		}
		depreciation.Rows = append(depreciation.Rows,
			moneyRow(name+" Value", p.PropertyValue),
			moneyRow(name+" Annual Depreciation", p.AnnualDepreciation),
			moneyRow(name+" Accumulated Depreciation", p.AccumulatedDepreciation),
			moneyRow(name+" Remaining Basis", p.RemainingBasis),
		)
	}

	summary := section{
		Title: "Schedule E Summary",
		Rows: []row{
			moneyRow("Gross Rental Income", doc.ScheduleE.GrossRentalIncome),
			moneyRow("Total Expenses", doc.ScheduleE.TotalExpenses),
			moneyRow("Depreciation", doc.ScheduleE.Depreciation),
			moneyRow("Mortgage Interest (est.)", doc.MortgageInterest),
			moneyRow("Taxable Income", doc.TaxableIncome),
			moneyRow("Total Deductions", doc.Totals.TotalDeductions),
		},
	}

	return []section{categories, depreciation, summary}
}

func TaxDocumentsPDF(doc *statement.TaxDocuments) ([]byte, error) {
	return renderPDF("Tax Documents", "Tax Year "+strconv.Itoa(doc.TaxYear), taxSections(doc))
}

func TaxDocumentsXLSX(doc *statement.TaxDocuments) ([]byte, error) {
	return renderXLSX("tax_documents", "Tax Documents", "Tax Year "+strconv.Itoa(doc.TaxYear), taxSections(doc))
}
