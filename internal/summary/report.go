package summary

import (
	"time"

	"moneymanager/internal/core"

	"github.com/shopspring/decimal"
)

// Line is one rendered breakdown row.
type Line struct {
	Label   string
	Income  decimal.Decimal
	Expense decimal.Decimal
	Net     decimal.Decimal
	// Percent is Net as a share of total ledger income.
	Percent decimal.Decimal
}

// Report bundles every view a renderer needs after a mutation.
type Report struct {
	Version      uint64
	Filter       core.Filter
	Count        int
	Transactions []core.Transaction
	Totals       Totals
	Categories   []Line // first-seen order
	Months       []Line // chronological
}

// Build computes the filtered list from the active filter and every
// aggregate from the full ledger.
func Build(snap core.Snapshot, loc *time.Location) Report {
	totals := CalculateTotals(snap.Transactions)

	categories := CategoryBreakdown(snap.Transactions).Entries()
	catLines := make([]Line, len(categories))
	for i, e := range categories {
		catLines[i] = newLine(e.Key, e.Group, totals.Income)
	}

	months := SortedMonths(MonthlyBreakdown(snap.Transactions, loc))
	monthLines := make([]Line, len(months))
	for i, e := range months {
		monthLines[i] = newLine(e.Key.Label(), e.Group, totals.Income)
	}

	filter := snap.Filter
	if filter == "" {
		filter = core.FilterAll
	}

	return Report{
		Version:      snap.Version,
		Filter:       filter,
		Count:        len(snap.Transactions),
		Transactions: FilteredTransactions(snap),
		Totals:       totals,
		Categories:   catLines,
		Months:       monthLines,
	}
}

func newLine(label string, g Group, totalIncome decimal.Decimal) Line {
	net := g.Net()
	return Line{
		Label:   label,
		Income:  g.Income,
		Expense: g.Expense,
		Net:     net,
		Percent: PercentOfIncome(net, totalIncome),
	}
}
