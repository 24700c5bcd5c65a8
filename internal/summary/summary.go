// Package summary derives read-only views from a ledger snapshot.
//
// Every function here is pure: the result depends only on the arguments,
// inputs are never modified and repeated calls return equal results.
package summary

import (
	"moneymanager/internal/core"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Totals are computed over the whole ledger, regardless of the active filter.
type Totals struct {
	Income   decimal.Decimal
	Expenses decimal.Decimal
	Balance  decimal.Decimal
}

// Group holds the income and expense sums of one breakdown bucket.
type Group struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// Net is income minus expense within the group.
func (g Group) Net() decimal.Decimal {
	return g.Income.Sub(g.Expense)
}

func (g *Group) add(tx core.Transaction) {
	switch tx.Type {
	case core.Income:
		g.Income = g.Income.Add(tx.Amount)
	case core.Expense:
		g.Expense = g.Expense.Add(tx.Amount)
	}
}

// FilteredTransactions returns the transactions passing the snapshot's
// filter in insertion order. An empty filter behaves like "all".
func FilteredTransactions(snap core.Snapshot) []core.Transaction {
	out := make([]core.Transaction, 0, len(snap.Transactions))
	for _, tx := range snap.Transactions {
		if snap.Filter == "" || snap.Filter.Matches(tx.Type) {
			out = append(out, tx)
		}
	}
	return out
}

func CalculateTotals(txs []core.Transaction) Totals {
	var t Totals
	for _, tx := range txs {
		switch tx.Type {
		case core.Income:
			t.Income = t.Income.Add(tx.Amount)
		case core.Expense:
			t.Expenses = t.Expenses.Add(tx.Amount)
		}
	}
	t.Balance = t.Income.Sub(t.Expenses)
	return t
}

// CategoryBreakdown groups by the exact category string.
func CategoryBreakdown(txs []core.Transaction) *Breakdown[string] {
	b := NewBreakdown[string]()
	for _, tx := range txs {
		b.GetOrInsert(tx.Category).add(tx)
	}
	return b
}

// PercentOfIncome expresses net as a percentage of total income.
// It is zero when total income is not positive.
func PercentOfIncome(net, totalIncome decimal.Decimal) decimal.Decimal {
	if !totalIncome.IsPositive() {
		return decimal.Zero
	}
	return net.Div(totalIncome).Mul(hundred)
}
