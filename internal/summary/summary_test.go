package summary

import (
	"testing"
	"time"

	"moneymanager/internal/core"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func tx(id int64, typ core.TransactionType, amount, category string, date time.Time) core.Transaction {
	return core.Transaction{
		ID:          id,
		Description: category + " entry",
		Amount:      dec(amount),
		Type:        typ,
		Category:    category,
		Date:        date,
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func ledgerFixture() []core.Transaction {
	return []core.Transaction{
		tx(1, core.Income, "1000", "Job", day(2024, time.January, 5)),
		tx(2, core.Expense, "400", "Housing", day(2024, time.January, 6)),
		tx(3, core.Expense, "35.50", "Food", day(2024, time.February, 1)),
		tx(4, core.Income, "120", "Food", day(2023, time.December, 24)),
		tx(5, core.Expense, "0.10", "food", day(2024, time.February, 2)),
	}
}

func TestScenarioSalaryAndRent(t *testing.T) {
	txs := []core.Transaction{
		tx(1, core.Income, "1000", "Job", day(2024, time.January, 1)),
		tx(2, core.Expense, "400", "Housing", day(2024, time.January, 2)),
	}

	totals := CalculateTotals(txs)
	require.True(t, totals.Income.Equal(dec("1000")))
	require.True(t, totals.Expenses.Equal(dec("400")))
	require.True(t, totals.Balance.Equal(dec("600")))

	b := CategoryBreakdown(txs)
	require.Equal(t, []string{"Job", "Housing"}, b.Keys())
	job, ok := b.Get("Job")
	require.True(t, ok)
	require.True(t, job.Income.Equal(dec("1000")))
	require.True(t, job.Expense.IsZero())
	housing, ok := b.Get("Housing")
	require.True(t, ok)
	require.True(t, housing.Income.IsZero())
	require.True(t, housing.Expense.Equal(dec("400")))
}

func TestEmptyLedger(t *testing.T) {
	totals := CalculateTotals(nil)
	require.True(t, totals.Income.IsZero())
	require.True(t, totals.Expenses.IsZero())
	require.True(t, totals.Balance.IsZero())
	require.Zero(t, CategoryBreakdown(nil).Len())
	require.Zero(t, MonthlyBreakdown(nil, nil).Len())
	require.Empty(t, FilteredTransactions(core.Snapshot{Filter: core.FilterIncome}))

	r := Build(core.Snapshot{}, nil)
	require.Equal(t, core.FilterAll, r.Filter)
	require.Empty(t, r.Categories)
	require.Empty(t, r.Months)
	require.Zero(t, r.Count)
}

func TestFilteredTransactionsPartition(t *testing.T) {
	txs := ledgerFixture()
	all := FilteredTransactions(core.Snapshot{Transactions: txs, Filter: core.FilterAll})
	income := FilteredTransactions(core.Snapshot{Transactions: txs, Filter: core.FilterIncome})
	expense := FilteredTransactions(core.Snapshot{Transactions: txs, Filter: core.FilterExpense})

	require.Len(t, all, len(txs))
	require.Equal(t, len(all), len(income)+len(expense))

	var incomeIDs, expenseIDs []int64
	for _, item := range income {
		incomeIDs = append(incomeIDs, item.ID)
	}
	for _, item := range expense {
		expenseIDs = append(expenseIDs, item.ID)
	}
	require.Equal(t, []int64{1, 4}, incomeIDs)
	require.Equal(t, []int64{2, 3, 5}, expenseIDs)

	// the returned slice is independent of the snapshot
	all[0].Description = "changed"
	require.Equal(t, "Job entry", txs[0].Description)
}

func TestCategoryBreakdownExactStrings(t *testing.T) {
	b := CategoryBreakdown(ledgerFixture())
	require.Equal(t, []string{"Job", "Housing", "Food", "food"}, b.Keys())

	food, _ := b.Get("Food")
	require.True(t, food.Income.Equal(dec("120")))
	require.True(t, food.Expense.Equal(dec("35.5")))
	require.True(t, food.Net().Equal(dec("84.5")))

	lower, _ := b.Get("food")
	require.True(t, lower.Expense.Equal(dec("0.1")))

	_, ok := b.Get("Travel")
	require.False(t, ok)
}

func TestBreakdownSumsMatchTotals(t *testing.T) {
	txs := ledgerFixture()
	totals := CalculateTotals(txs)

	for name, sum := range map[string]Group{
		"category": CategoryBreakdown(txs).Sum(),
		"monthly":  MonthlyBreakdown(txs, nil).Sum(),
	} {
		require.True(t, sum.Income.Equal(totals.Income), name)
		require.True(t, sum.Expense.Equal(totals.Expenses), name)
	}
}

func TestMonthlyBreakdown(t *testing.T) {
	b := MonthlyBreakdown(ledgerFixture(), nil)
	require.Equal(t, []MonthKey{
		{2024, time.January},
		{2024, time.February},
		{2023, time.December},
	}, b.Keys())

	jan, ok := b.Get(MonthKey{2024, time.January})
	require.True(t, ok)
	require.True(t, jan.Net().Equal(dec("600")))

	sorted := SortedMonths(b)
	require.Equal(t, "December 2023", sorted[0].Key.Label())
	require.Equal(t, "January 2024", sorted[1].Key.Label())
	require.Equal(t, "February 2024", sorted[2].Key.Label())
	require.Equal(t, "2024-02", sorted[2].Key.String())
}

func TestMonthlyBreakdownUsesLocation(t *testing.T) {
	// 2024-02-01 03:00 UTC is still January in New York.
	txs := []core.Transaction{tx(1, core.Expense, "10", "Food", time.Date(2024, 2, 1, 3, 0, 0, 0, time.UTC))}
	ny := time.FixedZone("EST", -5*3600)

	require.Equal(t, []MonthKey{{2024, time.February}}, MonthlyBreakdown(txs, nil).Keys())
	require.Equal(t, []MonthKey{{2024, time.January}}, MonthlyBreakdown(txs, ny).Keys())
}

func TestMonthKeyBefore(t *testing.T) {
	require.True(t, MonthKey{2023, time.December}.Before(MonthKey{2024, time.January}))
	require.True(t, MonthKey{2024, time.January}.Before(MonthKey{2024, time.March}))
	require.False(t, MonthKey{2024, time.March}.Before(MonthKey{2024, time.March}))
}

func TestPercentOfIncome(t *testing.T) {
	require.True(t, PercentOfIncome(dec("250"), dec("1000")).Equal(dec("25")))
	require.True(t, PercentOfIncome(dec("-400"), dec("1000")).Equal(dec("-40")))
	require.True(t, PercentOfIncome(dec("-400"), decimal.Zero).IsZero())
}

func TestAdditionChangesTotalsByAmount(t *testing.T) {
	before := CalculateTotals(ledgerFixture())
	after := CalculateTotals(append(ledgerFixture(), tx(6, core.Income, "42.42", "Gift", day(2024, time.March, 1))))
	require.True(t, after.Income.Sub(before.Income).Equal(dec("42.42")))
	require.True(t, after.Expenses.Equal(before.Expenses))

	after = CalculateTotals(append(ledgerFixture(), tx(6, core.Expense, "7", "Bus", day(2024, time.March, 1))))
	require.True(t, after.Expenses.Sub(before.Expenses).Equal(dec("7")))
	require.True(t, after.Income.Equal(before.Income))
}

func TestBuildReport(t *testing.T) {
	snap := core.Snapshot{Transactions: ledgerFixture(), Filter: core.FilterIncome, Version: 9}
	r := Build(snap, nil)

	require.Equal(t, uint64(9), r.Version)
	require.Equal(t, core.FilterIncome, r.Filter)
	require.Equal(t, 5, r.Count)
	require.Len(t, r.Transactions, 2)
	// totals ignore the filter
	require.True(t, r.Totals.Expenses.Equal(dec("435.6")))
	require.True(t, r.Totals.Income.Equal(dec("1120")))

	require.Len(t, r.Categories, 4)
	require.Equal(t, "Job", r.Categories[0].Label)
	require.True(t, r.Categories[0].Percent.Equal(PercentOfIncome(dec("1000"), dec("1120"))))
	require.Equal(t, "Housing", r.Categories[1].Label)
	require.True(t, r.Categories[1].Net.Equal(dec("-400")))

	require.Len(t, r.Months, 3)
	require.Equal(t, "December 2023", r.Months[0].Label)

	// idempotent
	require.Equal(t, r, Build(snap, nil))
}
