package summary

import (
	"fmt"
	"sort"
	"time"

	"moneymanager/internal/core"
)

// MonthKey is the normalized (year, month) grouping key.
type MonthKey struct {
	Year  int
	Month time.Month
}

// MonthOf returns the key for t as seen in loc.
func MonthOf(t time.Time, loc *time.Location) MonthKey {
	if loc == nil {
		loc = time.UTC
	}
	t = t.In(loc)
	return MonthKey{Year: t.Year(), Month: t.Month()}
}

// Label renders the key for display, e.g. "January 2024".
func (k MonthKey) Label() string {
	return fmt.Sprintf("%s %d", k.Month, k.Year)
}

// String renders a sortable form, e.g. "2024-01".
func (k MonthKey) String() string {
	return fmt.Sprintf("%04d-%02d", k.Year, int(k.Month))
}

// Before reports whether k is chronologically earlier than other.
func (k MonthKey) Before(other MonthKey) bool {
	if k.Year != other.Year {
		return k.Year < other.Year
	}
	return k.Month < other.Month
}

// MonthlyBreakdown groups by calendar month of each date in loc.
// A nil loc means UTC.
func MonthlyBreakdown(txs []core.Transaction, loc *time.Location) *Breakdown[MonthKey] {
	b := NewBreakdown[MonthKey]()
	for _, tx := range txs {
		b.GetOrInsert(MonthOf(tx.Date, loc)).add(tx)
	}
	return b
}

// SortedMonths returns the entries in chronological order.
func SortedMonths(b *Breakdown[MonthKey]) []Entry[MonthKey] {
	entries := b.Entries()
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Key.Before(entries[j].Key)
	})
	return entries
}
