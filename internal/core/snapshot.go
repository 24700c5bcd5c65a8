package core

// Snapshot is a read-only view of the store at one point in time.
// Callers must not mutate Transactions.
type Snapshot struct {
	Transactions []Transaction
	Filter       Filter
	// Version changes on every successful mutation, filter changes included.
	Version uint64
}

// Len returns the number of transactions in the snapshot.
func (s Snapshot) Len() int {
	return len(s.Transactions)
}
