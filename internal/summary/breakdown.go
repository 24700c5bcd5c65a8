package summary

// Breakdown is an insertion-ordered mapping from a grouping key to a Group.
type Breakdown[K comparable] struct {
	keys   []K
	groups map[K]*Group
}

// Entry pairs a key with its group.
type Entry[K comparable] struct {
	Key   K
	Group Group
}

func NewBreakdown[K comparable]() *Breakdown[K] {
	return &Breakdown[K]{groups: make(map[K]*Group)}
}

// GetOrInsert returns the group for key, inserting a zero group the first
// time key is seen.
func (b *Breakdown[K]) GetOrInsert(key K) *Group {
	if g, ok := b.groups[key]; ok {
		return g
	}
	g := &Group{}
	b.groups[key] = g
	b.keys = append(b.keys, key)
	return g
}

// Get returns a copy of the group for key.
func (b *Breakdown[K]) Get(key K) (Group, bool) {
	g, ok := b.groups[key]
	if !ok {
		return Group{}, false
	}
	return *g, true
}

func (b *Breakdown[K]) Len() int {
	return len(b.keys)
}

// Keys returns keys in first-seen order.
func (b *Breakdown[K]) Keys() []K {
	return append([]K(nil), b.keys...)
}

// Entries returns all groups in first-seen order.
func (b *Breakdown[K]) Entries() []Entry[K] {
	out := make([]Entry[K], len(b.keys))
	for i, k := range b.keys {
		out[i] = Entry[K]{Key: k, Group: *b.groups[k]}
	}
	return out
}

// Sum adds every group together.
func (b *Breakdown[K]) Sum() Group {
	var total Group
	for _, g := range b.groups {
		total.Income = total.Income.Add(g.Income)
		total.Expense = total.Expense.Add(g.Expense)
	}
	return total
}
