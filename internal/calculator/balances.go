package calculator

import (
	"iter"
	"math"
)

// Balances maps participant names to signed net balances, remembering insertion order.
// Positive = is owed money, negative = owes money.
//
// The zero value is an empty mapping ready to use.
type Balances struct {
	names  []string
	values map[string]float64
}

// Set assigns the balance for name. A name keeps the position of its first Set.
func (b *Balances) Set(name string, value float64) {
	if b.values == nil {
		b.values = make(map[string]float64)
	}
	if _, exists := b.values[name]; !exists {
		b.names = append(b.names, name)
	}
	b.values[name] = value
}

// Get returns the balance for name and whether name is present.
func (b Balances) Get(name string) (float64, bool) {
	v, ok := b.values[name]
	return v, ok
}

// Has reports whether name is part of the mapping.
func (b Balances) Has(name string) bool {
	_, ok := b.values[name]
	return ok
}

// Len returns the number of participants in the mapping.
func (b Balances) Len() int {
	return len(b.names)
}

// Names returns participant names in insertion order.
func (b Balances) Names() []string {
	names := make([]string, len(b.names))
	copy(names, b.names)
	return names
}

// All iterates name/balance pairs in insertion order.
func (b Balances) All() iter.Seq2[string, float64] {
	return func(yield func(string, float64) bool) {
		for _, name := range b.names {
			if !yield(name, b.values[name]) {
				return
			}
		}
	}
}

// Sum adds up every balance. For balances produced by ComputeBalances it is zero
// up to floating point drift.
func (b Balances) Sum() float64 {
	var total float64
	for _, v := range b.values {
		total += v
	}
	return total
}

// ComputeBalances derives each participant's net balance from the expense list.
//
// Every participant starts at 0, so people with no expenses still appear in the
// result. For each expense the payer is credited the full amount and every listed
// participant is debited an equal share. No rounding happens here; amounts are only
// rounded when formatted for display.
//
// Expenses that cannot be applied without breaking the zero-sum invariant are
// skipped (see equalShare), as are expenses that would push a balance past the
// float64 range. The function is pure: identical input yields identical
// output, in participant insertion order.
func ComputeBalances(participants []string, expenses []ExpenseForBalance) Balances {
	var balances Balances
	for _, p := range participants {
		if !balances.Has(p) {
			balances.Set(p, 0)
		}
	}

	for _, expense := range expenses {
		balances.apply(expense)
	}

	return balances
}

// Accepts reports whether ComputeBalances would apply e on top of b.
func (b Balances) Accepts(e ExpenseForBalance) bool {
	_, ok := b.tentative(e)
	return ok
}

// apply adds e to b. It reports false and leaves b unchanged when e is skipped.
func (b *Balances) apply(e ExpenseForBalance) bool {
	next, ok := b.tentative(e)
	if !ok {
		return false
	}
	for name, v := range next {
		b.values[name] = v
	}
	return true
}

// tentative returns the balances e would touch after applying it, in the same
// order of operations as the real update. ok is false when e must be skipped.
func (b Balances) tentative(e ExpenseForBalance) (map[string]float64, bool) {
	share, ok := equalShare(e, b.Has)
	if !ok {
		return nil, false
	}

	next := make(map[string]float64, len(e.Participants)+1)
	value := func(name string) float64 {
		if v, seen := next[name]; seen {
			return v
		}
		return b.values[name]
	}

	// Each participant owes their share
	for _, p := range e.Participants {
		next[p] = value(p) - share
	}

	// Payer paid the full amount
	next[e.Payer] = value(e.Payer) + e.Amount

	for _, v := range next {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return nil, false
		}
	}
	return next, true
}
