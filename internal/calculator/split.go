package calculator

import (
	"math"
)

// ExpenseForBalance represents an expense with the minimal information needed for balance calculations.
type ExpenseForBalance struct {
	Payer        string
	Amount       float64
	Participants []string
}

// equalShare computes how much each listed participant owes for one expense.
// Only equal splits exist: share = amount / participant_count.
//
// ok is false when the expense must be skipped: no participants, an amount that is
// not a finite positive number, or a payer/participant missing from known. Applying
// such an expense would either divide by zero or debit a name that is not part of
// the balance mapping, and the mapping would no longer sum to zero.
func equalShare(e ExpenseForBalance, known func(string) bool) (share float64, ok bool) {
	if len(e.Participants) == 0 {
		return 0, false
	}
	if !(e.Amount > 0) || math.IsInf(e.Amount, 1) {
		return 0, false
	}
	if !known(e.Payer) {
		return 0, false
	}
	for _, p := range e.Participants {
		if !known(p) {
			return 0, false
		}
	}
	return e.Amount / float64(len(e.Participants)), true
}
