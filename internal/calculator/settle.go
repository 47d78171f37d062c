package calculator

import "math"

// Epsilon is the tolerance below which a balance counts as settled. It absorbs
// floating point drift. Changing it changes the settlements produced.
const Epsilon = 0.005

// Settlement represents a payment from one person to another.
type Settlement struct {
	From   string  // Person who owes
	To     string  // Person who is owed
	Amount float64 // Always positive
}

type position struct {
	name      string
	remaining float64
}

// ComputeSettlements turns balances into an ordered list of payments that brings
// every balance to within Epsilon of zero.
//
// Algorithm (greedy two-pointer matching):
//   - Scan balances in insertion order into creditors (> Epsilon) and debtors
//     (< -Epsilon, kept as absolute values). Everyone else is settled.
//   - Pay min(debtor remaining, creditor remaining) from debtor i to creditor j.
//   - Advance i and/or j once their remaining amount is <= Epsilon. Both may advance
//     in the same step.
//   - Stop when either list runs out.
//
// Balances that are not finite numbers are left out of both lists.
//
// The result has at most creditors+debtors-1 entries. It is not the global minimum
// number of transactions (that problem is NP-hard). Do not swap in an optimal
// solver: the exact sequence below is the observable output.
func ComputeSettlements(balances Balances) []Settlement {
	var creditors, debtors []position
	for name, value := range balances.All() {
		if math.IsInf(value, 0) || math.IsNaN(value) {
			continue
		}
		if value > Epsilon {
			creditors = append(creditors, position{name: name, remaining: value})
		} else if value < -Epsilon {
			debtors = append(debtors, position{name: name, remaining: math.Abs(value)})
		}
	}

	var settlements []Settlement
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor := &debtors[i]
		creditor := &creditors[j]

		amount := math.Min(debtor.remaining, creditor.remaining)
		if !(amount > 0) || math.IsInf(amount, 0) {
			break
		}
		settlements = append(settlements, Settlement{
			From:   debtor.name,
			To:     creditor.name,
			Amount: amount,
		})

		debtor.remaining -= amount
		creditor.remaining -= amount

		if debtor.remaining <= Epsilon {
			i++
		}
		if creditor.remaining <= Epsilon {
			j++
		}
	}

	return settlements
}
