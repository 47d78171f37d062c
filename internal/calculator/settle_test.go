package calculator

import (
	"math"
	"math/rand"
	"testing"
	"time"
)

func balancesOf(pairs ...any) Balances {
	var b Balances
	for i := 0; i < len(pairs); i += 2 {
		b.Set(pairs[i].(string), pairs[i+1].(float64))
	}
	return b
}

// applySettlements returns the balances left after every payment is made.
func applySettlements(b Balances, settlements []Settlement) map[string]float64 {
	adjusted := make(map[string]float64, b.Len())
	for name, value := range b.All() {
		adjusted[name] = value
	}
	for _, s := range settlements {
		adjusted[s.From] += s.Amount
		adjusted[s.To] -= s.Amount
	}
	return adjusted
}

func TestComputeSettlements(t *testing.T) {
	tests := []struct {
		name     string
		balances Balances
		want     []Settlement
	}{
		{
			name:     "empty mapping is all settled",
			balances: Balances{},
			want:     nil,
		},
		{
			name:     "single participant is trivially settled",
			balances: balancesOf("Asha", 0.0),
			want:     nil,
		},
		{
			name:     "lunch scenario pays in insertion order",
			balances: balancesOf("Asha", 200.0, "Ravi", -100.0, "Nima", -100.0),
			want: []Settlement{
				{From: "Ravi", To: "Asha", Amount: 100},
				{From: "Nima", To: "Asha", Amount: 100},
			},
		},
		{
			name:     "lunch plus taxi",
			balances: balancesOf("Asha", 170.0, "Ravi", -40.0, "Nima", -130.0),
			want: []Settlement{
				{From: "Ravi", To: "Asha", Amount: 40},
				{From: "Nima", To: "Asha", Amount: 130},
			},
		},
		{
			name:     "one debtor split across creditors",
			balances: balancesOf("A", 30.0, "B", 20.0, "C", -50.0),
			want: []Settlement{
				{From: "C", To: "A", Amount: 30},
				{From: "C", To: "B", Amount: 20},
			},
		},
		{
			name:     "exact match advances both cursors",
			balances: balancesOf("A", 10.0, "B", -10.0, "C", 5.0, "D", -5.0),
			want: []Settlement{
				{From: "B", To: "A", Amount: 10},
				{From: "D", To: "C", Amount: 5},
			},
		},
		{
			name:     "order follows insertion, not magnitude",
			balances: balancesOf("D1", -10.0, "C1", 5.0, "D2", -20.0, "C2", 25.0),
			want: []Settlement{
				{From: "D1", To: "C1", Amount: 5},
				{From: "D1", To: "C2", Amount: 5},
				{From: "D2", To: "C2", Amount: 20},
			},
		},
		{
			name:     "balances within epsilon are settled",
			balances: balancesOf("A", 0.004, "B", -0.004),
			want:     nil,
		},
		{
			name:     "exactly epsilon is settled",
			balances: balancesOf("A", Epsilon, "B", -Epsilon),
			want:     nil,
		},
		{
			name:     "near-zero participant is excluded from matching",
			balances: balancesOf("A", 0.004, "B", 10.0, "C", -10.004),
			want: []Settlement{
				{From: "C", To: "B", Amount: 10},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeSettlements(tt.balances)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d settlements %+v, want %d %+v", len(got), got, len(tt.want), tt.want)
			}
			for i := range got {
				if got[i].From != tt.want[i].From || got[i].To != tt.want[i].To {
					t.Errorf("settlement %d = %s->%s, want %s->%s",
						i, got[i].From, got[i].To, tt.want[i].From, tt.want[i].To)
				}
				if math.Abs(got[i].Amount-tt.want[i].Amount) > 1e-9 {
					t.Errorf("settlement %d amount = %v, want %v", i, got[i].Amount, tt.want[i].Amount)
				}
			}
		})
	}
}

func TestComputeSettlements_ZeroesScenarioBalances(t *testing.T) {
	balances := ComputeBalances([]string{"Asha", "Ravi", "Nima"}, []ExpenseForBalance{
		{Payer: "Ravi", Amount: 90, Participants: []string{"Asha", "Ravi", "Nima"}},
		lunch(),
	})
	settlements := ComputeSettlements(balances)

	var paid float64
	for _, s := range settlements {
		paid += s.Amount
	}
	if math.Abs(paid-170) > 1e-9 {
		t.Errorf("total paid = %v, want 170", paid)
	}
	for name, left := range applySettlements(balances, settlements) {
		if math.Abs(left) > Epsilon {
			t.Errorf("%s left with %v after settling", name, left)
		}
	}
}

func TestComputeSettlements_NoExpensesMeansNoPayments(t *testing.T) {
	balances := ComputeBalances([]string{"Asha", "Ravi", "Nima"}, nil)
	if got := ComputeSettlements(balances); len(got) != 0 {
		t.Errorf("expected no settlements, got %+v", got)
	}
}

func TestComputeSettlements_Idempotent(t *testing.T) {
	balances := balancesOf("A", 12.5, "B", -7.25, "C", -5.25, "D", 0.0)
	first := ComputeSettlements(balances)
	second := ComputeSettlements(balances)
	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("settlement %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
	if v, _ := balances.Get("A"); v != 12.5 {
		t.Errorf("input balances mutated: A = %v", v)
	}
}

// TestComputeSettlements_RandomSheets checks the accounting properties on generated
// sheets: zero-sum balances, every balance settled afterwards, both sides of the
// match exhausted, and the greedy bound on the number of payments.
func TestComputeSettlements_RandomSheets(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	names := []string{"Asha", "Ravi", "Nima", "Kiran", "Dawa", "Sita"}

	for round := 0; round < 500; round++ {
		people := names[:2+rng.Intn(len(names)-1)]

		var expenses []ExpenseForBalance
		for n := rng.Intn(12); n > 0; n-- {
			var split []string
			for _, p := range people {
				if rng.Intn(2) == 0 {
					split = append(split, p)
				}
			}
			if len(split) == 0 {
				split = append(split, people[rng.Intn(len(people))])
			}
			expenses = append(expenses, ExpenseForBalance{
				Payer:        people[rng.Intn(len(people))],
				Amount:       float64(1 + rng.Intn(500)),
				Participants: split,
			})
		}

		balances := ComputeBalances(people, expenses)
		if math.Abs(balances.Sum()) > 1e-9 {
			t.Fatalf("round %d: balances sum to %v", round, balances.Sum())
		}

		settlements := ComputeSettlements(balances)
		for name, left := range applySettlements(balances, settlements) {
			if math.Abs(left) > Epsilon {
				t.Fatalf("round %d: %s left with %v (balances %v, settlements %+v)",
					round, name, left, balances.values, settlements)
			}
		}

		var creditors, debtors int
		for _, value := range balances.All() {
			if value > Epsilon {
				creditors++
			} else if value < -Epsilon {
				debtors++
			}
		}
		if creditors+debtors > 0 && len(settlements) > creditors+debtors-1 {
			t.Fatalf("round %d: %d settlements for %d creditors and %d debtors",
				round, len(settlements), creditors, debtors)
		}
		for _, s := range settlements {
			if !(s.Amount > 0) {
				t.Fatalf("round %d: non-positive settlement %+v", round, s)
			}
		}

		again := ComputeSettlements(balances)
		if len(again) != len(settlements) {
			t.Fatalf("round %d: not idempotent", round)
		}
	}
}

func TestComputeSettlements_IgnoresNonFiniteBalances(t *testing.T) {
	tests := []struct {
		name     string
		balances Balances
		want     []Settlement
	}{
		{
			name:     "infinite creditor and debtor",
			balances: balancesOf("A", math.Inf(1), "B", math.Inf(-1)),
			want:     nil,
		},
		{
			name:     "NaN next to a regular pair",
			balances: balancesOf("A", 50.0, "N", math.NaN(), "B", -50.0),
			want:     []Settlement{{From: "B", To: "A", Amount: 50}},
		},
		{
			name:     "infinite debtor with a finite creditor",
			balances: balancesOf("A", 10.0, "B", math.Inf(-1), "C", -10.0),
			want:     []Settlement{{From: "C", To: "A", Amount: 10}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			done := make(chan []Settlement, 1)
			go func() { done <- ComputeSettlements(tt.balances) }()

			var got []Settlement
			select {
			case got = <-done:
			case <-time.After(2 * time.Second):
				t.Fatal("ComputeSettlements did not terminate")
			}

			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("settlement %d: expected %+v, got %+v", i, tt.want[i], got[i])
				}
			}
		})
	}
}
