// Package ledger holds a splitter's participants and expenses and enforces the
// mutation rules that keep the balance accounting consistent.
//
// Invalid mutations are rejected silently: the method returns false and the
// ledger is left untouched. Callers detect a rejection from that return value;
// no error is ever produced.
package ledger

import (
	"math"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/mmynk/splitpad/internal/calculator"
	"github.com/mmynk/splitpad/internal/models"
)

// DefaultParticipants seeds a brand-new sheet.
var DefaultParticipants = []string{"Asha", "Ravi", "Nima"}

// NewExpense is the input for AddExpense.
type NewExpense struct {
	Title        string
	Payer        string
	Amount       float64
	Participants []string
}

// Ledger is the in-memory state of one splitter. It is not safe for concurrent use;
// callers that share a Ledger serialise access themselves.
type Ledger struct {
	participants []string
	expenses     []models.Expense
	newID        func() string
}

// New creates a ledger with the given participants. Names go through AddParticipant,
// so blanks and duplicates are dropped.
func New(participants ...string) *Ledger {
	l := &Ledger{newID: func() string { return uuid.New().String() }}
	for _, p := range participants {
		l.AddParticipant(p)
	}
	return l
}

// FromSheet rebuilds a ledger from a persisted snapshot. Every participant and
// expense is replayed through the mutation rules; anything a valid ledger could
// not contain is dropped. Stored expense IDs are kept.
func FromSheet(sheet models.Sheet) *Ledger {
	l := New(sheet.Participants...)
	for _, e := range sheet.Expenses {
		expense, ok := l.validate(NewExpense{
			Title:        e.Title,
			Payer:        e.Payer,
			Amount:       e.Amount,
			Participants: e.Participants,
		})
		if !ok || e.ID == "" || l.indexOfExpense(e.ID) >= 0 {
			continue
		}
		expense.ID = e.ID
		l.expenses = append(l.expenses, expense)
	}
	return l
}

// Sheet returns a snapshot of the ledger suitable for persistence.
func (l *Ledger) Sheet() models.Sheet {
	return models.Sheet{
		Participants: l.Participants(),
		Expenses:     l.Expenses(),
	}
}

// Participants returns participant names in insertion order.
func (l *Ledger) Participants() []string {
	return slices.Clone(l.participants)
}

// Expenses returns the expenses in insertion order.
func (l *Ledger) Expenses() []models.Expense {
	out := make([]models.Expense, len(l.expenses))
	for i, e := range l.expenses {
		e.Participants = slices.Clone(e.Participants)
		out[i] = e
	}
	return out
}

// Expense looks up an expense by ID.
func (l *Ledger) Expense(id string) (models.Expense, bool) {
	i := l.indexOfExpense(id)
	if i < 0 {
		return models.Expense{}, false
	}
	e := l.expenses[i]
	e.Participants = slices.Clone(e.Participants)
	return e, true
}

// HasParticipant reports whether name is a participant (exact match).
func (l *Ledger) HasParticipant(name string) bool {
	return slices.Contains(l.participants, name)
}

// AddParticipant adds a trimmed name. It is a no-op returning false when the name
// is empty after trimming or already present (case-sensitive).
func (l *Ledger) AddParticipant(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" || l.HasParticipant(name) {
		return false
	}
	l.participants = append(l.participants, name)
	return true
}

// RemoveParticipant removes name and cascades through the expenses:
//   - expenses paid by name are deleted
//   - name is stripped from every other expense
//   - expenses left without participants are deleted
//
// Returns false if name is not a participant.
func (l *Ledger) RemoveParticipant(name string) bool {
	i := slices.Index(l.participants, name)
	if i < 0 {
		return false
	}
	l.participants = slices.Delete(l.participants, i, i+1)

	kept := l.expenses[:0]
	for _, e := range l.expenses {
		if e.Payer == name {
			continue
		}
		e.Participants = slices.DeleteFunc(e.Participants, func(p string) bool { return p == name })
		if len(e.Participants) == 0 {
			continue
		}
		kept = append(kept, e)
	}
	clear(l.expenses[len(kept):])
	l.expenses = kept
	return true
}

// AddExpense records a new expense with a fresh ID. It is rejected (false, no state
// change) when the trimmed title is empty, the amount is not a finite value above
// zero, the payer is empty or unknown, the participant list is empty or names
// someone who is not a participant, or it would overflow a balance. Repeated
// participant names count once.
func (l *Ledger) AddExpense(in NewExpense) (models.Expense, bool) {
	expense, ok := l.validate(in)
	if !ok {
		return models.Expense{}, false
	}
	expense.ID = l.newID()
	l.expenses = append(l.expenses, expense)

	out := expense
	out.Participants = slices.Clone(expense.Participants)
	return out, true
}

// RemoveExpense deletes the expense with the given ID. Returns false if no such
// expense exists.
func (l *Ledger) RemoveExpense(id string) bool {
	i := l.indexOfExpense(id)
	if i < 0 {
		return false
	}
	l.expenses = slices.Delete(l.expenses, i, i+1)
	return true
}

// Balances computes the current net balance of every participant.
func (l *Ledger) Balances() calculator.Balances {
	expenses := make([]calculator.ExpenseForBalance, len(l.expenses))
	for i, e := range l.expenses {
		expenses[i] = calculator.ExpenseForBalance{
			Payer:        e.Payer,
			Amount:       e.Amount,
			Participants: e.Participants,
		}
	}
	return calculator.ComputeBalances(l.participants, expenses)
}

// Settlements computes the payments that settle the current balances.
func (l *Ledger) Settlements() []calculator.Settlement {
	return calculator.ComputeSettlements(l.Balances())
}

func (l *Ledger) validate(in NewExpense) (models.Expense, bool) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return models.Expense{}, false
	}
	if !(in.Amount > 0) || math.IsInf(in.Amount, 1) {
		return models.Expense{}, false
	}
	if in.Payer == "" || !l.HasParticipant(in.Payer) {
		return models.Expense{}, false
	}

	var participants []string
	for _, p := range in.Participants {
		if !l.HasParticipant(p) {
			return models.Expense{}, false
		}
		if !slices.Contains(participants, p) {
			participants = append(participants, p)
		}
	}
	if len(participants) == 0 {
		return models.Expense{}, false
	}
	if !l.Balances().Accepts(calculator.ExpenseForBalance{
		Payer:        in.Payer,
		Amount:       in.Amount,
		Participants: participants,
	}) {
		return models.Expense{}, false
	}

	return models.Expense{
		Title:        title,
		Payer:        in.Payer,
		Amount:       in.Amount,
		Participants: participants,
	}, true
}

func (l *Ledger) indexOfExpense(id string) int {
	return slices.IndexFunc(l.expenses, func(e models.Expense) bool { return e.ID == id })
}
