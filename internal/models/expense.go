package models

// Expense is a cost paid by one participant and split equally among Participants.
// Expenses are immutable once created; they can only be removed.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string `json:"id"`

	// Title is the human-readable label (e.g., "Lunch").
	Title string `json:"title"`

	// Payer is the name of the participant who paid the full amount.
	Payer string `json:"payer"`

	// Amount is the positive total paid.
	Amount float64 `json:"amount"`

	// Participants are the names sharing the cost. Never empty for a stored expense.
	// The payer does not have to be among them.
	Participants []string `json:"participants"`
}

// Sheet is the persisted state of one splitter: its participants in insertion
// order and the expenses recorded between them.
type Sheet struct {
	Participants []string  `json:"participants"`
	Expenses     []Expense `json:"expenses"`
}
