// Package api defines the splitpad.v1 RPC messages exchanged over Connect.
//
// Messages are plain Go structs serialised with JSONCodec; field names on the
// wire are snake_case.
package api

// Expense is one recorded expense.
type Expense struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Payer        string   `json:"payer"`
	Amount       float64  `json:"amount"`
	Participants []string `json:"participants"`
}

// Balance is one participant's net balance. Positive = is owed money.
type Balance struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	// Display is the amount formatted with sign and currency, e.g. "+NPR 200.00".
	Display string `json:"display"`
}

// Settlement is one recommended payment.
type Settlement struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
}

// Sheet is the full state of a splitter plus everything derived from it.
type Sheet struct {
	SheetID      string       `json:"sheet_id"`
	Participants []string     `json:"participants"`
	Expenses     []Expense    `json:"expenses"`
	Balances     []Balance    `json:"balances"`
	Settlements  []Settlement `json:"settlements"`
	// Summary is the plain-text export of balances and settlements.
	Summary  string `json:"summary"`
	Currency string `json:"currency"`
}

type GetSheetRequest struct {
	SheetID string `json:"sheet_id"`
}

type GetSheetResponse struct {
	Sheet *Sheet `json:"sheet"`
}

type AddParticipantRequest struct {
	SheetID string `json:"sheet_id"`
	Name    string `json:"name"`
}

type RemoveParticipantRequest struct {
	SheetID string `json:"sheet_id"`
	Name    string `json:"name"`
}

type AddExpenseRequest struct {
	SheetID      string   `json:"sheet_id"`
	Title        string   `json:"title"`
	Payer        string   `json:"payer"`
	Amount       float64  `json:"amount"`
	Participants []string `json:"participants"`
}

type RemoveExpenseRequest struct {
	SheetID   string `json:"sheet_id"`
	ExpenseID string `json:"expense_id"`
}

type ResetSheetRequest struct {
	SheetID string `json:"sheet_id"`
}

// MutationResponse is returned by every state-changing call.
// Applied is false when the mutation was rejected; Sheet is then unchanged.
type MutationResponse struct {
	Applied bool   `json:"applied"`
	Sheet   *Sheet `json:"sheet"`
	// ExpenseID is set by AddExpense when the expense was recorded.
	ExpenseID string `json:"expense_id,omitempty"`
}

// CalculateRequest carries an ad-hoc participant list and expenses.
// Nothing is stored.
type CalculateRequest struct {
	Participants []string  `json:"participants"`
	Expenses     []Expense `json:"expenses"`
}

type CalculateResponse struct {
	Balances    []Balance    `json:"balances"`
	Settlements []Settlement `json:"settlements"`
	Summary     string       `json:"summary"`
}

// GetSheetID accessors follow the generated protobuf getter shape and are nil-safe.

func (x *GetSheetRequest) GetSheetID() string {
	if x == nil {
		return ""
	}
	return x.SheetID
}

func (x *AddParticipantRequest) GetSheetID() string {
	if x == nil {
		return ""
	}
	return x.SheetID
}

func (x *RemoveParticipantRequest) GetSheetID() string {
	if x == nil {
		return ""
	}
	return x.SheetID
}

func (x *AddExpenseRequest) GetSheetID() string {
	if x == nil {
		return ""
	}
	return x.SheetID
}

func (x *RemoveExpenseRequest) GetSheetID() string {
	if x == nil {
		return ""
	}
	return x.SheetID
}

func (x *ResetSheetRequest) GetSheetID() string {
	if x == nil {
		return ""
	}
	return x.SheetID
}
