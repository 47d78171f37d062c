package service

import (
	"context"
	"log/slog"
	"sync"

	"connectrpc.com/connect"
	"github.com/mmynk/splitpad/internal/calculator"
	"github.com/mmynk/splitpad/internal/export"
	"github.com/mmynk/splitpad/internal/ledger"
	"github.com/mmynk/splitpad/internal/metrics"
	"github.com/mmynk/splitpad/internal/storage"
	"github.com/mmynk/splitpad/pkg/api"
	"github.com/mmynk/splitpad/pkg/api/apiconnect"
)

// SheetService implements the Connect SheetService.
//
// Every call loads the sheet, applies at most one mutation and saves it back
// while holding mu, so concurrent requests never interleave on a sheet.
type SheetService struct {
	apiconnect.UnimplementedSheetServiceHandler
	store    storage.Store
	currency string
	defaults []string
	metrics  *metrics.Metrics

	mu sync.Mutex
}

// Option configures a SheetService.
type Option func(*SheetService)

// WithCurrency sets the currency label used in displayed amounts and summaries.
func WithCurrency(currency string) Option {
	return func(s *SheetService) { s.currency = currency }
}

// WithDefaultParticipants sets the participants a new or reset sheet starts with.
func WithDefaultParticipants(names []string) Option {
	return func(s *SheetService) { s.defaults = append([]string(nil), names...) }
}

// WithMetrics records rejected mutations and settlement sizes on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *SheetService) { s.metrics = m }
}

// NewSheetService creates a new SheetService with the given storage backend.
func NewSheetService(store storage.Store, opts ...Option) *SheetService {
	s := &SheetService{
		store:    store,
		currency: export.DefaultCurrency,
		defaults: append([]string(nil), ledger.DefaultParticipants...),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetSheet returns the stored sheet with its balances, settlements and summary.
// A sheet that was never saved comes back with the default participants.
func (s *SheetService) GetSheet(ctx context.Context, req *connect.Request[api.GetSheetRequest]) (*connect.Response[api.GetSheetResponse], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l := storage.LoadLedger(ctx, s.store, storage.SheetKey(req.Msg.SheetID), s.defaults)
	return connect.NewResponse(&api.GetSheetResponse{
		Sheet: s.buildSheet(req.Msg.SheetID, l),
	}), nil
}

func (s *SheetService) AddParticipant(ctx context.Context, req *connect.Request[api.AddParticipantRequest]) (*connect.Response[api.MutationResponse], error) {
	slog.Info("AddParticipant request received", "sheet_id", req.Msg.SheetID, "name", req.Msg.Name)
	return s.mutate(ctx, req.Msg.SheetID, "AddParticipant", func(l *ledger.Ledger) (string, bool) {
		return "", l.AddParticipant(req.Msg.Name)
	})
}

func (s *SheetService) RemoveParticipant(ctx context.Context, req *connect.Request[api.RemoveParticipantRequest]) (*connect.Response[api.MutationResponse], error) {
	slog.Info("RemoveParticipant request received", "sheet_id", req.Msg.SheetID, "name", req.Msg.Name)
	return s.mutate(ctx, req.Msg.SheetID, "RemoveParticipant", func(l *ledger.Ledger) (string, bool) {
		return "", l.RemoveParticipant(req.Msg.Name)
	})
}

func (s *SheetService) AddExpense(ctx context.Context, req *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.MutationResponse], error) {
	slog.Info("AddExpense request received",
		"sheet_id", req.Msg.SheetID,
		"title", req.Msg.Title,
		"payer", req.Msg.Payer,
		"amount", req.Msg.Amount,
		"participants", req.Msg.Participants,
	)
	return s.mutate(ctx, req.Msg.SheetID, "AddExpense", func(l *ledger.Ledger) (string, bool) {
		e, ok := l.AddExpense(ledger.NewExpense{
			Title:        req.Msg.Title,
			Payer:        req.Msg.Payer,
			Amount:       req.Msg.Amount,
			Participants: req.Msg.Participants,
		})
		return e.ID, ok
	})
}

func (s *SheetService) RemoveExpense(ctx context.Context, req *connect.Request[api.RemoveExpenseRequest]) (*connect.Response[api.MutationResponse], error) {
	slog.Info("RemoveExpense request received", "sheet_id", req.Msg.SheetID, "expense_id", req.Msg.ExpenseID)
	return s.mutate(ctx, req.Msg.SheetID, "RemoveExpense", func(l *ledger.Ledger) (string, bool) {
		return "", l.RemoveExpense(req.Msg.ExpenseID)
	})
}

// ResetSheet replaces the sheet with the default participants and no expenses.
func (s *SheetService) ResetSheet(ctx context.Context, req *connect.Request[api.ResetSheetRequest]) (*connect.Response[api.MutationResponse], error) {
	slog.Info("ResetSheet request received", "sheet_id", req.Msg.SheetID)

	s.mu.Lock()
	defer s.mu.Unlock()

	l := ledger.New(s.defaults...)
	storage.SaveLedger(ctx, s.store, storage.SheetKey(req.Msg.SheetID), l)
	return connect.NewResponse(&api.MutationResponse{
		Applied: true,
		Sheet:   s.buildSheet(req.Msg.SheetID, l),
	}), nil
}

// Calculate derives balances and settlements for an ad-hoc input without
// touching the store. Expenses the engine cannot use are skipped.
func (s *SheetService) Calculate(ctx context.Context, req *connect.Request[api.CalculateRequest]) (*connect.Response[api.CalculateResponse], error) {
	slog.Debug("Calculate request received",
		"participants", len(req.Msg.Participants),
		"expenses", len(req.Msg.Expenses),
	)

	expenses := make([]calculator.ExpenseForBalance, len(req.Msg.Expenses))
	for i, e := range req.Msg.Expenses {
		expenses[i] = calculator.ExpenseForBalance{
			Payer:        e.Payer,
			Amount:       e.Amount,
			Participants: e.Participants,
		}
	}

	balances := calculator.ComputeBalances(req.Msg.Participants, expenses)
	settlements := calculator.ComputeSettlements(balances)
	s.metrics.ObserveSettlements(len(settlements))

	return connect.NewResponse(&api.CalculateResponse{
		Balances:    s.balancesToAPI(balances),
		Settlements: settlementsToAPI(settlements),
		Summary:     export.Summary(balances.Names(), balances, settlements, s.currency),
	}), nil
}

// mutate runs apply against the stored sheet and saves it when apply reports
// success. A rejected mutation leaves the store untouched.
func (s *SheetService) mutate(ctx context.Context, sheetID, operation string, apply func(*ledger.Ledger) (string, bool)) (*connect.Response[api.MutationResponse], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := storage.SheetKey(sheetID)
	l := storage.LoadLedger(ctx, s.store, key, s.defaults)

	expenseID, applied := apply(l)
	if applied {
		storage.SaveLedger(ctx, s.store, key, l)
		slog.Info(operation+" applied", "sheet_id", sheetID)
	} else {
		s.metrics.RejectedMutation(operation)
		slog.Info(operation+" rejected", "sheet_id", sheetID)
	}

	return connect.NewResponse(&api.MutationResponse{
		Applied:   applied,
		Sheet:     s.buildSheet(sheetID, l),
		ExpenseID: expenseID,
	}), nil
}

// buildSheet converts a ledger into its wire form, deriving balances,
// settlements and the text summary.
func (s *SheetService) buildSheet(sheetID string, l *ledger.Ledger) *api.Sheet {
	balances := l.Balances()
	settlements := calculator.ComputeSettlements(balances)
	s.metrics.ObserveSettlements(len(settlements))

	participants := l.Participants()
	modelExpenses := l.Expenses()
	expenses := make([]api.Expense, len(modelExpenses))
	for i, e := range modelExpenses {
		expenses[i] = api.Expense{
			ID:           e.ID,
			Title:        e.Title,
			Payer:        e.Payer,
			Amount:       e.Amount,
			Participants: e.Participants,
		}
	}

	return &api.Sheet{
		SheetID:      sheetID,
		Participants: participants,
		Expenses:     expenses,
		Balances:     s.balancesToAPI(balances),
		Settlements:  settlementsToAPI(settlements),
		Summary:      export.Summary(participants, balances, settlements, s.currency),
		Currency:     s.currency,
	}
}

func (s *SheetService) balancesToAPI(balances calculator.Balances) []api.Balance {
	out := make([]api.Balance, 0, balances.Len())
	for name, amount := range balances.All() {
		out = append(out, api.Balance{
			Name:    name,
			Amount:  amount,
			Display: export.Signed(amount, s.currency),
		})
	}
	return out
}

func settlementsToAPI(settlements []calculator.Settlement) []api.Settlement {
	out := make([]api.Settlement, len(settlements))
	for i, st := range settlements {
		out[i] = api.Settlement{From: st.From, To: st.To, Amount: st.Amount}
	}
	return out
}
