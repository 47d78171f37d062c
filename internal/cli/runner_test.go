package cli

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/splitpad/internal/ledger"
	"github.com/mmynk/splitpad/internal/models"
	"github.com/mmynk/splitpad/internal/storage"
	"github.com/mmynk/splitpad/internal/storage/jsonfile"
)

type fakeClipboard struct {
	text string
	err  error
}

func (f *fakeClipboard) WriteAll(text string) error {
	if f.err != nil {
		return f.err
	}
	f.text = text
	return nil
}

type harness struct {
	t     *testing.T
	store storage.Store
	opt   Options
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	store, err := jsonfile.New(filepath.Join(t.TempDir(), "splitpad.json"))
	require.NoError(t, err)
	return &harness{t: t, store: store, opt: Options{Store: store}}
}

// run executes one subcommand and returns its exit code, stdout and stderr.
func (h *harness) run(args ...string) (int, string, string) {
	h.t.Helper()
	var stdout, stderr bytes.Buffer
	opt := h.opt
	opt.Stdout, opt.Stderr = &stdout, &stderr
	code := Run(context.Background(), args, opt)
	return code, stdout.String(), stderr.String()
}

func (h *harness) ledger() *ledger.Ledger {
	return storage.LoadLedger(context.Background(), h.store, storage.SheetKey(h.opt.SheetID), h.opt.Defaults)
}

func TestRun_Usage(t *testing.T) {
	h := newHarness(t)

	code, _, stderr := h.run()
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "Subcommands:")

	code, stdout, _ := h.run("help")
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "add-expense -title T -payer P -amount A")

	code, _, stderr = h.run("frobnicate")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "unknown subcommand: frobnicate")

	for _, args := range [][]string{
		{"add-person"},
		{"add-person", "  "},
		{"rm-person"},
		{"rm-expense"},
		{"rm-expense", "a", "b"},
	} {
		code, _, _ := h.run(args...)
		assert.Equal(t, 2, code, "args %v", args)
	}
}

func TestRun_ListFreshSheet(t *testing.T) {
	h := newHarness(t)

	code, stdout, _ := h.run("ls")
	require.Equal(t, 0, code)
	for _, want := range []string{"Asha", "Ravi", "Nima", "no expenses", "+NPR 0.00", "All settled."} {
		assert.Contains(t, stdout, want)
	}
}

func TestRun_AddExpenseSharedByEveryone(t *testing.T) {
	h := newHarness(t)

	code, stdout, _ := h.run("add-expense", "-title", "Groceries", "-payer", "Asha", "-amount", "300")
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "added Groceries")

	expenses := h.ledger().Expenses()
	require.Len(t, expenses, 1)
	assert.Equal(t, []string{"Asha", "Ravi", "Nima"}, expenses[0].Participants)
	assert.Equal(t, 300.0, expenses[0].Amount)

	code, stdout, _ = h.run("ls")
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "+NPR 200.00")
	assert.Contains(t, stdout, "-NPR 100.00")
	assert.Contains(t, stdout, "Ravi pays Asha NPR 100.00")
	assert.Contains(t, stdout, "Nima pays Asha NPR 100.00")
}

func TestRun_AddExpenseWithSubset(t *testing.T) {
	h := newHarness(t)

	code, _, _ := h.run("add-expense", "-title", "Taxi", "-payer", "Ravi", "-amount", "12.50", "-with", "Ravi, Nima")
	require.Equal(t, 0, code)

	expenses := h.ledger().Expenses()
	require.Len(t, expenses, 1)
	assert.Equal(t, []string{"Ravi", "Nima"}, expenses[0].Participants)
	assert.InDelta(t, 12.5, expenses[0].Amount, 1e-9)
}

func TestRun_AddExpenseRejected(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code int
	}{
		{"missing title", []string{"-payer", "Asha", "-amount", "10"}, 2},
		{"missing amount", []string{"-title", "Tea", "-payer", "Asha"}, 2},
		{"not a number", []string{"-title", "Tea", "-payer", "Asha", "-amount", "ten"}, 2},
		{"unknown flag", []string{"-title", "Tea", "-bogus"}, 2},
		{"negative amount", []string{"-title", "Tea", "-payer", "Asha", "-amount", "-5"}, 1},
		{"zero amount", []string{"-title", "Tea", "-payer", "Asha", "-amount", "0"}, 1},
		{"unknown payer", []string{"-title", "Tea", "-payer", "Zed", "-amount", "10"}, 1},
		{"unknown participant", []string{"-title", "Tea", "-payer", "Asha", "-amount", "10", "-with", "Asha,Zed"}, 1},
	}

	h := newHarness(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, _ := h.run(append([]string{"add-expense"}, tt.args...)...)
			assert.Equal(t, tt.code, code)
			assert.Empty(t, h.ledger().Expenses())
		})
	}
}

func TestRun_People(t *testing.T) {
	h := newHarness(t)

	code, _, _ := h.run("add-person", "Kiran")
	require.Equal(t, 0, code)

	code, _, stderr := h.run("add-person", "Kiran")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "already a participant")

	code, stdout, _ := h.run("people")
	require.Equal(t, 0, code)
	assert.Equal(t, "Asha\nRavi\nNima\nKiran\n", stdout)
}

func TestRun_RemovePersonCascades(t *testing.T) {
	h := newHarness(t)

	require.Equal(t, 0, first(h.run("add-expense", "-title", "Taxi", "-payer", "Nima", "-amount", "90")))
	require.Equal(t, 0, first(h.run("add-expense", "-title", "Rent", "-payer", "Asha", "-amount", "300")))

	code, stdout, _ := h.run("rm-person", "Nima")
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "removed Nima")

	l := h.ledger()
	assert.Equal(t, []string{"Asha", "Ravi"}, l.Participants())
	require.Len(t, l.Expenses(), 1)
	assert.Equal(t, "Rent", l.Expenses()[0].Title)
	assert.Equal(t, []string{"Asha", "Ravi"}, l.Expenses()[0].Participants)

	code, _, _ = h.run("rm-person", "Nima")
	assert.Equal(t, 1, code)
}

func TestRun_RemoveExpense(t *testing.T) {
	h := newHarness(t)
	require.Equal(t, 0, first(h.run("add-expense", "-title", "Gas", "-payer", "Ravi", "-amount", "60")))
	id := h.ledger().Expenses()[0].ID

	code, _, _ := h.run("rm-expense", "nope")
	assert.Equal(t, 1, code)
	assert.Len(t, h.ledger().Expenses(), 1)

	code, _, _ = h.run("rm-expense", id)
	assert.Equal(t, 0, code)
	assert.Empty(t, h.ledger().Expenses())
}

func TestRun_Export(t *testing.T) {
	h := newHarness(t)
	cb := &fakeClipboard{}
	h.opt.Clipboard = cb
	require.Equal(t, 0, first(h.run("add-expense", "-title", "Groceries", "-payer", "Asha", "-amount", "300")))

	want := "Expense summary\n\nBalances:\n" +
		"Asha: receives NPR 200.00\nRavi: owes NPR 100.00\nNima: owes NPR 100.00\n\n" +
		"Settlements:\nRavi pays Asha NPR 100.00\nNima pays Asha NPR 100.00"

	code, stdout, _ := h.run("export")
	require.Equal(t, 0, code)
	assert.Equal(t, want+"\n", stdout)
	assert.Empty(t, cb.text)

	code, _, stderr := h.run("export", "-copy")
	require.Equal(t, 0, code)
	assert.Equal(t, want, cb.text)
	assert.Contains(t, stderr, "copied to clipboard")
}

func TestRun_ExportCopyFailureIsNotFatal(t *testing.T) {
	h := newHarness(t)
	h.opt.Clipboard = &fakeClipboard{err: errors.New("no display")}

	code, stdout, stderr := h.run("export", "-copy")
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "All settled.")
	assert.Contains(t, stderr, "clipboard unavailable")
}

func TestRun_CurrencyAndSheet(t *testing.T) {
	h := newHarness(t)
	h.opt.Currency = "EUR"
	h.opt.SheetID = "trip"
	h.opt.Defaults = []string{"Ana", "Ben"}

	require.Equal(t, 0, first(h.run("add-expense", "-title", "Fuel", "-payer", "Ana", "-amount", "40")))

	_, stdout, _ := h.run("export")
	assert.Contains(t, stdout, "Ben pays Ana EUR 20.00")

	def := storage.LoadLedger(context.Background(), h.store, storage.DefaultSheetKey, nil)
	assert.Empty(t, def.Participants(), "default sheet should not have been written")
}

func TestRun_Reset(t *testing.T) {
	h := newHarness(t)
	require.Equal(t, 0, first(h.run("add-person", "Kiran")))
	require.Equal(t, 0, first(h.run("add-expense", "-title", "Tea", "-payer", "Kiran", "-amount", "40")))

	code, _, _ := h.run("reset")
	require.Equal(t, 0, code)

	l := h.ledger()
	assert.Equal(t, ledger.DefaultParticipants, l.Participants())
	assert.Empty(t, l.Expenses())
}

// failingStore reads nothing and rejects every write.
type failingStore struct{}

func (failingStore) Get(context.Context, string) ([]byte, error) { return nil, storage.ErrNotFound }

func (failingStore) Put(context.Context, string, []byte) error { return errors.New("read-only") }

func (failingStore) Close() error { return nil }

func TestRun_SaveFailure(t *testing.T) {
	h := newHarness(t)
	h.opt.Store = failingStore{}

	code, _, stderr := h.run("add-person", "Kiran")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "save failed")
}

func first(code int, _, _ string) int { return code }

func TestExpenseLines_TruncatesByDisplayWidth(t *testing.T) {
	title := strings.Repeat("किराना सामान ", 8)
	lines := expenseLines([]models.Expense{{
		ID: "e1", Title: title, Payer: "Asha", Amount: 300, Participants: []string{"Asha"},
	}}, "NPR")

	require.Len(t, lines, 1)
	assert.True(t, utf8.ValidString(lines[0]), "line is not valid UTF-8: %q", lines[0])
	assert.NotContains(t, lines[0], title)
	assert.Contains(t, lines[0], "...")
	assert.LessOrEqual(t, lipgloss.Width(ansi.Truncate(title, maxTitleWidth, "...")), maxTitleWidth)
}

func TestPadRight_AlignsWideNames(t *testing.T) {
	names := []string{"Asha", "निमा", "Ravi Shrestha", "日本"}
	width := nameWidth(names)

	for _, n := range names {
		assert.Equal(t, width, lipgloss.Width(padRight(n, width)), "name %q", n)
	}
	assert.Equal(t, "Ravi Shrestha", padRight("Ravi Shrestha", 4))
}

func TestRun_ListNonASCIITitle(t *testing.T) {
	h := newHarness(t)
	title := strings.Repeat("दाल भात ", 10)
	require.Equal(t, 0, first(h.run("add-expense", "-title", title, "-payer", "Asha", "-amount", "90")))

	code, stdout, _ := h.run("ls")
	require.Equal(t, 0, code)
	assert.True(t, utf8.ValidString(stdout))
	assert.Contains(t, stdout, "...")
}
