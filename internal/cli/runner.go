// Package cli is the terminal front end of splitpad. Each subcommand loads the
// sheet from the store, applies at most one change and saves it back.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/shopspring/decimal"

	"github.com/mmynk/splitpad/internal/calculator"
	"github.com/mmynk/splitpad/internal/export"
	"github.com/mmynk/splitpad/internal/ledger"
	"github.com/mmynk/splitpad/internal/models"
	"github.com/mmynk/splitpad/internal/storage"
)

// Options carry the store and presentation settings shared by every subcommand.
type Options struct {
	Store     storage.Store
	SheetID   string
	Currency  string
	Defaults  []string
	Clipboard export.Clipboard

	Stdout io.Writer
	Stderr io.Writer
}

func (o *Options) normalize() {
	if o.Currency == "" {
		o.Currency = export.DefaultCurrency
	}
	if o.Defaults == nil {
		o.Defaults = ledger.DefaultParticipants
	}
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(ctx context.Context, args []string, opt Options) int {
	opt.normalize()

	if len(args) == 0 {
		PrintHelp(opt.Stderr)
		return 2
	}
	cmd, a := args[0], args[1:]
	r := &runner{ctx: ctx, opt: opt, key: storage.SheetKey(opt.SheetID)}

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp(opt.Stdout)
		return 0

	case "ls":
		return r.list()

	case "people":
		return r.people()

	case "add-person":
		name := strings.Join(a, " ")
		if strings.TrimSpace(name) == "" {
			fail(opt.Stderr, "usage: splitpad add-person <name>")
			return 2
		}
		return r.addPerson(name)

	case "rm-person":
		if len(a) == 0 {
			fail(opt.Stderr, "usage: splitpad rm-person <name>")
			return 2
		}
		return r.removePerson(strings.Join(a, " "))

	case "add-expense":
		return r.addExpense(a)

	case "rm-expense":
		if len(a) != 1 {
			fail(opt.Stderr, "usage: splitpad rm-expense <id>")
			return 2
		}
		return r.removeExpense(a[0])

	case "export":
		return r.export(a)

	case "reset":
		return r.reset()
	}

	fail(opt.Stderr, "unknown subcommand: "+cmd)
	fmt.Fprintln(opt.Stderr)
	PrintHelp(opt.Stderr)
	return 2
}

func PrintHelp(w io.Writer) {
	fmt.Fprint(w, `splitpad - split shared expenses

Usage:
  splitpad [-sheet ID] <subcommand> [args]

Subcommands:
  ls                          Show participants, expenses, balances and settlements
  people                      List participants
  add-person <name>           Add a participant
  rm-person <name>            Remove a participant and the expenses they paid
  add-expense -title T -payer P -amount A [-with a,b,c]
                              Record an expense (shared by everyone unless -with is given)
  rm-expense <id>             Remove an expense
  export [-copy]              Print the plain-text summary, optionally copying it
  reset                       Start over with the default participants

Examples:
  splitpad add-person Kiran
  splitpad add-expense -title Groceries -payer Asha -amount 300
  splitpad add-expense -title Taxi -payer Ravi -amount 90 -with Ravi,Nima
  splitpad export -copy
`)
}

type runner struct {
	ctx context.Context
	opt Options
	key string
}

func (r *runner) load() *ledger.Ledger {
	return storage.LoadLedger(r.ctx, r.opt.Store, r.key, r.opt.Defaults)
}

func (r *runner) save(l *ledger.Ledger) int {
	if !storage.SaveLedger(r.ctx, r.opt.Store, r.key, l) {
		fail(r.opt.Stderr, "save failed, change not stored")
		return 1
	}
	return 0
}

// commit saves l when applied, otherwise prints notice. Rejected changes exit 1.
func (r *runner) commit(l *ledger.Ledger, applied bool, done, notice string) int {
	if !applied {
		fail(r.opt.Stderr, notice)
		return 1
	}
	if code := r.save(l); code != 0 {
		return code
	}
	ok(r.opt.Stdout, done)
	return 0
}

// -------------- subcommand impls ----------------

func (r *runner) list() int {
	l := r.load()
	cur := r.opt.Currency
	participants := l.Participants()
	expenses := l.Expenses()
	balances := l.Balances()
	settlements := calculator.ComputeSettlements(balances)

	var lines []string
	lines = append(lines, fmt.Sprintf("%s  %s %d  %s %d",
		titleStyle.Render("Splitter"),
		accentStyle.Render("people"), len(participants),
		accentStyle.Render("expenses"), len(expenses),
	))
	lines = append(lines, "")

	lines = append(lines, titleStyle.Render("Expenses"))
	lines = append(lines, expenseLines(expenses, cur)...)
	lines = append(lines, "")

	lines = append(lines, titleStyle.Render("Balances"))
	width := nameWidth(participants)
	for name, v := range balances.All() {
		lines = append(lines, padRight(name, width)+"  "+
			balanceStyle(v).Render(export.Signed(v, cur)))
	}
	if balances.Len() == 0 {
		lines = append(lines, mutedStyle.Render("no participants"))
	}
	lines = append(lines, "")

	lines = append(lines, titleStyle.Render("Settlements"))
	if len(settlements) == 0 {
		lines = append(lines, mutedStyle.Render("All settled."))
	}
	for _, s := range settlements {
		lines = append(lines, export.SettlementLine(s, cur))
	}

	panel(r.opt.Stdout, lines)
	return 0
}

func (r *runner) people() int {
	for _, name := range r.load().Participants() {
		fmt.Fprintln(r.opt.Stdout, name)
	}
	return 0
}

func (r *runner) addPerson(name string) int {
	l := r.load()
	name = strings.TrimSpace(name)
	return r.commit(l, l.AddParticipant(name),
		"added "+name,
		fmt.Sprintf("add-person: %q is already a participant", name))
}

func (r *runner) removePerson(name string) int {
	l := r.load()
	return r.commit(l, l.RemoveParticipant(name),
		"removed "+name,
		fmt.Sprintf("rm-person: no participant named %q", name))
}

func (r *runner) addExpense(args []string) int {
	fs := flag.NewFlagSet("add-expense", flag.ContinueOnError)
	fs.SetOutput(r.opt.Stderr)
	title := fs.String("title", "", "what the expense was for")
	payer := fs.String("payer", "", "participant who paid")
	amount := fs.String("amount", "", "amount paid, e.g. 300 or 12.50")
	with := fs.String("with", "", "comma-separated participants sharing it (default: everyone)")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if *title == "" || *payer == "" || *amount == "" {
		fail(r.opt.Stderr, "usage: splitpad add-expense -title T -payer P -amount A [-with a,b,c]")
		return 2
	}

	value, err := decimal.NewFromString(strings.TrimSpace(*amount))
	if err != nil {
		fail(r.opt.Stderr, "add-expense: not an amount: "+*amount)
		return 2
	}

	l := r.load()
	participants := splitNames(*with)
	if len(participants) == 0 {
		participants = l.Participants()
	}

	e, applied := l.AddExpense(ledger.NewExpense{
		Title:        *title,
		Payer:        strings.TrimSpace(*payer),
		Amount:       value.InexactFloat64(),
		Participants: participants,
	})
	return r.commit(l, applied,
		fmt.Sprintf("added %s (%s)", e.Title, e.ID),
		"add-expense: rejected, check the title, a positive amount and that payer and participants exist")
}

func (r *runner) removeExpense(id string) int {
	l := r.load()
	return r.commit(l, l.RemoveExpense(id),
		"removed expense "+id,
		fmt.Sprintf("rm-expense: no expense with id %q", id))
}

func (r *runner) export(args []string) int {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.SetOutput(r.opt.Stderr)
	copyOut := fs.Bool("copy", false, "also copy the summary to the clipboard")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	l := r.load()
	balances := l.Balances()
	text := export.Summary(l.Participants(), balances, calculator.ComputeSettlements(balances), r.opt.Currency)
	fmt.Fprintln(r.opt.Stdout, text)

	if *copyOut {
		if export.Copy(r.ctx, r.opt.Clipboard, text) {
			ok(r.opt.Stderr, "copied to clipboard")
		} else {
			fmt.Fprintln(r.opt.Stderr, mutedStyle.Render("clipboard unavailable, summary printed only"))
		}
	}
	return 0
}

func (r *runner) reset() int {
	if code := r.save(ledger.New(r.opt.Defaults...)); code != 0 {
		return code
	}
	ok(r.opt.Stdout, "reset to "+strings.Join(r.opt.Defaults, ", "))
	return 0
}

// -------------- rendering helpers --------------

const maxTitleWidth = 40

func expenseLines(expenses []models.Expense, currency string) []string {
	if len(expenses) == 0 {
		return []string{mutedStyle.Render("no expenses")}
	}
	out := make([]string, 0, len(expenses))
	for i, e := range expenses {
		title := ansi.Truncate(e.Title, maxTitleWidth, "...")
		out = append(out, fmt.Sprintf("%2d. %s  %s paid %s %s  %s",
			i+1, title, e.Payer, currency, export.Amount(e.Amount),
			mutedStyle.Render("["+strings.Join(e.Participants, ", ")+"] "+e.ID)))
	}
	return out
}

// nameWidth is the widest display width among names, in terminal cells.
func nameWidth(names []string) int {
	w := 0
	for _, n := range names {
		w = max(w, lipgloss.Width(n))
	}
	return w
}

func padRight(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

func splitNames(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
