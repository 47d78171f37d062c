// Package export renders balances and settlements as plain text and hands the
// result to a clipboard.
package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitpad/internal/calculator"
)

// DefaultCurrency is the label printed in front of every amount.
const DefaultCurrency = "NPR"

// Amount formats |v| with two decimals, rounding the exact binary value of v
// (1.005 is stored just below 1.005 and prints as 1.00). Rounding only ever
// happens here, at display time.
func Amount(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0.00"
	}
	return decimal.NewFromFloatWithExponent(math.Abs(v), -2).StringFixed(2)
}

// Signed renders a balance for display, e.g. "+NPR 200.00" or "-NPR 100.00".
// Zero counts as positive.
func Signed(v float64, currency string) string {
	sign := "+"
	if v < 0 {
		sign = "-"
	}
	return fmt.Sprintf("%s%s %s", sign, currency, Amount(v))
}

// Direction is "receives" for a balance >= 0 and "owes" otherwise.
func Direction(v float64) string {
	if v >= 0 {
		return "receives"
	}
	return "owes"
}

// SettlementLine renders one payment, e.g. "Ravi pays Asha NPR 100.00".
func SettlementLine(s calculator.Settlement, currency string) string {
	return fmt.Sprintf("%s pays %s %s %s", s.From, s.To, currency, Amount(s.Amount))
}

// Summary builds the plain-text export:
//
//	Expense summary
//
//	Balances:
//	Asha: receives NPR 200.00
//	Ravi: owes NPR 100.00
//
//	Settlements:
//	Ravi pays Asha NPR 100.00
//
// Participants are listed in the given order; a participant missing from balances
// is shown with 0. With no settlements the last line is "All settled.".
func Summary(participants []string, balances calculator.Balances, settlements []calculator.Settlement, currency string) string {
	if currency == "" {
		currency = DefaultCurrency
	}

	lines := []string{"Expense summary", "", "Balances:"}
	for _, person := range participants {
		value, _ := balances.Get(person)
		lines = append(lines, fmt.Sprintf("%s: %s %s %s", person, Direction(value), currency, Amount(value)))
	}

	lines = append(lines, "", "Settlements:")
	if len(settlements) == 0 {
		lines = append(lines, "All settled.")
	} else {
		for _, s := range settlements {
			lines = append(lines, SettlementLine(s, currency))
		}
	}

	return strings.Join(lines, "\n")
}
