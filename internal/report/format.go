package report

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Formatting is part of the report contract: prices to the cent, aggregate
// dollars to the whole unit with thousands grouping, percentages to one
// decimal with an explicit sign. Downstream consumers rely on it.

func money2(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-$" + groupedCents(d.Neg())
	}
	return "$" + groupedCents(d)
}

func signedMoney2(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-$" + groupedCents(d.Neg())
	}
	return "+$" + groupedCents(d)
}

// groupedCents renders a non-negative amount to the cent with thousands
// grouping on the dollar part.
func groupedCents(d decimal.Decimal) string {
	fixed := d.StringFixed(2)
	dot := strings.IndexByte(fixed, '.')
	return groupThousands(fixed[:dot]) + fixed[dot:]
}

func moneyWhole(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-$" + groupThousands(d.Neg().Round(0).StringFixed(0))
	}
	return "$" + groupThousands(d.Round(0).StringFixed(0))
}

func signedMoneyWhole(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-$" + groupThousands(d.Neg().Round(0).StringFixed(0))
	}
	return "+$" + groupThousands(d.Round(0).StringFixed(0))
}

// signedPct decides the sign from the rounded value, so a figure that
// rounds to zero renders "+0.0%" rather than an unsigned "0.0%".
func signedPct(d decimal.Decimal) string {
	r := d.Round(1)
	if r.IsNegative() {
		return r.StringFixed(1) + "%"
	}
	return "+" + r.StringFixed(1) + "%"
}

// groupThousands inserts comma separators into a plain digit string.
func groupThousands(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	var b strings.Builder
	pre := n % 3
	if pre > 0 {
		b.WriteString(digits[:pre])
	}
	for i := pre; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
