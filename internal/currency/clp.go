// Package currency formats amounts for display in Chilean pesos, es-CL style:
// a leading $, dot-grouped thousands, and no decimals. Fractions are tolerated
// in computation but rounded away for display.
package currency

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatCLP renders an amount as a Chilean peso string, e.g. 1000000 ->
// "$1.000.000" and -25000 -> "-$25.000".
func FormatCLP(amount float64) string {
	d := decimal.NewFromFloat(amount).Round(0)

	negative := d.IsNegative()
	digits := d.Abs().String()

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	b.WriteString(groupThousands(digits))
	return b.String()
}

// groupThousands inserts a dot every three digits from the right.
func groupThousands(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}

	var b strings.Builder
	rem := n % 3
	if rem > 0 {
		b.WriteString(digits[:rem])
	}
	for i := rem; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
