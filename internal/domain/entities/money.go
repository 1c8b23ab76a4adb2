package entities

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Simulation is the store's answer to a quote submission.
type Simulation struct {
	ApoliceID  int64
	Value      decimal.Decimal
	Parcelas   int
	VlrParcela decimal.Decimal
	Status     ProposalStatus
}

// FormatBRL renders v as Brazilian currency, e.g. "R$ 1.234,56".
func FormatBRL(v decimal.Decimal) string {
	s := v.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}

	sign := ""
	if v.IsNegative() {
		sign = "-"
	}
	return sign + "R$ " + b.String() + "," + frac
}

// FormatDate renders t as dd/mm/yyyy, or "-" when unset.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("02/01/2006")
}
