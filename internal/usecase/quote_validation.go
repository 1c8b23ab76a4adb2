package usecase

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"corretora_seguros/internal/domain/entities"

	"github.com/shopspring/decimal"
)

// ValidationError carries field-tagged messages for a rejected request.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Field messages, also used by the client translation table.
const (
	MsgInvalidCPF   = "CPF inválido"
	MsgInvalidEmail = "E-mail inválido"
	MsgInvalidYear  = "Ano inválido"
	MsgInvalidValue = "Valor inválido"
	MsgInvalidArea  = "Área inválida"
)

// OnlyDigits strips every non-digit rune.
func OnlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidCPF checks length and both check digits of a CPF (punctuation allowed).
func ValidCPF(cpf string) bool {
	d := OnlyDigits(cpf)
	if len(d) != 11 {
		return false
	}
	if strings.Count(d, d[:1]) == 11 {
		return false
	}
	check := func(n int) byte {
		sum := 0
		for i := 0; i < n; i++ {
			sum += int(d[i]-'0') * (n + 1 - i)
		}
		r := (sum * 10) % 11
		if r == 10 {
			r = 0
		}
		return byte('0' + r)
	}
	return check(9) == d[9] && check(10) == d[10]
}

// ParseMoney accepts "350000", "350000.50" and Brazilian "350.000,50".
func ParseMoney(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "R$"))
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	return decimal.NewFromString(s)
}

// validateQuote only checks fields that were given: missing data is accepted
// and priced with defaults.
func validateQuote(q entities.Quote) map[string]string {
	fields := map[string]string{}

	if cpf := q.Personal.CPF; cpf != "" && !ValidCPF(cpf) {
		fields[entities.FieldCPF] = MsgInvalidCPF
	}
	if email := q.Personal.Email; email != "" && !strings.Contains(email, "@") {
		fields[entities.FieldEmail] = MsgInvalidEmail
	}

	if q.Details == nil {
		return fields
	}
	f := q.Details.Fields()
	if ano := f[entities.FieldAno]; ano != "" {
		if _, err := strconv.Atoi(strings.TrimSpace(ano)); err != nil {
			fields[entities.FieldAno] = MsgInvalidYear
		}
	}
	if valor := f[entities.FieldValor]; valor != "" {
		if v, err := ParseMoney(valor); err != nil || v.IsNegative() {
			fields[entities.FieldValor] = MsgInvalidValue
		}
	}
	if area := f[entities.FieldArea]; area != "" {
		if v, err := ParseMoney(area); err != nil || v.IsNegative() {
			fields[entities.FieldArea] = MsgInvalidArea
		}
	}
	return fields
}
