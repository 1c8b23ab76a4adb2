package entities

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatBRL(t *testing.T) {
	cases := map[string]string{
		"0":         "R$ 0,00",
		"12.5":      "R$ 12,50",
		"999.999":   "R$ 1.000,00",
		"1234.56":   "R$ 1.234,56",
		"1234567.8": "R$ 1.234.567,80",
		"-45.1":     "-R$ 45,10",
		"100000":    "R$ 100.000,00",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatBRL(decimal.RequireFromString(in)), in)
	}
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "-", FormatDate(time.Time{}))
	assert.Equal(t, "10/03/2026", FormatDate(time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)))
}
