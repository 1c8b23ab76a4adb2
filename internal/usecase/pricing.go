package usecase

import (
	"strconv"
	"strings"
	"time"

	"corretora_seguros/internal/domain/entities"

	"github.com/shopspring/decimal"
)

// DefaultInstallments is the number of monthly installments offered on every quote.
const DefaultInstallments = 12

var (
	vehicleBasePremium = decimal.NewFromInt(1800)
	vehicleAgeStep     = decimal.RequireFromString("0.02")
	vehicleMaxAge      = 15
	vehicleUsageFactor = map[string]decimal.Decimal{
		"comercial":  decimal.RequireFromString("1.25"),
		"aplicativo": decimal.RequireFromString("1.25"),
	}

	homeRate       = decimal.RequireFromString("0.003")
	homeMinPremium = decimal.NewFromInt(300)

	phoneRate       = decimal.RequireFromString("0.12")
	phoneMinPremium = decimal.NewFromInt(150)
)

// Pricing is the outcome of a simulation.
type Pricing struct {
	Premium      decimal.Decimal
	Installments int
	Installment  decimal.Decimal
	InsuredValue *decimal.Decimal
}

// Price computes the gross premium for q. Unparseable or missing inputs fall
// back to the product minimum.
func Price(q entities.Quote, now time.Time) Pricing {
	var (
		premium decimal.Decimal
		insured *decimal.Decimal
	)

	switch d := q.Details.(type) {
	case entities.VehicleDetails:
		premium = vehiclePremium(d, now)
	case entities.HomeDetails:
		insured = parseInsured(d.Value)
		premium = ratedPremium(insured, homeRate, homeMinPremium)
	case entities.PhoneDetails:
		insured = parseInsured(d.Value)
		premium = ratedPremium(insured, phoneRate, phoneMinPremium)
	}

	premium = premium.Round(2)
	return Pricing{
		Premium:      premium,
		Installments: DefaultInstallments,
		Installment:  premium.Div(decimal.NewFromInt(DefaultInstallments)).Round(2),
		InsuredValue: insured,
	}
}

func vehiclePremium(d entities.VehicleDetails, now time.Time) decimal.Decimal {
	usage := decimal.NewFromInt(1)
	if f, ok := vehicleUsageFactor[strings.ToLower(strings.TrimSpace(d.Usage))]; ok {
		usage = f
	}

	age := 0
	if year, err := strconv.Atoi(strings.TrimSpace(d.Year)); err == nil && year <= now.Year() {
		age = now.Year() - year
	}
	if age > vehicleMaxAge {
		age = vehicleMaxAge
	}
	ageFactor := decimal.NewFromInt(1).Add(vehicleAgeStep.Mul(decimal.NewFromInt(int64(age))))

	return vehicleBasePremium.Mul(usage).Mul(ageFactor)
}

func ratedPremium(insured *decimal.Decimal, rate, minimum decimal.Decimal) decimal.Decimal {
	if insured == nil {
		return minimum
	}
	p := insured.Mul(rate)
	if p.LessThan(minimum) {
		return minimum
	}
	return p
}

func parseInsured(s string) *decimal.Decimal {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	v, err := ParseMoney(s)
	if err != nil || v.IsNegative() {
		return nil
	}
	return &v
}
