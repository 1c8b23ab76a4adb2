package entities

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus represents the payment processing outcome.
type PaymentStatus string

const (
	PaymentStatusPendente PaymentStatus = "pendente"
	PaymentStatusAprovado PaymentStatus = "aprovado"
	PaymentStatusNegado   PaymentStatus = "negado"
)

// PremiumPayment is an installment payment of an active policy. There is one
// record per installment: ID is InstallmentSlot(apoliceID, installment), and a
// denied charge frees its slot for the next attempt.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (apolice_id-index): apolice_id
//
// ProviderPayloadRaw keeps the Mercado Pago response body for traceability;
// ProviderPayload is its parsed form.
type PremiumPayment struct {
	ID          string
	ProviderID  string
	ApoliceID   int64
	Installment int
	Amount      decimal.Decimal
	Date        time.Time
	Status      PaymentStatus

	ProviderPayloadRaw json.RawMessage
	ProviderPayload    map[string]interface{}
}

// InstallmentSlot is the record id of an installment of a policy.
func InstallmentSlot(apoliceID int64, installment int) string {
	return fmt.Sprintf("%d#%d", apoliceID, installment)
}

// HoldsInstallment reports whether p keeps its installment from being charged
// again: approved payments and charges still in flight do.
func (p PremiumPayment) HoldsInstallment() bool {
	return p.Status == PaymentStatusAprovado || p.Status == PaymentStatusPendente
}
