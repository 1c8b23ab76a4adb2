package response

import (
	"encoding/json"
	"time"

	"corretora_seguros/internal/domain/entities"
)

type PremiumPaymentResponse struct {
	ID          string      `json:"id"`
	PaymentID   string      `json:"payment_id,omitempty"`
	ApoliceID   int64       `json:"apoliceId"`
	Installment int         `json:"parcela"`
	Amount      json.Number `json:"valor"`
	PaymentDate time.Time   `json:"payment_date"`
	Status      string      `json:"status"`

	MPPayloadRaw string                 `json:"mp_payload_raw,omitempty"`
	MPPayload    map[string]interface{} `json:"mp_payload,omitempty"`
}

func FromPremiumPayment(p entities.PremiumPayment) PremiumPaymentResponse {
	return PremiumPaymentResponse{
		ID:           p.ID,
		PaymentID:    p.ProviderID,
		ApoliceID:    p.ApoliceID,
		Installment:  p.Installment,
		Amount:       Money(p.Amount),
		PaymentDate:  p.Date,
		Status:       string(p.Status),
		MPPayloadRaw: string(p.ProviderPayloadRaw),
		MPPayload:    p.ProviderPayload,
	}
}
