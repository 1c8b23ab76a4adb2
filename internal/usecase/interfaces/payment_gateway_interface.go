package interfaces

import (
	"context"
	"encoding/json"
)

// InstallmentCharge is what the provider answered for one premium installment.
type InstallmentCharge struct {
	ProviderID string
	Status     string
	Raw        json.RawMessage
}

// IPaymentGateway charges a premium installment with a provider-specific payload.
type IPaymentGateway interface {
	ChargeInstallment(ctx context.Context, payload json.RawMessage) (InstallmentCharge, error)
}
