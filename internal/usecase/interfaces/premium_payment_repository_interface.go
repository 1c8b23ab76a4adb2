package interfaces

import (
	"context"
	"corretora_seguros/internal/domain/entities"
)

// IPremiumPaymentRepository abstracts DynamoDB persistence for PremiumPayment.
//
// Reserve stores p (status pendente) only when its slot is free or holds a
// denied charge; otherwise it returns ErrInstallmentTaken. Save writes the final
// state of a reserved slot.

type IPremiumPaymentRepository interface {
	Reserve(ctx context.Context, p entities.PremiumPayment) (entities.PremiumPayment, error)
	Save(ctx context.Context, p entities.PremiumPayment) (entities.PremiumPayment, error)
	GetByID(ctx context.Context, id string) (entities.PremiumPayment, error)
	ListByApoliceID(ctx context.Context, apoliceID int64) ([]entities.PremiumPayment, error)
}
