package interfaces

import (
	"context"
	"corretora_seguros/internal/domain/entities"
)

// IUserRepository abstracts DynamoDB persistence for User accounts.

type IUserRepository interface {
	Create(ctx context.Context, u entities.User) (entities.User, error)
	GetByEmail(ctx context.Context, email string) (entities.User, error)
}
