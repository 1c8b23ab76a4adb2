package interfaces

import (
	"context"
	"corretora_seguros/internal/domain/entities"
)

// IPolicyRepository abstracts DynamoDB persistence for the generic policies API.
// Get, Update and Delete return a zero Policy (empty ID) when nothing matched.

type IPolicyRepository interface {
	Create(ctx context.Context, p entities.Policy) (entities.Policy, error)
	GetByID(ctx context.Context, id string) (entities.Policy, error)
	List(ctx context.Context) ([]entities.Policy, error)
	Update(ctx context.Context, p entities.Policy) (entities.Policy, error)
	Delete(ctx context.Context, id string) (entities.Policy, error)
}
