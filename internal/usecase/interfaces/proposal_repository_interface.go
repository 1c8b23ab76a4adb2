package interfaces

import (
	"context"
	"corretora_seguros/internal/domain/entities"
)

// IProposalRepository abstracts DynamoDB persistence for Proposal.
//
// The store assigns apolice_id on Create. UpdateStatus is conditional on the
// proposal still being pending; when it is not, the store returns
// ErrProposalStatusConflict and the caller decides how to surface it.

type IProposalRepository interface {
	Create(ctx context.Context, p entities.Proposal) (entities.Proposal, error)
	GetByID(ctx context.Context, apoliceID int64) (entities.Proposal, error)
	List(ctx context.Context) ([]entities.Proposal, error)
	ListByStatus(ctx context.Context, status entities.ProposalStatus) ([]entities.Proposal, error)
	ListByCustomer(ctx context.Context, cpf string) ([]entities.Proposal, error)
	UpdateStatus(ctx context.Context, apoliceID int64, status entities.ProposalStatus, d entities.Discriminants) (entities.Proposal, error)
}
