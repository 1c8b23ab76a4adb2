package client

import (
	"context"
	"log"

	"corretora_seguros/internal/domain/entities"
	"corretora_seguros/internal/domain/views"
)

// PortfolioAPI is what the customer view needs from the API.
type PortfolioAPI interface {
	FetchByCustomer(ctx context.Context, cpf string) ([]entities.Proposal, error)
}

// PortfolioView is the customer's "my policies" view model.
type PortfolioView struct {
	lifecycle
	api PortfolioAPI
	cpf string

	portfolio views.Portfolio
}

func NewPortfolioView(api PortfolioAPI, cpf string) *PortfolioView {
	v := &PortfolioView{api: api, cpf: cpf}
	v.start()
	return v
}

func (v *PortfolioView) Load(ctx context.Context) Result {
	ctx, done := v.scope(ctx)
	defer done()
	seq := v.nextLoad()

	list, err := v.api.FetchByCustomer(ctx, v.cpf)
	if err != nil {
		log.Printf("[client][portfolio] fetch failed err=%v", err)
		return Normalize(err)
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return resultClosed
	}
	if !v.claimLoad(seq) {
		log.Printf("[client][portfolio] dropping stale load seq=%d", seq)
		return ok("")
	}
	v.portfolio = views.CustomerPortfolio(list)
	return ok("")
}

// Active lists the customer's policies (approved proposals).
func (v *PortfolioView) Active() []entities.Proposal {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]entities.Proposal(nil), v.portfolio.Active...)
}

func (v *PortfolioView) Pending() []entities.Proposal {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]entities.Proposal(nil), v.portfolio.Pending...)
}
