package client

import (
	"context"
	"net/http"
	"net/url"

	request "corretora_seguros/internal/adapter/http/dto/request"
	response "corretora_seguros/internal/adapter/http/dto/response"
	"corretora_seguros/internal/domain/entities"
	"corretora_seguros/internal/domain/views"
	"corretora_seguros/internal/domain/wizard"
)

var _ wizard.Simulator = (*Client)(nil)

// Simulate posts the flat quote payload and returns the priced proposal.
func (c *Client) Simulate(ctx context.Context, payload map[string]string) (entities.Simulation, error) {
	var res response.SimulateResponse
	if err := c.do(ctx, http.MethodPost, "/simulate", payload, &res); err != nil {
		return entities.Simulation{}, err
	}
	return res.ToSimulation(), nil
}

// FetchProposals lists every proposal matching f (staff only).
func (c *Client) FetchProposals(ctx context.Context, f views.Filter) ([]entities.Proposal, error) {
	q := url.Values{}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	if f.Kind != "" {
		q.Set("kind", f.Kind)
	}
	path := "/proposals"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	return c.fetchList(ctx, path)
}

func (c *Client) FetchPending(ctx context.Context) ([]entities.Proposal, error) {
	return c.fetchList(ctx, "/proposals/pending")
}

func (c *Client) FetchByCustomer(ctx context.Context, cpf string) ([]entities.Proposal, error) {
	return c.fetchList(ctx, "/customers/"+url.PathEscape(cpf)+"/proposals")
}

func (c *Client) FetchPendingByCustomer(ctx context.Context, cpf string) ([]entities.Proposal, error) {
	return c.fetchList(ctx, "/customers/"+url.PathEscape(cpf)+"/proposals/pending")
}

func (c *Client) fetchList(ctx context.Context, path string) ([]entities.Proposal, error) {
	var res []response.ProposalResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &res); err != nil {
		return nil, err
	}
	out := make([]entities.Proposal, 0, len(res))
	for _, r := range res {
		out = append(out, r.ToEntity())
	}
	return out, nil
}

// Effectuate sends a staff decision and returns the confirmation message.
func (c *Client) Effectuate(ctx context.Context, in request.EffectuateRequest) (string, error) {
	var res response.EffectuateResponse
	if err := c.do(ctx, http.MethodPost, "/proposals/effectuate", in, &res); err != nil {
		return "", err
	}
	if res.Message == "" {
		if status, ok := entities.ProposalStatusFromCode(in.Status); ok {
			res.Message = response.EffectuateMessage(in.IDApolice, status)
		}
	}
	return res.Message, nil
}

// EffectuateRequestFor builds the decision payload for p, carrying the
// discriminant of its product kind.
func EffectuateRequestFor(p entities.Proposal, target entities.ProposalStatus) request.EffectuateRequest {
	d := p.Discriminants()
	status := 0
	switch target {
	case entities.ProposalStatusAprovada:
		status = 1
	case entities.ProposalStatusRejeitada:
		status = 2
	}
	return request.EffectuateRequest{
		IDApolice: p.ApoliceID,
		IDSeguro:  int(p.IDSeguro),
		Status:    status,
		Placa:     d.Placa,
		IMEI:      d.IMEI,
		CIB:       d.CIB,
	}
}
