package client

import (
	"context"
	"net/http"
	"net/url"

	request "corretora_seguros/internal/adapter/http/dto/request"
	response "corretora_seguros/internal/adapter/http/dto/response"
	"corretora_seguros/internal/domain/entities"
)

func (c *Client) ListPolicies(ctx context.Context) ([]entities.Policy, error) {
	var res []response.PolicyResponse
	if err := c.do(ctx, http.MethodGet, "/policies", nil, &res); err != nil {
		return nil, err
	}
	out := make([]entities.Policy, 0, len(res))
	for _, r := range res {
		out = append(out, r.ToEntity())
	}
	return out, nil
}

func (c *Client) GetPolicy(ctx context.Context, id string) (entities.Policy, error) {
	return c.policyCall(ctx, http.MethodGet, "/policies/"+url.PathEscape(id), nil)
}

func (c *Client) CreatePolicy(ctx context.Context, p entities.Policy) (entities.Policy, error) {
	body := request.FromPolicy(p)
	return c.policyCall(ctx, http.MethodPost, "/policies", &body)
}

func (c *Client) UpdatePolicy(ctx context.Context, p entities.Policy) (entities.Policy, error) {
	body := request.FromPolicy(p)
	return c.policyCall(ctx, http.MethodPut, "/policies/"+url.PathEscape(p.ID), &body)
}

func (c *Client) DeletePolicy(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/policies/"+url.PathEscape(id), nil, nil)
}

func (c *Client) policyCall(ctx context.Context, method, path string, body *request.PolicyRequest) (entities.Policy, error) {
	var in any
	if body != nil {
		in = body
	}
	var res response.PolicyResponse
	if err := c.do(ctx, method, path, in, &res); err != nil {
		return entities.Policy{}, err
	}
	return res.ToEntity(), nil
}
