package response

import (
	"encoding/json"
	"time"

	"corretora_seguros/internal/domain/entities"
)

type PolicyResponse struct {
	ID           string      `json:"id"`
	CustomerCPF  string      `json:"customerCpf"`
	CustomerName string      `json:"customerName"`
	Type         string      `json:"type"`
	TypeLabel    string      `json:"typeLabel"`
	Description  string      `json:"description"`
	Premium      json.Number `json:"premium"`
	Coverage     json.Number `json:"coverage"`
	Status       string      `json:"status"`
	StartDate    *time.Time  `json:"startDate,omitempty"`
	EndDate      *time.Time  `json:"endDate,omitempty"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

func FromPolicy(p entities.Policy) PolicyResponse {
	opt := func(t time.Time) *time.Time {
		if t.IsZero() {
			return nil
		}
		return &t
	}
	return PolicyResponse{
		ID:           p.ID,
		CustomerCPF:  p.CustomerCPF,
		CustomerName: p.CustomerName,
		Type:         p.Type.Name(),
		TypeLabel:    p.Type.Label(),
		Description:  p.Description,
		Premium:      Money(p.Premium),
		Coverage:     Money(p.Coverage),
		Status:       string(p.Status),
		StartDate:    opt(p.StartDate),
		EndDate:      opt(p.EndDate),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func FromPolicies(list []entities.Policy) []PolicyResponse {
	out := make([]PolicyResponse, 0, len(list))
	for _, p := range list {
		out = append(out, FromPolicy(p))
	}
	return out
}

func (r PolicyResponse) ToEntity() entities.Policy {
	kind, _ := entities.ParseProductKind(r.Type)
	p := entities.Policy{
		ID:           r.ID,
		CustomerCPF:  r.CustomerCPF,
		CustomerName: r.CustomerName,
		Type:         kind,
		Description:  r.Description,
		Premium:      ParseMoney(r.Premium),
		Coverage:     ParseMoney(r.Coverage),
		Status:       entities.PolicyStatus(r.Status),
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
	if r.StartDate != nil {
		p.StartDate = *r.StartDate
	}
	if r.EndDate != nil {
		p.EndDate = *r.EndDate
	}
	return p
}
