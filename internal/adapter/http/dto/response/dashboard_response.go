package response

import "corretora_seguros/internal/domain/views"

type CustomerDashboardResponse struct {
	CPF          string             `json:"cpf"`
	ActiveCount  int                `json:"activeCount"`
	PendingCount int                `json:"pendingCount"`
	Active       []ProposalResponse `json:"active"`
	Pending      []ProposalResponse `json:"pending"`
}

func FromPortfolio(cpf string, p views.Portfolio) CustomerDashboardResponse {
	return CustomerDashboardResponse{
		CPF:          cpf,
		ActiveCount:  len(p.Active),
		PendingCount: len(p.Pending),
		Active:       FromProposals(p.Active),
		Pending:      FromProposals(p.Pending),
	}
}

type StaffDashboardResponse struct {
	Total         int `json:"total"`
	PendingCount  int `json:"pendingCount"`
	ApprovedCount int `json:"approvedCount"`
	RejectedCount int `json:"rejectedCount"`
}

func FromMetrics(m views.Metrics) StaffDashboardResponse {
	return StaffDashboardResponse{
		Total:         m.Total,
		PendingCount:  m.PendingCount,
		ApprovedCount: m.ApprovedCount,
		RejectedCount: m.RejectedCount,
	}
}
