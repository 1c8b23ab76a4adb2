package views

import "corretora_seguros/internal/domain/entities"

// Portfolio is the customer-facing "my policies" view.
//
// Rejected proposals are intentionally absent; whether customers should see
// them is an open product decision.
type Portfolio struct {
	Active  []entities.Proposal
	Pending []entities.Proposal
}

// CustomerPortfolio partitions list into active policies and pending proposals.
func CustomerPortfolio(list []entities.Proposal) Portfolio {
	return Portfolio{
		Active:  Where(list, MatchStatus(string(entities.ProposalStatusAprovada))),
		Pending: Where(list, MatchStatus(string(entities.ProposalStatusPendente))),
	}
}

// Metrics are the staff dashboard counters.
type Metrics struct {
	Total         int
	PendingCount  int
	ApprovedCount int
	RejectedCount int
}

// StaffMetrics counts list by status.
func StaffMetrics(list []entities.Proposal) Metrics {
	m := Metrics{Total: len(list)}
	for _, p := range list {
		switch p.Status {
		case entities.ProposalStatusPendente:
			m.PendingCount++
		case entities.ProposalStatusAprovada:
			m.ApprovedCount++
		case entities.ProposalStatusRejeitada:
			m.RejectedCount++
		}
	}
	return m
}

// Action is a staff operation offered on a proposal row.
type Action struct {
	Name         string
	Label        string
	TargetStatus entities.ProposalStatus
}

var (
	ActionApprove = Action{Name: "approve", Label: "Aprovar", TargetStatus: entities.ProposalStatusAprovada}
	ActionReject  = Action{Name: "reject", Label: "Rejeitar", TargetStatus: entities.ProposalStatusRejeitada}
)

// Actions returns the operations offered for p. Only pending rows get actions.
func Actions(p entities.Proposal) []Action {
	if !p.IsPending() {
		return nil
	}
	return []Action{ActionApprove, ActionReject}
}
