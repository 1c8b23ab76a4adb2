package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProposalStatus represents the lifecycle of a proposal (proposta).
//
// Transitions:
//   - pending -> approved
//   - pending -> rejected
//
// Approved and rejected are terminal. An approved proposal is an active policy.
type ProposalStatus string

const (
	ProposalStatusPendente  ProposalStatus = "0"
	ProposalStatusAprovada  ProposalStatus = "1"
	ProposalStatusRejeitada ProposalStatus = "2"
)

func (s ProposalStatus) Valid() bool {
	switch s {
	case ProposalStatusPendente, ProposalStatusAprovada, ProposalStatusRejeitada:
		return true
	}
	return false
}

// Terminal reports whether no further transition is allowed.
func (s ProposalStatus) Terminal() bool {
	return s == ProposalStatusAprovada || s == ProposalStatusRejeitada
}

// CanTransitionTo reports whether s -> next is a legal lifecycle move.
func (s ProposalStatus) CanTransitionTo(next ProposalStatus) bool {
	return s == ProposalStatusPendente && next.Terminal()
}

// Label is the customer-facing status text.
func (s ProposalStatus) Label() string {
	switch s {
	case ProposalStatusPendente:
		return "Pendente"
	case ProposalStatusAprovada:
		return "Aprovada"
	case ProposalStatusRejeitada:
		return "Rejeitada"
	}
	return "Desconhecido"
}

// Action is the verb shown in confirmations ("Proposta 501 aprovada").
func (s ProposalStatus) Action() string {
	switch s {
	case ProposalStatusAprovada:
		return "aprovada"
	case ProposalStatusRejeitada:
		return "rejeitada"
	}
	return "atualizada"
}

// ProposalStatusFromCode maps the numeric effectuate target (1 or 2) to a status.
func ProposalStatusFromCode(code int) (ProposalStatus, bool) {
	switch code {
	case 0:
		return ProposalStatusPendente, true
	case 1:
		return ProposalStatusAprovada, true
	case 2:
		return ProposalStatusRejeitada, true
	}
	return "", false
}

// Proposal is a submitted insurance request (apólice proposta) persisted in DynamoDB.
//
// Storage model (DynamoDB):
//   - PK: apolice_id (number, from the counters table)
//   - GSI1 (cpf_cliente-index): cpf_cliente
//
// Only Status (and the discriminants forwarded on effectuation) change after creation.
type Proposal struct {
	ApoliceID          int64
	IDSeguro           ProductKind
	CPFCliente         string
	DesUsuario         string
	ProdutoNome        string
	ProdutoSegurado    string
	VlrProdutoSegurado *decimal.Decimal
	PremioBruto        decimal.Decimal
	Parcelas           int
	VlrParcela         decimal.Decimal
	Status             ProposalStatus

	Placa string
	IMEI  string
	CIB   string

	Detalhes  map[string]string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsPolicy reports whether the proposal has become an active policy.
func (p Proposal) IsPolicy() bool {
	return p.Status == ProposalStatusAprovada
}

func (p Proposal) IsPending() bool {
	return p.Status == ProposalStatusPendente
}

// Discriminants are the product-specific identifiers carried with a proposal.
type Discriminants struct {
	Placa string
	IMEI  string
	CIB   string
}

// Discriminants returns only the identifier relevant to the proposal's kind.
func (p Proposal) Discriminants() Discriminants {
	switch p.IDSeguro {
	case ProductKindVehicle:
		return Discriminants{Placa: p.Placa}
	case ProductKindPhone:
		return Discriminants{IMEI: p.IMEI}
	default:
		return Discriminants{CIB: p.CIB}
	}
}
