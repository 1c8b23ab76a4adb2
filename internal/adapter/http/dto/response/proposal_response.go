package response

import (
	"encoding/json"
	"strconv"
	"time"

	"corretora_seguros/internal/domain/entities"
	"corretora_seguros/internal/domain/views"
)

type ActionResponse struct {
	Name   string `json:"name"`
	Label  string `json:"label"`
	Status int    `json:"status"`
}

type ProposalResponse struct {
	ApoliceID          int64             `json:"apoliceId"`
	IDSeguro           int               `json:"idSeguro"`
	CPFCliente         string            `json:"cpfCliente"`
	DesUsuario         string            `json:"desUsuario"`
	ProdutoNome        string            `json:"produtoNome"`
	ProdutoSegurado    string            `json:"produtoSegurado"`
	VlrProdutoSegurado *json.Number      `json:"vlrProdutoSegurado"`
	PremioBruto        json.Number       `json:"premioBruto"`
	Parcelas           int               `json:"parcelas"`
	VlrParcela         json.Number       `json:"vlrParcela"`
	Status             string            `json:"status"`
	StatusLabel        string            `json:"statusLabel"`
	Placa              string            `json:"placa,omitempty"`
	IMEI               string            `json:"imei,omitempty"`
	CIB                string            `json:"cib,omitempty"`
	Detalhes           map[string]string `json:"detalhes,omitempty"`
	Actions            []ActionResponse  `json:"actions"`
	CreatedAt          time.Time         `json:"createdAt"`
	UpdatedAt          time.Time         `json:"updatedAt"`
}

func FromProposal(p entities.Proposal) ProposalResponse {
	var insured *json.Number
	if p.VlrProdutoSegurado != nil {
		v := Money(*p.VlrProdutoSegurado)
		insured = &v
	}
	actions := []ActionResponse{}
	for _, a := range views.Actions(p) {
		code := 1
		if a.TargetStatus == entities.ProposalStatusRejeitada {
			code = 2
		}
		actions = append(actions, ActionResponse{Name: a.Name, Label: a.Label, Status: code})
	}
	return ProposalResponse{
		ApoliceID:          p.ApoliceID,
		IDSeguro:           int(p.IDSeguro),
		CPFCliente:         p.CPFCliente,
		DesUsuario:         p.DesUsuario,
		ProdutoNome:        p.ProdutoNome,
		ProdutoSegurado:    p.ProdutoSegurado,
		VlrProdutoSegurado: insured,
		PremioBruto:        Money(p.PremioBruto),
		Parcelas:           p.Parcelas,
		VlrParcela:         Money(p.VlrParcela),
		Status:             string(p.Status),
		StatusLabel:        p.Status.Label(),
		Placa:              p.Placa,
		IMEI:               p.IMEI,
		CIB:                p.CIB,
		Detalhes:           p.Detalhes,
		Actions:            actions,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}

func FromProposals(list []entities.Proposal) []ProposalResponse {
	out := make([]ProposalResponse, 0, len(list))
	for _, p := range list {
		out = append(out, FromProposal(p))
	}
	return out
}

// ToEntity rebuilds the domain proposal on the consumer side.
func (r ProposalResponse) ToEntity() entities.Proposal {
	p := entities.Proposal{
		ApoliceID:       r.ApoliceID,
		IDSeguro:        entities.ProductKind(r.IDSeguro),
		CPFCliente:      r.CPFCliente,
		DesUsuario:      r.DesUsuario,
		ProdutoNome:     r.ProdutoNome,
		ProdutoSegurado: r.ProdutoSegurado,
		PremioBruto:     ParseMoney(r.PremioBruto),
		Parcelas:        r.Parcelas,
		VlrParcela:      ParseMoney(r.VlrParcela),
		Status:          entities.ProposalStatus(r.Status),
		Placa:           r.Placa,
		IMEI:            r.IMEI,
		CIB:             r.CIB,
		Detalhes:        r.Detalhes,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
	if r.VlrProdutoSegurado != nil {
		v := ParseMoney(*r.VlrProdutoSegurado)
		p.VlrProdutoSegurado = &v
	}
	return p
}

// SimulateResponse answers POST /simulate. Value is the gross premium.
type SimulateResponse struct {
	Value       json.Number `json:"value"`
	ApoliceID   int64       `json:"apoliceId"`
	Status      string      `json:"status"`
	Parcelas    int         `json:"parcelas"`
	VlrParcela  json.Number `json:"vlrParcela"`
	ProdutoNome string      `json:"produtoNome"`
	Message     string      `json:"message"`
}

func FromSimulation(p entities.Proposal) SimulateResponse {
	return SimulateResponse{
		Value:       Money(p.PremioBruto),
		ApoliceID:   p.ApoliceID,
		Status:      string(p.Status),
		Parcelas:    p.Parcelas,
		VlrParcela:  Money(p.VlrParcela),
		ProdutoNome: p.ProdutoNome,
		Message:     "Cotação registrada. Valor estimado: " + entities.FormatBRL(p.PremioBruto),
	}
}

func (r SimulateResponse) ToSimulation() entities.Simulation {
	return entities.Simulation{
		ApoliceID:  r.ApoliceID,
		Value:      ParseMoney(r.Value),
		Parcelas:   r.Parcelas,
		VlrParcela: ParseMoney(r.VlrParcela),
		Status:     entities.ProposalStatus(r.Status),
	}
}

// EffectuateResponse confirms a staff decision, e.g. "Proposta 501 aprovada".
type EffectuateResponse struct {
	Message  string           `json:"message"`
	Proposal ProposalResponse `json:"proposal"`
}

func FromEffectuated(p entities.Proposal) EffectuateResponse {
	return EffectuateResponse{
		Message:  EffectuateMessage(p.ApoliceID, p.Status),
		Proposal: FromProposal(p),
	}
}

func EffectuateMessage(apoliceID int64, status entities.ProposalStatus) string {
	return "Proposta " + strconv.FormatInt(apoliceID, 10) + " " + status.Action()
}
