package request

import "corretora_seguros/internal/domain/entities"

// EffectuateRequest is the staff decision on a pending proposal.
// Status is 1 (approve) or 2 (reject); other values, 0 included, are left for
// the use case to reject.
type EffectuateRequest struct {
	IDApolice int64  `json:"idApolice" binding:"required"`
	IDSeguro  int    `json:"idSeguro" binding:"required"`
	Status    int    `json:"status"`
	Placa     string `json:"placa,omitempty"`
	IMEI      string `json:"imei,omitempty"`
	CIB       string `json:"cib,omitempty"`
}

func (r EffectuateRequest) Discriminants() entities.Discriminants {
	return entities.Discriminants{Placa: r.Placa, IMEI: r.IMEI, CIB: r.CIB}
}
