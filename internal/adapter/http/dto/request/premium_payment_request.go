package request

import (
	"bytes"
	"encoding/json"
	"errors"
)

var (
	ErrChargeBodyNotJSON = errors.New("charge body is not valid json")
	ErrEmptyMPPayload    = errors.New("mp_payload cannot be empty")
)

// PremiumPaymentRequest is the optional envelope of POST /proposals/:id/payments.
//
// `mp_payload` is forwarded as-is to support varying Mercado Pago schemas; a
// bare Mercado Pago body is accepted too.
type PremiumPaymentRequest struct {
	MPPayload json.RawMessage `json:"mp_payload"`
}

// ChargePayload extracts the provider body from raw. An empty body becomes {}.
func ChargePayload(raw []byte) (json.RawMessage, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return json.RawMessage("{}"), nil
	}
	if !json.Valid(raw) {
		return nil, ErrChargeBodyNotJSON
	}

	var probe map[string]json.RawMessage
	if json.Unmarshal(raw, &probe) != nil {
		return json.RawMessage(raw), nil
	}
	if _, wrapped := probe["mp_payload"]; !wrapped {
		return json.RawMessage(raw), nil
	}

	var req PremiumPaymentRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return nil, err
	}
	if inner := bytes.TrimSpace(req.MPPayload); len(inner) == 0 || bytes.Equal(inner, []byte("null")) {
		return nil, ErrEmptyMPPayload
	}
	return req.MPPayload, nil
}
