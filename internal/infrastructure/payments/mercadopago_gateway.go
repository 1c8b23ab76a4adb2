package payments

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strconv"
	"time"

	appconfig "corretora_seguros/internal/config"
	"corretora_seguros/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
)

var (
	ErrMissingMercadoPagoAccessToken   = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")
	ErrMercadoPagoGatewayNotConfigured = errors.New("mercado pago gateway not configured")
)

// MercadoPagoGateway charges premium installments. In mock mode no request
// leaves the process and every charge is approved.
type MercadoPagoGateway struct {
	client   payment.Client
	mockMode bool
	now      func() time.Time
}

var _ interfaces.IPaymentGateway = (*MercadoPagoGateway)(nil)

func NewMercadoPagoGateway(cfg appconfig.PaymentsConfig) (*MercadoPagoGateway, error) {
	g := &MercadoPagoGateway{mockMode: cfg.MockMode, now: time.Now}
	if g.mockMode {
		log.Printf("[payment][gateway] mock charges enabled")
		return g, nil
	}
	if cfg.MercadoPagoAccessToken == "" {
		return nil, ErrMissingMercadoPagoAccessToken
	}

	sdkCfg, err := config.New(cfg.MercadoPagoAccessToken)
	if err != nil {
		log.Printf("[payment][gateway] sdk config err=%v", err)
		return nil, err
	}
	g.client = payment.NewClient(sdkCfg)
	return g, nil
}

func (g *MercadoPagoGateway) ChargeInstallment(ctx context.Context, payload json.RawMessage) (interfaces.InstallmentCharge, error) {
	switch {
	case g == nil:
		return interfaces.InstallmentCharge{}, ErrMercadoPagoGatewayNotConfigured
	case g.mockMode:
		return g.approveLocally(payload)
	case g.client == nil:
		return interfaces.InstallmentCharge{}, ErrMercadoPagoGatewayNotConfigured
	}

	var req payment.Request
	if err := json.Unmarshal(payload, &req); err != nil {
		return interfaces.InstallmentCharge{}, err
	}
	log.Printf("[payment][gateway] charge start amount=%.2f reference=%s", req.TransactionAmount, req.ExternalReference)

	resp, err := g.client.Create(ctx, req)
	if err != nil {
		log.Printf("[payment][gateway] charge failed reference=%s err=%v", req.ExternalReference, err)
		return interfaces.InstallmentCharge{}, err
	}
	raw, err := json.Marshal(resp)
	if err != nil {
		return interfaces.InstallmentCharge{}, err
	}

	charge := interfaces.InstallmentCharge{ProviderID: strconv.FormatInt(int64(resp.ID), 10), Status: resp.Status, Raw: raw}
	log.Printf("[payment][gateway] charge done reference=%s provider_id=%s status=%s", req.ExternalReference, charge.ProviderID, charge.Status)
	return charge, nil
}

// approveLocally answers like an accredited Mercado Pago payment, keeping the
// request fields so the stored payload stays traceable.
func (g *MercadoPagoGateway) approveLocally(payload json.RawMessage) (interfaces.InstallmentCharge, error) {
	body := map[string]any{}
	if len(payload) > 0 && json.Unmarshal(payload, &body) != nil {
		body = map[string]any{"request_payload_raw": string(payload)}
	}

	stamp := g.now().UTC().Format(time.RFC3339Nano)
	charge := interfaces.InstallmentCharge{ProviderID: "mock-" + uuid.NewString(), Status: "approved"}
	body["id"] = charge.ProviderID
	body["status"] = charge.Status
	body["status_detail"] = "accredited"
	body["date_created"] = stamp
	body["date_approved"] = stamp

	raw, err := json.Marshal(body)
	if err != nil {
		return interfaces.InstallmentCharge{}, err
	}
	charge.Raw = raw
	log.Printf("[payment][gateway] mock charge approved provider_id=%s", charge.ProviderID)
	return charge, nil
}
