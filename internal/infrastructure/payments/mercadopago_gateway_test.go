package payments

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	appconfig "corretora_seguros/internal/config"
)

func TestNewMercadoPagoGateway_MissingToken(t *testing.T) {
	_, err := NewMercadoPagoGateway(appconfig.PaymentsConfig{})
	if !errors.Is(err, ErrMissingMercadoPagoAccessToken) {
		t.Fatalf("expected missing token error, got %v", err)
	}
}

func TestMercadoPagoGateway_MockMode(t *testing.T) {
	g, err := NewMercadoPagoGateway(appconfig.PaymentsConfig{MockMode: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	g.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }

	charge, err := g.ChargeInstallment(context.Background(), json.RawMessage(`{"transaction_amount":150.25,"external_reference":"apolice-501-parcela-1"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(charge.ProviderID, "mock-") {
		t.Fatalf("unexpected id %q", charge.ProviderID)
	}
	if charge.Status != "approved" {
		t.Fatalf("unexpected status %q", charge.Status)
	}

	var resp map[string]any
	if err := json.Unmarshal(charge.Raw, &resp); err != nil {
		t.Fatalf("invalid response json: %v", err)
	}
	if resp["external_reference"] != "apolice-501-parcela-1" {
		t.Fatalf("request fields should be echoed, got %v", resp["external_reference"])
	}
	if resp["date_approved"] != "2026-03-01T12:00:00Z" {
		t.Fatalf("unexpected date_approved %v", resp["date_approved"])
	}
}

func TestMercadoPagoGateway_NotConfigured(t *testing.T) {
	var g *MercadoPagoGateway
	if _, err := g.ChargeInstallment(context.Background(), json.RawMessage(`{}`)); !errors.Is(err, ErrMercadoPagoGatewayNotConfigured) {
		t.Fatalf("expected not configured error, got %v", err)
	}
}
