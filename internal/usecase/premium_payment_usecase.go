package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"corretora_seguros/internal/config"
	"corretora_seguros/internal/domain/entities"
	"corretora_seguros/internal/infrastructure/metrics"
	"corretora_seguros/internal/usecase/interfaces"
)

var (
	ErrPremiumPaymentNotFound         = errors.New("premium payment not found")
	ErrInvalidMPPayload               = errors.New("invalid mercado pago payload")
	ErrProposalNotApproved            = errors.New("proposal not approved")
	ErrAllInstallmentsPaid            = errors.New("all installments already paid")
	ErrPaymentInProgress              = errors.New("payment already in progress")
	ErrPaymentGatewayBadRequest       = errors.New("payment gateway bad request")
	ErrPaymentGatewayUnauthorized     = errors.New("payment gateway unauthorized")
	ErrPaymentGatewayInvalidUsers     = errors.New("payment gateway invalid users involved")
	ErrPaymentGatewayCustomerNotFound = errors.New("payment gateway customer not found")
)

// sandboxPayerEmail is the test buyer Mercado Pago documents for TEST- tokens.
const sandboxPayerEmail = "test_user_br@testuser.com"

// IPremiumPaymentUseCase charges policy installments:
//   - Pay => charge the next installment of an approved proposal
//   - Latest/ListByApoliceID => payment history

type IPremiumPaymentUseCase interface {
	Pay(ctx context.Context, apoliceID int64, mpPayload json.RawMessage) (entities.PremiumPayment, error)
	Latest(ctx context.Context, apoliceID int64) (entities.PremiumPayment, error)
	ListByApoliceID(ctx context.Context, apoliceID int64) ([]entities.PremiumPayment, error)
}

type PremiumPaymentUseCase struct {
	repo      interfaces.IPremiumPaymentRepository
	proposals interfaces.IProposalRepository
	gateway   interfaces.IPaymentGateway
	cfg       config.PaymentsConfig
	now       func() time.Time
}

var _ IPremiumPaymentUseCase = (*PremiumPaymentUseCase)(nil)

func NewPremiumPaymentUseCase(repo interfaces.IPremiumPaymentRepository, proposals interfaces.IProposalRepository, gateway interfaces.IPaymentGateway, cfg config.PaymentsConfig) *PremiumPaymentUseCase {
	return &PremiumPaymentUseCase{repo: repo, proposals: proposals, gateway: gateway, cfg: cfg, now: time.Now}
}

// Pay charges the next installment without an approved or in-flight payment.
// The slot is reserved before the gateway is called, so concurrent calls for the
// same policy charge it once; the loser gets ErrPaymentInProgress. The amount
// always comes from the stored proposal, whatever the payload says.
func (u *PremiumPaymentUseCase) Pay(ctx context.Context, apoliceID int64, mpPayload json.RawMessage) (entities.PremiumPayment, error) {
	log.Printf("[payment][usecase] pay start apolice_id=%d payload_len=%d", apoliceID, len(mpPayload))
	if apoliceID <= 0 {
		return entities.PremiumPayment{}, ErrInvalidApoliceID
	}
	if len(mpPayload) == 0 || !json.Valid(mpPayload) {
		if !u.cfg.MockMode {
			log.Printf("[payment][usecase] invalid payload apolice_id=%d", apoliceID)
			return entities.PremiumPayment{}, ErrInvalidMPPayload
		}
		mpPayload = json.RawMessage("{}")
	}
	if u.gateway == nil {
		return entities.PremiumPayment{}, errors.New("payment gateway not configured")
	}

	proposal, err := u.proposals.GetByID(ctx, apoliceID)
	if err != nil {
		log.Printf("[payment][usecase] failed loading proposal apolice_id=%d err=%v", apoliceID, err)
		return entities.PremiumPayment{}, err
	}
	if proposal.ApoliceID == 0 {
		return entities.PremiumPayment{}, ErrProposalNotFound
	}
	if !proposal.IsPolicy() {
		log.Printf("[payment][usecase] proposal not approved apolice_id=%d status=%s", apoliceID, proposal.Status)
		return entities.PremiumPayment{}, ErrProposalNotApproved
	}

	history, err := u.repo.ListByApoliceID(ctx, apoliceID)
	if err != nil {
		return entities.PremiumPayment{}, err
	}
	installment := nextInstallment(history)
	if proposal.Parcelas > 0 && installment > proposal.Parcelas {
		return entities.PremiumPayment{}, ErrAllInstallmentsPaid
	}

	var reqMap map[string]any
	if err := json.Unmarshal(mpPayload, &reqMap); err != nil || reqMap == nil {
		return entities.PremiumPayment{}, ErrInvalidMPPayload
	}
	if !u.cfg.MockMode {
		if !hasNonEmptyString(reqMap, "payment_method_id") {
			log.Printf("[payment][usecase] missing payment_method_id apolice_id=%d", apoliceID)
			return entities.PremiumPayment{}, ErrInvalidMPPayload
		}
		u.ensurePayerDefaults(reqMap)
		if !hasPayer(reqMap) {
			log.Printf("[payment][usecase] missing/invalid payer apolice_id=%d", apoliceID)
			return entities.PremiumPayment{}, ErrInvalidMPPayload
		}
	}
	if _, ok := reqMap["external_reference"]; !ok {
		reqMap["external_reference"] = fmt.Sprintf("apolice-%d-parcela-%d", apoliceID, installment)
	}
	if _, ok := reqMap["description"]; !ok {
		reqMap["description"] = fmt.Sprintf("%s - apólice %d - parcela %d/%d", proposal.ProdutoNome, apoliceID, installment, proposal.Parcelas)
	}
	amount, _ := proposal.VlrParcela.Float64()
	reqMap["transaction_amount"] = amount
	if mpPayload, err = json.Marshal(reqMap); err != nil {
		return entities.PremiumPayment{}, err
	}

	slot, err := u.repo.Reserve(ctx, entities.PremiumPayment{
		ID:          entities.InstallmentSlot(apoliceID, installment),
		ApoliceID:   apoliceID,
		Installment: installment,
		Amount:      proposal.VlrParcela,
		Date:        u.now().UTC(),
		Status:      entities.PaymentStatusPendente,
	})
	if errors.Is(err, interfaces.ErrInstallmentTaken) {
		log.Printf("[payment][usecase] installment busy apolice_id=%d installment=%d", apoliceID, installment)
		return entities.PremiumPayment{}, ErrPaymentInProgress
	}
	if err != nil {
		log.Printf("[payment][usecase] reserve failed apolice_id=%d installment=%d err=%v", apoliceID, installment, err)
		return entities.PremiumPayment{}, err
	}

	charge, err := u.gateway.ChargeInstallment(ctx, mpPayload)
	if err != nil {
		log.Printf("[payment][usecase] payment gateway failed apolice_id=%d err=%v", apoliceID, err)
		metrics.PremiumPayment(string(entities.PaymentStatusNegado))
		slot.Status = entities.PaymentStatusNegado
		if _, saveErr := u.repo.Save(ctx, slot); saveErr != nil {
			log.Printf("[payment][usecase] release failed slot=%s err=%v", slot.ID, saveErr)
		}
		return entities.PremiumPayment{}, classifyGatewayError(err)
	}
	log.Printf("[payment][usecase] gateway success apolice_id=%d provider_payment_id=%s provider_status=%s", apoliceID, charge.ProviderID, charge.Status)

	var parsed map[string]interface{}
	if err := json.Unmarshal(charge.Raw, &parsed); err != nil {
		log.Printf("[payment][usecase] provider response unmarshal failed apolice_id=%d err=%v", apoliceID, err)
	}

	slot.ProviderID = charge.ProviderID
	slot.Status = paymentStatusFromProvider(charge.Status)
	slot.ProviderPayloadRaw = charge.Raw
	slot.ProviderPayload = parsed
	saved, err := u.repo.Save(ctx, slot)
	if err != nil {
		log.Printf("[payment][usecase] repository save failed apolice_id=%d slot=%s provider_payment_id=%s err=%v", apoliceID, slot.ID, slot.ProviderID, err)
		return entities.PremiumPayment{}, err
	}
	metrics.PremiumPayment(string(saved.Status))
	log.Printf("[payment][usecase] pay success apolice_id=%d payment_id=%s installment=%d status=%s", apoliceID, saved.ProviderID, saved.Installment, saved.Status)
	return saved, nil
}

func (u *PremiumPaymentUseCase) Latest(ctx context.Context, apoliceID int64) (entities.PremiumPayment, error) {
	list, err := u.ListByApoliceID(ctx, apoliceID)
	if err != nil {
		return entities.PremiumPayment{}, err
	}
	if len(list) == 0 {
		return entities.PremiumPayment{}, ErrPremiumPaymentNotFound
	}
	latest := list[0]
	for _, p := range list[1:] {
		if p.Date.After(latest.Date) {
			latest = p
		}
	}
	return latest, nil
}

func (u *PremiumPaymentUseCase) ListByApoliceID(ctx context.Context, apoliceID int64) ([]entities.PremiumPayment, error) {
	if apoliceID <= 0 {
		return nil, ErrInvalidApoliceID
	}
	return u.repo.ListByApoliceID(ctx, apoliceID)
}

func (u *PremiumPaymentUseCase) ensurePayerDefaults(m map[string]any) {
	v, ok := m["payer"]
	if !ok || v == nil {
		v = map[string]any{}
		m["payer"] = v
	}
	payer, ok := v.(map[string]any)
	if !ok {
		return
	}
	if _, ok := payer["type"]; !ok {
		payer["type"] = "customer"
	}
	if hasPayerID(payer) || hasNonEmptyString(payer, "email") {
		return
	}
	if u.cfg.TestPayerEmail != "" {
		payer["email"] = u.cfg.TestPayerEmail
	} else if strings.HasPrefix(u.cfg.MercadoPagoAccessToken, "TEST-") {
		payer["email"] = sandboxPayerEmail
	}
}

// nextInstallment is the lowest installment not held by an approved or
// pending payment.
func nextInstallment(history []entities.PremiumPayment) int {
	held := make(map[int]bool, len(history))
	for _, p := range history {
		if p.HoldsInstallment() {
			held[p.Installment] = true
		}
	}
	n := 1
	for held[n] {
		n++
	}
	return n
}

func paymentStatusFromProvider(status string) entities.PaymentStatus {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "approved", "authorized":
		return entities.PaymentStatusAprovado
	case "rejected", "cancelled", "refunded", "charged_back":
		return entities.PaymentStatusNegado
	}
	return entities.PaymentStatusPendente
}

func classifyGatewayError(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "customer not found") || strings.Contains(msg, `"code":2002`):
		return ErrPaymentGatewayCustomerNotFound
	case strings.Contains(msg, "invalid users involved") || strings.Contains(msg, `"code":2034`):
		return ErrPaymentGatewayInvalidUsers
	case strings.Contains(msg, `"error":"unauthorized"`) || strings.Contains(msg, `"status":401`):
		return ErrPaymentGatewayUnauthorized
	case strings.Contains(msg, `"error":"bad_request"`) || strings.Contains(msg, `"status":400`):
		return ErrPaymentGatewayBadRequest
	}
	return err
}

func hasNonEmptyString(m map[string]any, key string) bool {
	s, ok := m[key].(string)
	return ok && strings.TrimSpace(s) != ""
}

func hasPayer(m map[string]any) bool {
	payer, ok := m["payer"].(map[string]any)
	if !ok {
		return false
	}
	return hasNonEmptyString(payer, "email") || hasPayerID(payer)
}

func hasPayerID(payer map[string]any) bool {
	v, ok := payer["id"]
	if !ok || v == nil {
		return false
	}
	s := strings.TrimSpace(fmt.Sprintf("%v", v))
	return s != "" && s != "<nil>"
}
