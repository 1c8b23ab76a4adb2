package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	request "corretora_seguros/internal/adapter/http/dto/request"
	response "corretora_seguros/internal/adapter/http/dto/response"
	"corretora_seguros/internal/adapter/http/middleware"
	"corretora_seguros/internal/usecase"
	"corretora_seguros/pkg"

	"github.com/gin-gonic/gin"
)

// PremiumPaymentHandler charges installments of active policies.

type PremiumPaymentHandler struct {
	usecase   usecase.IPremiumPaymentUseCase
	proposals usecase.IProposalUseCase
	mockMode  bool
}

func NewPremiumPaymentHandler(uc usecase.IPremiumPaymentUseCase, proposals usecase.IProposalUseCase, mockMode bool) *PremiumPaymentHandler {
	return &PremiumPaymentHandler{usecase: uc, proposals: proposals, mockMode: mockMode}
}

// Pay godoc
// @Summary Pay the next installment of a policy
// @Description Body is a Mercado Pago payment request, bare or wrapped in {"mp_payload": ...}. The amount is always the proposal's installment value.
// @Tags payments
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "apolice id"
// @Param body body request.PremiumPaymentRequest false "payment"
// @Success 200 {object} response.PremiumPaymentResponse
// @Failure 400 {object} pkg.HTTPError
// @Failure 409 {object} pkg.HTTPError
// @Router /proposals/{id}/payments [post]
func (h *PremiumPaymentHandler) Pay(c *gin.Context) {
	id, ok := h.authorize(c)
	if !ok {
		return
	}
	log.Printf("[payment][handler] pay start apolice_id=%d", id)

	raw, err := c.GetRawData()
	if err != nil {
		respondError(c, errInvalidRequest)
		return
	}
	mpPayload, err := request.ChargePayload(raw)
	if err != nil {
		if !h.mockMode {
			log.Printf("[payment][handler] invalid payload apolice_id=%d err=%v", id, err)
			respondError(c, errInvalidRequest)
			return
		}
		mpPayload = json.RawMessage("{}")
	}

	created, err := h.usecase.Pay(c.Request.Context(), id, mpPayload)
	if err != nil {
		log.Printf("[payment][handler] pay failed apolice_id=%d err=%v", id, err)
		respondError(c, mapPremiumPaymentError(err))
		return
	}
	log.Printf("[payment][handler] pay success apolice_id=%d payment_id=%s status=%s", id, created.ProviderID, created.Status)
	c.JSON(http.StatusOK, response.FromPremiumPayment(created))
}

// Latest godoc
// @Summary Latest payment of a policy
// @Tags payments
// @Produce json
// @Security Bearer
// @Param id path int true "apolice id"
// @Success 200 {object} response.PremiumPaymentResponse
// @Failure 404 {object} pkg.HTTPError
// @Router /proposals/{id}/payments [get]
func (h *PremiumPaymentHandler) Latest(c *gin.Context) {
	id, ok := h.authorize(c)
	if !ok {
		return
	}
	latest, err := h.usecase.Latest(c.Request.Context(), id)
	if err != nil {
		respondError(c, mapPremiumPaymentError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromPremiumPayment(latest))
}

// authorize resolves the path id and checks the session owns the proposal.
func (h *PremiumPaymentHandler) authorize(c *gin.Context) (int64, bool) {
	id, ok := apoliceIDParam(c)
	if !ok {
		return 0, false
	}
	p, err := h.proposals.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, mapPremiumPaymentError(err))
		return 0, false
	}
	if !middleware.CanAccessCustomer(c, p.CPFCliente) {
		middleware.Forbidden(c)
		return 0, false
	}
	return id, true
}

func mapPremiumPaymentError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidApoliceID), errors.Is(err, usecase.ErrInvalidMPPayload), errors.Is(err, usecase.ErrPaymentGatewayBadRequest):
		return errInvalidRequest
	case errors.Is(err, usecase.ErrPaymentGatewayCustomerNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_CUSTOMER_NOT_FOUND", "Payer not found for this Mercado Pago test context", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayInvalidUsers):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_INVALID_USERS", "Invalid users involved between seller token and payer test user", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayUnauthorized):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAUTHORIZED", "Payment provider unauthorized", http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrProposalNotFound):
		return pkg.NewDomainErrorSimple("PROPOSAL_NOT_FOUND", "Proposal not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrProposalNotApproved):
		return pkg.NewDomainErrorSimple("PROPOSAL_NOT_APPROVED", "Proposal not approved", http.StatusConflict)
	case errors.Is(err, usecase.ErrAllInstallmentsPaid):
		return pkg.NewDomainErrorSimple("ALL_INSTALLMENTS_PAID", "All installments already paid", http.StatusConflict)
	case errors.Is(err, usecase.ErrPaymentInProgress):
		return pkg.NewDomainErrorSimple("PAYMENT_IN_PROGRESS", "Payment already in progress for this installment", http.StatusConflict)
	case errors.Is(err, usecase.ErrPremiumPaymentNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Payment not found", http.StatusNotFound)
	default:
		return internalError(err)
	}
}
