package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	request "corretora_seguros/internal/adapter/http/dto/request"
	response "corretora_seguros/internal/adapter/http/dto/response"
	"corretora_seguros/internal/adapter/http/middleware"
	"corretora_seguros/internal/domain/entities"
	"corretora_seguros/internal/domain/views"
	"corretora_seguros/internal/usecase"
	"corretora_seguros/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidApoliceID = pkg.NewDomainErrorSimple("INVALID_APOLICE_ID", "Invalid apolice id", http.StatusBadRequest)

// ProposalHandler serves the proposal lifecycle: simulation, staff queue and effectuation.

type ProposalHandler struct {
	usecase usecase.IProposalUseCase
}

func NewProposalHandler(uc usecase.IProposalUseCase) *ProposalHandler {
	return &ProposalHandler{usecase: uc}
}

// Simulate godoc
// @Summary Submit a quote
// @Description Prices the quote and stores it as a pending proposal. Body is {type, ...fields}.
// @Tags proposals
// @Accept json
// @Produce json
// @Security Bearer
// @Param body body object true "flat quote payload"
// @Success 201 {object} response.SimulateResponse
// @Failure 400 {object} pkg.HTTPError
// @Router /simulate [post]
func (h *ProposalHandler) Simulate(c *gin.Context) {
	var payload request.SimulateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, errInvalidRequest)
		return
	}
	q, err := payload.ToQuote()
	if err != nil {
		respondError(c, pkg.NewValidationError("Invalid fields", map[string]string{"type": "Tipo de seguro inválido"}, http.StatusBadRequest))
		return
	}

	claims, _ := middleware.ClaimsFrom(c)
	cmd := usecase.SimulateCommand{Quote: q, CustomerCPF: claims.CPF, CustomerName: claims.Name}

	created, err := h.usecase.Simulate(c.Request.Context(), cmd)
	if err != nil {
		log.Printf("[proposal][handler] simulate failed kind=%s err=%v", q.Kind, err)
		respondError(c, mapProposalError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromSimulation(created))
}

// List godoc
// @Summary List proposals
// @Tags proposals
// @Produce json
// @Security Bearer
// @Param status query string false "0, 1, 2 or all"
// @Param kind query string false "vehicle, home, phone, 1-3 or all"
// @Success 200 {array} response.ProposalResponse
// @Router /proposals [get]
func (h *ProposalHandler) List(c *gin.Context) {
	filter := views.Filter{Status: c.Query("status"), Kind: c.Query("kind")}
	list, err := h.usecase.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, mapProposalError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromProposals(list))
}

// ListPending godoc
// @Summary Staff queue of pending proposals
// @Tags proposals
// @Produce json
// @Security Bearer
// @Success 200 {array} response.ProposalResponse
// @Router /proposals/pending [get]
func (h *ProposalHandler) ListPending(c *gin.Context) {
	list, err := h.usecase.ListPending(c.Request.Context())
	if err != nil {
		respondError(c, mapProposalError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromProposals(list))
}

// GetByID godoc
// @Summary Get a proposal
// @Tags proposals
// @Produce json
// @Security Bearer
// @Param id path int true "apolice id"
// @Success 200 {object} response.ProposalResponse
// @Failure 404 {object} pkg.HTTPError
// @Router /proposals/{id} [get]
func (h *ProposalHandler) GetByID(c *gin.Context) {
	id, ok := apoliceIDParam(c)
	if !ok {
		return
	}
	p, err := h.usecase.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, mapProposalError(err))
		return
	}
	if !middleware.CanAccessCustomer(c, p.CPFCliente) {
		middleware.Forbidden(c)
		return
	}
	c.JSON(http.StatusOK, response.FromProposal(p))
}

// ListByCustomer godoc
// @Summary Proposals of a customer
// @Tags proposals
// @Produce json
// @Security Bearer
// @Param cpf path string true "customer cpf"
// @Success 200 {array} response.ProposalResponse
// @Router /customers/{cpf}/proposals [get]
func (h *ProposalHandler) ListByCustomer(c *gin.Context) {
	list, err := h.usecase.ListByCustomer(c.Request.Context(), c.Param("cpf"))
	if err != nil {
		respondError(c, mapProposalError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromProposals(list))
}

// ListPendingByCustomer godoc
// @Summary Pending proposals of a customer
// @Tags proposals
// @Produce json
// @Security Bearer
// @Param cpf path string true "customer cpf"
// @Success 200 {array} response.ProposalResponse
// @Router /customers/{cpf}/proposals/pending [get]
func (h *ProposalHandler) ListPendingByCustomer(c *gin.Context) {
	list, err := h.usecase.ListPendingByCustomer(c.Request.Context(), c.Param("cpf"))
	if err != nil {
		respondError(c, mapProposalError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromProposals(list))
}

// Effectuate godoc
// @Summary Approve or reject a pending proposal
// @Tags proposals
// @Accept json
// @Produce json
// @Security Bearer
// @Param body body request.EffectuateRequest true "decision"
// @Success 200 {object} response.EffectuateResponse
// @Failure 400 {object} pkg.HTTPError
// @Failure 404 {object} pkg.HTTPError
// @Failure 409 {object} pkg.HTTPError
// @Router /proposals/effectuate [post]
func (h *ProposalHandler) Effectuate(c *gin.Context) {
	var payload request.EffectuateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, errInvalidRequest)
		return
	}
	claims, _ := middleware.ClaimsFrom(c)
	log.Printf("[proposal][handler] effectuate apolice_id=%d status=%d by=%s", payload.IDApolice, payload.Status, claims.UserID)

	updated, err := h.usecase.Effectuate(c.Request.Context(), usecase.EffectuateCommand{
		ApoliceID:     payload.IDApolice,
		IDSeguro:      entities.ProductKind(payload.IDSeguro),
		Status:        payload.Status,
		Discriminants: payload.Discriminants(),
	})
	if err != nil {
		respondError(c, mapProposalError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromEffectuated(updated))
}

func apoliceIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, errInvalidApoliceID)
		return 0, false
	}
	return id, true
}

func mapProposalError(err error) *pkg.AppError {
	if appErr, ok := validationError(err); ok {
		return appErr
	}
	switch {
	case errors.Is(err, usecase.ErrInvalidApoliceID):
		return errInvalidApoliceID
	case errors.Is(err, usecase.ErrInvalidTargetStatus):
		return pkg.NewDomainErrorSimple("INVALID_TARGET_STATUS", "Target status must be 1 (approve) or 2 (reject)", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidProductKind):
		return pkg.NewDomainErrorSimple("INVALID_PRODUCT_KIND", "Invalid product kind", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrProductKindMismatch):
		return pkg.NewDomainErrorSimple("PRODUCT_KIND_MISMATCH", "Product kind does not match the proposal", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidCustomerCPF):
		return pkg.NewValidationError("Invalid fields", map[string]string{"cpf": usecase.MsgInvalidCPF}, http.StatusBadRequest)
	case errors.Is(err, usecase.ErrProposalNotFound):
		return pkg.NewDomainErrorSimple("PROPOSAL_NOT_FOUND", "Proposal not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrProposalNotPending):
		return pkg.NewDomainErrorSimple("PROPOSAL_NOT_PENDING", "Proposal is no longer pending", http.StatusConflict)
	default:
		return internalError(err)
	}
}
