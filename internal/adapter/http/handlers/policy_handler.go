package handlers

import (
	"errors"
	"fmt"
	"net/http"

	request "corretora_seguros/internal/adapter/http/dto/request"
	response "corretora_seguros/internal/adapter/http/dto/response"
	"corretora_seguros/internal/adapter/http/middleware"
	"corretora_seguros/internal/domain/entities"
	"corretora_seguros/internal/usecase"
	"corretora_seguros/pkg"

	"github.com/gin-gonic/gin"
)

// PolicyHandler serves the generic /policies API. Routes are only mounted
// when POLICIES_API_ENABLED is set.

type PolicyHandler struct {
	usecase usecase.IPolicyUseCase
}

func NewPolicyHandler(uc usecase.IPolicyUseCase) *PolicyHandler {
	return &PolicyHandler{usecase: uc}
}

// List godoc
// @Summary List policies (customers only see their own)
// @Tags policies
// @Produce json
// @Security Bearer
// @Success 200 {array} response.PolicyResponse
// @Router /policies [get]
func (h *PolicyHandler) List(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		middleware.Forbidden(c)
		return
	}
	var (
		list []entities.Policy
		err  error
	)
	if claims.Role == entities.RoleFuncionario {
		list, err = h.usecase.List(c.Request.Context())
	} else {
		list, err = h.usecase.ListByCustomer(c.Request.Context(), claims.CPF)
	}
	if err != nil {
		respondError(c, mapPolicyError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromPolicies(list))
}

// Get godoc
// @Summary Get a policy
// @Tags policies
// @Produce json
// @Security Bearer
// @Param id path string true "policy id"
// @Success 200 {object} response.PolicyResponse
// @Failure 403 {object} pkg.HTTPError
// @Failure 404 {object} pkg.HTTPError
// @Router /policies/{id} [get]
func (h *PolicyHandler) Get(c *gin.Context) {
	p, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, mapPolicyError(err))
		return
	}
	if !middleware.CanAccessCustomer(c, p.CustomerCPF) {
		middleware.Forbidden(c)
		return
	}
	c.JSON(http.StatusOK, response.FromPolicy(p))
}

// Create godoc
// @Summary Create a policy
// @Tags policies
// @Accept json
// @Produce json
// @Security Bearer
// @Param body body request.PolicyRequest true "policy"
// @Success 201 {object} response.PolicyResponse
// @Failure 400 {object} pkg.HTTPError
// @Router /policies [post]
func (h *PolicyHandler) Create(c *gin.Context) {
	in, ok := bindPolicyInput(c)
	if !ok {
		return
	}
	p, err := h.usecase.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, mapPolicyError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromPolicy(p))
}

// Update godoc
// @Summary Update a policy
// @Tags policies
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "policy id"
// @Param body body request.PolicyRequest true "policy"
// @Success 200 {object} response.PolicyResponse
// @Failure 404 {object} pkg.HTTPError
// @Router /policies/{id} [put]
func (h *PolicyHandler) Update(c *gin.Context) {
	in, ok := bindPolicyInput(c)
	if !ok {
		return
	}
	p, err := h.usecase.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		respondError(c, mapPolicyError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromPolicy(p))
}

// Delete godoc
// @Summary Delete a policy
// @Tags policies
// @Security Bearer
// @Param id path string true "policy id"
// @Success 204
// @Failure 404 {object} pkg.HTTPError
// @Router /policies/{id} [delete]
func (h *PolicyHandler) Delete(c *gin.Context) {
	if err := h.usecase.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, mapPolicyError(err))
		return
	}
	c.Status(http.StatusNoContent)
}

// PDF godoc
// @Summary Policy document
// @Tags policies
// @Produce application/pdf
// @Security Bearer
// @Param id path string true "policy id"
// @Success 200 {file} binary
// @Failure 403 {object} pkg.HTTPError
// @Failure 404 {object} pkg.HTTPError
// @Router /policies/{id}/pdf [get]
func (h *PolicyHandler) PDF(c *gin.Context) {
	id := c.Param("id")
	p, doc, err := h.usecase.Document(c.Request.Context(), id)
	if err != nil {
		respondError(c, mapPolicyError(err))
		return
	}
	if !middleware.CanAccessCustomer(c, p.CustomerCPF) {
		middleware.Forbidden(c)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="apolice-%s.pdf"`, id))
	c.Data(http.StatusOK, "application/pdf", doc)
}

func bindPolicyInput(c *gin.Context) (usecase.PolicyInput, bool) {
	var payload request.PolicyRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, errInvalidRequest)
		return usecase.PolicyInput{}, false
	}

	fields := map[string]string{}
	kind, err := payload.ResolveType()
	if err != nil {
		fields["type"] = "Tipo de seguro inválido"
	}
	premium, coverage, err := payload.ResolveAmounts()
	if err != nil {
		fields["premium"] = usecase.MsgInvalidValue
	}
	start, end, err := payload.ResolveDates()
	if err != nil {
		fields["startDate"] = "Data inválida"
	}
	if len(fields) > 0 {
		respondError(c, pkg.NewValidationError("Invalid fields", fields, http.StatusBadRequest))
		return usecase.PolicyInput{}, false
	}

	return usecase.PolicyInput{
		CustomerCPF:  payload.CustomerCPF,
		CustomerName: payload.CustomerName,
		Type:         kind,
		Description:  payload.Description,
		Premium:      premium,
		Coverage:     coverage,
		Status:       payload.ResolveStatus(),
		StartDate:    start,
		EndDate:      end,
	}, true
}

func mapPolicyError(err error) *pkg.AppError {
	if appErr, ok := validationError(err); ok {
		return appErr
	}
	switch {
	case errors.Is(err, usecase.ErrInvalidPolicyID):
		return errInvalidRequest
	case errors.Is(err, usecase.ErrPolicyNotFound):
		return pkg.NewDomainErrorSimple("POLICY_NOT_FOUND", "Policy not found", http.StatusNotFound)
	default:
		return internalError(err)
	}
}
