package handlers

import (
	"net/http"

	response "corretora_seguros/internal/adapter/http/dto/response"
	"corretora_seguros/internal/usecase"

	"github.com/gin-gonic/gin"
)

// DashboardHandler exposes the read projections of the proposal list.

type DashboardHandler struct {
	usecase usecase.IProposalUseCase
}

func NewDashboardHandler(uc usecase.IProposalUseCase) *DashboardHandler {
	return &DashboardHandler{usecase: uc}
}

// Customer godoc
// @Summary Customer "my policies" view
// @Tags dashboard
// @Produce json
// @Security Bearer
// @Param cpf path string true "customer cpf"
// @Success 200 {object} response.CustomerDashboardResponse
// @Router /dashboard/customer/{cpf} [get]
func (h *DashboardHandler) Customer(c *gin.Context) {
	cpf := usecase.OnlyDigits(c.Param("cpf"))
	portfolio, err := h.usecase.CustomerPortfolio(c.Request.Context(), cpf)
	if err != nil {
		respondError(c, mapProposalError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromPortfolio(cpf, portfolio))
}

// Staff godoc
// @Summary Staff counters
// @Tags dashboard
// @Produce json
// @Security Bearer
// @Success 200 {object} response.StaffDashboardResponse
// @Router /dashboard/staff [get]
func (h *DashboardHandler) Staff(c *gin.Context) {
	m, err := h.usecase.StaffMetrics(c.Request.Context())
	if err != nil {
		respondError(c, mapProposalError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromMetrics(m))
}
