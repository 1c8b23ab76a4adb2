package routes

import (
	"corretora_seguros/internal/adapter/http/handlers"
	"corretora_seguros/internal/adapter/http/middleware"
	"corretora_seguros/internal/domain/entities"

	"github.com/gin-gonic/gin"
)

const (
	PathSimulate  = "/simulate"
	PathProposals = "/proposals"
	PathCustomers = "/customers"
	PathDashboard = "/dashboard"
)

func addProposalRoutes(rg *gin.RouterGroup, proposalHandler *handlers.ProposalHandler, paymentHandler *handlers.PremiumPaymentHandler) {
	staff := middleware.RequireRole(entities.RoleFuncionario)
	anyRole := middleware.RequireRole(entities.RoleCliente, entities.RoleFuncionario)

	rg.POST(PathSimulate, anyRole, proposalHandler.Simulate)

	proposals := rg.Group(PathProposals)
	{
		proposals.GET("", staff, proposalHandler.List)
		proposals.GET("/pending", staff, proposalHandler.ListPending)
		proposals.POST("/effectuate", staff, proposalHandler.Effectuate)
		// Ownership is checked inside the handlers, after the proposal is loaded.
		proposals.GET("/:id", proposalHandler.GetByID)
		proposals.POST("/:id/payments", paymentHandler.Pay)
		proposals.GET("/:id/payments", paymentHandler.Latest)
	}
}

func addCustomerRoutes(rg *gin.RouterGroup, proposalHandler *handlers.ProposalHandler) {
	customers := rg.Group(PathCustomers+"/:cpf", middleware.RequireOwnerOrStaff("cpf"))
	{
		customers.GET("/proposals", proposalHandler.ListByCustomer)
		customers.GET("/proposals/pending", proposalHandler.ListPendingByCustomer)
	}
}

func addDashboardRoutes(rg *gin.RouterGroup, dashboardHandler *handlers.DashboardHandler) {
	dashboard := rg.Group(PathDashboard)
	{
		dashboard.GET("/customer/:cpf", middleware.RequireOwnerOrStaff("cpf"), dashboardHandler.Customer)
		dashboard.GET("/staff", middleware.RequireRole(entities.RoleFuncionario), dashboardHandler.Staff)
	}
}
