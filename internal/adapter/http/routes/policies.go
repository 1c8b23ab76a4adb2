package routes

import (
	"corretora_seguros/internal/adapter/http/handlers"
	"corretora_seguros/internal/adapter/http/middleware"
	"corretora_seguros/internal/domain/entities"

	"github.com/gin-gonic/gin"
)

const PathPolicies = "/policies"

func addPolicyRoutes(rg *gin.RouterGroup, policyHandler *handlers.PolicyHandler) {
	staff := middleware.RequireRole(entities.RoleFuncionario)

	policies := rg.Group(PathPolicies)
	{
		policies.GET("", policyHandler.List)
		policies.POST("", staff, policyHandler.Create)
		policies.GET("/:id", policyHandler.Get)
		policies.PUT("/:id", staff, policyHandler.Update)
		policies.DELETE("/:id", staff, policyHandler.Delete)
		policies.GET("/:id/pdf", policyHandler.PDF)
	}
}
