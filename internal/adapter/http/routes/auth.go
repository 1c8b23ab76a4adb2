package routes

import (
	"corretora_seguros/internal/adapter/http/handlers"
	"corretora_seguros/internal/adapter/http/middleware"
	"corretora_seguros/internal/usecase"

	"github.com/gin-gonic/gin"
)

const (
	PathPing = "/ping"
	PathAuth = "/auth"
)

func addPingRoutes(rg *gin.RouterGroup) {
	rg.GET(PathPing, handlers.Ping)
}

func addAuthRoutes(rg *gin.RouterGroup, authUseCase usecase.IAuthUseCase, authHandler *handlers.AuthHandler) {
	auth := rg.Group(PathAuth)
	{
		auth.POST("/login-cliente", authHandler.LoginCliente)
		auth.POST("/login-funcionario", authHandler.LoginFuncionario)
		auth.POST("/register", authHandler.Register)
		auth.GET("/me", middleware.Authenticate(authUseCase), authHandler.Me)
	}
}
