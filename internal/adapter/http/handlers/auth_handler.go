package handlers

import (
	"errors"
	"log"
	"net/http"

	request "corretora_seguros/internal/adapter/http/dto/request"
	response "corretora_seguros/internal/adapter/http/dto/response"
	"corretora_seguros/internal/adapter/http/middleware"
	"corretora_seguros/internal/domain/entities"
	"corretora_seguros/internal/usecase"
	"corretora_seguros/pkg"

	"github.com/gin-gonic/gin"
)

// AuthHandler is the session provider consumed by the web app.

type AuthHandler struct {
	usecase usecase.IAuthUseCase
}

func NewAuthHandler(uc usecase.IAuthUseCase) *AuthHandler {
	return &AuthHandler{usecase: uc}
}

// LoginCliente godoc
// @Summary Customer login
// @Tags auth
// @Accept json
// @Produce json
// @Param body body request.LoginRequest true "credentials"
// @Success 200 {object} response.LoginResponse
// @Failure 401 {object} pkg.HTTPError
// @Router /auth/login-cliente [post]
func (h *AuthHandler) LoginCliente(c *gin.Context) {
	h.login(c, entities.RoleCliente)
}

// LoginFuncionario godoc
// @Summary Staff login
// @Tags auth
// @Accept json
// @Produce json
// @Param body body request.LoginRequest true "credentials"
// @Success 200 {object} response.LoginResponse
// @Failure 401 {object} pkg.HTTPError
// @Router /auth/login-funcionario [post]
func (h *AuthHandler) LoginFuncionario(c *gin.Context) {
	h.login(c, entities.RoleFuncionario)
}

func (h *AuthHandler) login(c *gin.Context, role entities.Role) {
	var payload request.LoginRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, errInvalidRequest)
		return
	}

	res, err := h.usecase.Login(c.Request.Context(), payload.Email, payload.Senha, role)
	if err != nil {
		log.Printf("[auth][handler] login failed role=%s err=%v", role, err)
		respondError(c, mapAuthError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromLogin(res.Token, res.User))
}

// Register godoc
// @Summary Customer registration
// @Tags auth
// @Accept json
// @Produce json
// @Param body body request.RegisterRequest true "account"
// @Success 201 {object} response.UserResponse
// @Failure 400 {object} pkg.HTTPError
// @Failure 409 {object} pkg.HTTPError
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var payload request.RegisterRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, errInvalidRequest)
		return
	}

	user, err := h.usecase.Register(c.Request.Context(), usecase.RegisterCommand{
		Name:     payload.Nome,
		Email:    payload.Email,
		CPF:      payload.CPF,
		Password: payload.Senha,
		Role:     entities.RoleCliente,
	})
	if err != nil {
		respondError(c, mapAuthError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromUser(user))
}

// Me godoc
// @Summary Current session
// @Tags auth
// @Produce json
// @Security Bearer
// @Success 200 {object} response.UserResponse
// @Failure 401 {object} pkg.HTTPError
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		respondError(c, mapAuthError(usecase.ErrUnauthenticated))
		return
	}
	c.JSON(http.StatusOK, response.FromClaims(claims))
}

func mapAuthError(err error) *pkg.AppError {
	if appErr, ok := validationError(err); ok {
		return appErr
	}
	switch {
	case errors.Is(err, usecase.ErrInvalidCredentials):
		return pkg.NewDomainErrorSimple("INVALID_CREDENTIALS", "Invalid credentials", http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrUnauthenticated):
		return pkg.NewDomainErrorSimple("UNAUTHORIZED", "Authentication required", http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrEmailAlreadyRegistered):
		return pkg.NewDomainErrorSimple("EMAIL_ALREADY_REGISTERED", "Email already registered", http.StatusConflict)
	default:
		return internalError(err)
	}
}
