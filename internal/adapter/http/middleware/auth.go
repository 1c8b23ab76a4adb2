package middleware

import (
	"log"
	"net/http"
	"strings"

	"corretora_seguros/internal/domain/entities"
	"corretora_seguros/internal/usecase"
	"corretora_seguros/internal/usecase/interfaces"
	"corretora_seguros/pkg"

	"github.com/gin-gonic/gin"
)

const claimsKey = "auth.claims"

var (
	errUnauthorized = pkg.NewDomainErrorSimple("UNAUTHORIZED", "Authentication required", http.StatusUnauthorized)
	errForbidden    = pkg.NewDomainErrorSimple("FORBIDDEN", "Access denied", http.StatusForbidden)
)

// Authenticate requires a valid bearer token and stores its claims in the context.
func Authenticate(auth usecase.IAuthUseCase) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		claims, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			log.Printf("[auth][middleware] rejected path=%s err=%v", c.FullPath(), err)
			c.AbortWithStatusJSON(errUnauthorized.HTTPStatus, errUnauthorized.ToHTTPError())
			return
		}
		c.Set(claimsKey, claims)
		c.Next()
	}
}

// RequireRole lets through only sessions with one of roles. Must run after Authenticate.
func RequireRole(roles ...entities.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := ClaimsFrom(c)
		if !ok {
			c.AbortWithStatusJSON(errUnauthorized.HTTPStatus, errUnauthorized.ToHTTPError())
			return
		}
		for _, r := range roles {
			if claims.Role == r {
				c.Next()
				return
			}
		}
		log.Printf("[auth][middleware] forbidden user_id=%s role=%s path=%s", claims.UserID, claims.Role, c.FullPath())
		c.AbortWithStatusJSON(errForbidden.HTTPStatus, errForbidden.ToHTTPError())
	}
}

// RequireOwnerOrStaff guards routes carrying a customer cpf path param.
func RequireOwnerOrStaff(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CanAccessCustomer(c, c.Param(param)) {
			c.AbortWithStatusJSON(errForbidden.HTTPStatus, errForbidden.ToHTTPError())
			return
		}
		c.Next()
	}
}

// CanAccessCustomer reports whether the session may read data of the customer cpf.
func CanAccessCustomer(c *gin.Context, cpf string) bool {
	claims, ok := ClaimsFrom(c)
	if !ok {
		return false
	}
	if claims.Role == entities.RoleFuncionario {
		return true
	}
	own := usecase.OnlyDigits(claims.CPF)
	return own != "" && own == usecase.OnlyDigits(cpf)
}

func ClaimsFrom(c *gin.Context) (interfaces.Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return interfaces.Claims{}, false
	}
	claims, ok := v.(interfaces.Claims)
	return claims, ok
}

// Forbidden writes the standard 403 body.
func Forbidden(c *gin.Context) {
	c.AbortWithStatusJSON(errForbidden.HTTPStatus, errForbidden.ToHTTPError())
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
