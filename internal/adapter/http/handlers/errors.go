package handlers

import (
	"errors"
	"net/http"

	"corretora_seguros/internal/usecase"
	"corretora_seguros/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidRequest = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)

func respondError(c *gin.Context, appErr *pkg.AppError) {
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

// validationError converts a field-tagged use case error, if err is one.
func validationError(err error) (*pkg.AppError, bool) {
	var verr *usecase.ValidationError
	if !errors.As(err, &verr) {
		return nil, false
	}
	return pkg.NewValidationError("Invalid fields", verr.Fields, http.StatusBadRequest), true
}

func internalError(err error) *pkg.AppError {
	return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
}
