package routes

import (
	"errors"
	"net/http"

	"taskboard/middleware"
	"taskboard/pkg/apierrors"
	"taskboard/services"

	"github.com/gin-gonic/gin"
)

// handleServiceError maps store errors to responses. Anything unexpected is
// recorded on the context for the error handler middleware.
func handleServiceError(c *gin.Context, err error) {
	lang := middleware.GetLang(c)

	var validationErr *services.ValidationError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, apierrors.CreateValidationError(http.StatusBadRequest, validationErr.Fields, lang))
	case errors.Is(err, services.ErrInvalidID):
		c.JSON(http.StatusBadRequest, apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidID, lang))
	case errors.Is(err, services.ErrIDMismatch):
		c.JSON(http.StatusBadRequest, apierrors.CreateError(http.StatusBadRequest, apierrors.MsgIDMismatch, lang))
	case errors.Is(err, services.ErrTaskNotFound):
		c.JSON(http.StatusNotFound, apierrors.CreateError(http.StatusNotFound, apierrors.MsgTaskNotFound, lang))
	case errors.Is(err, services.ErrUserNotFound):
		c.JSON(http.StatusNotFound, apierrors.CreateError(http.StatusNotFound, apierrors.MsgUserNotFound, lang))
	default:
		_ = c.Error(err)
	}
}
