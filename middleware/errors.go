package middleware

import (
	"net/http"

	"taskboard/pkg/apierrors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorHandler answers 500 for any request whose handler recorded an error
// with c.Error without writing a response.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		zap.L().Error("unhandled request error",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(c.Errors.Last().Err),
		)
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgInternalError, GetLang(c)),
		)
	}
}

// Recovery turns panics into the same 500 response.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		zap.L().Error("panic recovered",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Any("panic", recovered),
		)
		c.AbortWithStatusJSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgInternalError, GetLang(c)),
		)
	})
}
