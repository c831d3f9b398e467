package routes

import (
	"context"
	"net/http"
	"time"

	"taskboard/database"
	"taskboard/middleware"
	"taskboard/pkg/apierrors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const healthDBTimeout = 2 * time.Second

func RegisterHealthRoutes(group *gin.RouterGroup, db *database.Database) {
	group.GET("/health", func(c *gin.Context) { CheckHealth(c, db) })
}

func CheckHealth(c *gin.Context, db *database.Database) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthDBTimeout)
	defer cancel()

	if err := db.Ping(ctx); err != nil {
		zap.L().Warn("health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable,
			apierrors.CreateError(http.StatusServiceUnavailable, apierrors.MsgServiceUnavailable, middleware.GetLang(c)))
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
