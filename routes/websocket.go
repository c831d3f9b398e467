package routes

import (
	"taskboard/services"

	"github.com/gin-gonic/gin"
)

// RegisterWebSocketRoutes exposes the change feed. It is read-only and
// unauthenticated, like the rest of the API.
func RegisterWebSocketRoutes(group *gin.RouterGroup, wsService services.WebSocketServiceInterface) {
	group.GET("/ws", func(c *gin.Context) {
		wsService.HandleConnection(c)
	})
}
