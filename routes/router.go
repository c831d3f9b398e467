package routes

import (
	"taskboard/database"
	"taskboard/middleware"
	"taskboard/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Dependencies struct {
	DB               *database.Database
	TaskService      services.TaskServiceInterface
	UserService      services.UserServiceInterface
	WebSocketService services.WebSocketServiceInterface
	AllowedOrigins   string
	Logger           *zap.Logger
}

// NewRouter assembles the middleware chain and mounts every route under
// /api/v1. The websocket route is skipped when no hub is given.
func NewRouter(deps Dependencies) *gin.Engine {
	logger := deps.Logger
	if logger == nil {
		logger = zap.L()
	}

	router := gin.New()
	router.Use(
		middleware.GinZapMiddleware(logger),
		middleware.CORSMiddleware(deps.AllowedOrigins),
		middleware.LanguageMiddleware(),
		middleware.Recovery(),
		middleware.ErrorHandler(),
	)

	api := router.Group("/api/v1")
	RegisterHealthRoutes(api, deps.DB)
	RegisterTaskRoutes(api, deps.DB, deps.TaskService)
	RegisterUserRoutes(api, deps.DB, deps.UserService)
	if deps.WebSocketService != nil {
		RegisterWebSocketRoutes(api, deps.WebSocketService)
	}

	return router
}
