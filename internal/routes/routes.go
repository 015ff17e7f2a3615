package routes

import (
	"github.com/gin-gonic/gin"

	"hechonl_backend/internal/handlers"
	"hechonl_backend/internal/logger"
	"hechonl_backend/ws"
)

// RegisterRoutes registers every HTTP and WebSocket route.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	wsHandler *ws.WebSocketHandler,
) {
	api := ginRouter.Group("/api/v1")
	{
		appHandlers.AuthHandler.RegisterRoutes(api)
		appHandlers.BusinessHandler.RegisterRoutes(api)
		appHandlers.DirectoryHandler.RegisterRoutes(api)
		appHandlers.MetaHandler.RegisterRoutes(api)
	}

	wsGroup := ginRouter.Group("/ws")
	{
		wsGroup.GET("/directory", wsHandler.ServeWS)
	}
	logger.Info("WebSocket route /ws/directory registered")
}
