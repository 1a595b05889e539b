package api

import (
	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/playmatatu/eightball/internal/api/handlers"
	"github.com/playmatatu/eightball/internal/config"
	"github.com/playmatatu/eightball/internal/game"
	"github.com/playmatatu/eightball/internal/middleware"
	"github.com/playmatatu/eightball/internal/session"
	"github.com/playmatatu/eightball/internal/ws"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, cfg *config.Config, tm *game.TableManager, tokens *session.Issuer, hub *ws.Hub) {
	router.Use(middleware.CORSMiddleware(cfg))

	if cfg.Environment != "production" {
		router.Use(func(c *gin.Context) {
			c.Header("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
			c.Next()
		})
		log.Info("[DEV MODE] no-cache headers enabled for all routes")
	}

	router.GET("/health", handlers.HealthCheck(tm))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", handlers.HealthCheck(tm))
		v1.GET("/physics", handlers.GetPhysics(tm))

		tables := v1.Group("/tables")
		{
			tables.POST("", handlers.CreateTable(tm, tokens))
			tables.GET("/:id", handlers.GetTable(tm, tokens))
			tables.DELETE("/:id", handlers.CloseTable(tm, tokens))
			tables.GET("/:id/ws", middleware.WebSocketCORSCheck(cfg), handlers.HandleTableWebSocket(tm, tokens, hub))
		}
	}
}
