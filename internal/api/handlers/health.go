package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/playmatatu/eightball/internal/game"
)

var startTime = time.Now()

const version = "1.0.0"

// HealthCheck returns server health status
func HealthCheck(tm *game.TableManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "eightball-tables",
			"version": version,
			"uptime":  time.Since(startTime).String(),
			"tables":  tm.Count(),
		})
	}
}

// GetPhysics returns the effective table constants.
func GetPhysics(tm *game.TableManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"params": tm.Params(),
			"table":  game.NewTable(tm.Params()),
		})
	}
}
