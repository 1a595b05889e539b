package handlers

import (
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/playmatatu/eightball/internal/game"
	"github.com/playmatatu/eightball/internal/models"
	"github.com/playmatatu/eightball/internal/session"
)

// CreateTable racks a new table and returns its access token.
func CreateTable(tm *game.TableManager, tokens *session.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Player1 string `json:"player1"`
			Player2 string `json:"player2"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "player1 and player2 required"})
			return
		}
		p1, p2 := strings.TrimSpace(req.Player1), strings.TrimSpace(req.Player2)
		if p1 == "" || p2 == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "player1 and player2 required"})
			return
		}

		table, err := tm.Create(c.Request.Context(), p1, p2)
		if err != nil {
			respondTableError(c, err)
			return
		}

		token, _, err := tokens.Issue(table.ID)
		if err != nil {
			log.Errorf("[API] Failed to issue token for %s: %v", table.ID, err)
			tm.Close(table.ID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.Header("X-Table-ID", table.ID)
		c.JSON(http.StatusCreated, models.TableSummary{
			TableID:   table.ID,
			Token:     token,
			WSURL:     wsURL(c, table.ID, token),
			Player1:   p1,
			Player2:   p2,
			CreatedAt: table.CreatedAt,
		})
	}
}

// GetTable returns a table's latest snapshot, from memory or the cache.
func GetTable(tm *game.TableManager, tokens *session.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := authorizeTable(c, tokens)
		if !ok {
			return
		}

		snap, err := tm.Snapshot(c.Request.Context(), id)
		if err != nil {
			respondTableError(c, err)
			return
		}
		c.JSON(http.StatusOK, snap)
	}
}

// CloseTable stops a table; its last snapshot stays in the cache.
func CloseTable(tm *game.TableManager, tokens *session.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := authorizeTable(c, tokens)
		if !ok {
			return
		}

		if err := tm.Close(id); err != nil {
			respondTableError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"closed": id})
	}
}
