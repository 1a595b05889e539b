package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/playmatatu/eightball/internal/game"
	"github.com/playmatatu/eightball/internal/session"
)

// tableToken reads the table token from the Authorization header or the
// token query parameter.
func tableToken(c *gin.Context) string {
	if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return c.Query("token")
}

// authorizeTable aborts the request unless it carries a token for :id.
func authorizeTable(c *gin.Context, tokens *session.Issuer) (string, bool) {
	id := c.Param("id")
	token := tableToken(c)
	if token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return "", false
	}
	if err := tokens.Authorize(token, id); err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return "", false
	}
	return id, true
}

// respondTableError maps table errors to HTTP status codes.
func respondTableError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, game.ErrTableNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "table not found"})
	case errors.Is(err, game.ErrTableClosed):
		c.JSON(http.StatusGone, gin.H{"error": "table closed"})
	default:
		log.Errorf("[API] %s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// wsURL builds the socket URL a client should dial for a table.
func wsURL(c *gin.Context, tableID, token string) string {
	scheme := "ws"
	if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
		scheme = "wss"
	}
	return scheme + "://" + c.Request.Host + "/api/v1/tables/" + tableID + "/ws?token=" + token
}
