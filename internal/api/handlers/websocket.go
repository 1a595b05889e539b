package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/playmatatu/eightball/internal/game"
	"github.com/playmatatu/eightball/internal/session"
	"github.com/playmatatu/eightball/internal/ws"
)

// HandleTableWebSocket attaches a render/input client to a table, reopening
// it from the snapshot cache if it was closed.
func HandleTableWebSocket(tm *game.TableManager, tokens *session.Issuer, hub *ws.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := authorizeTable(c, tokens)
		if !ok {
			return
		}

		if _, err := tm.Open(c.Request.Context(), id); err != nil {
			respondTableError(c, err)
			return
		}
		hub.Serve(c.Writer, c.Request, id)
	}
}
