package websocket

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ServeWS upgrades an authenticated request to a websocket connection and
// registers it with the hub. The caller must have resolved the user ID
// already (the JWT middleware runs before this handler).
func ServeWS(hub *Hub, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetInt64("userID")
		if userID <= 0 {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Error().Err(err).Msg("WebSocket upgrade failed")
			return
		}

		client := &Client{
			hub:    hub,
			conn:   conn,
			send:   make(chan []byte, 16),
			userID: userID,
			logger: logger,
		}

		hub.register <- client

		go client.writePump()
		go client.readPump()
	}
}
