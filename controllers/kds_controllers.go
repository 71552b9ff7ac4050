package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/yeremiapane/little-lemon-api/kds"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// origin is not trusted for auth; the token is
	CheckOrigin: func(r *http.Request) bool { return true },
}

// OrderFeedHandler upgrades to a websocket that streams order events the
// caller is allowed to see.
func OrderFeedHandler(hub *kds.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}

		ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}
		hub.RegisterClient(ws, p)

		// clients only listen; reading detects disconnects
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				break
			}
		}
		hub.UnregisterClient(ws)
	}
}
