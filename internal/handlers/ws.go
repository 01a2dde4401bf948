package handlers

import (
	"net/http"
	"time"

	"github.com/eduroese/To-Do-App/internal/live"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

func (h *Handler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range h.origins {
		if origin == allowed {
			return true
		}
	}
	return false
}

// WebSocket upgrades the request and registers the connection under the
// "user" query parameter until the client goes away.
func (h *Handler) WebSocket(ctx *gin.Context) {
	user := ctx.Query("user")
	if user == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "User not provided"})
		return
	}

	upgrader := websocket.Upgrader{CheckOrigin: h.checkOrigin}

	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "user", user, "err", err)
		return
	}

	conn.SetReadLimit(live.MaxMessageSize)
	if err := conn.SetReadDeadline(time.Now().Add(live.PongWait)); err != nil {
		h.logger.Warn("failed to set initial read deadline", "user", user, "err", err)
		conn.Close()
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(live.PongWait))
	})

	client := h.hub.Register(user, conn)
	defer func() {
		h.hub.Unregister(user, client)
		h.logger.Debug("websocket connection closed", "user", user)
	}()

	err = client.WriteJSON(live.Message{
		Type:    "connected",
		Message: "WebSocket connection established",
		User:    user,
	})
	if err != nil {
		h.logger.Warn("failed to send welcome message", "user", user, "err", err)
		return
	}

	done := make(chan struct{})
	defer close(done)

	go func() {
		ticker := time.NewTicker(live.PingPeriod)
		defer ticker.Stop()

		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := client.Ping(); err != nil {
					h.logger.Debug("ping failed", "user", user, "err", err)
					return
				}
			}
		}
	}()

	for {
		messageType, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Warn("websocket error", "user", user, "err", err)
			}
			return
		}

		if messageType == websocket.TextMessage {
			h.logger.Debug("received message from client", "user", user, "message", string(message))
		}
	}
}
