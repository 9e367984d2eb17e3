package websocket

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// Handler upgrades chat connections and attaches them to the hub.
type Handler struct {
	hub   *Hub
	turns TurnHandler
	ctx   context.Context
}

// NewHandler builds the websocket endpoint. ctx bounds every turn run over
// a connection and is normally the server's lifetime.
func NewHandler(ctx context.Context, hub *Hub, turns TurnHandler) *Handler {
	return &Handler{hub: hub, turns: turns, ctx: ctx}
}

func (h *Handler) RegisterRoutes(r fiber.Router) {
	r.Use("/chatbot/v1/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		sessionID := c.Query("session_id")
		if sessionID == "" {
			sessionID = c.Cookies("session_id")
		}
		if sessionID == "" {
			sessionID = uuid.New().String()
		}
		c.Locals("session_id", sessionID)
		return c.Next()
	})
	r.Get("/chatbot/v1/ws", websocket.New(func(c *websocket.Conn) {
		sessionID, _ := c.Locals("session_id").(string)
		ServeWs(h.ctx, h.hub, c, sessionID, h.turns)
	}))
}

// ServeWs handles websocket requests from the peer.
func ServeWs(ctx context.Context, hub *Hub, c *websocket.Conn, sessionID string, turns TurnHandler) {
	client := &Client{Hub: hub, Conn: c, SessionID: sessionID, Send: make(chan []byte, 64), turns: turns}
	if !hub.join(client) {
		c.Close()
		return
	}

	go client.writePump()
	client.readPump(ctx)
}
