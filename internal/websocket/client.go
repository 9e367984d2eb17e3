package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"mindcare-be/internal/dto"
	"mindcare-be/internal/pkg/serverutils"

	"github.com/gofiber/websocket/v2"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8192
)

// TurnHandler runs one chat turn.
type TurnHandler interface {
	SendChat(ctx context.Context, request *dto.SendChatRequest) (*dto.SendChatResponse, error)
}

// Frame is the outbound message shape.
type Frame struct {
	Type    string                `json:"type"`
	Data    *dto.SendChatResponse `json:"data,omitempty"`
	Message string                `json:"message,omitempty"`
	Errors  interface{}           `json:"errors,omitempty"`
}

const (
	FrameReply = "reply"
	FrameError = "error"
)

// Client is a middleman between the websocket connection and the hub.
type Client struct {
	Hub *Hub

	Conn *websocket.Conn

	SessionID string

	// Buffered channel of outbound messages.
	Send chan []byte

	turns TurnHandler
}

// readPump turns every inbound text frame into one chat turn.
func (c *Client) readPump(ctx context.Context) {
	defer func() {
		c.Hub.leave(c)
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		messageType, payload, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Hub.logger.Warn("WS", "Unexpected close", map[string]interface{}{
					"session_id": c.SessionID,
					"error":      err.Error(),
				})
			}
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		c.Hub.Send(c.SessionID, c.handle(ctx, string(payload)))
	}
}

func (c *Client) handle(ctx context.Context, text string) []byte {
	req := &dto.SendChatRequest{SessionId: c.SessionID, Message: text}
	if err := serverutils.ValidateRequest(req); err != nil {
		frame := Frame{Type: FrameError, Message: "Invalid request"}
		var verr *serverutils.ValidationError
		if errors.As(err, &verr) {
			frame.Errors = verr.Errors
		}
		return encode(frame)
	}

	res, err := c.turns.SendChat(ctx, req)
	if err != nil {
		c.Hub.logger.Error("WS", "Chat turn failed", map[string]interface{}{
			"session_id": c.SessionID,
			"error":      err.Error(),
		})
		return encode(Frame{Type: FrameError, Message: "Internal server error"})
	}
	return encode(Frame{Type: FrameReply, Data: res})
}

func encode(f Frame) []byte {
	data, _ := json.Marshal(f)
	return data
}

// writePump pumps messages from the hub to the websocket connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			// one JSON document per frame
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
