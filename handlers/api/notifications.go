package api

import (
	"bufio"
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/qwertyczee/inbox-threads/mailbox"
	"github.com/qwertyczee/inbox-threads/utils"
	"github.com/valyala/fasthttp"
)

// NotificationHandler streams mailbox events to clients over SSE and
// websocket.
type NotificationHandler struct {
	hub *mailbox.Hub
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(hub *mailbox.Hub) *NotificationHandler {
	return &NotificationHandler{hub: hub}
}

// HandleSSE streams mailbox events as Server-Sent Events.
// GET /api/events
func (h *NotificationHandler) HandleSSE(c *fiber.Ctx) error {
	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")

	id, events := h.hub.Subscribe()
	utils.Log.Info("SSE subscriber connected: %s", id)

	ctx := c.Context()
	ctx.SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer func() {
			h.hub.Unsubscribe(id)
			utils.Log.Info("SSE subscriber disconnected: %s", id)
		}()

		for {
			select {
			case event, ok := <-events:
				if !ok {
					return
				}
				data, err := json.Marshal(event)
				if err != nil {
					continue
				}
				if _, err := w.WriteString("data: " + string(data) + "\n\n"); err != nil {
					return
				}
				if err := w.Flush(); err != nil {
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}))

	return nil
}

// HandleWebSocket streams mailbox events over a websocket connection.
// GET /api/ws
func (h *NotificationHandler) HandleWebSocket(c *websocket.Conn) {
	id, events := h.hub.Subscribe()
	utils.Log.Info("WebSocket subscriber connected: %s", id)

	defer func() {
		h.hub.Unsubscribe(id)
		c.Close()
		utils.Log.Info("WebSocket subscriber disconnected: %s", id)
	}()

	for event := range events {
		if err := c.WriteJSON(event); err != nil {
			utils.Log.Error("Failed to send WebSocket event: %v", err)
			break
		}
	}
}
