package handler

import (
	"fmt"
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/velora/storefront_api/internal/sse"
)

// SSEHandler streams marketing-section refresh events to storefront clients.
type SSEHandler struct {
	hub *sse.Hub
}

// NewSSEHandler creates a new SSEHandler.
func NewSSEHandler(hub *sse.Hub) *SSEHandler {
	return &SSEHandler{hub: hub}
}

// Stream handles GET /v1/storefront/events.
func (h *SSEHandler) Stream(c *gin.Context) {
	sessionID := c.GetString("session_id")
	if sessionID == "" {
		sessionID = uuid.New().String()[:8]
	}
	clientID := fmt.Sprintf("storefront-%s-%d", sessionID, time.Now().UnixNano())

	// SSE headers
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no") // Disable nginx buffering

	client := h.hub.Register(clientID)
	defer h.hub.Unregister(clientID)

	// Send initial connected event
	c.SSEvent("connected", gin.H{
		"clientId":  clientID,
		"message":   "SSE connection established",
		"timestamp": time.Now().Format(time.RFC3339),
	})
	c.Writer.Flush()

	log.Info().Str("client_id", clientID).Str("session_id", sessionID).Msg("Storefront SSE stream started")

	// Stream events
	c.Stream(func(w io.Writer) bool {
		select {
		case data, ok := <-client.Events:
			if !ok {
				return false
			}
			c.SSEvent("section", string(data))
			return true
		case <-time.After(30 * time.Second):
			c.SSEvent("ping", gin.H{"timestamp": time.Now().Format(time.RFC3339)})
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
