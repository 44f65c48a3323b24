package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/safal11goyal/GreenWise/middleware"
	"github.com/safal11goyal/GreenWise/models"
	"github.com/safal11goyal/GreenWise/services"
)

// WebSocketHandler handles WebSocket connections
type WebSocketHandler struct {
	hub *services.WebSocketHub
}

// NewWebSocketHandler creates a new WebSocket handler
func NewWebSocketHandler(hub *services.WebSocketHub) *WebSocketHandler {
	return &WebSocketHandler{
		hub: hub,
	}
}

// ListenMaterialFeed handles WebSocket connections for the live scan feed.
func (h *WebSocketHandler) ListenMaterialFeed(c *gin.Context) {
	userID := middleware.GetUserIDFromContext(c)
	log.Printf("INFO: WebSocket connection request from user %s", userID)

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true // Allow all origins for now
		},
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Error upgrading connection to WebSocket: %v", err)
		return
	}

	h.hub.RegisterClient(conn, userID)
}

// HealthCheck handles WebSocket health check
func (h *WebSocketHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{
		Status:           "healthy",
		Service:          "greenwise-material-feed",
		ConnectedClients: h.hub.GetConnectedClientsCount(),
	})
}
