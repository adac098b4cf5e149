package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"dialdesk/internal/auth"
	"dialdesk/pkg/models"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// WebSocketMessage represents a message sent through WebSocket
type WebSocketMessage struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data"`
	Timestamp time.Time   `json:"timestamp"`
	CompanyID string      `json:"company_id,omitempty"`
}

// WebSocketClient represents a connected WebSocket client
type WebSocketClient struct {
	conn      *websocket.Conn
	companyID string
	send      chan WebSocketMessage
	hub       *WebSocketHub
}

// WebSocketHub manages all WebSocket connections. The clients map is
// owned by the run goroutine; every other goroutine talks to it
// through the channels.
type WebSocketHub struct {
	clients    map[*WebSocketClient]bool
	broadcast  chan WebSocketMessage
	register   chan *WebSocketClient
	unregister chan *WebSocketClient
}

// WebSocketHandler handles WebSocket connections for the live dashboard
type WebSocketHandler struct {
	hub         *WebSocketHub
	authService *auth.Service
}

// NewWebSocketHandler creates a new WebSocket handler
func NewWebSocketHandler(authService *auth.Service) *WebSocketHandler {
	hub := &WebSocketHub{
		clients:    make(map[*WebSocketClient]bool),
		broadcast:  make(chan WebSocketMessage),
		register:   make(chan *WebSocketClient),
		unregister: make(chan *WebSocketClient),
	}

	go hub.run()
	return &WebSocketHandler{
		hub:         hub,
		authService: authService,
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Allow connections from any origin in development
		// In production, check against allowed origins
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// HandleWebSocket handles WebSocket connection upgrades
func (h *WebSocketHandler) HandleWebSocket(c echo.Context) error {
	var companyID string

	// Try to get the company from context first (if JWT middleware was applied)
	if cid, ok := c.Get("company_id").(string); ok {
		companyID = cid
	} else {
		// Browsers cannot set headers on WebSocket upgrades, so accept the
		// token as a query parameter and validate it here
		token := c.QueryParam("token")
		if token == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Missing authorization token")
		}

		claims, err := h.authService.ValidateToken(token)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token: "+err.Error())
		}

		if claims.CompanyID != nil {
			companyID = claims.CompanyID.String()
		}
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		log.Error().Err(err).Msg("WebSocket upgrade failed")
		return err
	}

	client := &WebSocketClient{
		conn:      conn,
		companyID: companyID,
		send:      make(chan WebSocketMessage, 256),
		hub:       h.hub,
	}

	h.hub.register <- client

	go client.writePump()
	go client.readPump()

	return nil
}

// BroadcastToCompany broadcasts a message to all clients of a specific company
func (h *WebSocketHandler) BroadcastToCompany(companyID string, messageType string, data interface{}) {
	message := WebSocketMessage{
		Type:      messageType,
		Data:      data,
		Timestamp: time.Now(),
		CompanyID: companyID,
	}

	h.hub.broadcast <- message
}

// BroadcastInteraction pushes a freshly logged interaction to the company's
// connected dashboards. Implements webhook.Notifier.
func (h *WebSocketHandler) BroadcastInteraction(companyID string, interaction *models.Interaction) {
	h.BroadcastToCompany(companyID, "interaction", interaction)
}

// run manages the WebSocket hub
func (hub *WebSocketHub) run() {
	for {
		select {
		case client := <-hub.register:
			hub.clients[client] = true
			log.Debug().Str("company_id", client.companyID).Msg("WebSocket client connected")

			welcome := WebSocketMessage{
				Type:      "connection",
				Data:      map[string]string{"status": "connected"},
				Timestamp: time.Now(),
			}
			select {
			case client.send <- welcome:
			default:
				close(client.send)
				delete(hub.clients, client)
			}

		case client := <-hub.unregister:
			if _, ok := hub.clients[client]; ok {
				delete(hub.clients, client)
				close(client.send)
				log.Debug().Str("company_id", client.companyID).Msg("WebSocket client disconnected")
			}

		case message := <-hub.broadcast:
			for client := range hub.clients {
				// Only send to clients of the same company (if CompanyID is specified)
				if message.CompanyID == "" || client.companyID == message.CompanyID {
					select {
					case client.send <- message:
					default:
						close(client.send)
						delete(hub.clients, client)
					}
				}
			}
		}
	}
}

// readPump handles reading messages from the WebSocket
func (c *WebSocketClient) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	// 30s read deadline since we ping every 20s
	c.conn.SetReadDeadline(time.Now().Add(30 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(30 * time.Second))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Warn().Err(err).Msg("WebSocket error")
			}
			break
		}

		var msg WebSocketMessage
		if err := json.Unmarshal(message, &msg); err == nil {
			switch msg.Type {
			case "ping":
				pong := WebSocketMessage{
					Type:      "pong",
					Data:      map[string]string{"status": "ok"},
					Timestamp: time.Now(),
				}
				select {
				case c.send <- pong:
				default:
					return
				}
			}
		}
	}
}

// writePump handles writing messages to the WebSocket
func (c *WebSocketClient) writePump() {
	ticker := time.NewTicker(20 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteJSON(message); err != nil {
				log.Warn().Err(err).Msg("WebSocket write error")
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
