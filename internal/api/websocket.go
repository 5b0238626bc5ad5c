package api

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"tandoor/internal/orchestrator"
)

// WebSocket upgrader configuration
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

// wsConnection maintains one chat connection with a customer
type wsConnection struct {
	conn *websocket.Conn
	send chan []byte
	mu   sync.Mutex
	orch *orchestrator.Orchestrator
}

// wsMessage is one inbound chat frame
type wsMessage struct {
	CustomerID string `json:"customerId"`
	Text       string `json:"text"`
}

// handleWebSocket upgrades the connection and starts the chat pumps
func (s *Server) handleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.log.WithError(err).Warn("websocket upgrade failed")
		return
	}

	ws := &wsConnection{
		conn: conn,
		send: make(chan []byte, 256),
		orch: s.orch,
	}

	go ws.writePump()
	go ws.readPump(s)
}

// readPump pumps chat messages from the connection into the orchestrator
func (c *wsConnection) readPump(s *Server) {
	defer c.conn.Close()

	c.conn.SetReadLimit(64 * 1024)
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				s.log.WithError(err).Warn("websocket read error")
			}
			break
		}

		var msg wsMessage
		if err := json.Unmarshal(raw, &msg); err != nil || msg.CustomerID == "" || msg.Text == "" {
			c.sendError("expected {\"customerId\": ..., \"text\": ...}")
			continue
		}

		// Cook phases run synchronously inside Handle, so each turn gets
		// its own goroutine to keep the read loop responsive.
		go func(msg wsMessage) {
			result := c.orch.Handle(context.Background(), msg.CustomerID, msg.Text)
			c.sendJSON(result)
		}(msg)
	}
}

// writePump pumps replies from the server to the connection
func (c *wsConnection) writePump() {
	ticker := time.NewTicker(30 * time.Second)
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
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
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

// sendJSON queues a JSON payload for the client, dropping it if the
// buffer is full
func (c *wsConnection) sendJSON(v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	select {
	case c.send <- data:
	default:
	}
}

// sendError queues an error frame for the client
func (c *wsConnection) sendError(message string) {
	c.sendJSON(map[string]string{"error": message})
}
