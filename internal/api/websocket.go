package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"pantrybot/internal/assistant"
)

// WebSocket upgrader configuration
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

// chatSocket maintains one WebSocket chat session for an authenticated user.
type chatSocket struct {
	id     string
	owner  string
	conn   *websocket.Conn
	send   chan []byte
	mu     sync.Mutex
	server *Server
}

type socketTurn struct {
	Messages []assistant.Message `json:"messages"`
	TurnID   string              `json:"turnId"`
}

// handleChatSocket upgrades the connection after authenticating the token
// query parameter (browsers cannot set headers on WebSocket dials).
func (s *Server) handleChatSocket(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization token required"})
		return
	}
	owner, err := s.auth.VerifyToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection: %v", err)
		return
	}

	socket := &chatSocket{
		id:     uuid.NewString(),
		owner:  owner,
		conn:   conn,
		send:   make(chan []byte, 256),
		server: s,
	}

	s.monitor.AddCounter("ws_connections_open", 1)
	log.Printf("chat socket %s opened for user %s", socket.id, owner)

	go socket.writePump()
	go socket.readPump()
}

// readPump pumps chat turns from the connection through the interpreter.
// Turns are processed strictly one at a time per connection; the next turn is
// not read until the current one has finished executing.
func (c *chatSocket) readPump() {
	defer func() {
		c.server.monitor.AddCounter("ws_connections_open", -1)
		c.conn.Close()
		log.Printf("chat socket %s closed", c.id)
	}()

	c.conn.SetReadLimit(512 * 1024) // 512KB
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		c.handleTurn(message)
	}
}

// writePump pumps messages from the server to the WebSocket connection
func (c *chatSocket) writePump() {
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
				// The channel was closed
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
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

// handleTurn runs one chat turn and sends the result back on the socket.
func (c *chatSocket) handleTurn(message []byte) {
	var turn socketTurn
	if err := json.Unmarshal(message, &turn); err != nil {
		c.sendError("Message must carry a messages array.")
		return
	}
	if len(turn.Messages) == 0 {
		c.sendError("Message must carry a messages array.")
		return
	}

	result, err := c.server.interpreter.Interpret(context.Background(), turn.Messages, c.owner)
	if err != nil {
		log.Printf("interpreter error on socket %s: %v", c.id, err)
		c.sendReply(&assistant.Result{
			ReplyText:    providerUnavailableReply,
			TaskOutcomes: []assistant.Outcome{},
		})
		return
	}

	c.sendReply(result)
}

// sendReply sends an interpreter result to the client
func (c *chatSocket) sendReply(result *assistant.Result) {
	data, err := json.Marshal(result)
	if err != nil {
		log.Printf("Error marshaling reply: %v", err)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	select {
	case c.send <- data:
	default:
		log.Println("WebSocket buffer full, dropping message")
	}
}

// sendError sends an error message to the client
func (c *chatSocket) sendError(message string) {
	response := map[string]string{"error": message}
	data, _ := json.Marshal(response)

	c.mu.Lock()
	defer c.mu.Unlock()

	select {
	case c.send <- data:
	default:
		log.Println("WebSocket buffer full, dropping error message")
	}
}
