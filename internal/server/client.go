package server

import (
	"encoding/json"
	"log"
	"sync"

	"seasalt-bot/internal/assistant"
	"seasalt-bot/internal/protocol"

	"github.com/gorilla/websocket"
)

// Client represents a single WebSocket connection and its chat session.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	ID   string // Unique identifier for the session

	mu      sync.Mutex
	closed  bool
	history []assistant.ChatMessage // prior question/answer exchange, oldest first
}

// ReadPump handles incoming messages from the WebSocket connection.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	for {
		_, messageBytes, err := c.conn.ReadMessage()
		if err != nil {
			log.Printf("Read error from client %s (%s): %v", c.ID, c.conn.RemoteAddr(), err)
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("Unexpected close error: %v", err)
			}
			break // Exit loop on read error or connection close
		}

		var msg protocol.Message
		if err := json.Unmarshal(messageBytes, &msg); err != nil {
			log.Printf("Error unmarshalling message from client %s: %v", c.ID, err)
			continue
		}

		if msg.Type != protocol.TypePing {
			log.Printf("Received message type '%s' from client %s", msg.Type, c.ID)
		}
		c.hub.processMessage <- clientMessage{client: c, message: msg}
	}
}

// WritePump handles outgoing messages to the WebSocket connection.
func (c *Client) WritePump() {
	defer c.conn.Close()

	for message := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			log.Printf("Write error to client %s: %v", c.ID, err)
			break
		}
	}
}

// trySend queues a message for the client unless the session is
// already closed or its buffer is full.
func (c *Client) trySend(message []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.send <- message:
	default:
		log.Printf("Send buffer full for client %s, dropping message", c.ID)
	}
}

// close marks the session closed and stops the WritePump.
func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

// historySnapshot copies the session's chat history.
func (c *Client) historySnapshot() []assistant.ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]assistant.ChatMessage, len(c.history))
	copy(out, c.history)
	return out
}

// appendHistory records a question/answer exchange, trimmed to limit.
func (c *Client) appendHistory(question, answer string, limit int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.history = append(c.history,
		assistant.ChatMessage{Role: assistant.RoleUser, Content: question},
		assistant.ChatMessage{Role: assistant.RoleAssistant, Content: answer},
	)
	c.history = assistant.TrimHistory(c.history, limit)
}
