package server

import (
	"context"
	"log"
	"sync"
	"time"

	"seasalt-bot/internal/assistant"
	"seasalt-bot/internal/protocol"
	"seasalt-bot/internal/scoring"

	"github.com/google/uuid"
)

// clientMessage is a helper struct to pass messages along with the client reference.
type clientMessage struct {
	client  *Client
	message protocol.Message
}

// Answerer is the narrow contract the hub needs from the QA chain.
type Answerer interface {
	Answer(ctx context.Context, question string, history []assistant.ChatMessage) (string, error)
}

const defaultQuestionTimeout = 30 * time.Second

// Hub manages active WebSocket connections and per-session chat state.
// Scoring requests run inline since the engine is pure and fast;
// questions go to the assistant in their own goroutine.
type Hub struct {
	clients        map[*Client]bool
	processMessage chan clientMessage
	register       chan *Client
	unregister     chan *Client
	clientMu       sync.RWMutex

	engine          *scoring.Engine
	answerer        Answerer // nil when the assistant is not configured
	limiter         *SessionLimiter
	historyLimit    int
	questionTimeout time.Duration
}

// NewHub creates a new Hub instance. answerer may be nil to run the
// scoring commands without the rules assistant.
func NewHub(engine *scoring.Engine, answerer Answerer, limiter *SessionLimiter, historyLimit int) *Hub {
	return &Hub{
		clients:         make(map[*Client]bool),
		processMessage:  make(chan clientMessage),
		register:        make(chan *Client),
		unregister:      make(chan *Client),
		engine:          engine,
		answerer:        answerer,
		limiter:         limiter,
		historyLimit:    historyLimit,
		questionTimeout: defaultQuestionTimeout,
	}
}

// Run starts the Hub's main loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			client.ID = uuid.NewString() // Assign a unique ID upon registration
			log.Printf("Client %s (%s) connected", client.ID, client.conn.RemoteAddr())
			h.clientMu.Lock()
			h.clients[client] = true
			h.clientMu.Unlock()

		case client := <-h.unregister:
			h.clientMu.Lock()
			_, clientExists := h.clients[client]
			if clientExists {
				delete(h.clients, client)
				client.close()
				log.Printf("Client %s disconnected", client.ID)
			}
			h.clientMu.Unlock()

		case cm := <-h.processMessage:
			h.handleMessage(cm)
		}
	}
}

// send marshals and queues a message for one client.
func (h *Hub) send(c *Client, msgType string, payload interface{}) {
	raw, err := protocol.NewMessage(msgType, payload)
	if err != nil {
		log.Printf("Error marshalling %s message for client %s: %v", msgType, c.ID, err)
		return
	}
	c.trySend(raw)
}
