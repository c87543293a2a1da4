// Package websocket pushes generation lifecycle notifications to connected
// browsers. The hub fans out to every device a user has open; Redis pub/sub
// carries messages across instances so it does not matter which instance a
// socket landed on.
package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"ai-interviewprep-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const clusterChannel = "interviewprep:ws_events"

// Message is the envelope delivered to the browser.
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type Hub struct {
	// UserID -> open connections (multi-device)
	clients map[uuid.UUID][]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	// nil when running single-instance without Redis
	rdb *redis.Client

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID][]*Client),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.consumeCluster()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.UserID] = append(h.clients[client.UserID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "client registered", map[string]interface{}{"user_id": client.UserID})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.UserID]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.UserID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.UserID]) == 0 {
					delete(h.clients, client.UserID)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Send delivers a message to all of one user's connections, local and remote.
func (h *Hub) Send(userID uuid.UUID, msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}

	h.mu.RLock()
	clients := h.clients[userID]
	h.mu.RUnlock()
	h.deliver(clients, data)

	// Other instances may hold more of this user's devices.
	if h.rdb != nil {
		payload, _ := json.Marshal(clusterEnvelope{TargetUserID: userID.String(), Message: data})
		h.rdb.Publish(context.Background(), clusterChannel, payload)
	}
}

// Broadcast delivers a message to every connected client across the cluster.
func (h *Hub) Broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}

	h.mu.RLock()
	for _, clients := range h.clients {
		h.deliver(clients, data)
	}
	h.mu.RUnlock()

	if h.rdb != nil {
		payload, _ := json.Marshal(clusterEnvelope{TargetUserID: "*", Message: data})
		h.rdb.Publish(context.Background(), clusterChannel, payload)
	}
}

func (h *Hub) deliver(clients []*Client, data []byte) {
	for _, client := range clients {
		select {
		case client.Send <- data:
		default:
			// Slow consumer; drop the connection rather than block the hub.
			close(client.Send)
			go func(c *Client) { h.unregister <- c }(client)
		}
	}
}

type clusterEnvelope struct {
	TargetUserID string          `json:"target_user_id"`
	Message      json.RawMessage `json:"message"`
}

func (h *Hub) consumeCluster() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, clusterChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var envelope clusterEnvelope
		if err := json.Unmarshal([]byte(msg.Payload), &envelope); err != nil {
			h.logger.Warn("Hub", "bad cluster message", map[string]interface{}{"error": err.Error()})
			continue
		}

		if envelope.TargetUserID == "*" {
			h.mu.RLock()
			for _, clients := range h.clients {
				h.deliver(clients, envelope.Message)
			}
			h.mu.RUnlock()
			continue
		}

		uid, err := uuid.Parse(envelope.TargetUserID)
		if err != nil {
			continue
		}
		h.mu.RLock()
		clients := h.clients[uid]
		h.mu.RUnlock()
		h.deliver(clients, envelope.Message)
	}
}
