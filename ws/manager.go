package ws

import (
	"context"
	"sync"

	"hechonl_backend/internal/events"
	"hechonl_backend/internal/logger"
)

const feedSubscriberName = "ws_directory_feed"

// FeedMessage is what every connected client receives after a business change.
type FeedMessage struct {
	Type  string              `json:"type"`
	Event events.StoreChanged `json:"event"`
}

// WebSocketManager fans business changes out to every connected client.
// Clients are owned by the Run goroutine; mu only guards counting.
type WebSocketManager struct {
	sub        *events.Subscription
	clients    map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mu         sync.RWMutex
}

// NewWebSocketManager subscribes right away so that changes published
// before Run starts are still relayed.
func NewWebSocketManager(bus *events.Bus) *WebSocketManager {
	return &WebSocketManager{
		sub:        bus.Subscribe(feedSubscriberName, 64, events.EntityBusiness),
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run serves until ctx ends or the bus closes.
func (manager *WebSocketManager) Run(ctx context.Context) {
	sub := manager.sub
	defer sub.Close()
	defer manager.shutdown()

	for {
		select {
		case <-ctx.Done():
			return

		case client := <-manager.register:
			manager.mu.Lock()
			manager.clients[client] = struct{}{}
			total := len(manager.clients)
			manager.mu.Unlock()
			logger.Info("WebSocket client registered", "client_id", client.ID, "total", total)

		case client := <-manager.unregister:
			manager.remove(client)

		case ev, ok := <-sub.C:
			if !ok {
				return
			}
			manager.broadcastMessage(FeedMessage{Type: "directory_changed", Event: ev})
		}
	}
}

func (manager *WebSocketManager) remove(client *Client) {
	manager.mu.Lock()
	defer manager.mu.Unlock()
	if _, ok := manager.clients[client]; !ok {
		return
	}
	close(client.Send)
	delete(manager.clients, client)
	logger.Info("WebSocket client unregistered", "client_id", client.ID, "total", len(manager.clients))
}

func (manager *WebSocketManager) shutdown() {
	manager.mu.Lock()
	for client := range manager.clients {
		close(client.Send)
		delete(manager.clients, client)
	}
	manager.mu.Unlock()
	close(manager.done)
}

// broadcastMessage drops clients whose send buffer is full.
func (manager *WebSocketManager) broadcastMessage(message any) {
	var slow []*Client

	manager.mu.RLock()
	for client := range manager.clients {
		select {
		case client.Send <- message:
		default:
			slow = append(slow, client)
		}
	}
	manager.mu.RUnlock()

	for _, client := range slow {
		logger.Warn("WebSocket client disconnected due to full send channel", "client_id", client.ID)
		manager.remove(client)
	}
}

func (manager *WebSocketManager) add(client *Client) bool {
	select {
	case manager.register <- client:
		return true
	case <-manager.done:
		return false
	}
}

func (manager *WebSocketManager) drop(client *Client) {
	select {
	case manager.unregister <- client:
	case <-manager.done:
	}
}

func (manager *WebSocketManager) GetClientCount() int {
	manager.mu.RLock()
	defer manager.mu.RUnlock()
	return len(manager.clients)
}
