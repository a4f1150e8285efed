// internal/websocket/hub.go
package websocket

import (
	"context"
	"sync"

	wstypes "tour-admin/internal/domain/websocket"
	"tour-admin/internal/pkg/session"

	"go.uber.org/zap"
)

// SessionVerifier re-checks a raw session token.
type SessionVerifier interface {
	Parse(token string) (*session.Session, bool)
}

// ClientGauge tracks the number of connected clients.
type ClientGauge interface {
	Set(float64)
}

type Hub struct {
	// Registered clients by identity ID
	clients map[int64]map[*Client]bool
	mu      sync.RWMutex

	register   chan *Client
	unregister chan *Client
	broadcast  chan *wstypes.WSMessage
	done       chan struct{}

	// Handler registry for modular message handling
	handlerRegistry *HandlerRegistry

	verifier SessionVerifier
	gauge    ClientGauge
	logger   *zap.Logger
}

// NewHub creates a hub. gauge may be nil.
func NewHub(verifier SessionVerifier, gauge ClientGauge, logger *zap.Logger) *Hub {
	return &Hub{
		clients:         make(map[int64]map[*Client]bool),
		register:        make(chan *Client),
		unregister:      make(chan *Client),
		broadcast:       make(chan *wstypes.WSMessage, 64),
		done:            make(chan struct{}),
		handlerRegistry: NewHandlerRegistry(),
		verifier:        verifier,
		gauge:           gauge,
		logger:          logger,
	}
}

// verifySession reports whether token still carries an admin session.
func (h *Hub) verifySession(token string) (*session.Session, bool) {
	sess, ok := h.verifier.Parse(token)
	if !ok || !sess.IsAdmin() {
		return nil, false
	}
	return sess, true
}

// RegisterHandler adds a handler for browser events on the feed.
func (h *Hub) RegisterHandler(handler MessageHandler) error {
	return h.handlerRegistry.Register(handler)
}

// HandleClientMessage dispatches msg to a registered handler. It reports
// false when no handler claims the event.
func (h *Hub) HandleClientMessage(ctx context.Context, client *Client, msg *wstypes.WSMessage) (bool, error) {
	return h.handlerRegistry.Dispatch(ctx, client, msg)
}

// Register adds a client. It fails once the hub has shut down.
func (h *Hub) Register(client *Client) error {
	select {
	case h.register <- client:
		return nil
	case <-h.done:
		return ErrHubClosed
	}
}

// Unregister removes a client. Safe after shutdown.
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Broadcast queues msg for every connected client. Dropped if the queue is
// full or the hub has stopped.
func (h *Hub) Broadcast(msg *wstypes.WSMessage) {
	select {
	case h.broadcast <- msg:
	case <-h.done:
	default:
		h.logger.Warn("websocket broadcast queue full, dropping", zap.String("type", string(msg.Type)))
	}
}

// NotifyChanged tells open dashboards that a resource was mutated.
func (h *Hub) NotifyChanged(resource string, id int64, action string) {
	h.Broadcast(wstypes.NewMessage(wstypes.EventTypeDataChanged, wstypes.DataChangedData{
		Resource: resource,
		ID:       id,
		Action:   action,
	}))
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case msg := <-h.broadcast:
			h.broadcastMessage(msg)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := client.GetIdentityID()
	if h.clients[id] == nil {
		h.clients[id] = make(map[*Client]bool)
	}
	h.clients[id][client] = true
	h.observe()

	h.logger.Info("websocket client connected",
		zap.Int64("identity_id", id),
		zap.String("session_id", client.GetSessionID()),
		zap.Int("total", h.totalClients()),
	)

	client.SendMessage(wstypes.NewMessage(wstypes.EventTypeConnected, map[string]interface{}{
		"identity_id": id,
		"session_id":  client.GetSessionID(),
		"expires_at":  client.sess.ExpiresAt,
	}))
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := client.GetIdentityID()
	if clients, ok := h.clients[id]; ok {
		if _, exists := clients[client]; exists {
			delete(clients, client)
			client.Close()

			if len(clients) == 0 {
				delete(h.clients, id)
			}
			h.observe()

			h.logger.Info("websocket client disconnected",
				zap.Int64("identity_id", id),
				zap.String("session_id", client.GetSessionID()),
				zap.Int("total", h.totalClients()),
			)
		}
	}
}

func (h *Hub) broadcastMessage(msg *wstypes.WSMessage) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, clients := range h.clients {
		for client := range clients {
			client.SendMessage(msg)
		}
	}
}

func (h *Hub) TotalClients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.totalClients()
}

func (h *Hub) totalClients() int {
	total := 0
	for _, clients := range h.clients {
		total += len(clients)
	}
	return total
}

func (h *Hub) observe() {
	if h.gauge != nil {
		h.gauge.Set(float64(h.totalClients()))
	}
}

func (h *Hub) shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()

	close(h.done)
	for _, clients := range h.clients {
		for client := range clients {
			client.Close()
		}
	}
	h.clients = make(map[int64]map[*Client]bool)
	h.observe()
}
