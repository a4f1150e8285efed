// internal/websocket/client.go
package websocket

import (
	"context"
	"errors"
	"sync"
	"time"

	wstypes "tour-admin/internal/domain/websocket"
	"tour-admin/internal/pkg/session"
	"tour-admin/pkg/client"
	"tour-admin/pkg/domain"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
)

// StatsFetcher loads the dashboard aggregates.
type StatsFetcher interface {
	Get(ctx context.Context) (*domain.DashboardStats, error)
}

type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	send     chan []byte
	sess     *session.Session
	stats    StatsFetcher
	interval time.Duration
	logger   *zap.Logger

	// pushMu serialises stats pushes from the ticker and refresh requests
	pushMu sync.Mutex

	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

func NewClient(hub *Hub, conn *websocket.Conn, sess *session.Session, stats StatsFetcher, interval time.Duration) *Client {
	ctx, cancel := context.WithCancel(context.Background())

	return &Client{
		hub:      hub,
		conn:     conn,
		send:     make(chan []byte, 64),
		sess:     sess,
		stats:    stats,
		interval: interval,
		logger:   hub.logger,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// GetIdentityID returns the client's identity ID
func (c *Client) GetIdentityID() int64 {
	return c.sess.Identity.ID
}

// GetSessionID returns the jti of the session the client connected with
func (c *Client) GetSessionID() string {
	return c.sess.JTI
}

// ReadPump handles incoming messages from client
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Debug("websocket read error", zap.Error(err))
			}
			return
		}

		c.handleMessage(message)
	}
}

// WritePump handles outgoing messages to client
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-c.ctx.Done():
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
			return

		case message := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if message == nil {
				// flush sentinel queued by closeAfterFlush
				c.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "session expired"))
				c.cancel()
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.cancel()
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.cancel()
				return
			}
		}
	}
}

// StatsLoop pushes stats on connect and then every interval until the client
// goes away. The session token is re-verified before every push.
func (c *Client) StatsLoop() {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	if errors.Is(c.PushStats(c.ctx), ErrSessionExpired) {
		return
	}
	for {
		select {
		case <-c.ctx.Done():
			return
		case <-ticker.C:
			if errors.Is(c.PushStats(c.ctx), ErrSessionExpired) {
				return
			}
		}
	}
}

// PushStats fetches and sends the current stats. A dead session or a
// backend 401 ends the connection with session:expired and returns
// ErrSessionExpired. Backend failures are reported to the browser and
// leave the connection open.
func (c *Client) PushStats(ctx context.Context) error {
	c.pushMu.Lock()
	defer c.pushMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	if _, ok := c.hub.verifySession(c.sess.Token); !ok {
		c.Expire("token_expired")
		return ErrSessionExpired
	}

	stats, err := c.stats.Get(ctx)
	switch {
	case err == nil:
		c.SendMessage(wstypes.NewMessage(wstypes.EventTypeStats, stats))
	case client.IsUnauthorized(err):
		c.Expire("backend_unauthorized")
		return ErrSessionExpired
	case ctx.Err() != nil:
		return ctx.Err()
	default:
		c.logger.Warn("stats push failed", zap.Int64("identity_id", c.GetIdentityID()), zap.Error(err))
		c.SendError("stats_unavailable", "Failed to load stats", err.Error())
	}
	return nil
}

// Expire tells the browser to sign in again and closes the connection.
func (c *Client) Expire(reason string) {
	c.SendMessage(wstypes.NewMessage(wstypes.EventTypeSessionExpired, wstypes.SessionEventData{
		Reason:   reason,
		Message:  "Your session has expired",
		Redirect: "/login",
	}))
	c.closeAfterFlush()
}

// handleMessage processes incoming messages from client
func (c *Client) handleMessage(data []byte) {
	msg, err := wstypes.ParseMessage(data)
	if err != nil {
		c.SendError("invalid_message", "Failed to parse message", err.Error())
		return
	}

	// Try to handle with registered handlers first
	handled, err := c.hub.HandleClientMessage(c.ctx, c, msg)
	if errors.Is(err, ErrSessionExpired) {
		return
	}
	if err != nil {
		c.SendError("handler_error", "Failed to process message", err.Error())
		return
	}
	if handled {
		return
	}

	// Built-in message handling
	switch msg.Type {
	case wstypes.EventTypePing:
		c.SendMessage(wstypes.NewMessage(wstypes.EventTypePong, nil))
	default:
		c.SendError("unknown_event", "Unsupported event type", string(msg.Type))
	}
}

// SendMessage queues a message for the client. A client that cannot keep up
// is disconnected.
func (c *Client) SendMessage(msg *wstypes.WSMessage) {
	data, err := msg.ToJSON()
	if err != nil {
		c.logger.Error("failed to marshal message", zap.Error(err))
		return
	}

	select {
	case <-c.ctx.Done():
	case c.send <- data:
	default:
		c.logger.Warn("websocket send buffer full, closing", zap.Int64("identity_id", c.GetIdentityID()))
		c.Close()
	}
}

// SendError sends an error message to the client
func (c *Client) SendError(code, message, details string) {
	c.SendMessage(wstypes.NewMessage(wstypes.EventTypeError, wstypes.ErrorData{
		Code:    code,
		Message: message,
		Details: details,
	}))
}

func (c *Client) closeAfterFlush() {
	select {
	case <-c.ctx.Done():
	case c.send <- nil:
	default:
		c.Close()
	}
}

// Close stops the client's goroutines. Safe to call more than once.
func (c *Client) Close() {
	c.closeOnce.Do(c.cancel)
}

// Done is closed once the client has stopped.
func (c *Client) Done() <-chan struct{} {
	return c.ctx.Done()
}
