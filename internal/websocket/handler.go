// internal/websocket/handler.go
package websocket

import (
	"context"
	"fmt"
	"sync"

	wstypes "tour-admin/internal/domain/websocket"
)

// MessageHandler answers browser events on the stats feed, such as a
// stats:refresh request.
type MessageHandler interface {
	HandleMessage(ctx context.Context, client *Client, msg *wstypes.WSMessage) error
	SupportedEvents() []wstypes.EventType
}

// HandlerRegistry routes each inbound event type to the one handler that
// claimed it. Events nobody claimed fall through to the client's built-ins.
type HandlerRegistry struct {
	mu       sync.RWMutex
	handlers map[wstypes.EventType]MessageHandler
}

func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{handlers: make(map[wstypes.EventType]MessageHandler)}
}

// Register claims the handler's events. An event already claimed by another
// handler is an error and nothing is registered.
func (r *HandlerRegistry) Register(handler MessageHandler) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	events := handler.SupportedEvents()
	for _, ev := range events {
		if _, taken := r.handlers[ev]; taken {
			return fmt.Errorf("event %q already has a handler", ev)
		}
	}
	for _, ev := range events {
		r.handlers[ev] = handler
	}
	return nil
}

// Dispatch runs the handler claiming msg.Type. It reports false when the
// event is unclaimed.
func (r *HandlerRegistry) Dispatch(ctx context.Context, client *Client, msg *wstypes.WSMessage) (bool, error) {
	r.mu.RLock()
	handler, ok := r.handlers[msg.Type]
	r.mu.RUnlock()
	if !ok {
		return false, nil
	}
	return true, handler.HandleMessage(ctx, client, msg)
}
