// internal/websocket/handler/stats.go
package handler

import (
	"context"
	"errors"
	"fmt"

	wstypes "tour-admin/internal/domain/websocket"
	ws "tour-admin/internal/websocket"
)

// StatsHandler answers on-demand stats refreshes.
type StatsHandler struct{}

func NewStatsHandler() *StatsHandler {
	return &StatsHandler{}
}

// SupportedEvents returns events this handler supports
func (h *StatsHandler) SupportedEvents() []wstypes.EventType {
	return []wstypes.EventType{wstypes.EventTypeStatsRefresh}
}

// HandleMessage processes stats-related messages
func (h *StatsHandler) HandleMessage(ctx context.Context, client *ws.Client, msg *wstypes.WSMessage) error {
	switch msg.Type {
	case wstypes.EventTypeStatsRefresh:
		if err := client.PushStats(ctx); errors.Is(err, ws.ErrSessionExpired) {
			return err
		}
		return nil
	default:
		return fmt.Errorf("unsupported event type: %s", msg.Type)
	}
}
