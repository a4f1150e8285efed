// internal/domain/websocket/types.go
package websocket

import (
	"encoding/json"
	"time"

	"github.com/oklog/ulid/v2"
)

// EventType represents different real-time event types
type EventType string

const (
	// Connection events
	EventTypePing      EventType = "ping"
	EventTypePong      EventType = "pong"
	EventTypeConnected EventType = "connected"
	EventTypeError     EventType = "error"

	// Dashboard events
	EventTypeStats        EventType = "stats"
	EventTypeStatsRefresh EventType = "stats:refresh"
	EventTypeDataChanged  EventType = "data:changed"

	// Session events
	EventTypeSessionExpired EventType = "session:expired"
)

// WSMessage is the universal message format
type WSMessage struct {
	Type      EventType              `json:"type"`
	Data      interface{}            `json:"data,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	ID        string                 `json:"id,omitempty"`
}

// ErrorData for error events
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// SessionEventData tells the browser its session is gone and where to go.
type SessionEventData struct {
	Reason   string `json:"reason"`
	Message  string `json:"message"`
	Redirect string `json:"redirect"`
}

// DataChangedData announces a mutation so open dashboards can refetch.
type DataChangedData struct {
	Resource string `json:"resource"`
	ID       int64  `json:"id,omitempty"`
	Action   string `json:"action"`
}

// Helper to create messages
func NewMessage(eventType EventType, data interface{}) *WSMessage {
	return &WSMessage{
		Type:      eventType,
		Data:      data,
		Timestamp: time.Now(),
		ID:        ulid.Make().String(),
	}
}

func (m *WSMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ParseMessage(data []byte) (*WSMessage, error) {
	var msg WSMessage
	err := json.Unmarshal(data, &msg)
	return &msg, err
}
