// internal/websocket/errors.go
package websocket

import "errors"

var (
	ErrSessionExpired = errors.New("session has expired")
	ErrHubClosed      = errors.New("hub is closed")
)
