package client

import (
	"context"
	"net/http"
	"time"
)

// Response describes a finished request. StatusCode is 0 when no response
// was received.
type Response struct {
	Method     string
	Path       string
	StatusCode int
	Elapsed    time.Duration
	Err        error
}

// ResponseInterceptor observes every finished request.
type ResponseInterceptor func(ctx context.Context, resp Response)

func (c *Client) intercept(ctx context.Context, resp Response) {
	for _, fn := range c.interceptors {
		fn(ctx, resp)
	}
}

// OnUnauthorized returns an option that calls fn whenever the backend answers
// 401, whichever endpoint was called.
func OnUnauthorized(fn func(ctx context.Context)) Option {
	return WithResponseInterceptor(func(ctx context.Context, resp Response) {
		if resp.StatusCode == http.StatusUnauthorized {
			fn(ctx)
		}
	})
}
