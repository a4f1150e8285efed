package session

import (
	"context"
	"sync/atomic"
)

type teardownKey struct{}

// WithTeardown returns a context that can record a teardown request, and the
// flag that records it.
func WithTeardown(ctx context.Context) (context.Context, *atomic.Bool) {
	flag := new(atomic.Bool)
	return context.WithValue(ctx, teardownKey{}, flag), flag
}

// RequestTeardown marks the session bound to ctx for teardown. It is a no-op
// when ctx carries no flag.
func RequestTeardown(ctx context.Context) {
	if flag, ok := ctx.Value(teardownKey{}).(*atomic.Bool); ok {
		flag.Store(true)
	}
}

// TeardownRequested reports whether RequestTeardown was called on ctx.
func TeardownRequested(ctx context.Context) bool {
	flag, ok := ctx.Value(teardownKey{}).(*atomic.Bool)
	return ok && flag.Load()
}
