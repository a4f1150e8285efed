// internal/middleware/guard.go
package middleware

import (
	"net/http"
	"strings"

	"tour-admin/internal/pkg/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LoginPath is where unauthenticated visitors are sent.
const LoginPath = "/login"

// RouteSet is the static list of protected path prefixes.
type RouteSet []string

// DefaultRoutes protects the dashboard and everything below it.
var DefaultRoutes = RouteSet{"/dashboard"}

// IsProtected reports whether path equals a prefix or lies below one. Matching
// is segment aware: "/dashboards" is not under "/dashboard".
func (rs RouteSet) IsProtected(path string) bool {
	for _, prefix := range rs {
		prefix = strings.TrimRight(prefix, "/")
		if prefix == "" {
			return true
		}
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}

// Decision is the guard's verdict for one request.
type Decision int

const (
	Allow Decision = iota
	RedirectLogin
)

func (d Decision) String() string {
	if d == RedirectLogin {
		return "redirect"
	}
	return "allow"
}

// SessionReader decodes the session carried by a request.
type SessionReader interface {
	Read(r *http.Request) (*session.Session, bool)
}

// GuardObserver records guard decisions on protected paths.
type GuardObserver interface {
	ObserveGuard(decision string)
}

type Guard struct {
	routes  RouteSet
	reader  SessionReader
	metrics GuardObserver
	logger  *zap.Logger
}

// NewGuard builds the route guard. metrics may be nil.
func NewGuard(routes RouteSet, reader SessionReader, metrics GuardObserver, logger *zap.Logger) *Guard {
	return &Guard{routes: routes, reader: reader, metrics: metrics, logger: logger}
}

// Decide is the pure decision: public paths always pass, protected paths
// need an admin session.
func (g *Guard) Decide(path string, sess *session.Session) Decision {
	if !g.routes.IsProtected(path) {
		return Allow
	}
	if sess.IsAdmin() {
		return Allow
	}
	return RedirectLogin
}

// Middleware runs the guard on every request. The session is read fresh each
// time; nothing is cached between requests.
func (g *Guard) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if !g.routes.IsProtected(path) {
			c.Next()
			return
		}

		sess, _ := g.reader.Read(c.Request)
		decision := g.Decide(path, sess)
		if g.metrics != nil {
			g.metrics.ObserveGuard(decision.String())
		}

		if decision == RedirectLogin {
			if sess != nil {
				g.logger.Debug("non-admin session redirected",
					zap.Int64("identity_id", sess.Identity.ID),
					zap.String("path", path),
				)
			}
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}

		setSession(c, sess)
		c.Next()
	}
}
