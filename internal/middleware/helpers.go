// internal/middleware/helpers.go
package middleware

import (
	"tour-admin/internal/domain/auth"
	"tour-admin/internal/pkg/session"

	"github.com/gin-gonic/gin"
)

const (
	sessionKey    = "session"
	identityIDKey = "identity_id"
	jtiKey        = "jti"
)

func setSession(c *gin.Context, sess *session.Session) {
	c.Set(sessionKey, sess)
	c.Set(identityIDKey, sess.Identity.ID)
	c.Set(jtiKey, sess.JTI)
}

// GetSession returns the session the guard admitted.
func GetSession(c *gin.Context) (*session.Session, bool) {
	v, exists := c.Get(sessionKey)
	if !exists {
		return nil, false
	}
	sess, ok := v.(*session.Session)
	return sess, ok && sess != nil
}

// GetIdentity returns the identity of the admitted session.
func GetIdentity(c *gin.Context) (*auth.Identity, bool) {
	sess, ok := GetSession(c)
	if !ok {
		return nil, false
	}
	return &sess.Identity, true
}

// Helper function to get identity ID from context
func GetIdentityID(c *gin.Context) (int64, bool) {
	identityID, exists := c.Get(identityIDKey)
	if !exists {
		return 0, false
	}

	id, ok := identityID.(int64)
	return id, ok
}

// Helper function to get JTI from context
func GetJTI(c *gin.Context) (string, bool) {
	jti, exists := c.Get(jtiKey)
	if !exists {
		return "", false
	}

	jtiStr, ok := jti.(string)
	return jtiStr, ok
}

// MustGetSession gets the session from context or panics
func MustGetSession(c *gin.Context) *session.Session {
	sess, ok := GetSession(c)
	if !ok {
		panic("session not found in context")
	}
	return sess
}
