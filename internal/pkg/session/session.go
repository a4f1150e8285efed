// internal/pkg/session/session.go
package session

import (
	"net/http"
	"strings"
	"time"

	"tour-admin/internal/domain/auth"
	"tour-admin/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CookieName is the session cookie.
const CookieName = "touradmin_session"

// DefaultTTL is the fixed session lifetime, measured from issuance.
const DefaultTTL = 24 * time.Hour

// CookieOptions controls how the session cookie is written.
type CookieOptions struct {
	Secure bool
	Domain string
	Path   string
}

func (o CookieOptions) path() string {
	if o.Path == "" {
		return "/"
	}
	return o.Path
}

// Issuer signs session tokens and delivers them as cookies.
type Issuer struct {
	generator *jwt.Generator
	cookie    CookieOptions
}

func NewIssuer(generator *jwt.Generator, cookie CookieOptions) *Issuer {
	return &Issuer{generator: generator, cookie: cookie}
}

// Sign creates a token for id without touching any response.
func (i *Issuer) Sign(id *auth.Identity) (*Issued, error) {
	token, jti, expiresAt, err := i.generator.Generate(jwt.Subject{
		ID:    id.ID,
		Role:  id.Role.String(),
		Email: id.Email,
		Name:  id.Name,
	})
	if err != nil {
		return nil, err
	}
	return &Issued{Token: token, JTI: jti, ExpiresAt: expiresAt}, nil
}

// Issue signs a token for id and sets the session cookie on c.
func (i *Issuer) Issue(c *gin.Context, id *auth.Identity) (*Issued, error) {
	issued, err := i.Sign(id)
	if err != nil {
		return nil, err
	}
	i.SetCookie(c, issued)
	return issued, nil
}

// SetCookie writes an already signed session to the response.
func (i *Issuer) SetCookie(c *gin.Context, issued *Issued) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, issued.Token, int(i.generator.Ttl.Seconds()), i.cookie.path(), i.cookie.Domain, i.cookie.Secure, true)
}

// Clear expires the session cookie.
func (i *Issuer) Clear(c *gin.Context) {
	Clear(c, i.cookie)
}

// Clear expires the session cookie written with opts.
func Clear(c *gin.Context, opts CookieOptions) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, "", -1, opts.path(), opts.Domain, opts.Secure, true)
}

// Reader decodes the session carried by a request.
type Reader struct {
	verifier *jwt.Verifier
	logger   *zap.Logger
}

func NewReader(verifier *jwt.Verifier, logger *zap.Logger) *Reader {
	return &Reader{verifier: verifier, logger: logger}
}

// Read returns the request's session. Any missing, malformed, forged or
// expired token yields (nil, false).
func (r *Reader) Read(req *http.Request) (*Session, bool) {
	token := TokenFromRequest(req)
	if token == "" {
		return nil, false
	}
	return r.Parse(token)
}

// Parse verifies a raw token.
func (r *Reader) Parse(token string) (*Session, bool) {
	claims, err := r.verifier.Verify(token)
	if err != nil {
		r.logger.Debug("session token rejected", zap.Error(err))
		return nil, false
	}

	s := &Session{
		JTI: claims.ID,
		Identity: auth.Identity{
			ID:    claims.IdentityID,
			Email: claims.Email,
			Name:  claims.Name,
			Role:  auth.ParseRole(claims.Role),
		},
		Token: token,
	}
	if claims.IssuedAt != nil {
		s.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		s.ExpiresAt = claims.ExpiresAt.Time
	}
	return s, true
}

// TokenFromRequest extracts the session token from the cookie, falling back to
// an Authorization bearer header.
func TokenFromRequest(req *http.Request) string {
	if ck, err := req.Cookie(CookieName); err == nil && ck.Value != "" {
		return ck.Value
	}

	authHeader := req.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
