package jwt

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestManager(t *testing.T, now func() time.Time) *Manager {
	t.Helper()
	m, err := LoadAndBuild(Config{
		Secret:   testSecret,
		Issuer:   "tour-admin",
		Audience: "tour-admin-dashboard",
		TTL:      24 * time.Hour,
	})
	require.NoError(t, err)
	return m.WithClock(now)
}

func TestGenerateVerifyRoundTrip(t *testing.T) {
	t0 := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	m := newTestManager(t, func() time.Time { return t0 })

	tok, jti, exp, err := m.Generator.Generate(Subject{ID: 1, Role: "admin", Email: "admin@tour.com", Name: "Admin User"})
	require.NoError(t, err)
	assert.NotEmpty(t, jti)
	assert.Equal(t, t0.Add(24*time.Hour), exp)

	claims, err := m.Verifier.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, int64(1), claims.IdentityID)
	assert.True(t, claims.IsAdmin())
	assert.Equal(t, "admin@tour.com", claims.Email)
	assert.Equal(t, jti, claims.ID)
}

func TestVerifyExpiryBoundary(t *testing.T) {
	t0 := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	tok, _, _, err := newTestManager(t, func() time.Time { return t0 }).Generator.Generate(Subject{ID: 1, Role: "admin"})
	require.NoError(t, err)

	_, err = newTestManager(t, func() time.Time { return t0.Add(23*time.Hour + 59*time.Minute) }).Verifier.Verify(tok)
	assert.NoError(t, err)

	_, err = newTestManager(t, func() time.Time { return t0.Add(24*time.Hour + time.Minute) }).Verifier.Verify(tok)
	assert.ErrorIs(t, err, gojwt.ErrTokenExpired)
}

func TestVerifyRejectsForeignTokens(t *testing.T) {
	now := time.Now
	m := newTestManager(t, now)

	other := NewGenerator([]byte(strings.Repeat("x", 32)), "tour-admin", "tour-admin-dashboard", time.Hour)
	forged, _, _, err := other.Generate(Subject{ID: 1, Role: "admin"})
	require.NoError(t, err)
	_, err = m.Verifier.Verify(forged)
	assert.Error(t, err, "wrong secret")

	wrongAud := NewGenerator([]byte(testSecret), "tour-admin", "someone-else", time.Hour)
	tok, _, _, err := wrongAud.Generate(Subject{ID: 1, Role: "admin"})
	require.NoError(t, err)
	_, err = m.Verifier.Verify(tok)
	assert.Error(t, err, "wrong audience")

	none := gojwt.NewWithClaims(gojwt.SigningMethodNone, &Claims{IdentityID: 1, Role: "admin"})
	unsigned, err := none.SignedString(gojwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = m.Verifier.Verify(unsigned)
	assert.Error(t, err, "alg none")

	_, err = m.Verifier.Verify("not-a-token")
	assert.Error(t, err)
}

func TestLoadSecret(t *testing.T) {
	_, err := LoadSecret("short")
	assert.Error(t, err)

	dir := t.TempDir()
	path := filepath.Join(dir, "secret")
	require.NoError(t, os.WriteFile(path, []byte(testSecret+"\n"), 0o600))
	b, err := LoadSecret("file:" + path)
	require.NoError(t, err)
	assert.Equal(t, testSecret, string(b))

	_, err = LoadAndBuild(Config{})
	assert.Error(t, err)

	m, err := LoadAndBuild(Config{AllowEphemeral: true, TTL: time.Hour})
	require.NoError(t, err)
	assert.NotNil(t, m.Verifier)
}
