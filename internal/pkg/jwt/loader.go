// internal/pkg/jwt/loader.go
package jwt

import (
	"fmt"
	"time"
)

type Config struct {
	Secret   string
	Issuer   string
	Audience string
	TTL      time.Duration
	// AllowEphemeral permits a random secret when Secret is empty.
	AllowEphemeral bool
}

type Manager struct {
	Generator *Generator
	Verifier  *Verifier
}

func LoadAndBuild(cfg Config) (*Manager, error) {
	var (
		secret []byte
		err    error
	)
	if cfg.Secret == "" && cfg.AllowEphemeral {
		secret, err = RandomSecret()
	} else {
		secret, err = LoadSecret(cfg.Secret)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session secret: %w", err)
	}

	return &Manager{
		Generator: NewGenerator(secret, cfg.Issuer, cfg.Audience, cfg.TTL),
		Verifier:  NewVerifier(secret, cfg.Issuer, cfg.Audience),
	}, nil
}

// WithClock returns a manager whose generator and verifier share now.
func (m *Manager) WithClock(now func() time.Time) *Manager {
	return &Manager{
		Generator: m.Generator.WithClock(now),
		Verifier:  m.Verifier.WithClock(now),
	}
}
