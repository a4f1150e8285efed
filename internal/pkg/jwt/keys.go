package jwt

import (
	"crypto/rand"
	"fmt"
	"os"
	"strings"
)

// MinSecretLength is the shortest HMAC secret accepted.
const MinSecretLength = 32

// LoadSecret returns the signing secret. A value prefixed with "file:" is read
// from disk.
func LoadSecret(raw string) ([]byte, error) {
	if path, ok := strings.CutPrefix(raw, "file:"); ok {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read secret: %w", err)
		}
		raw = strings.TrimSpace(string(b))
	}

	if len(raw) < MinSecretLength {
		return nil, fmt.Errorf("session secret must be at least %d bytes", MinSecretLength)
	}
	return []byte(raw), nil
}

// RandomSecret generates an ephemeral secret. Tokens signed with it do not
// survive a restart.
func RandomSecret() ([]byte, error) {
	b := make([]byte, MinSecretLength)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("generate secret: %w", err)
	}
	return b, nil
}
