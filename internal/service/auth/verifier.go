package auth

import (
	"context"
	"crypto/subtle"
	"errors"

	"tour-admin/internal/domain/auth"
	xerrors "tour-admin/internal/pkg/errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Verifier checks an email and password pair. A false result never says
// which half was wrong.
type Verifier interface {
	Verify(ctx context.Context, email, password string) (*auth.Identity, bool)
}

// ConfiguredVerifier accepts the single administrator account from config.
type ConfiguredVerifier struct {
	email        string
	password     string
	passwordHash []byte
}

const (
	configuredAdminID   = 1
	configuredAdminName = "Admin User"
)

// NewConfiguredVerifier builds the verifier. When passwordHash is non-empty it
// is a bcrypt hash and takes precedence over password.
func NewConfiguredVerifier(email, password, passwordHash string) *ConfiguredVerifier {
	v := &ConfiguredVerifier{email: email, password: password}
	if passwordHash != "" {
		v.passwordHash = []byte(passwordHash)
	}
	return v
}

func (v *ConfiguredVerifier) Verify(_ context.Context, email, password string) (*auth.Identity, bool) {
	if email == "" || password == "" || v.email == "" {
		return nil, false
	}

	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(v.email)) == 1

	var passOK bool
	if v.passwordHash != nil {
		passOK = bcrypt.CompareHashAndPassword(v.passwordHash, []byte(password)) == nil
	} else {
		passOK = v.password != "" && subtle.ConstantTimeCompare([]byte(password), []byte(v.password)) == 1
	}

	if !emailOK || !passOK {
		return nil, false
	}

	return &auth.Identity{
		ID:    configuredAdminID,
		Email: v.email,
		Name:  configuredAdminName,
		Role:  auth.RoleAdmin,
	}, true
}

// AdminDirectory finds admin accounts by email.
type AdminDirectory interface {
	FindAdminByEmail(ctx context.Context, email string) (*auth.AdminAccount, error)
}

// DirectoryVerifier checks credentials against admin rows of the users table.
type DirectoryVerifier struct {
	dir    AdminDirectory
	logger *zap.Logger
}

func NewDirectoryVerifier(dir AdminDirectory, logger *zap.Logger) *DirectoryVerifier {
	return &DirectoryVerifier{dir: dir, logger: logger}
}

// dummyHash keeps the miss path as slow as a real comparison.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)

func (v *DirectoryVerifier) Verify(ctx context.Context, email, password string) (*auth.Identity, bool) {
	if email == "" || password == "" {
		return nil, false
	}

	acct, err := v.dir.FindAdminByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, xerrors.ErrNotFound) {
			v.logger.Warn("admin directory lookup failed", zap.Error(err))
		}
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return nil, false
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)); err != nil {
		return nil, false
	}

	role := auth.ParseRole(acct.Role)
	if !role.Valid() {
		v.logger.Warn("admin row carries an unknown role", zap.Int64("user_id", acct.ID), zap.String("role", acct.Role))
		return nil, false
	}
	if !acct.IsActive || !role.Can(auth.CapabilityDashboard) {
		return nil, false
	}

	return &auth.Identity{
		ID:    acct.ID,
		Email: acct.Email,
		Name:  acct.Name,
		Role:  role,
	}, true
}

// ChainVerifier tries each verifier in order and returns the first match.
type ChainVerifier []Verifier

func (c ChainVerifier) Verify(ctx context.Context, email, password string) (*auth.Identity, bool) {
	for _, v := range c {
		if id, ok := v.Verify(ctx, email, password); ok {
			return id, true
		}
	}
	return nil, false
}
