// internal/service/auth/auth.go
package auth

import (
	"context"
	"fmt"

	"tour-admin/internal/domain/auth"
	xerrors "tour-admin/internal/pkg/errors"
	"tour-admin/internal/pkg/session"

	"go.uber.org/zap"
)

// LoginObserver records sign-in outcomes.
type LoginObserver interface {
	ObserveLogin(result string)
}

// Signer turns a verified identity into a session token.
type Signer interface {
	Sign(id *auth.Identity) (*session.Issued, error)
}

type AuthService struct {
	verifier    Verifier
	signer      Signer
	rateLimiter session.LoginThrottle
	metrics     LoginObserver
	logger      *zap.Logger
}

// NewAuthService wires the sign-in flow. rateLimiter and metrics may be nil.
func NewAuthService(
	verifier Verifier,
	signer Signer,
	rateLimiter session.LoginThrottle,
	metrics LoginObserver,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		verifier:    verifier,
		signer:      signer,
		rateLimiter: rateLimiter,
		metrics:     metrics,
		logger:      logger,
	}
}

// LoginResult is a successful sign-in.
type LoginResult struct {
	Identity *auth.Identity
	Session  *session.Issued
}

// Login verifies the credentials and signs a session for the identity.
// Every rejection is reported as ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, req *auth.LoginRequest) (*LoginResult, error) {
	email := req.Email

	if s.rateLimiter != nil {
		allowed, err := s.rateLimiter.Allowed(ctx, req.IPAddress, email)
		if err != nil {
			s.logger.Warn("login throttle unavailable", zap.Error(err))
		} else if !allowed {
			s.observe("throttled")
			s.logger.Info("login throttled", zap.String("ip", req.IPAddress))
			return nil, fmt.Errorf("%w: %w", xerrors.ErrInvalidCredentials, xerrors.ErrRateLimited)
		}
	}

	identity, ok := s.verifier.Verify(ctx, email, req.Password)
	if !ok {
		s.observe("failure")
		if s.rateLimiter != nil {
			if _, err := s.rateLimiter.RecordFailure(ctx, req.IPAddress, email); err != nil {
				s.logger.Warn("failed to record login failure", zap.Error(err))
			}
		}
		s.logger.Info("login rejected", zap.String("ip", req.IPAddress))
		return nil, xerrors.ErrInvalidCredentials
	}

	issued, err := s.signer.Sign(identity)
	if err != nil {
		s.observe("error")
		return nil, xerrors.Wrap(err, "failed to issue session")
	}

	if s.rateLimiter != nil {
		if err := s.rateLimiter.Reset(ctx, req.IPAddress, email); err != nil {
			s.logger.Warn("failed to reset login attempts", zap.Error(err))
		}
	}

	s.observe("success")
	s.logger.Info("admin signed in",
		zap.Int64("identity_id", identity.ID),
		zap.String("jti", issued.JTI),
		zap.String("ip", req.IPAddress),
	)

	return &LoginResult{Identity: identity, Session: issued}, nil
}

// Logout records the end of a session. Tokens are stateless, so the caller
// clears the cookie.
func (s *AuthService) Logout(_ context.Context, sess *session.Session) {
	if sess == nil {
		return
	}
	s.logger.Info("admin signed out",
		zap.Int64("identity_id", sess.Identity.ID),
		zap.String("jti", sess.JTI),
	)
}

func (s *AuthService) observe(result string) {
	if s.metrics != nil {
		s.metrics.ObserveLogin(result)
	}
}
