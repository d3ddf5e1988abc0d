package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/joedev/portfolio-api/pkg/auth"
)

// AdminSession is the result of a successful admin login.
type AdminSession struct {
	Token     string
	ExpiresAt time.Time
}

// AdminAuthService handles the admin login transition.
type AdminAuthService interface {
	// Login checks password and issues a signed token. Returns
	// auth.ErrInvalidCredentials on mismatch.
	Login(ctx context.Context, password string) (*AdminSession, error)
}

// PasswordVerifier checks an admin password.
type PasswordVerifier interface {
	Verify(password string) error
}

// TokenIssuer signs admin tokens.
type TokenIssuer interface {
	Issue() (string, time.Time, error)
}

// metricsRecorder is the subset of telemetry.Metrics used here.
type metricsRecorder interface {
	LoginAttempt(ctx context.Context, success bool)
}

// AdminAuthServiceImpl is the production implementation of AdminAuthService.
type AdminAuthServiceImpl struct {
	passwords PasswordVerifier
	tokens    TokenIssuer
	metrics   metricsRecorder
}

// NewAdminAuthService creates an AdminAuthService. metrics may be nil.
func NewAdminAuthService(passwords PasswordVerifier, tokens TokenIssuer, metrics metricsRecorder) AdminAuthService {
	return &AdminAuthServiceImpl{passwords: passwords, tokens: tokens, metrics: metrics}
}

// Login verifies the shared secret and issues a token.
func (s *AdminAuthServiceImpl) Login(ctx context.Context, password string) (*AdminSession, error) {
	if err := s.passwords.Verify(password); err != nil {
		slog.Warn("admin login rejected")
		s.recordLogin(ctx, false)
		return nil, auth.ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue()
	if err != nil {
		slog.Error("issue admin token failed", "error", err)
		s.recordLogin(ctx, false)
		return nil, err
	}
	slog.Info("admin login", "expires_at", expiresAt)
	s.recordLogin(ctx, true)
	return &AdminSession{Token: token, ExpiresAt: expiresAt}, nil
}

func (s *AdminAuthServiceImpl) recordLogin(ctx context.Context, success bool) {
	if s.metrics != nil {
		s.metrics.LoginAttempt(ctx, success)
	}
}
