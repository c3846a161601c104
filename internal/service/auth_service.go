package service

import (
	"log/slog"

	"github.com/harborlane/specials/internal/auth"
)

// AuthService handles the admin login flow.
type AuthService struct {
	verifier *auth.PasswordVerifier
	sessions *auth.SessionManager
	logger   *slog.Logger
}

// NewAuthService creates an auth service from the verifier and
// session manager.
func NewAuthService(verifier *auth.PasswordVerifier, sessions *auth.SessionManager, logger *slog.Logger) *AuthService {
	return &AuthService{verifier: verifier, sessions: sessions, logger: logger}
}

// Login checks the submitted password and, on success, issues a
// session token for the admin endpoints.
func (s *AuthService) Login(password string) (string, error) {
	if err := s.verifier.Verify(password); err != nil {
		if err == auth.ErrNotConfigured {
			s.logger.Error("Admin password is not configured")
		} else {
			s.logger.Warn("Login failed")
		}
		return "", err
	}

	token, err := s.sessions.Issue()
	if err != nil {
		s.logger.Error("Failed to issue session token", "error", err)
		return "", err
	}

	s.logger.Info("Admin logged in")
	return token, nil
}
