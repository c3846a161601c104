// Package auth gates the admin surface with the single shared
// credential and issues the session tokens the data endpoints verify.
package auth

import (
	"crypto/subtle"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid password")
	ErrNotConfigured      = errors.New("admin password is not configured")
)

// PasswordVerifier checks a submitted password against the configured
// admin secret. Exactly one mode is active: plaintext (both sides
// trimmed, compared in constant time) or bcrypt hash.
type PasswordVerifier struct {
	secret string
	hash   string
}

// NewPasswordVerifier creates a verifier from the configured secret
// and/or bcrypt hash. The hash takes precedence when both are set.
func NewPasswordVerifier(secret, hash string) *PasswordVerifier {
	return &PasswordVerifier{
		secret: strings.TrimSpace(secret),
		hash:   strings.TrimSpace(hash),
	}
}

// Verify checks the submitted password. The submission is trimmed to
// match the copy-paste behavior of the admin login form.
func (v *PasswordVerifier) Verify(submitted string) error {
	submitted = strings.TrimSpace(submitted)

	if v.hash != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(v.hash), []byte(submitted)); err != nil {
			return ErrInvalidCredentials
		}
		return nil
	}

	if v.secret == "" {
		return ErrNotConfigured
	}
	if subtle.ConstantTimeCompare([]byte(submitted), []byte(v.secret)) != 1 {
		return ErrInvalidCredentials
	}
	return nil
}
