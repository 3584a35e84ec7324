package services

import (
	"context"
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// CredentialVerifier checks an admin credential pair and returns the admin's
// display name on success. Implementations decide where credentials live.
type CredentialVerifier interface {
	Verify(ctx context.Context, username, password string) (string, error)
}

// EnvCredentialVerifier verifies against a single admin account configured
// through the environment: a plain username and a bcrypt password hash.
type EnvCredentialVerifier struct {
	Username     string
	PasswordHash string
}

func (v *EnvCredentialVerifier) Verify(_ context.Context, username, password string) (string, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(v.Username)) == 1
	passErr := bcrypt.CompareHashAndPassword([]byte(v.PasswordHash), []byte(password))
	if !userOK || passErr != nil {
		return "", ErrAuthInvalidCredentials
	}
	return v.Username, nil
}

type AuthService interface {
	Login(ctx context.Context, username, password string) (string, error)
}

type authService struct {
	verifier CredentialVerifier
}

func NewAuthService(verifier CredentialVerifier) AuthService {
	return &authService{verifier: verifier}
}

// Login returns the admin display name when the credentials check out.
func (s *authService) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", ErrAuthInvalidCredentials
	}
	name, err := s.verifier.Verify(ctx, username, password)
	if err != nil {
		return "", ErrAuthInvalidCredentials
	}
	return name, nil
}
