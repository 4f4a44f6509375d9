package service

import "errors"

// Failure kinds surfaced by the identity verifier and the admission
// gate. Handlers branch on these with errors.Is; each maps to a stable
// HTTP status and business code.
var (
	ErrDuplicateIdentity     = errors.New("email or username already registered")
	ErrInvalidCredentials    = errors.New("incorrect email/username or password")
	ErrInvalidFederatedToken = errors.New("invalid federated token")
	ErrInvalidToken          = errors.New("invalid or expired session token")
	ErrUserInactive          = errors.New("user account is inactive")
	ErrQuotaExceeded         = errors.New("daily token quota exceeded")
	ErrGenerationFailed      = errors.New("content generation failed")
)
