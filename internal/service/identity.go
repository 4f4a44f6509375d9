package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Predaotor/AI-content-Generator/internal/config"
	"github.com/Predaotor/AI-content-Generator/internal/fedauth"
	"github.com/Predaotor/AI-content-Generator/internal/models"
	"github.com/Predaotor/AI-content-Generator/internal/util"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	// bounds for usernames derived from a federated email's local part
	maxDerivedBase = 20
	maxUsernameLen = 30
)

// dummyHash is compared against when no user matches, so the response
// time does not reveal whether the identifier exists.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("timing-equalizer"), bcrypt.DefaultCost)

// FederatedVerifier validates a third-party identity token.
// *fedauth.Verifier is the production implementation.
type FederatedVerifier interface {
	Verify(token string) (*fedauth.Claims, error)
}

// Identity authenticates users and issues stateless session tokens.
type Identity struct {
	db        *gorm.DB
	jwtCfg    config.JWTConfig
	federated FederatedVerifier
}

// NewIdentity builds the identity verifier. federated may be nil when
// Google sign-in is not configured.
func NewIdentity(db *gorm.DB, jwtCfg config.JWTConfig, federated FederatedVerifier) *Identity {
	return &Identity{db: db, jwtCfg: jwtCfg, federated: federated}
}

// Register creates a local-credential user. Email and username must both
// be unused (exact match as stored).
func (s *Identity) Register(ctx context.Context, email, username, password string) (*models.User, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("email = ? OR username = ?", email, username).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check existing user: %w", err)
	}
	if count > 0 {
		return nil, ErrDuplicateIdentity
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Email:        email,
		Username:     username,
		PasswordHash: string(hash),
		IsActive:     true,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		// unique index may still fire under concurrent registration
		if isUniqueViolation(err) {
			return nil, ErrDuplicateIdentity
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

// Authenticate resolves the identifier by email first, then username,
// and checks the password. All failure modes return the same error.
func (s *Identity) Authenticate(ctx context.Context, identifier, password string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", identifier).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = s.db.WithContext(ctx).Where("username = ?", identifier).First(&user).Error
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// burn a hash comparison so unknown identifiers take as long
			// as wrong passwords
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if user.PasswordHash == "" {
		// federated-only account, no local credential
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// AuthenticateFederated validates a Google ID token and returns the
// matching user, creating one on first sign-in. Created users have no
// local password credential.
func (s *Identity) AuthenticateFederated(ctx context.Context, idToken string) (*models.User, error) {
	if s.federated == nil {
		return nil, ErrInvalidFederatedToken
	}
	claims, err := s.federated.Verify(idToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFederatedToken, err)
	}

	var user models.User
	err = s.db.WithContext(ctx).Where("email = ?", claims.Email).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	username, err := s.deriveUsername(ctx, claims.Email)
	if err != nil {
		return nil, err
	}

	user = models.User{
		Email:    claims.Email,
		Username: username,
		Picture:  claims.Picture,
		IsActive: true,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if isUniqueViolation(err) {
			// concurrent first sign-in created the account already
			if lookupErr := s.db.WithContext(ctx).Where("email = ?", claims.Email).First(&user).Error; lookupErr == nil {
				return &user, nil
			}
		}
		return nil, fmt.Errorf("create federated user: %w", err)
	}
	return &user, nil
}

// deriveUsername builds a unique username from the email's local part,
// truncated and disambiguated with a numeric suffix. If a candidate
// would exceed the maximum length it falls back to "user" plus counter.
func (s *Identity) deriveUsername(ctx context.Context, email string) (string, error) {
	base := email
	if at := strings.IndexByte(email, '@'); at > 0 {
		base = email[:at]
	}
	if runes := []rune(base); len(runes) > maxDerivedBase {
		base = string(runes[:maxDerivedBase])
	}
	if base == "" {
		base = "user"
	}

	candidate := base
	for suffix := 1; ; suffix++ {
		if len(candidate) > maxUsernameLen {
			candidate = fmt.Sprintf("user%d", suffix)
		}
		var count int64
		if err := s.db.WithContext(ctx).Model(&models.User{}).
			Where("username = ?", candidate).
			Count(&count).Error; err != nil {
			return "", fmt.Errorf("check username: %w", err)
		}
		if count == 0 {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s%d", base, suffix)
	}
}

// IssueSessionToken signs a stateless session token for the user.
func (s *Identity) IssueSessionToken(user *models.User) (string, error) {
	return util.GenerateToken(s.jwtCfg.Secret, user.Email, s.jwtCfg.TTL())
}

// VerifySessionToken checks signature and expiry and returns the subject
// email. It does not resolve the user record.
func (s *Identity) VerifySessionToken(token string) (string, error) {
	claims, err := util.ParseToken(s.jwtCfg.Secret, token)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return claims.Subject, nil
}

// ResolveUser loads a user by the verified session subject.
func (s *Identity) ResolveUser(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("resolve user: %w", err)
	}
	return &user, nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// sqlite reports constraint violations as plain errors
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "unique")
}
