// Package fedauth verifies Google ID tokens via JWKS and validates
// issuer/audience.
package fedauth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Predaotor/AI-content-Generator/internal/config"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
)

const defaultLeeway = 30 * time.Second

// Claims contains the verified identity details we care about.
type Claims struct {
	Email   string
	Name    string
	Picture string
}

// Verifier validates Google ID tokens against Google's JWKS endpoint.
type Verifier struct {
	issuer   string
	audience string
	keyfunc  keyfunc.Keyfunc
	parser   *jwt.Parser
}

// NewVerifier builds a verifier for the configured OAuth client.
// The JWKS key set refreshes itself in the background.
func NewVerifier(cfg config.GoogleConfig) (*Verifier, error) {
	if cfg.ClientID == "" {
		return nil, errors.New("google client_id must be set")
	}
	issuer := strings.TrimSpace(cfg.Issuer)
	if issuer == "" {
		issuer = "https://accounts.google.com"
	}
	jwksURL := cfg.JWKSURL
	if jwksURL == "" {
		jwksURL = "https://www.googleapis.com/oauth2/v3/certs"
	}

	keyProvider, err := keyfunc.NewDefault([]string{jwksURL})
	if err != nil {
		return nil, fmt.Errorf("init JWKS keyfunc: %w", err)
	}

	parser := jwt.NewParser(
		jwt.WithIssuer(issuer),
		jwt.WithAudience(cfg.ClientID),
		jwt.WithLeeway(defaultLeeway),
		jwt.WithExpirationRequired(),
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Name}),
	)

	return &Verifier{
		issuer:   issuer,
		audience: cfg.ClientID,
		keyfunc:  keyProvider,
		parser:   parser,
	}, nil
}

// Verify parses and validates an ID token, returning the identity claims.
func (v *Verifier) Verify(tokenString string) (*Claims, error) {
	token, err := v.parser.Parse(tokenString, v.keyfunc.Keyfunc)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	claims := &Claims{
		Email:   readString(mapClaims, "email"),
		Name:    readString(mapClaims, "name"),
		Picture: readString(mapClaims, "picture"),
	}
	if claims.Email == "" {
		return nil, errors.New("token missing email claim")
	}
	return claims, nil
}

func readString(claims jwt.MapClaims, key string) string {
	if s, ok := claims[key].(string); ok {
		return s
	}
	return ""
}
