package util

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// RandomString generates a URL-safe random string of length n,
// used for the JWT secret when none is configured.
func RandomString(n int) (string, error) {
	if n <= 0 {
		return "", fmt.Errorf("length must be positive")
	}
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf)[:n], nil
}
