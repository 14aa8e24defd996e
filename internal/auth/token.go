// Package auth hashes installation tokens for storage on the management
// server.
package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HashToken returns the bcrypt hash the server keeps instead of the token.
func HashToken(token string) (string, error) {
	if token == "" {
		return "", fmt.Errorf("token is required")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing token: %w", err)
	}
	return string(hashed), nil
}
