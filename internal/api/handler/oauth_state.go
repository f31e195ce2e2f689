package handler

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// newOAuthState returns a random URL-safe nonce tying the consent redirect
// to its callback.
func newOAuthState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate oauth state: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
