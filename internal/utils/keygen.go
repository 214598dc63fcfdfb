package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// GenerateAPIKeySecret generates a random API key secret of the form
// "sk-" followed by 48 hex characters.
func GenerateAPIKeySecret() (string, error) {
	bytes := make([]byte, 24)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	return "sk-" + hex.EncodeToString(bytes), nil
}
