package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// GenerateStateToken generates a random token for OAuth state verification
func GenerateStateToken() (string, error) {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	return hex.EncodeToString(bytes), nil
}
