package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/yukikurage/kanban-board-api/internal/constants"
)

// GenerateAccessKey generates a random group access key of 8 uppercase hex characters.
func GenerateAccessKey() (string, error) {
	bytes := make([]byte, constants.AccessKeyBytes)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	return strings.ToUpper(hex.EncodeToString(bytes)), nil
}

// NormalizeAccessKey trims and uppercases a user supplied access key.
func NormalizeAccessKey(key string) string {
	return strings.ToUpper(strings.TrimSpace(key))
}
