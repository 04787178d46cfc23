package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateID creates a simple unique ID (a uuid replacement to keep dependencies down).
func GenerateID() string {
	b := make([]byte, 8) // 16 hex chars
	if _, err := rand.Read(b); err != nil {
		panic("failed to generate random ID: " + err.Error())
	}
	return hex.EncodeToString(b)
}
