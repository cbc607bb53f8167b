package domain

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// Entity ID prefixes. IDs look like "cl-a1b2c3d4e5f60718".
const (
	ClientIDPrefix      = "cl"
	LeadIDPrefix        = "lead"
	ProjectIDPrefix     = "pj"
	TransactionIDPrefix = "tr"
	TaskIDPrefix        = "task"
)

// NewID generates a new random entity ID with the given prefix.
func NewID(prefix string) (string, error) {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%s", prefix, hex.EncodeToString(b)), nil
}
