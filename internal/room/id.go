package room

import (
	"encoding/hex"

	"github.com/google/uuid"
)

const clientIDLength = 10

func shortID(length int) string {
	u := uuid.New()
	return hex.EncodeToString(u[:])[:length]
}

// NewClientID generates a per-connection client id, unique within the
// process.
func NewClientID() string {
	return shortID(clientIDLength)
}
