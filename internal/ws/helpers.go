package ws

import (
	"crypto/rand"
	"encoding/hex"
)

// newConnID returns a random hex identifier for one websocket connection.
func newConnID() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return ""
	}
	return hex.EncodeToString(buf)
}
