package fileutil

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashContent returns a short, stable fingerprint of data
func HashContent(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])[:16]
}
