package enrichment

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashIP anonymizes a raw client IP with a one-way SHA-256 digest, rendered
// as 64 lowercase hex characters. The raw IP is never stored. An empty input
// (no client-IP header) still hashes deterministically.
func HashIP(rawIP string) string {
	sum := sha256.Sum256([]byte(rawIP))
	return hex.EncodeToString(sum[:])
}
