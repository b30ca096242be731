package accounting

import (
	"crypto/sha256"
	"encoding/hex"
)

// MaskKey returns a display-safe form of an API key. Keys of 8 characters
// or fewer are returned unchanged; longer keys keep the first and last 4
// characters with the middle redacted.
func MaskKey(raw string) string {
	if len(raw) <= 8 {
		return raw
	}
	return raw[:4] + "****" + raw[len(raw)-4:]
}

// hashKey derives the partition identifier for a raw API key. Accounts are
// looked up by this hash, never by the masked form, so two distinct keys
// that mask identically cannot collide.
func hashKey(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
