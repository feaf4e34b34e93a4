package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// The legacy password column is varchar(50), so the 64-char sha256 hex
// digest is truncated to 50 characters. Both registration and every lookup
// must use the same scheme for the stored values to match.
const maxHashLen = 50

// HashPassword hashes a plain-text password the way the legacy database
// stores it: sha256 hex, truncated to 50 characters.
func HashPassword(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	full := hex.EncodeToString(sum[:])
	return full[:maxHashLen]
}

// VerifyPassword compares a plain-text password against a stored hash.
func VerifyPassword(plain, hashed string) bool {
	return subtle.ConstantTimeCompare([]byte(HashPassword(plain)), []byte(hashed)) == 1
}
