package common

import (
	"crypto/rand"
	"encoding/hex"
)

// MakeRandHexString returns a random hex string built from size random bytes,
// so the resulting string is twice as long as size. Used for opaque refresh
// tokens. Returns an error only if the system RNG fails.
func MakeRandHexString(size int) (string, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
