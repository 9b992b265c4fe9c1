package common

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// MakeRandHexString returns n random bytes hex-encoded (2n characters).
func MakeRandHexString(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("reading random bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// GenerateRandByteArray returns n random bytes. It is used for signing keys,
// where a failing system RNG is not recoverable, so it panics.
func GenerateRandByteArray(n int) []byte {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return b
}

// WipeByteArray zeroes b. Passwords read from the terminal go through it
// once they have been sent.
func WipeByteArray(b []byte) {
	clear(b)
}
