package common

import (
	"crypto/rand"
	"encoding/hex"
)

// Mixed-case alphanumeric alphabet for generated customer passwords,
// with the lookalikes I, l, O and 0 excluded.
const passwordAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz0123456789"

// GeneratedPasswordLength is the length of auto-assigned customer
// passwords.
const GeneratedPasswordLength = 12

// GenerateCustomerPassword returns a random 12-character password from
// the unambiguous alphabet.
func GenerateCustomerPassword() string {
	buf := make([]byte, GeneratedPasswordLength)
	if _, err := rand.Read(buf); err != nil {
		panic(err) // crypto/rand failing means the platform is broken
	}
	for i, b := range buf {
		buf[i] = passwordAlphabet[int(b)%len(passwordAlphabet)]
	}
	return string(buf)
}

// GenerateToken returns a 256-bit random bearer token as 64 hex
// characters.
func GenerateToken() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return hex.EncodeToString(buf)
}
