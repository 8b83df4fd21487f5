package utils

import (
	"crypto/rand"
	"math/big"
)

const idChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GenerateID returns a random 16-character alphanumeric identifier.
// Entity IDs are generated by the application, not by database sequences.
func GenerateID() string {
	b := make([]byte, 16)
	max := big.NewInt(int64(len(idChars)))
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic(err) // crypto/rand failure is not recoverable
		}
		b[i] = idChars[n.Int64()]
	}
	return string(b)
}
