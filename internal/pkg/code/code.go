package code

import (
	"crypto/rand"
	"math/big"
)

const (
	// Length is the number of characters in an entry code. Short enough to
	// copy from an email by hand, large enough (62^7) that guessing inside
	// the one-minute validity window is not practical.
	Length = 7

	alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// New generates a Length-character entry code drawn uniformly from the
// alphanumeric alphabet. Codes are scoped per member, so collisions across
// members are harmless.
func New() (string, error) {
	b := make([]byte, Length)
	for i := range b {
		idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(alphabet))))
		if err != nil {
			return "", err
		}
		b[i] = alphabet[idx.Int64()]
	}
	return string(b), nil
}
