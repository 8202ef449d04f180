package otp

import (
	"crypto/rand"
	"io"
	"math/big"
	"strings"
)

// DefaultLength is the number of digits in a password-reset code
const DefaultLength = 6

// Generate returns a cryptographically secure numeric code of the given length
func Generate(length int) (string, error) {
	return generateFrom(rand.Reader, length)
}

func generateFrom(r io.Reader, length int) (string, error) {
	var b strings.Builder
	b.Grow(length)
	ten := big.NewInt(10)
	for i := 0; i < length; i++ {
		n, err := rand.Int(r, ten)
		if err != nil {
			return "", err
		}
		b.WriteByte(byte('0' + n.Int64()))
	}
	return b.String(), nil
}
