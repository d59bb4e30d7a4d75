package security

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"math/big"
)

const numericCodeMax = 1000000

// GenerateNumericCode returns a 6-digit, zero-padded verification code drawn
// uniformly from [0, 999999] using a cryptographically secure source.
func GenerateNumericCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(numericCodeMax))
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%06d", n.Int64()), nil
}

// GenerateOpaqueToken returns a URL-safe random string carrying 256 bits of
// entropy, suitable as a unique token identifier.
func GenerateOpaqueToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}
