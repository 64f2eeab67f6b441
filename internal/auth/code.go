// Package auth holds the login challenge helpers shared by the auth service.
package auth

import (
	"crypto/rand"
	"math/big"
	"time"
)

// ChallengeTTL is how long an emailed login code stays valid.
const ChallengeTTL = 5 * time.Minute

const (
	codeMin  = 100000
	codeSpan = 900000
)

// GenerateChallengeCode returns a 6-digit numeric login code, uniformly
// random over 100000–999999. Uses crypto/rand for randomness.
func GenerateChallengeCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeSpan))
	if err != nil {
		return "", err
	}
	return big.NewInt(codeMin + n.Int64()).String(), nil
}
