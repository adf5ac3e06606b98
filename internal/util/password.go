package util

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

// GenerateOneTimePassword builds the temporary password handed to
// accounts provisioned by the Hotmart webhook: the capitalized local
// part of the purchaser's email plus four random digits and a bang.
// The account is flagged so the portal forces a password change on
// first login.
func GenerateOneTimePassword(email string) string {
	local := email
	if i := strings.Index(email, "@"); i >= 0 {
		local = email[:i]
	}
	if local == "" {
		local = "aluno"
	}

	suffix, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		// crypto/rand only fails when the platform entropy source is
		// broken; there is no useful recovery for a one-time password.
		panic(err)
	}

	capitalized := strings.ToUpper(local[:1]) + local[1:]
	return fmt.Sprintf("%s%04d!", capitalized, suffix.Int64())
}
