package account

import (
	"crypto/sha1"
	"crypto/subtle"

	"golang.org/x/crypto/pbkdf2"
)

// PBKDF2 parameters. Deliberately expensive; changing them invalidates every
// stored digest, so they are fixed for the life of the account store.
const (
	hashIterations = 65536
	digestLength   = 16
	saltLength     = 16
)

// digest computes the password digest for the given salt using
// PBKDF2-HMAC-SHA1.
func digest(password string, salt []byte) []byte {
	return pbkdf2.Key([]byte(password), salt, hashIterations, digestLength, sha1.New)
}

// digestsEqual compares two digests in constant time.
func digestsEqual(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}
