package auth

import (
	"crypto/md5"
	"encoding/hex"
)

// HashPassword applies the one-way transform used for stored and
// submitted passwords alike: unsalted md5, hex encoded. Identical
// passwords hash identically across users; kept for compatibility
// with the existing user collection, unsuitable for new deployments
// without a salted slow hash in front.
func HashPassword(password string) string {
	sum := md5.Sum([]byte(password))
	return hex.EncodeToString(sum[:])
}
