// Package cryptox implements password hashing for stored credentials.
// Passwords are never persisted: only an argon2id hash computed over the
// plaintext and a per-user random salt is stored.
package cryptox

import (
	"crypto/subtle"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"golang.org/x/crypto/argon2"
)

// SaltSize is the number of random bytes generated per stored credential.
const SaltSize = 16

// NewSalt returns a fresh random salt for a new credential record.
func NewSalt() []byte {
	return common.GenerateRandByteArray(SaltSize)
}

// HashPassword derives the stored hash from a plaintext password and salt.
// Parameters follow the argon2id recommendations (1 pass, 64 MiB, 4 lanes).
func HashPassword(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, 32)
}

// VerifyPassword recomputes the hash for the candidate password with the
// stored salt and compares it to the stored hash in constant time.
func VerifyPassword(hash []byte, password []byte, salt []byte) bool {
	candidate := HashPassword(password, salt)
	return subtle.ConstantTimeCompare(hash, candidate) == 1
}
