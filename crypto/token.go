package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// ResetSecretLength is the number of random bytes behind a password reset
// secret. 32 bytes (256 bits) keeps the emailed link unguessable.
const ResetSecretLength = 32

// TokenPair carries a reset secret and its storage digest. Secret is embedded
// in the emailed link and never persisted; Hash is the only value written to
// the account record, so a leaked database cannot forge valid reset links.
type TokenPair struct {
	Secret string
	Hash   string
}

// NewResetToken generates a fresh high-entropy secret and its SHA-256 digest.
func NewResetToken() (*TokenPair, error) {
	b := make([]byte, ResetSecretLength)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	secret := hex.EncodeToString(b)
	return &TokenPair{Secret: secret, Hash: HashToken(secret)}, nil
}

// HashToken returns the hex encoded SHA-256 digest of a reset secret.
func HashToken(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}

// VerifyToken reports whether secret digests to storedHash. The comparison is
// constant time to avoid leaking digest prefixes through timing.
func VerifyToken(secret, storedHash string) bool {
	if secret == "" || storedHash == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(HashToken(secret)), []byte(storedHash)) == 1
}
