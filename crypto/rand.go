package crypto

import (
	"crypto/rand"
)

// AlphanumericAlphabet is the default alphabet for secrets that travel in
// URLs or config files.
const AlphanumericAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// RandomString returns a cryptographically secure random string of the given
// length drawn uniformly from alphabet. Rejection sampling avoids the modulo
// bias of indexing with raw bytes.
func RandomString(length int, alphabet string) string {
	if length <= 0 || len(alphabet) == 0 || len(alphabet) > 256 {
		return ""
	}

	// Largest multiple of len(alphabet) that fits in a byte. Bytes at or
	// above this value are discarded.
	limit := 256 - (256 % len(alphabet))

	out := make([]byte, 0, length)
	buf := make([]byte, length)
	for len(out) < length {
		if _, err := rand.Read(buf); err != nil {
			return ""
		}
		for _, b := range buf {
			if int(b) >= limit {
				continue
			}
			out = append(out, alphabet[int(b)%len(alphabet)])
			if len(out) == length {
				break
			}
		}
	}
	return string(out)
}
