package crypto

import (
	"crypto/rand"
	"math/big"
	"strconv"
)

// Bounds for email verification codes. Codes are always exactly six digits
// so the user-facing copy and input masks can rely on the length.
const (
	verificationCodeMin  = 100000
	verificationCodeSpan = 900000
)

// NewVerificationCode returns a 6-digit numeric code drawn uniformly from
// [100000, 999999] using the system CSPRNG. Returns "" only if the CSPRNG
// fails, which callers treat as any other invalid code.
func NewVerificationCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(verificationCodeSpan))
	if err != nil {
		return ""
	}
	return strconv.FormatInt(verificationCodeMin+n.Int64(), 10)
}
