package core

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/hushbox/hushauth/crypto"
	"github.com/hushbox/hushauth/db"
)

// ConfirmPasswordResetHandler consumes a reset secret and sets the new
// password.
// Endpoint: POST /api/confirm-password-reset
// Authenticated: No
// Allowed Mimetype: application/json
//
// Only the SHA-256 digest of the secret is stored, so the lookup hashes the
// presented secret and searches by digest. The final update is guarded on the
// digest and expiry again, which makes the secret single use: a second
// confirm with the same link finds the digest cleared and fails.
func (a *App) ConfirmPasswordResetHandler(w http.ResponseWriter, r *http.Request) {
	if resp, err := a.Validator().ContentType(r, MimeTypeJSON); err != nil {
		WriteJsonError(w, resp)
		return
	}

	var req struct {
		Token           string `json:"token"`
		Password        string `json:"password"`
		PasswordConfirm string `json:"password_confirm"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJsonError(w, errorInvalidRequest)
		return
	}

	if req.Token == "" || req.Password == "" || req.PasswordConfirm == "" {
		WriteJsonError(w, errorMissingFields)
		return
	}
	if req.Password != req.PasswordConfirm {
		WriteJsonError(w, errorPasswordMismatch)
		return
	}
	if len(req.Password) < PasswordMinLength {
		WriteJsonError(w, errorPasswordComplexity)
		return
	}

	tokenHash := crypto.HashToken(req.Token)
	acct, err := a.DbAuth().GetAccountByResetTokenHash(tokenHash)
	if err != nil {
		WriteJsonError(w, errorAuthDatabaseError)
		return
	}

	now := time.Now()
	if acct == nil || now.After(acct.ResetExpiry) {
		WriteJsonError(w, errorInvalidResetLink)
		return
	}

	if acct.Password != "" && crypto.CheckPassword(req.Password, acct.Password) {
		WriteJsonError(w, errorSamePassword)
		return
	}

	hashedPassword, err := crypto.GenerateHash(req.Password)
	if err != nil {
		a.Logger().Error("failed to hash password", "error", err)
		WriteJsonError(w, errorAuthDatabaseError)
		return
	}

	err = a.DbAuth().ConsumeResetToken(acct.ID, tokenHash, string(hashedPassword), now)
	if err != nil {
		if errors.Is(err, db.ErrNoRowsUpdated) {
			// Consumed or superseded since the lookup.
			WriteJsonError(w, errorInvalidResetLink)
			return
		}
		WriteJsonError(w, errorAuthDatabaseError)
		return
	}

	WriteJsonOk(w, okPasswordReset)
}
