package core

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/hushbox/hushauth/crypto"
	"github.com/hushbox/hushauth/db"
)

// ResendVerificationHandler rotates the verification code and mails it again.
// Endpoint: POST /api/resend-verification
// Authenticated: No
// Allowed Mimetype: application/json
//
// Sending email is expensive and a spam vector, so resends for an account are
// rate limited through a cache cooldown.
func (a *App) ResendVerificationHandler(w http.ResponseWriter, r *http.Request) {
	if resp, err := a.Validator().ContentType(r, MimeTypeJSON); err != nil {
		WriteJsonError(w, resp)
		return
	}

	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJsonError(w, errorInvalidRequest)
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" {
		WriteJsonError(w, errorMissingFields)
		return
	}
	if err := ValidateEmail(req.Email); err != nil {
		WriteJsonError(w, errorInvalidRequest)
		return
	}

	acct, err := a.DbAuth().GetAccountByEmail(req.Email)
	if err != nil {
		WriteJsonError(w, errorAuthDatabaseError)
		return
	}
	if acct == nil || !acct.HasProvider(db.ProviderCredentials) {
		WriteJsonError(w, errorUserNotFound)
		return
	}
	if acct.CredentialsVerified() {
		WriteJsonError(w, errorAlreadyVerified)
		return
	}

	cfg := a.Config()
	if a.inCooldown(cooldownKeyResendVerification+acct.ID, cfg.RateLimits.ResendVerificationCooldown.Duration) {
		WriteJsonError(w, errorTooManyRequests)
		return
	}

	code := crypto.NewVerificationCode()
	expiry := time.Now().Add(cfg.Verification.CodeDuration.Duration)

	if err := a.DbAuth().RotateVerifyCode(acct.ID, code, expiry); err != nil {
		if errors.Is(err, db.ErrNoRowsUpdated) {
			WriteJsonError(w, errorAlreadyVerified)
			return
		}
		WriteJsonError(w, errorAuthDatabaseError)
		return
	}

	if a.Mailer() != nil {
		if err := a.Mailer().SendVerificationCodeEmail(r.Context(), acct.Email, acct.Username, code); err != nil {
			a.Logger().Error("failed to resend verification email", "error", err, "email", acct.Email)
			WriteJsonError(w, errorVerificationEmailFailed)
			return
		}
	}

	WriteJsonOk(w, okVerificationResent)
}
