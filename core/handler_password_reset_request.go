package core

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/hushbox/hushauth/crypto"
)

// RequestPasswordResetHandler opens a password reset window and mails the
// recovery link.
// Endpoint: POST /api/request-password-reset
// Authenticated: No
// Allowed Mimetype: application/json
//
// Account enumeration is prevented by answering with the same body whether or
// not the identifier matches an account; the cooldown path stays silent for
// the same reason. An account without a verified credentials link is the one
// deliberate exception: it gets an explicit rejection instead of a reset
// link. A reset sets the password, and only accounts that completed a
// credentials signup may sign in that way.
func (a *App) RequestPasswordResetHandler(w http.ResponseWriter, r *http.Request) {
	if resp, err := a.Validator().ContentType(r, MimeTypeJSON); err != nil {
		WriteJsonError(w, resp)
		return
	}

	var req struct {
		Identity string `json:"identity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJsonError(w, errorInvalidRequest)
		return
	}

	req.Identity = strings.TrimSpace(req.Identity)
	if req.Identity == "" {
		WriteJsonError(w, errorMissingFields)
		return
	}

	acct, err := a.DbAuth().GetAccountByIdentifier(req.Identity)
	if err != nil {
		WriteJsonError(w, errorAuthDatabaseError)
		return
	}
	if acct == nil {
		WriteJsonOk(w, okPasswordResetRequested)
		return
	}

	if !acct.CredentialsVerified() {
		WriteJsonError(w, errorResetUnverified)
		return
	}

	cfg := a.Config()
	if a.inCooldown(cooldownKeyPasswordReset+acct.ID, cfg.RateLimits.PasswordResetCooldown.Duration) {
		a.Logger().Info("password reset request within cooldown, not resending", "account", acct.ID)
		WriteJsonOk(w, okPasswordResetRequested)
		return
	}

	pair, err := crypto.NewResetToken()
	if err != nil {
		a.Logger().Error("failed to generate reset token", "error", err)
		WriteJsonError(w, errorResetEmailFailed)
		return
	}

	expiry := time.Now().Add(cfg.PasswordReset.TokenDuration.Duration)
	if err := a.DbAuth().SetResetToken(acct.ID, pair.Hash, expiry); err != nil {
		WriteJsonError(w, errorAuthDatabaseError)
		return
	}

	if a.Mailer() != nil {
		link := cfg.ResetLinkURL(pair.Secret)
		if err := a.Mailer().SendPasswordResetEmail(r.Context(), acct.Email, acct.Username, link); err != nil {
			a.Logger().Error("failed to send password reset email", "error", err, "email", acct.Email)
			WriteJsonError(w, errorResetEmailFailed)
			return
		}
	}

	WriteJsonOk(w, okPasswordResetRequested)
}
