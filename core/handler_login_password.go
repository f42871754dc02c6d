package core

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/hushbox/hushauth/crypto"
	"github.com/hushbox/hushauth/db"
)

// AuthWithPasswordHandler handles password-based authentication (login).
// Endpoint: POST /api/auth-with-password
// Authenticated: No
// Allowed Mimetype: application/json
//
// Identity may be an email address or a username; email wins when a username
// happens to look like an address.
func (a *App) AuthWithPasswordHandler(w http.ResponseWriter, r *http.Request) {
	if resp, err := a.Validator().ContentType(r, MimeTypeJSON); err != nil {
		WriteJsonError(w, resp)
		return
	}

	var req struct {
		Identity string `json:"identity"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJsonError(w, errorInvalidRequest)
		return
	}

	req.Identity = strings.TrimSpace(req.Identity)
	if req.Identity == "" || req.Password == "" {
		WriteJsonError(w, errorMissingFields)
		return
	}

	acct, err := a.DbAuth().GetAccountByIdentifier(req.Identity)
	if err != nil {
		WriteJsonError(w, errorAuthDatabaseError)
		return
	}
	if acct == nil {
		WriteJsonError(w, errorSigninNotFound)
		return
	}

	if rec, ok := acct.ProviderAccounts[db.ProviderCredentials]; ok && !rec.IsVerified {
		WriteJsonError(w, errorSigninUnverified)
		return
	}

	if acct.Password == "" || !crypto.CheckPassword(req.Password, acct.Password) {
		WriteJsonError(w, errorIncorrectPassword)
		return
	}

	if err := a.DbAuth().StampLastLogin(acct.ID, time.Now()); err != nil {
		a.Logger().Error("failed to stamp last login", "error", err, "account", acct.ID)
	}

	a.writeSession(w, acct)
}
