package core

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/hushbox/hushauth/db"
)

// VerifyCodeHandler confirms a credentials signup with the emailed code.
// Endpoint: POST /api/verify-code
// Authenticated: No
// Allowed Mimetype: application/json
func (a *App) VerifyCodeHandler(w http.ResponseWriter, r *http.Request) {
	if resp, err := a.Validator().ContentType(r, MimeTypeJSON); err != nil {
		WriteJsonError(w, resp)
		return
	}

	var req struct {
		Email string `json:"email"`
		Code  string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJsonError(w, errorInvalidRequest)
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	req.Code = strings.TrimSpace(req.Code)
	if req.Email == "" || req.Code == "" {
		WriteJsonError(w, errorMissingFields)
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

	// An expired submission reports expiry even when the code is also wrong.
	if time.Now().After(acct.VerifyCodeExpiry) {
		WriteJsonError(w, errorCodeExpired)
		return
	}
	if acct.VerifyCode != req.Code {
		WriteJsonError(w, errorIncorrectCode)
		return
	}

	if err := a.DbAuth().MarkCredentialsVerified(acct.ID, req.Code); err != nil {
		if errors.Is(err, db.ErrNoRowsUpdated) {
			// The account changed under us: either another request verified
			// it, or a signup retry rotated the code.
			fresh, err := a.DbAuth().GetAccountById(acct.ID)
			if err == nil && fresh != nil && fresh.CredentialsVerified() {
				WriteJsonError(w, errorAlreadyVerified)
				return
			}
			WriteJsonError(w, errorIncorrectCode)
			return
		}
		WriteJsonError(w, errorAuthDatabaseError)
		return
	}

	WriteJsonOk(w, okVerified)
}
