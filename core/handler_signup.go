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

// SignupHandler handles credentials registration.
// Endpoint: POST /api/signup
// Authenticated: No
// Allowed Mimetype: application/json
//
// A username is only reserved by a verified credentials account, so a signup
// that was never verified can be retried by anyone, including with the same
// username. An existing account that holds the email without a verified
// credentials link (an abandoned signup, or a federated account) is reclaimed
// in place rather than duplicated.
func (a *App) SignupHandler(w http.ResponseWriter, r *http.Request) {
	if resp, err := a.Validator().ContentType(r, MimeTypeJSON); err != nil {
		WriteJsonError(w, resp)
		return
	}

	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJsonError(w, errorInvalidRequest)
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if req.Username == "" || req.Email == "" || req.Password == "" {
		WriteJsonError(w, errorMissingFields)
		return
	}
	if err := ValidateUsername(req.Username); err != nil {
		WriteJsonError(w, errorInvalidUsername)
		return
	}
	if err := ValidateEmail(req.Email); err != nil {
		WriteJsonError(w, errorInvalidRequest)
		return
	}
	if len(req.Password) < PasswordMinLength {
		WriteJsonError(w, errorPasswordComplexity)
		return
	}

	// A verified holder reserves the username, even against its own email.
	holder, err := a.DbAuth().GetVerifiedCredentialsByUsername(req.Username)
	if err != nil {
		WriteJsonError(w, errorAuthDatabaseError)
		return
	}
	if holder != nil {
		WriteJsonError(w, errorUsernameTaken)
		return
	}

	hashedPassword, err := crypto.GenerateHash(req.Password)
	if err != nil {
		a.Logger().Error("failed to hash password", "error", err)
		WriteJsonError(w, errorAuthDatabaseError)
		return
	}

	code := crypto.NewVerificationCode()
	expiry := time.Now().Add(a.Config().Verification.CodeDuration.Duration)

	rec := db.ProviderAccount{
		ProviderAccountID: req.Email,
		Profile: db.Profile{
			Credentials: &db.CredentialsProfile{
				Email:            req.Email,
				Username:         req.Username,
				Password:         string(hashedPassword),
				VerifyCode:       code,
				VerifyCodeExpiry: expiry,
			},
		},
		IsVerified: false,
	}

	acct, err := a.DbAuth().GetAccountByEmail(req.Email)
	if err != nil {
		WriteJsonError(w, errorAuthDatabaseError)
		return
	}

	switch {
	case acct != nil && acct.CredentialsVerified():
		WriteJsonError(w, errorEmailConflict)
		return

	case acct != nil:
		// Abandoned signup or federated account: overwrite the pending
		// credentials state in place.
		signup := db.CredentialsSignup{
			Username:         req.Username,
			PasswordHash:     string(hashedPassword),
			VerifyCode:       code,
			VerifyCodeExpiry: expiry,
			Record:           rec,
		}
		if err := a.DbAuth().ReclaimCredentialsSignup(acct.ID, signup); err != nil {
			if errors.Is(err, db.ErrNoRowsUpdated) {
				// Verified between our read and write.
				WriteJsonError(w, errorEmailConflict)
				return
			}
			WriteJsonError(w, errorAuthDatabaseError)
			return
		}

	default:
		_, err := a.DbAuth().InsertAccount(db.Account{
			Email:            req.Email,
			Username:         req.Username,
			Password:         string(hashedPassword),
			VerifyCode:       code,
			VerifyCodeExpiry: expiry,
			PrimaryProvider:  db.ProviderCredentials,
			ProviderAccounts: map[db.ProviderKind]db.ProviderAccount{
				db.ProviderCredentials: rec,
			},
		})
		if err != nil {
			if errors.Is(err, db.ErrConstraintUnique) {
				// Concurrent signup claimed the email first.
				WriteJsonError(w, errorEmailConflict)
				return
			}
			WriteJsonError(w, errorAuthDatabaseError)
			return
		}
	}

	if a.Mailer() != nil {
		if err := a.Mailer().SendVerificationCodeEmail(r.Context(), req.Email, req.Username, code); err != nil {
			a.Logger().Error("failed to send verification email", "error", err, "email", req.Email)
			WriteJsonError(w, errorVerificationEmailFailed)
			return
		}
	}

	WriteJsonOk(w, okSignup)
}
