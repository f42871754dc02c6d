package core

import (
	"net/http"

	"github.com/hushbox/hushauth/crypto"
	"github.com/hushbox/hushauth/db"
)

// writeSession issues a fresh session token for acct and writes the
// authentication response.
func (a *App) writeSession(w http.ResponseWriter, acct *db.Account) {
	cfg := a.Config()

	token, _, err := crypto.NewJwtSessionToken(acct.ID, []byte(cfg.Jwt.AuthSecret), cfg.Jwt.AuthTokenDuration.Duration)
	if err != nil {
		a.Logger().Error("failed to generate session token", "error", err)
		WriteJsonError(w, errorTokenGeneration)
		return
	}

	expiresIn := int(cfg.Jwt.AuthTokenDuration.Duration.Seconds())
	writeAuthResponse(w, token, expiresIn, acct)
}
