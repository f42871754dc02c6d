package core

import "net/http"

// RefreshAuthHandler handles explicit session token refresh requests.
// Endpoint: POST /api/refresh-auth
// Authenticated: Yes
// Allowed Mimetype: application/json
func (a *App) RefreshAuthHandler(w http.ResponseWriter, r *http.Request) {
	if resp, err := a.Validator().ContentType(r, MimeTypeJSON); err != nil {
		WriteJsonError(w, resp)
		return
	}

	acct, err, authResp := a.Auth().Authenticate(r)
	if err != nil {
		WriteJsonError(w, authResp)
		return
	}

	a.writeSession(w, acct)
}
