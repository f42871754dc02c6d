package core

import "net/http"

// CheckUsernameHandler reports whether a username is free to register.
// Endpoint: GET /api/check-username?username=...
// Authenticated: No
//
// Only verified credentials accounts reserve a username, so an abandoned
// signup never blocks the name for others.
func (a *App) CheckUsernameHandler(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	if err := ValidateUsername(username); err != nil {
		WriteJsonError(w, errorInvalidUsername)
		return
	}

	holder, err := a.DbAuth().GetVerifiedCredentialsByUsername(username)
	if err != nil {
		WriteJsonError(w, errorAuthDatabaseError)
		return
	}
	if holder != nil {
		WriteJsonError(w, errorUsernameTaken)
		return
	}

	WriteJsonOk(w, okUsernameAvailable)
}
