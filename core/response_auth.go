package core

import (
	"net/http"

	"github.com/hushbox/hushauth/db"
)

// Standardized response formats for authentication endpoints.
//
// Example authentication response (successful login or token refresh):
//
//	{
//	  "status": 200,
//	  "code": "ok_authentication",
//	  "message": "Authentication successful",
//	  "data": {
//	    "token_type": "Bearer",
//	    "access_token": "eyJhbGciOiJIUzI...",
//	    "expires_in": 2700,
//	    "record": {
//	      "id": "user123",
//	      "email": "user@example.com",
//	      "username": "user123",
//	      "name": "Jane Doe",
//	      "verified": true,
//	      "providers": ["credentials", "google"],
//	      "provider_accounts": {
//	        "credentials": {"provider_account_id": "user@example.com", "verified": true, ...},
//	        "google": {"provider_account_id": "sub-123", "verified": true, ...}
//	      }
//	    }
//	  }
//	}
const (
	CodeOkAuthentication      = "ok_authentication"
	CodeOkOAuth2ProvidersList = "ok_oauth2_providers_list"
)

// AuthRecord represents the account in authentication responses
type AuthRecord struct {
	ID               string                    `json:"id"`
	Email            string                    `json:"email"`
	Username         string                    `json:"username,omitempty"`
	Name             string                    `json:"name,omitempty"`
	Image            string                    `json:"image,omitempty"`
	Verified         bool                      `json:"verified"`
	Providers        []string                  `json:"providers"`
	ProviderAccounts map[string]ProviderRecord `json:"provider_accounts"`
}

// ProviderRecord is the per provider projection in authentication responses.
// Secret credential state (the password hash, verification codes) never
// leaves the store.
type ProviderRecord struct {
	ProviderAccountID string `json:"provider_account_id"`
	Verified          bool   `json:"verified"`
	LastUsed          string `json:"last_used,omitempty"`
	Email             string `json:"email,omitempty"`
	Username          string `json:"username,omitempty"`
	Name              string `json:"name,omitempty"`
	Image             string `json:"image,omitempty"`
}

func newProviderRecord(rec db.ProviderAccount) ProviderRecord {
	out := ProviderRecord{
		ProviderAccountID: rec.ProviderAccountID,
		Verified:          rec.IsVerified,
	}
	if !rec.LastUsed.IsZero() {
		out.LastUsed = db.TimeFormat(rec.LastUsed)
	}
	switch {
	case rec.Profile.Credentials != nil:
		out.Email = rec.Profile.Credentials.Email
		out.Username = rec.Profile.Credentials.Username
	case rec.Profile.OAuth2 != nil:
		out.Email = rec.Profile.OAuth2.Email
		out.Name = rec.Profile.OAuth2.Name
		out.Image = rec.Profile.OAuth2.Image
	}
	return out
}

// AuthData represents the authentication response structure
type AuthData struct {
	TokenType   string     `json:"token_type"`
	AccessToken string     `json:"access_token"`
	ExpiresIn   int        `json:"expires_in"`
	Record      AuthRecord `json:"record"`
}

// NewAuthData creates a new AuthData instance
func NewAuthData(token string, expiresIn int, acct *db.Account) *AuthData {
	providers := make([]string, 0, len(acct.Providers))
	for _, p := range acct.Providers {
		providers = append(providers, string(p))
	}

	records := make(map[string]ProviderRecord, len(acct.ProviderAccounts))
	for kind, rec := range acct.ProviderAccounts {
		records[string(kind)] = newProviderRecord(rec)
	}

	return &AuthData{
		TokenType:   "Bearer",
		AccessToken: token,
		ExpiresIn:   expiresIn,
		Record: AuthRecord{
			ID:               acct.ID,
			Email:            acct.Email,
			Username:         acct.Username,
			Name:             acct.Name,
			Image:            acct.Image,
			Verified:         acct.Verified(),
			Providers:        providers,
			ProviderAccounts: records,
		},
	}
}

// writeAuthResponse writes a standardized authentication response
func writeAuthResponse(w http.ResponseWriter, token string, expiresIn int, acct *db.Account) {
	response := JsonWithData{
		JsonBasic: JsonBasic{
			Status:  http.StatusOK,
			Code:    CodeOkAuthentication,
			Message: "Authentication successful",
		},
		Data: NewAuthData(token, expiresIn, acct),
	}
	writeJsonWithData(w, response)
}
