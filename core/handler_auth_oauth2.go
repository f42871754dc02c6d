package core

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"github.com/hushbox/hushauth/crypto"
	oauth2provider "github.com/hushbox/hushauth/oauth2"
)

// oauth2TokenExchangeTimeout bounds the token exchange so an unresponsive
// provider cannot hang the request.
const oauth2TokenExchangeTimeout = 10 * time.Second

// OAuth2ProviderInfo contains the provider details needed for client-side OAuth2 flow
type OAuth2ProviderInfo struct {
	Name                string `json:"name"`
	DisplayName         string `json:"displayName"`
	State               string `json:"state"`
	AuthURL             string `json:"authURL"`
	RedirectURL         string `json:"redirectURL"`
	CodeVerifier        string `json:"codeVerifier,omitempty"`
	CodeChallenge       string `json:"codeChallenge,omitempty"`
	CodeChallengeMethod string `json:"codeChallengeMethod,omitempty"`
}

// OAuth2ProviderListData wraps the list of providers for standardized response
type OAuth2ProviderListData struct {
	Providers []OAuth2ProviderInfo `json:"providers"`
}

// AuthWithOAuth2Handler finishes the authorization code flow and signs the
// federated identity in, creating or linking the account as needed.
// Endpoint: POST /api/auth-with-oauth2
// Authenticated: No
// Allowed Mimetype: application/json
func (a *App) AuthWithOAuth2Handler(w http.ResponseWriter, r *http.Request) {
	if resp, err := a.Validator().ContentType(r, MimeTypeJSON); err != nil {
		WriteJsonError(w, resp)
		return
	}

	var req struct {
		Provider     string `json:"provider"`
		Code         string `json:"code"`
		CodeVerifier string `json:"code_verifier"`
		RedirectURI  string `json:"redirect_uri"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJsonError(w, errorInvalidRequest)
		return
	}

	if req.Provider == "" || req.Code == "" || req.CodeVerifier == "" || req.RedirectURI == "" {
		WriteJsonError(w, errorMissingFields)
		return
	}

	provider, ok := a.Config().OAuth2Providers[req.Provider]
	if !ok || provider.ClientID == "" {
		WriteJsonError(w, errorInvalidOAuth2Provider)
		return
	}

	oauth2Config := oauth2.Config{
		ClientID:     provider.ClientID,
		ClientSecret: provider.ClientSecret,
		RedirectURL:  req.RedirectURI,
		Scopes:       provider.Scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:  provider.AuthURL,
			TokenURL: provider.TokenURL,
		},
	}

	ctx, cancel := context.WithTimeout(r.Context(), oauth2TokenExchangeTimeout)
	defer cancel()

	token, err := oauth2Config.Exchange(
		ctx,
		req.Code,
		oauth2.SetAuthURLParam("code_verifier", req.CodeVerifier),
	)
	if err != nil {
		a.Logger().Info("oauth2 token exchange failed", "provider", req.Provider, "error", err)
		WriteJsonError(w, errorOAuth2TokenExchange)
		return
	}

	client := oauth2Config.Client(ctx, token)
	resp, err := client.Get(provider.UserInfoURL)
	if err != nil {
		WriteJsonError(w, errorOAuth2UserInfoFailed)
		return
	}
	defer resp.Body.Close()

	oauthUser, err := oauth2provider.UserFromUserInfoURL(resp, provider.Name)
	if err != nil {
		a.Logger().Info("failed to map provider user info", "provider", req.Provider, "error", err)
		WriteJsonError(w, errorOAuth2UserInfoProcessing)
		return
	}

	// Reconciliation keys on the provider-asserted email; without one there
	// is nothing safe to merge on.
	if oauthUser.Email == "" || ValidateEmail(oauthUser.Email) != nil {
		WriteJsonError(w, errorOAuth2UserInfoProcessing)
		return
	}

	acct, err := a.reconcileOAuth2User(oauthUser)
	if err != nil {
		a.Logger().Error("oauth2 reconciliation failed", "provider", req.Provider, "error", err)
		WriteJsonError(w, errorAuthDatabaseError)
		return
	}

	a.writeSession(w, acct)
}

// ListOAuth2ProvidersHandler returns the configured OAuth2 providers with
// fresh state and PKCE material for the client-side flow.
// Endpoint: GET /api/list-oauth2-providers
// Authenticated: No
func (a *App) ListOAuth2ProvidersHandler(w http.ResponseWriter, r *http.Request) {
	var providers []OAuth2ProviderInfo

	for name, provider := range a.Config().OAuth2Providers {
		if provider.ClientID == "" {
			continue // not configured for this deployment
		}

		state := crypto.Oauth2State()
		oauth2Config := oauth2.Config{
			ClientID:     provider.ClientID,
			ClientSecret: provider.ClientSecret,
			RedirectURL:  provider.RedirectURL,
			Scopes:       provider.Scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:  provider.AuthURL,
				TokenURL: provider.TokenURL,
			},
		}

		info := OAuth2ProviderInfo{
			Name:        name,
			DisplayName: provider.DisplayName,
			State:       state,
			RedirectURL: provider.RedirectURL,
		}

		if provider.PKCE {
			codeVerifier := crypto.Oauth2CodeVerifier()
			codeChallenge := crypto.S256Challenge(codeVerifier)
			info.AuthURL = oauth2Config.AuthCodeURL(state,
				oauth2.SetAuthURLParam("code_challenge", codeChallenge),
				oauth2.SetAuthURLParam("code_challenge_method", crypto.PKCECodeChallengeMethod),
			)
			info.CodeVerifier = codeVerifier
			info.CodeChallenge = codeChallenge
			info.CodeChallengeMethod = crypto.PKCECodeChallengeMethod
		} else {
			info.AuthURL = oauth2Config.AuthCodeURL(state)
		}

		providers = append(providers, info)
	}

	if len(providers) == 0 {
		WriteJsonError(w, errorInvalidOAuth2Provider)
		return
	}

	response := JsonWithData{
		JsonBasic: JsonBasic{
			Status:  http.StatusOK,
			Code:    CodeOkOAuth2ProvidersList,
			Message: "OAuth2 providers list",
		},
		Data: OAuth2ProviderListData{Providers: providers},
	}
	writeJsonWithData(w, response)
}
