package oauth2

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/hushbox/hushauth/config"
)

// AuthUser is the provider-neutral identity extracted from a userinfo
// response. Subject is the provider's stable account identifier.
type AuthUser struct {
	Provider  string `json:"provider"`
	Subject   string `json:"subject"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatarURL"`
}

// UserFromUserInfoURL maps a provider userinfo response body to an AuthUser.
func UserFromUserInfoURL(resp *http.Response, providerName string) (*AuthUser, error) {
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo request failed with status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read userinfo response: %w", err)
	}

	switch providerName {
	case config.OAuth2ProviderGoogle:
		return googleUser(body)
	case config.OAuth2ProviderGitHub:
		return githubUser(body)
	}
	return nil, fmt.Errorf("unknown oauth2 provider %q", providerName)
}

func googleUser(data []byte) (*AuthUser, error) {
	extracted := struct {
		Sub           string `json:"sub"`
		Name          string `json:"name"`
		Picture       string `json:"picture"`
		Email         string `json:"email"`
		EmailVerified bool   `json:"email_verified"`
	}{}
	if err := json.Unmarshal(data, &extracted); err != nil {
		return nil, fmt.Errorf("failed to parse google userinfo: %w", err)
	}
	if extracted.Sub == "" {
		return nil, fmt.Errorf("google userinfo has no subject")
	}

	user := &AuthUser{
		Provider:  config.OAuth2ProviderGoogle,
		Subject:   extracted.Sub,
		Name:      extracted.Name,
		AvatarURL: extracted.Picture,
	}
	// Only trust an address the provider itself has verified.
	if extracted.EmailVerified {
		user.Email = extracted.Email
	}
	return user, nil
}

func githubUser(data []byte) (*AuthUser, error) {
	extracted := struct {
		ID        int64  `json:"id"`
		Login     string `json:"login"`
		Name      string `json:"name"`
		AvatarURL string `json:"avatar_url"`
		Email     string `json:"email"`
	}{}
	if err := json.Unmarshal(data, &extracted); err != nil {
		return nil, fmt.Errorf("failed to parse github userinfo: %w", err)
	}
	if extracted.ID == 0 {
		return nil, fmt.Errorf("github userinfo has no id")
	}

	name := extracted.Name
	if name == "" {
		name = extracted.Login
	}
	return &AuthUser{
		Provider:  config.OAuth2ProviderGitHub,
		Subject:   strconv.FormatInt(extracted.ID, 10),
		Email:     extracted.Email,
		Name:      name,
		Username:  extracted.Login,
		AvatarURL: extracted.AvatarURL,
	}, nil
}
