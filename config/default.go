package config

import (
	"time"

	"github.com/hushbox/hushauth/crypto"
)

// NewDefaultConfig creates a new Config with sensible defaults.
// All secret values are randomly generated.
func NewDefaultConfig() *Config {
	return &Config{
		PublicBaseURL: "http://localhost:3000",
		Jwt: Jwt{
			AuthSecret:        crypto.RandomString(32, crypto.AlphanumericAlphabet),
			AuthTokenDuration: Duration{Duration: 45 * time.Minute},
		},
		Server: Server{
			Addr:                    ":8080",
			ShutdownGracefulTimeout: Duration{Duration: 15 * time.Second},
			ReadTimeout:             Duration{Duration: 2 * time.Second},
			ReadHeaderTimeout:       Duration{Duration: 2 * time.Second},
			WriteTimeout:            Duration{Duration: 3 * time.Second},
			IdleTimeout:             Duration{Duration: 1 * time.Minute},
			ClientIpProxyHeader:     "",
		},
		Smtp: Smtp{
			Enabled:     false,
			Host:        "smtp.gmail.com",
			Port:        587,
			FromName:    "Hushbox",
			FromAddress: "",
			LocalName:   "",
			UseStartTLS: true,
		},
		Verification: Verification{
			CodeDuration: Duration{Duration: 1 * time.Hour},
		},
		PasswordReset: PasswordReset{
			TokenDuration:  Duration{Duration: 1 * time.Hour},
			ConfirmURLPath: "/reset-password",
		},
		RateLimits: RateLimits{
			ResendVerificationCooldown: Duration{Duration: 1 * time.Minute},
			PasswordResetCooldown:      Duration{Duration: 5 * time.Minute},
		},
		BlockIp: BlockIp{
			Enabled:   true,
			Activated: true,
		},
		OAuth2Providers: map[string]OAuth2Provider{
			OAuth2ProviderGoogle: {
				Name:         OAuth2ProviderGoogle,
				DisplayName:  "Google",
				RedirectURL:  "",
				AuthURL:      "https://accounts.google.com/o/oauth2/v2/auth",
				TokenURL:     "https://oauth2.googleapis.com/token",
				UserInfoURL:  "https://www.googleapis.com/oauth2/v3/userinfo",
				Scopes:       []string{"https://www.googleapis.com/auth/userinfo.profile", "https://www.googleapis.com/auth/userinfo.email"},
				PKCE:         true,
				ClientID:     "",
				ClientSecret: "",
			},
			OAuth2ProviderGitHub: {
				Name:         OAuth2ProviderGitHub,
				DisplayName:  "GitHub",
				RedirectURL:  "",
				AuthURL:      "https://github.com/login/oauth/authorize",
				TokenURL:     "https://github.com/login/oauth/access_token",
				UserInfoURL:  "https://api.github.com/user",
				Scopes:       []string{"read:user", "user:email"},
				PKCE:         true,
				ClientID:     "",
				ClientSecret: "",
			},
		},
		Endpoints: Endpoints{
			Signup:               "POST /api/signup",
			VerifyCode:           "POST /api/verify-code",
			ResendVerification:   "POST /api/resend-verification",
			CheckUsername:        "GET /api/check-username",
			AuthWithPassword:     "POST /api/auth-with-password",
			AuthWithOAuth2:       "POST /api/auth-with-oauth2",
			RefreshAuth:          "POST /api/refresh-auth",
			RequestPasswordReset: "POST /api/request-password-reset",
			ConfirmPasswordReset: "POST /api/confirm-password-reset",
			ListOAuth2Providers:  "GET /api/list-oauth2-providers",
		},
	}
}
