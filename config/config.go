package config

import (
	"fmt"
	"strings"
	"time"
)

const (
	OAuth2ProviderGoogle = "google"
	OAuth2ProviderGitHub = "github"
)

// Duration wraps time.Duration so TOML fields can be written as "45m" or "1h".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	d.Duration = parsed
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

type Config struct {
	// PublicBaseURL is the externally reachable origin of the frontend,
	// used to build the links embedded in password reset emails.
	PublicBaseURL string `toml:"public_base_url"`

	Jwt             Jwt                       `toml:"jwt"`
	Server          Server                    `toml:"server"`
	Smtp            Smtp                      `toml:"smtp"`
	Verification    Verification              `toml:"verification"`
	PasswordReset   PasswordReset             `toml:"password_reset"`
	RateLimits      RateLimits                `toml:"rate_limits"`
	BlockIp         BlockIp                   `toml:"block_ip"`
	OAuth2Providers map[string]OAuth2Provider `toml:"oauth2_providers"`
	Endpoints       Endpoints                 `toml:"endpoints"`

	// Source records where this config was loaded from. Not persisted.
	Source string `toml:"-"`
}

type Jwt struct {
	AuthSecret        string   `toml:"auth_secret"`
	AuthTokenDuration Duration `toml:"auth_token_duration"`
}

type Server struct {
	Addr                    string   `toml:"addr"`
	ShutdownGracefulTimeout Duration `toml:"shutdown_graceful_timeout"`
	ReadTimeout             Duration `toml:"read_timeout"`
	ReadHeaderTimeout       Duration `toml:"read_header_timeout"`
	WriteTimeout            Duration `toml:"write_timeout"`
	IdleTimeout             Duration `toml:"idle_timeout"`
	ClientIpProxyHeader     string   `toml:"client_ip_proxy_header"`
}

type Smtp struct {
	Enabled     bool   `toml:"enabled"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	Username    string `toml:"username"`
	Password    string `toml:"password"`
	FromName    string `toml:"from_name"`
	FromAddress string `toml:"from_address"`
	LocalName   string `toml:"local_name"`
	UseStartTLS bool   `toml:"use_start_tls"`
}

// Verification governs the credentials email verification lifecycle.
type Verification struct {
	CodeDuration Duration `toml:"code_duration"`
}

// PasswordReset governs the recovery secret lifecycle. ConfirmURLPath is the
// frontend route the emailed link points at; the secret is appended to it.
type PasswordReset struct {
	TokenDuration  Duration `toml:"token_duration"`
	ConfirmURLPath string   `toml:"confirm_url_path"`
}

type RateLimits struct {
	ResendVerificationCooldown Duration `toml:"resend_verification_cooldown"`
	PasswordResetCooldown      Duration `toml:"password_reset_cooldown"`
}

type BlockIp struct {
	Enabled   bool `toml:"enabled"`
	Activated bool `toml:"activated"`
}

type OAuth2Provider struct {
	Name         string   `toml:"name"`
	DisplayName  string   `toml:"display_name"`
	ClientID     string   `toml:"client_id"`
	ClientSecret string   `toml:"client_secret"`
	RedirectURL  string   `toml:"redirect_url"`
	AuthURL      string   `toml:"auth_url"`
	TokenURL     string   `toml:"token_url"`
	UserInfoURL  string   `toml:"user_info_url"`
	Scopes       []string `toml:"scopes"`
	PKCE         bool     `toml:"pkce"`
}

// Endpoints maps every operation to its "METHOD /path" route. Routes are
// registered from these strings so deployments can remap paths in TOML.
type Endpoints struct {
	Signup               string `toml:"signup"`
	VerifyCode           string `toml:"verify_code"`
	ResendVerification   string `toml:"resend_verification"`
	CheckUsername        string `toml:"check_username"`
	AuthWithPassword     string `toml:"auth_with_password"`
	AuthWithOAuth2       string `toml:"auth_with_oauth2"`
	RefreshAuth          string `toml:"refresh_auth"`
	RequestPasswordReset string `toml:"request_password_reset"`
	ConfirmPasswordReset string `toml:"confirm_password_reset"`
	ListOAuth2Providers  string `toml:"list_oauth2_providers"`
}

// Path strips the method prefix from a "METHOD /path" endpoint string.
func (e Endpoints) Path(endpoint string) string {
	if i := strings.Index(endpoint, " "); i >= 0 {
		return endpoint[i+1:]
	}
	return endpoint
}

// ResetLinkURL builds the absolute password reset link for a secret.
func (c *Config) ResetLinkURL(secret string) string {
	base := strings.TrimSuffix(c.PublicBaseURL, "/")
	path := c.PasswordReset.ConfirmURLPath
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return base + path + "/" + secret
}
