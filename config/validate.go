package config

import (
	"fmt"
	"net"
	"strings"

	"github.com/hushbox/hushauth/crypto"
)

func Validate(cfg *Config) error {
	if err := validateServer(&cfg.Server); err != nil {
		return fmt.Errorf("server config validation failed: %w", err)
	}
	if err := validateJwt(&cfg.Jwt); err != nil {
		return fmt.Errorf("jwt config validation failed: %w", err)
	}
	if err := validateLifecycles(cfg); err != nil {
		return fmt.Errorf("lifecycle config validation failed: %w", err)
	}
	if err := validateOAuth2Providers(cfg.OAuth2Providers); err != nil {
		return fmt.Errorf("oauth2 config validation failed: %w", err)
	}
	return nil
}

// validateServer checks the Server configuration section.
// It ensures the Addr field is not empty and contains a valid host:port or
// :port format. If only a port is provided (e.g., ":8080"), the host defaults
// to "localhost". The port part is mandatory.
func validateServer(server *Server) error {
	if server.Addr == "" {
		return fmt.Errorf("server address (Addr) cannot be empty")
	}

	host, port, err := net.SplitHostPort(server.Addr)
	if err != nil {
		if strings.HasPrefix(server.Addr, ":") {
			port = strings.TrimPrefix(server.Addr, ":")
			host = "localhost"
		} else {
			return fmt.Errorf("invalid server address format '%s': %w", server.Addr, err)
		}
	}

	if port == "" {
		return fmt.Errorf("server address '%s' must include a port", server.Addr)
	}

	server.Addr = net.JoinHostPort(host, port)

	if _, err := net.LookupPort("tcp", port); err != nil {
		return fmt.Errorf("invalid port '%s' in server address '%s': %w", port, server.Addr, err)
	}

	return nil
}

func validateJwt(jwt *Jwt) error {
	if len(jwt.AuthSecret) < crypto.MinKeyLength {
		return fmt.Errorf("auth secret must be at least %d characters", crypto.MinKeyLength)
	}
	if jwt.AuthTokenDuration.Duration <= 0 {
		return fmt.Errorf("auth token duration must be positive")
	}
	return nil
}

func validateLifecycles(cfg *Config) error {
	if cfg.Verification.CodeDuration.Duration <= 0 {
		return fmt.Errorf("verification code duration must be positive")
	}
	if cfg.PasswordReset.TokenDuration.Duration <= 0 {
		return fmt.Errorf("password reset token duration must be positive")
	}
	if cfg.PasswordReset.ConfirmURLPath == "" {
		return fmt.Errorf("password reset confirm URL path cannot be empty")
	}
	return nil
}

// validateOAuth2Providers checks the providers that carry credentials.
// Providers with no client ID are treated as disabled and skipped.
func validateOAuth2Providers(providers map[string]OAuth2Provider) error {
	for name, p := range providers {
		if p.ClientID == "" {
			continue
		}
		if p.ClientSecret == "" {
			return fmt.Errorf("provider %s: client secret cannot be empty", name)
		}
		for field, value := range map[string]string{
			"auth URL":      p.AuthURL,
			"token URL":     p.TokenURL,
			"user info URL": p.UserInfoURL,
		} {
			if value == "" {
				return fmt.Errorf("provider %s: %s cannot be empty", name, field)
			}
		}
	}
	return nil
}
