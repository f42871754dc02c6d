package config

import (
	"strings"
	"testing"
)

func TestValidateServerAddr(t *testing.T) {
	testCases := []struct {
		name      string
		addr      string
		wantAddr  string
		expectErr bool
	}{
		{"port only", ":8080", "localhost:8080", false},
		{"host and port", "example.com:8080", "example.com:8080", false},
		{"ipv6", "[::1]:8080", "[::1]:8080", false},
		{"empty", "", "", true},
		{"missing port", "example.com", "", true},
		{"bad port", ":notaport", "", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			server := &Server{Addr: tc.addr}
			err := validateServer(server)
			if (err != nil) != tc.expectErr {
				t.Fatalf("validateServer() error = %v, expectErr %v", err, tc.expectErr)
			}
			if !tc.expectErr && server.Addr != tc.wantAddr {
				t.Errorf("validateServer() normalized addr = %q, want %q", server.Addr, tc.wantAddr)
			}
		})
	}
}

func TestValidateRejectsShortAuthSecret(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Jwt.AuthSecret = "tooshort"

	err := Validate(cfg)
	if err == nil {
		t.Fatal("expected validation error for short auth secret")
	}
	if !strings.Contains(err.Error(), "auth secret") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidateRejectsZeroDurations(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"auth token duration", func(c *Config) { c.Jwt.AuthTokenDuration = Duration{} }},
		{"verification code duration", func(c *Config) { c.Verification.CodeDuration = Duration{} }},
		{"reset token duration", func(c *Config) { c.PasswordReset.TokenDuration = Duration{} }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tc.mutate(cfg)
			if err := Validate(cfg); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestValidateOAuth2Providers(t *testing.T) {
	t.Run("provider without client id is skipped", func(t *testing.T) {
		cfg := NewDefaultConfig()
		if err := Validate(cfg); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("configured provider needs a secret", func(t *testing.T) {
		cfg := NewDefaultConfig()
		p := cfg.OAuth2Providers[OAuth2ProviderGoogle]
		p.ClientID = "client-id"
		p.ClientSecret = ""
		cfg.OAuth2Providers[OAuth2ProviderGoogle] = p

		if err := Validate(cfg); err == nil {
			t.Fatal("expected validation error for missing client secret")
		}
	})

	t.Run("configured provider needs endpoint urls", func(t *testing.T) {
		cfg := NewDefaultConfig()
		p := cfg.OAuth2Providers[OAuth2ProviderGitHub]
		p.ClientID = "client-id"
		p.ClientSecret = "client-secret"
		p.TokenURL = ""
		cfg.OAuth2Providers[OAuth2ProviderGitHub] = p

		if err := Validate(cfg); err == nil {
			t.Fatal("expected validation error for missing token URL")
		}
	})
}
