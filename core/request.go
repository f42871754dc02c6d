package core

import (
	"fmt"
	"net"
	"net/http"
	"net/mail"
	"strings"
)

// ValidateEmail checks if an email address is valid according to RFC 5322.
// Returns nil if valid, or an error describing why the email is invalid.
func ValidateEmail(email string) error {
	_, err := mail.ParseAddress(email)
	if err != nil {
		return fmt.Errorf("invalid email format: %w", err)
	}
	return nil
}

// GetClientIP extracts the client IP address from the request, honoring the
// configured proxy header when present.
func (a *App) GetClientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}

	cfg := a.Config()
	if cfg.Server.ClientIpProxyHeader != "" {
		if forwarded := r.Header.Get(cfg.Server.ClientIpProxyHeader); forwarded != "" {
			// Use the first IP in the list if the header contains multiple
			parts := strings.Split(forwarded, ",")
			ip = strings.TrimSpace(parts[0])
		}
	}
	return ip
}
