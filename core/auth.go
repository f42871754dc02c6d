package core

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/hushbox/hushauth/config"
	"github.com/hushbox/hushauth/crypto"
	"github.com/hushbox/hushauth/db"
)

// Authenticator defines the interface for authentication operations
type Authenticator interface {
	Authenticate(r *http.Request) (*db.Account, error, jsonResponse)
}

// DefaultAuthenticator implements Authenticator using bearer session tokens
type DefaultAuthenticator struct {
	dbAuth         db.DbAuth
	logger         *slog.Logger
	configProvider *config.Provider
}

// NewDefaultAuthenticator creates a new DefaultAuthenticator instance
func NewDefaultAuthenticator(dbAuth db.DbAuth, logger *slog.Logger, configProvider *config.Provider) *DefaultAuthenticator {
	return &DefaultAuthenticator{
		dbAuth:         dbAuth,
		logger:         logger,
		configProvider: configProvider,
	}
}

// Authenticate validates the bearer token and loads its account.
func (a *DefaultAuthenticator) Authenticate(r *http.Request) (*db.Account, error, jsonResponse) {
	errAuth := errors.New("auth error")

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, errAuth, errorNoAuthHeader
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		return nil, errAuth, errorInvalidTokenFormat
	}

	cfg := a.configProvider.Get()
	claims, err := crypto.ParseJwt(tokenString, []byte(cfg.Jwt.AuthSecret))
	if err != nil {
		switch {
		case errors.Is(err, crypto.ErrJwtTokenExpired):
			return nil, errAuth, errorJwtTokenExpired
		case errors.Is(err, crypto.ErrJwtInvalidSigningMethod):
			return nil, errAuth, errorJwtInvalidSignMethod
		default:
			return nil, errAuth, errorJwtInvalidToken
		}
	}

	userID, ok := claims[crypto.ClaimUserID].(string)
	if !ok || userID == "" {
		return nil, errAuth, errorJwtInvalidToken
	}

	acct, err := a.dbAuth.GetAccountById(userID)
	if err != nil {
		a.logger.Error("failed to load account during authentication", "error", err)
		return nil, errAuth, errorAuthDatabaseError
	}
	if acct == nil {
		return nil, errAuth, errorJwtInvalidToken
	}

	return acct, nil, jsonResponse{}
}
