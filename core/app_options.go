package core

import (
	"log/slog"

	"github.com/hushbox/hushauth/cache"
	"github.com/hushbox/hushauth/config"
	"github.com/hushbox/hushauth/db"
	"github.com/hushbox/hushauth/mail"
	"github.com/hushbox/hushauth/router"
)

type Option func(*App)

// WithDbAuth sets the account store implementation
func WithDbAuth(d db.DbAuth) Option {
	return func(a *App) {
		a.dbAuth = d
	}
}

// WithCache sets the cache implementation
func WithCache(c cache.Cache[string, any]) Option {
	return func(a *App) {
		a.cache = c
	}
}

// WithRouter sets the router implementation
func WithRouter(r router.Router) Option {
	return func(a *App) {
		a.router = r
	}
}

// WithConfigProvider sets the application's configuration provider.
func WithConfigProvider(p *config.Provider) Option {
	return func(a *App) {
		a.configProvider = p
	}
}

// WithLogger sets the logger implementation
func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		a.logger = l
	}
}

// WithMailer sets the mailer used for verification and reset emails
func WithMailer(m *mail.Mailer) Option {
	return func(a *App) {
		a.mailer = m
	}
}

// WithAuthenticator overrides the default token authenticator
func WithAuthenticator(auth Authenticator) Option {
	return func(a *App) {
		a.authenticator = auth
	}
}

// WithValidator overrides the default request validator
func WithValidator(v Validator) Option {
	return func(a *App) {
		a.validator = v
	}
}
