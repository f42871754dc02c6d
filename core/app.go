package core

import (
	"fmt"
	"log/slog"

	"github.com/hushbox/hushauth/cache"
	"github.com/hushbox/hushauth/config"
	"github.com/hushbox/hushauth/db"
	"github.com/hushbox/hushauth/mail"
	"github.com/hushbox/hushauth/router"
)

// App is the application wide context. Database handles, the cache and other
// permanent objects live here; all handlers have App as receiver.
type App struct {
	dbAuth         db.DbAuth
	router         router.Router
	cache          cache.Cache[string, any]
	configProvider *config.Provider
	logger         *slog.Logger
	mailer         *mail.Mailer
	validator      Validator
	authenticator  Authenticator
}

func NewApp(opts ...Option) (*App, error) {
	a := &App{}
	for _, opt := range opts {
		opt(a)
	}

	if a.dbAuth == nil {
		return nil, fmt.Errorf("dbAuth is required but was not provided (use WithDbAuth)")
	}
	if a.configProvider == nil {
		return nil, fmt.Errorf("config provider is required but was not provided (use WithConfigProvider)")
	}
	if a.logger == nil {
		return nil, fmt.Errorf("logger is required but was not provided (use WithLogger)")
	}

	if a.validator == nil {
		a.validator = NewValidator()
	}
	if a.authenticator == nil {
		a.authenticator = NewDefaultAuthenticator(a.dbAuth, a.logger, a.configProvider)
	}

	return a, nil
}

func (a *App) Router() router.Router {
	return a.router
}

func (a *App) SetRouter(r router.Router) {
	a.router = r
}

func (a *App) DbAuth() db.DbAuth {
	return a.dbAuth
}

func (a *App) Logger() *slog.Logger {
	return a.logger
}

func (a *App) Cache() cache.Cache[string, any] {
	return a.cache
}

func (a *App) SetCache(c cache.Cache[string, any]) {
	a.cache = c
}

func (a *App) SetMailer(m *mail.Mailer) {
	a.mailer = m
}

func (a *App) Config() *config.Config {
	return a.configProvider.Get()
}

func (a *App) ConfigProvider() *config.Provider {
	return a.configProvider
}

func (a *App) Mailer() *mail.Mailer {
	return a.mailer
}

func (a *App) Validator() Validator {
	return a.validator
}

func (a *App) Auth() Authenticator {
	return a.authenticator
}
