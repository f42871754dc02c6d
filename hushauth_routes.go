package hushauth

import (
	"github.com/hushbox/hushauth/config"
	"github.com/hushbox/hushauth/core"
	r "github.com/hushbox/hushauth/router"
)

func route(cfg *config.Config, app *core.App) {
	app.Router().Register(
		r.NewRoute(cfg.Endpoints.Signup).WithHandlerFunc(app.SignupHandler),
		r.NewRoute(cfg.Endpoints.VerifyCode).WithHandlerFunc(app.VerifyCodeHandler),
		r.NewRoute(cfg.Endpoints.ResendVerification).WithHandlerFunc(app.ResendVerificationHandler),
		r.NewRoute(cfg.Endpoints.CheckUsername).WithHandlerFunc(app.CheckUsernameHandler),
		r.NewRoute(cfg.Endpoints.AuthWithPassword).WithHandlerFunc(app.AuthWithPasswordHandler),
		r.NewRoute(cfg.Endpoints.AuthWithOAuth2).WithHandlerFunc(app.AuthWithOAuth2Handler),
		r.NewRoute(cfg.Endpoints.RefreshAuth).WithHandlerFunc(app.RefreshAuthHandler),
		r.NewRoute(cfg.Endpoints.RequestPasswordReset).WithHandlerFunc(app.RequestPasswordResetHandler),
		r.NewRoute(cfg.Endpoints.ConfirmPasswordReset).WithHandlerFunc(app.ConfirmPasswordResetHandler),
		r.NewRoute(cfg.Endpoints.ListOAuth2Providers).WithHandlerFunc(app.ListOAuth2ProvidersHandler),
	)
}
