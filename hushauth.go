package hushauth

import (
	"log/slog"

	"github.com/hushbox/hushauth/config"
	"github.com/hushbox/hushauth/core"
	"github.com/hushbox/hushauth/mail"
	"github.com/hushbox/hushauth/server"
)

// New assembles an App and its Server from a TOML config file and the given
// options. An empty configPath starts from the built-in defaults, which is
// what tests and throwaway setups want.
//
// Option order matters: defaults are applied first, so user options override
// them.
func New(configPath string, opts ...core.Option) (*core.App, *server.Server, error) {
	bootLogger := slog.Default()

	cfg := config.NewDefaultConfig()
	if configPath != "" {
		loaded, err := config.LoadFromToml(configPath, bootLogger)
		if err != nil {
			return nil, nil, err
		}
		cfg = loaded
	}

	configProvider := config.NewProvider(cfg)

	allOpts := []core.Option{
		WithTextLogger(nil),
		WithRouterHttprouter(),
		core.WithConfigProvider(configProvider),
	}
	allOpts = append(allOpts, opts...)

	app, err := core.NewApp(allOpts...)
	if err != nil {
		return nil, nil, err
	}

	if app.Cache() == nil {
		if err := WithDefaultCache(app); err != nil {
			return nil, nil, err
		}
	}

	if cfg.Smtp.Enabled && app.Mailer() == nil {
		app.SetMailer(mail.New(configProvider, app.Logger()))
	}

	route(cfg, app)

	// Every request passes the IP blocker before routing.
	handler := core.NewBlockIp(app).Execute(app.Router())

	srv := server.NewServer(configProvider, handler, app.Logger(), reloadFunc(configPath, configProvider, app.Logger()))

	return app, srv, nil
}

// reloadFunc re-reads the TOML file and swaps the active configuration. With
// no file there is nothing to reload.
func reloadFunc(configPath string, provider *config.Provider, logger *slog.Logger) func() error {
	return func() error {
		if configPath == "" {
			logger.Info("no config file to reload, keeping current configuration")
			return nil
		}
		cfg, err := config.LoadFromToml(configPath, logger)
		if err != nil {
			return err
		}
		provider.Update(cfg)
		logger.Info("configuration reloaded", "path", configPath)
		return nil
	}
}
