package hushauth

import (
	"fmt"
	"log/slog"
	"os"

	phuslog "github.com/phuslu/log"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/hushbox/hushauth/cache/ristretto"
	"github.com/hushbox/hushauth/core"
	"github.com/hushbox/hushauth/db/zombiezen"
	"github.com/hushbox/hushauth/router/httprouter"
)

// WithZombiezenPool configures the app to use the zombiezen SQLite store on
// an existing pool. The caller owns the pool's lifecycle.
func WithZombiezenPool(pool *sqlitex.Pool) core.Option {
	dbAuth, err := zombiezen.New(pool)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize zombiezen store with existing pool: %v", err))
	}
	return core.WithDbAuth(dbAuth)
}

// WithRouterHttprouter selects the httprouter based router.
func WithRouterHttprouter() core.Option {
	return core.WithRouter(httprouter.New())
}

// WithCacheRistretto selects a ristretto cache of the given size level
// (ristretto.SizeSmall through ristretto.SizeVeryLarge).
func WithCacheRistretto(level string) core.Option {
	c, err := ristretto.New[any](level)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize ristretto cache: %v", err))
	}
	return core.WithCache(c)
}

// WithDefaultCache installs a medium ristretto cache on an assembled app.
func WithDefaultCache(app *core.App) error {
	c, err := ristretto.New[any](ristretto.SizeMedium)
	if err != nil {
		return fmt.Errorf("failed to initialize default cache: %w", err)
	}
	app.SetCache(c)
	return nil
}

// DefaultLoggerOptions provides default settings for slog handlers.
var DefaultLoggerOptions = &slog.HandlerOptions{
	Level: slog.LevelInfo,
}

// WithPhusLogger configures slog with phuslu/log's JSON handler.
// Uses DefaultLoggerOptions if opts is nil.
func WithPhusLogger(opts *slog.HandlerOptions) core.Option {
	if opts == nil {
		opts = DefaultLoggerOptions
	}
	logger := slog.New(phuslog.SlogNewJSONHandler(os.Stderr, opts))
	return core.WithLogger(logger)
}

// WithTextLogger configures slog with the standard library's text handler.
func WithTextLogger(opts *slog.HandlerOptions) core.Option {
	if opts == nil {
		opts = DefaultLoggerOptions
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, opts))
	return core.WithLogger(logger)
}
