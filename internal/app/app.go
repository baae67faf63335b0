package app

import (
	"io"
	"log/slog"

	"github.com/rpezzi/pipelint/internal/extension"
	"github.com/rpezzi/pipelint/internal/rules"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle. Every validation run starts from a fresh registry; only the
// resolver and catalog live for the App's lifetime.
type App struct {
	outW     io.Writer
	errW     io.Writer
	logger   *slog.Logger
	config   *Config
	resolver *extension.Resolver
	catalog  *rules.Catalog
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger. Passing no
// extensions installs the compiled-in ones.
func NewApp(outW, errW io.Writer, cfg *Config, extensions ...extension.Extension) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, errW)
	logger.Debug("Logger configured successfully.")

	if len(extensions) == 0 {
		extensions = builtinExtensions()
	}
	resolver := extension.NewResolver(extensions...)
	logger.Debug("Extension resolver initialized.", "extensions", resolver.Names())

	return &App{
		outW:     outW,
		errW:     errW,
		logger:   logger,
		config:   cfg,
		resolver: resolver,
		catalog:  rules.Builtin(),
	}
}

// Resolver returns the application's extension resolver. This is primarily
// for testing.
func (a *App) Resolver() *extension.Resolver {
	return a.resolver
}
