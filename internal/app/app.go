package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/hyperscape/shell/internal/config"
	"github.com/hyperscape/shell/internal/ctxlog"
	"github.com/hyperscape/shell/internal/registry"
	"github.com/hyperscape/shell/internal/uichannel"
	"github.com/hyperscape/shell/modules/deep_link"
	"github.com/hyperscape/shell/modules/opener"
	"github.com/hyperscape/shell/modules/platform_info"
)

// Option customizes an App at construction.
type Option func(*options)

type options struct {
	opener  opener.Opener
	modules []registry.Module
}

// WithOpener sets how 'open_external' opens URLs. The default uses the
// desktop's URL handler.
func WithOpener(o opener.Opener) Option {
	return func(opts *options) { opts.opener = o }
}

// WithModules registers extra modules after the core ones.
func WithModules(modules ...registry.Module) Option {
	return func(opts *options) { opts.modules = append(opts.modules, modules...) }
}

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	model    *config.Model
	registry *registry.Registry
	deepLink *deep_link.Module
	socket   *uichannel.SocketIO

	bridgeMu   sync.Mutex
	bridge     *http.Server
	bridgeAddr string

	activatorMu sync.RWMutex
	activator   Activator
}

// NewApp is the constructor for the main application. It loads and
// validates the configuration, registers all modules and returns a fully
// initialized App. Configuration and registration failures are fatal
// startup errors and panic.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader, opts ...Option) *App {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	bootLogger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), bootLogger)

	model, err := loader.Load(ctx, appConfig.ConfigPaths...)
	if err != nil {
		panic(fmt.Errorf("failed to load configuration: %w", err))
	}
	applyOverrides(model, appConfig)
	if err := model.Validate(); err != nil {
		panic(fmt.Errorf("invalid configuration: %w", err))
	}

	logger := newLogger(model.Log.Level, model.Log.Format, outW)
	ctx = ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Configuration loaded.", "app", model.App.Name, "schemes", model.DeepLink.Schemes, "bridge", model.Bridge.Listen)

	deepLink := &deep_link.Module{}
	modules := []registry.Module{
		deepLink,
		&platform_info.Module{},
		&opener.Module{Opener: o.opener},
	}
	modules = append(modules, o.modules...)

	reg := registry.New()
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All modules registered.", "count", len(modules), "commands", reg.Commands())

	if err := reg.ValidateRegistry(ctx); err != nil {
		// This is a programmer error (a module registered something unusable), so we panic.
		panic(err)
	}

	a := &App{
		outW:     outW,
		logger:   logger,
		config:   appConfig,
		model:    model,
		registry: reg,
		deepLink: deepLink,
	}
	if model.Bridge.Listen != "" {
		a.socket = uichannel.NewSocketIO(logger)
	}
	return a
}

func applyOverrides(model *config.Model, cfg *Config) {
	if cfg.LogLevel != "" {
		model.Log.Level = cfg.LogLevel
	}
	if cfg.LogFormat != "" {
		model.Log.Format = cfg.LogFormat
	}
	if cfg.BridgeListen != "" {
		model.Bridge.Listen = cfg.BridgeListen
	}
}

// Logger returns the application's logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Config returns the process-level options the app was created with.
func (a *App) Config() *Config {
	return a.config
}

// Model returns the loaded configuration.
func (a *App) Model() *config.Model {
	return a.model
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// DeepLink returns the deep-link module, whose router exists after Setup.
func (a *App) DeepLink() *deep_link.Module {
	return a.deepLink
}

// Invoke runs a registered command on behalf of the UI.
func (a *App) Invoke(ctx context.Context, name string, args map[string]any) (any, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger.With("command", name))
	return a.registry.Invoke(ctx, name, args)
}
