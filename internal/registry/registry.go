package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/hyperscape/shell/internal/config"
	"github.com/hyperscape/shell/internal/ctxlog"
	"github.com/hyperscape/shell/internal/deeplink"
)

// ErrUnknownCommand is returned by Invoke for names nobody registered.
var ErrUnknownCommand = errors.New("unknown command")

// Module is the interface that all shell modules must implement to be registered.
type Module interface {
	Register(r *Registry)
}

// Env is what setup hooks get to work with.
type Env struct {
	Source  deeplink.Source
	Channel deeplink.Channel
	Config  *config.Model
}

// SetupFunc runs once during application setup. An error aborts startup.
type SetupFunc func(ctx context.Context, env *Env) error

// CommandFunc handles a command invoked by the UI. args is the decoded JSON
// argument object and the result must be JSON-encodable.
type CommandFunc func(ctx context.Context, args map[string]any) (any, error)

// RegisteredCommand holds a command's handler.
type RegisteredCommand struct {
	Description string
	Fn          CommandFunc
}

type setupHook struct {
	name string
	fn   SetupFunc
}

// Registry holds all the registered commands and setup hooks for a single
// application instance.
type Registry struct {
	CommandRegistry map[string]*RegisteredCommand
	setupHooks      []setupHook
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		CommandRegistry: make(map[string]*RegisteredCommand),
	}
}

// RegisterCommand registers a UI-invokable command.
func (r *Registry) RegisterCommand(name string, cmd *RegisteredCommand) {
	if _, exists := r.CommandRegistry[name]; exists {
		panic(fmt.Sprintf("command with name '%s' already registered", name))
	}
	slog.Debug("Registering command.", "name", name)
	r.CommandRegistry[name] = cmd
}

// RegisterSetupHook registers a hook that runs during setup, after every
// hook registered before it.
func (r *Registry) RegisterSetupHook(name string, fn SetupFunc) {
	for _, h := range r.setupHooks {
		if h.name == name {
			panic(fmt.Sprintf("setup hook with name '%s' already registered", name))
		}
	}
	slog.Debug("Registering setup hook.", "name", name)
	r.setupHooks = append(r.setupHooks, setupHook{name: name, fn: fn})
}

// Commands returns the registered command names, sorted.
func (r *Registry) Commands() []string {
	names := make([]string, 0, len(r.CommandRegistry))
	for name := range r.CommandRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SetupHooks returns the registered hook names in run order.
func (r *Registry) SetupHooks() []string {
	names := make([]string, 0, len(r.setupHooks))
	for _, h := range r.setupHooks {
		names = append(names, h.name)
	}
	return names
}

// ValidateRegistry checks that every registration is usable.
func (r *Registry) ValidateRegistry(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	var errs []error

	for _, name := range r.Commands() {
		cmd := r.CommandRegistry[name]
		if name == "" {
			errs = append(errs, errors.New("command registered with an empty name"))
		}
		if cmd == nil || cmd.Fn == nil {
			errs = append(errs, fmt.Errorf("command '%s' has no handler", name))
		}
	}
	for _, h := range r.setupHooks {
		if h.fn == nil {
			errs = append(errs, fmt.Errorf("setup hook '%s' has no function", h.name))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed: %w", errors.Join(errs...))
	}
	logger.Debug("Registry validation passed.", "commands", len(r.CommandRegistry), "setup_hooks", len(r.setupHooks))
	return nil
}

// Invoke runs the named command.
func (r *Registry) Invoke(ctx context.Context, name string, args map[string]any) (any, error) {
	cmd, ok := r.CommandRegistry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	if args == nil {
		args = map[string]any{}
	}
	return cmd.Fn(ctx, args)
}

// RunSetup runs the setup hooks in registration order and stops at the
// first failure.
func (r *Registry) RunSetup(ctx context.Context, env *Env) error {
	logger := ctxlog.FromContext(ctx)
	for _, h := range r.setupHooks {
		logger.Debug("Running setup hook.", "name", h.name)
		if err := h.fn(ctx, env); err != nil {
			return fmt.Errorf("setup hook '%s' failed: %w", h.name, err)
		}
	}
	return nil
}
