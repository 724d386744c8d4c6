package deep_link

import (
	"context"
	"sync/atomic"

	"github.com/hyperscape/shell/internal/ctxlog"
	"github.com/hyperscape/shell/internal/deeplink"
	"github.com/hyperscape/shell/internal/registry"
)

// Module wires the deep-link router into application setup.
type Module struct {
	router atomic.Pointer[deeplink.Router]
}

// Router returns the router once setup succeeded, nil before.
func (m *Module) Router() *deeplink.Router {
	return m.router.Load()
}

// setup builds the router on the setup environment and subscribes it to
// the platform link source.
func (m *Module) setup(ctx context.Context, env *registry.Env) error {
	logger := ctxlog.FromContext(ctx)

	var opts []deeplink.Option
	if env.Config != nil {
		opts = append(opts, deeplink.WithEventName(env.Config.DeepLink.Event))
	}
	r := deeplink.NewRouter(logger, env.Channel, opts...)
	if !m.router.CompareAndSwap(nil, r) {
		return deeplink.ErrAlreadyInitialized
	}
	if err := r.Initialize(ctx, env.Source); err != nil {
		// Leave the module free for another setup attempt.
		m.router.CompareAndSwap(r, nil)
		return err
	}
	return nil
}

// Register registers the setup hook with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterSetupHook("deep-link", m.setup)
}
