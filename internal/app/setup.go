package app

import (
	"context"
	"runtime"

	"github.com/hyperscape/shell/internal/ctxlog"
	"github.com/hyperscape/shell/internal/deeplink"
	"github.com/hyperscape/shell/internal/registry"
	"github.com/hyperscape/shell/internal/uichannel"
)

// Activator is a link source that accepts activation batches from outside
// the OS callback path, e.g. forwarded by a second process instance.
type Activator interface {
	Deliver(urls []string)
}

// Setup connects src to the UI and runs every module's setup hook. host is
// the channel of the window hosting the UI and may be nil when the UI only
// reaches the shell over the bridge. A returned error is fatal to startup.
func (a *App) Setup(ctx context.Context, src deeplink.Source, host uichannel.Channel) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Info("🚀 Starting shell", "app", a.model.App.Name, "os", runtime.GOOS, "arch", runtime.GOARCH)

	var channels []uichannel.Channel
	if host != nil {
		channels = append(channels, host)
	}
	if a.socket != nil {
		channels = append(channels, a.socket)
	}

	a.setActivator(src)

	env := &registry.Env{
		Source:  src,
		Channel: uichannel.NewFanout(channels...),
		Config:  a.model,
	}
	if err := a.registry.RunSetup(ctx, env); err != nil {
		return err
	}
	a.logger.Debug("Setup finished.", "channels", len(channels))
	return nil
}

// setActivator makes src the target of bridge activations when it accepts
// them.
func (a *App) setActivator(src deeplink.Source) {
	act, ok := src.(Activator)
	if !ok {
		return
	}
	a.activatorMu.Lock()
	a.activator = act
	a.activatorMu.Unlock()
}

func (a *App) currentActivator() Activator {
	a.activatorMu.RLock()
	defer a.activatorMu.RUnlock()
	return a.activator
}
