//go:build desktop

package desktop

import (
	"context"
	"embed"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/hyperscape/shell/internal/app"
	"github.com/hyperscape/shell/internal/platform"
	"github.com/hyperscape/shell/internal/uichannel"
	"github.com/hyperscape/shell/modules/opener"
	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"github.com/wailsapp/wails/v2/pkg/options/mac"
	"github.com/wailsapp/wails/v2/pkg/runtime"
)

//go:embed all:frontend/dist
var assets embed.FS

// Host runs the web UI in a Wails window and feeds the window's link
// callbacks into the desktop link source.
type Host struct {
	channel *uichannel.Deferred
	wctx    atomic.Pointer[context.Context]
}

// NewHost returns a host whose window is not created yet.
func NewHost() *Host {
	return &Host{channel: uichannel.NewDeferred()}
}

// Opener opens URLs through the window runtime once it started, and with
// the desktop's URL handler before that.
func (h *Host) Opener() opener.Opener {
	return opener.Func(func(ctx context.Context, url string) error {
		wctx := h.wctx.Load()
		if wctx == nil {
			return opener.System{}.Open(ctx, url)
		}
		runtime.BrowserOpenURL(*wctx, url)
		return nil
	})
}

// Run opens the window and blocks until it is closed or ctx is cancelled.
func (h *Host) Run(ctx context.Context, a *app.App) error {
	model := a.Model()
	logger := a.Logger()
	src := platform.NewDesktop(a.Config().LaunchArgs, model.DeepLink.Schemes)

	if err := a.StartBridge(ctx); err != nil {
		logger.Warn("Bridge server unavailable, continuing without it.", "error", err)
	}
	defer func() { _ = a.Close(context.Background()) }()

	var (
		setupOnce sync.Once
		setupErr  error
	)

	err := wails.Run(&options.App{
		Title:  model.Window.Title,
		Width:  model.Window.Width,
		Height: model.Window.Height,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		Logger:   newLogAdapter(logger),
		LogLevel: wailsLevel(model.Log.Level),
		OnStartup: func(wctx context.Context) {
			h.wctx.Store(&wctx)
			h.channel.Attach(func(event, payload string) error {
				runtime.EventsEmit(wctx, event, payload)
				return nil
			})
			go func() {
				select {
				case <-ctx.Done():
					runtime.Quit(wctx)
				case <-wctx.Done():
				}
			}()
		},
		// Links are routed only once the page can listen for them; until
		// then the source buffers them.
		OnDomReady: func(wctx context.Context) {
			setupOnce.Do(func() {
				if err := a.Setup(wctx, src, h.channel); err != nil {
					setupErr = fmt.Errorf("application setup failed: %w", err)
					runtime.Quit(wctx)
					return
				}
			})
			runtime.WindowExecJS(wctx, webGPUProbe)
		},
		OnShutdown: func(context.Context) {
			h.channel.Detach()
			h.wctx.Store(nil)
		},
		SingleInstanceLock: &options.SingleInstanceLock{
			UniqueId: model.App.Identifier,
			OnSecondInstanceLaunch: func(data options.SecondInstanceData) {
				logger.Info("Second instance launched.", "args", data.Args)
				src.DeliverArgs(data.Args)
				if wctx := h.wctx.Load(); wctx != nil {
					runtime.WindowUnminimise(*wctx)
					runtime.WindowShow(*wctx)
				}
			},
		},
		Mac: &mac.Options{
			OnUrlOpen: func(url string) {
				src.Deliver([]string{url})
			},
		},
		Bind: []interface{}{
			newBridge(a),
		},
	})
	if err != nil {
		return fmt.Errorf("window runtime failed: %w", err)
	}
	return setupErr
}
