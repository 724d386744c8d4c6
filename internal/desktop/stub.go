//go:build !desktop

package desktop

import (
	"context"

	"github.com/hyperscape/shell/internal/app"
	"github.com/hyperscape/shell/modules/opener"
)

// Host falls back to headless mode when built without desktop support.
// Build with -tags desktop for the native window.
type Host struct{}

// NewHost returns the headless host.
func NewHost() *Host {
	return &Host{}
}

// Opener opens URLs with the desktop's URL handler.
func (h *Host) Opener() opener.Opener {
	return opener.System{}
}

// Run serves the UI over the bridge only.
func (h *Host) Run(ctx context.Context, a *app.App) error {
	a.Logger().Info("Desktop window not available in this build. Running headless...")
	return a.Run(ctx)
}
